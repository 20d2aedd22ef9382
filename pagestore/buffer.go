package pagestore

import "encoding/binary"

// Buffer is a byte-addressable view of one page inside a Pager's
// mmap'd file. It implements lsmnode.PageBuffer structurally — this
// package never imports lsmnode, so there is nothing to assert that
// at compile time beyond the method set matching.
//
// All multi-byte accessors are big-endian, matching the on-page wire
// format lsmnode's Node expects.
type Buffer struct {
	pgno uint32
	data []byte // exactly one page's worth of bytes, a subslice of the mmap
}

func (b *Buffer) PageNo() uint32 { return b.pgno }
func (b *Buffer) Len() int       { return len(b.data) }

func (b *Buffer) GetU8(pos int) uint8   { return b.data[pos] }
func (b *Buffer) GetU32(pos int) uint32 { return binary.BigEndian.Uint32(b.data[pos : pos+4]) }
func (b *Buffer) GetI32(pos int) int32  { return int32(b.GetU32(pos)) }
func (b *Buffer) GetU64(pos int) uint64 { return binary.BigEndian.Uint64(b.data[pos : pos+8]) }
func (b *Buffer) GetI64(pos int) int64  { return int64(b.GetU64(pos)) }

func (b *Buffer) SetU8(pos int, v uint8) { b.data[pos] = v }
func (b *Buffer) SetU32(pos int, v uint32) {
	binary.BigEndian.PutUint32(b.data[pos:pos+4], v)
}
func (b *Buffer) SetI32(pos int, v int32) { b.SetU32(pos, uint32(v)) }
func (b *Buffer) SetU64(pos int, v uint64) {
	binary.BigEndian.PutUint64(b.data[pos:pos+8], v)
}
func (b *Buffer) SetI64(pos int, v int64) { b.SetU64(pos, uint64(v)) }

func (b *Buffer) Read(pos, n int) []byte {
	out := make([]byte, n)
	copy(out, b.data[pos:pos+n])
	return out
}

func (b *Buffer) Write(pos int, v []byte) {
	copy(b.data[pos:pos+len(v)], v)
}

func (b *Buffer) Move(dst, src, n int) {
	copy(b.data[dst:dst+n], b.data[src:src+n])
}
