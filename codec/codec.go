// Package codec provides a small set of reference encoders for
// lsmnode.Node's key/value/page-index/page-position slots: fixed-width
// big-endian integers, a length-prefixed byte-slice codec for
// variable-length payloads, and a fixed-width byte-slice codec for
// constant-width payloads.
//
// None of these types import lsmnode — they satisfy its Encoder
// method set structurally, the same way the rest of this module's
// reference collaborators do.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var errWrongType = errors.New("codec: value has the wrong type for this encoder")

// U32BE encodes a uint32 as 4 big-endian bytes.
type U32BE struct{}

func (U32BE) Encode(dst []byte, v any) ([]byte, error) {
	n, ok := toUint64(v)
	if !ok {
		return nil, fmt.Errorf("%w: want uint32/int, got %T", errWrongType, v)
	}
	if n > 0xFFFFFFFF {
		return nil, fmt.Errorf("codec: U32BE.Encode: %v does not fit in 32 bits", v)
	}
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(n))
	return append(dst, buf[:]...), nil
}

func (U32BE) Decode(b []byte) (any, int, error) {
	if len(b) < 4 {
		return nil, 0, fmt.Errorf("codec: U32BE.Decode: need 4 bytes, got %d", len(b))
	}
	return binary.BigEndian.Uint32(b[:4]), 4, nil
}

func (U32BE) SizeOf(any) int     { return 4 }
func (U32BE) MaximumSize() int   { return 4 }
func (U32BE) IsOfBoundSize() bool { return true }

// U64BE encodes a uint64 as 8 big-endian bytes.
type U64BE struct{}

func (U64BE) Encode(dst []byte, v any) ([]byte, error) {
	n, ok := toUint64(v)
	if !ok {
		return nil, fmt.Errorf("%w: want uint64/int64, got %T", errWrongType, v)
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n)
	return append(dst, buf[:]...), nil
}

func (U64BE) Decode(b []byte) (any, int, error) {
	if len(b) < 8 {
		return nil, 0, fmt.Errorf("codec: U64BE.Decode: need 8 bytes, got %d", len(b))
	}
	return binary.BigEndian.Uint64(b[:8]), 8, nil
}

func (U64BE) SizeOf(any) int     { return 8 }
func (U64BE) MaximumSize() int   { return 8 }
func (U64BE) IsOfBoundSize() bool { return true }

func toUint64(v any) (uint64, bool) {
	switch t := v.(type) {
	case uint64:
		return t, true
	case int64:
		return uint64(t), true
	case uint32:
		return uint64(t), true
	case int:
		return uint64(t), true
	default:
		return 0, false
	}
}

// BytesVarint encodes a []byte as a varint length prefix followed by
// the raw bytes. MaxSize caps MaximumSize for callers that need a
// worst-case bound (e.g. the outer tree's split heuristics); it is not
// enforced by Encode itself.
type BytesVarint struct {
	MaxSize int
}

func (c BytesVarint) Encode(dst []byte, v any) ([]byte, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: want []byte, got %T", errWrongType, v)
	}
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(b)))
	dst = append(dst, lenBuf[:n]...)
	return append(dst, b...), nil
}

func (c BytesVarint) Decode(b []byte) (any, int, error) {
	length, n := binary.Uvarint(b)
	if n <= 0 {
		return nil, 0, errors.New("codec: BytesVarint.Decode: malformed varint length")
	}
	total := n + int(length)
	if total > len(b) {
		return nil, 0, fmt.Errorf("codec: BytesVarint.Decode: need %d bytes, got %d", total, len(b))
	}
	out := make([]byte, length)
	copy(out, b[n:total])
	return out, total, nil
}

func (c BytesVarint) SizeOf(v any) int {
	b, ok := v.([]byte)
	if !ok {
		return 0
	}
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(b)))
	return n + len(b)
}

func (c BytesVarint) MaximumSize() int    { return c.MaxSize }
func (c BytesVarint) IsOfBoundSize() bool { return false }

// FixedBytes encodes a []byte of exactly Width bytes, with no length
// prefix. Encode errors if the value's length doesn't match Width.
type FixedBytes struct {
	Width int
}

func NewFixedBytes(width int) FixedBytes { return FixedBytes{Width: width} }

func (c FixedBytes) Encode(dst []byte, v any) ([]byte, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: want []byte, got %T", errWrongType, v)
	}
	if len(b) != c.Width {
		return nil, fmt.Errorf("codec: FixedBytes.Encode: want %d bytes, got %d", c.Width, len(b))
	}
	return append(dst, b...), nil
}

func (c FixedBytes) Decode(b []byte) (any, int, error) {
	if len(b) < c.Width {
		return nil, 0, fmt.Errorf("codec: FixedBytes.Decode: need %d bytes, got %d", c.Width, len(b))
	}
	out := make([]byte, c.Width)
	copy(out, b[:c.Width])
	return out, c.Width, nil
}

func (c FixedBytes) SizeOf(any) int      { return c.Width }
func (c FixedBytes) MaximumSize() int    { return c.Width }
func (c FixedBytes) IsOfBoundSize() bool { return true }
