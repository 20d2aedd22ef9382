package pagestore

// MemBuffer is a pure in-memory PageBuffer backed by a plain []byte,
// with no latch, no file, and no pager — just the byte-addressable
// primitive lsmnode.Node needs. It exists for tests and callers that
// want to exercise the node without standing up a Pager.
type MemBuffer struct {
	Buffer
}

// NewMemBuffer allocates a zeroed page of pageSize bytes identified as
// pgno.
func NewMemBuffer(pageSize int, pgno uint32) *MemBuffer {
	return &MemBuffer{Buffer{pgno: pgno, data: make([]byte, pageSize)}}
}

// Noop is a ready-made Unlatch for callers that have no real latch to
// release, e.g. when driving a MemBuffer directly in a test.
func Noop() {}
