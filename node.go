package lsmnode

// Node binds a page buffer and a key comparator together so callers
// don't have to thread both through every session they open. It holds
// no session state itself — all reads/writes happen through the
// Session returned by Read/Write/Create, which is where the header
// field cache actually lives.
type Node struct {
	buf PageBuffer
	cmp Comparator
}

// Bind attaches a comparator to an already-pinned page buffer. buf
// must already be latched by the caller's page cache for the duration
// of whichever session is opened next.
func Bind(buf PageBuffer, cmp Comparator) *Node {
	return &Node{buf: buf, cmp: cmp}
}

// Read opens a read session: shared latch, header-load reads only.
func (n *Node) Read(unlatch Unlatch) (*Session, error) {
	return NewReadSession(n.buf, n.cmp, unlatch)
}

// Write opens a write session: exclusive latch, mutation API
// permitted, dirty header fields flushed on Close.
func (n *Node) Write(unlatch Unlatch) (*Session, error) {
	return NewWriteSession(n.buf, n.cmp, unlatch)
}

// CreateSession opens a create session over a freshly allocated page.
// The caller must call Create on the returned session exactly once
// before closing it.
func (n *Node) CreateSession(unlatch Unlatch) *Session {
	return NewCreateSession(n.buf, n.cmp, unlatch)
}

// Create initializes a freshly allocated page as either a leaf or an
// internal node, under the given encoders version. It must be called
// exactly once on a create session, before any other method.
func (s *Session) Create(leaf bool, encodersVersion uint8) error {
	assert(s.mode == sessionCreate, "Create called outside a create session")
	assert(!s.created, "Create called twice on the same session")

	enc, err := EncodersForVersion(encodersVersion)
	if err != nil {
		return err
	}

	s.flags = encodersVersion << encodersVersionShift
	if leaf {
		s.flags |= flagLeaf
	}
	s.dirty |= fieldFlags
	s.loaded |= fieldFlags

	s.size = 0
	s.dirty |= fieldSize
	s.loaded |= fieldSize

	s.setFreeDataPosition(s.buf.Len())

	s.buf.SetI64(offTreeSize, 0)
	s.buf.SetI64(offLeftPointer, 0)
	s.buf.SetI64(offLeftMarkerBlock, 0)
	s.buf.SetI32(offLeftMarkerUsage, 0)
	s.buf.SetI64(offLeftSibling, 0)
	s.buf.SetI64(offRightSibling, 0)

	s.enc = enc
	s.layout = newRecordLayout(enc, leaf)
	s.created = true
	return nil
}
