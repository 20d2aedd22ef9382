package lsmnode

// Unlatch releases whatever latch a caller's page cache acquired
// before handing this package a Session. It must be idempotent-unsafe
// by design: calling it twice is a programmer error and panics,
// matching the panic-class assertions of spec §7.
type Unlatch func()

type sessionMode uint8

const (
	sessionRead sessionMode = iota
	sessionWrite
	sessionCreate
)

// headerField identifies one of the four header fields cached under
// the session's loaded/dirty bitmask (spec §4.1). flags and size are
// always loaded eagerly at session open; freeDataPosition and treeSize
// are loaded lazily on first access.
type headerField uint8

const (
	fieldFreeDataPosition headerField = 1 << iota
	fieldFlags
	fieldSize
	fieldTreeSize
)

// Session brackets one access to a Node's backing page: a read
// session (shared latch), a write session (exclusive latch, dirty
// header fields flushed on Close), or a create session (exclusive
// latch, Create must be called exactly once before Close).
//
// A Session is not safe for concurrent use; it is meant to be owned
// by exactly one goroutine for its lifetime, matching the "no
// suspension points, runs to completion holding the latch" model of
// spec §5.
type Session struct {
	buf     PageBuffer
	cmp     Comparator
	unlatch Unlatch
	mode    sessionMode
	closed  bool
	created bool // sessionCreate only: Create() has been called

	loaded headerField
	dirty  headerField

	flags            uint8
	size             int
	freeDataPosition int
	treeSize         int64

	enc    EncoderSet
	layout recordLayout
}

func newSession(buf PageBuffer, cmp Comparator, unlatch Unlatch, mode sessionMode) (*Session, error) {
	s := &Session{buf: buf, cmp: cmp, unlatch: unlatch, mode: mode}
	if mode == sessionCreate {
		// Header fields are meaningless until Create writes them;
		// nothing to load from the page yet.
		return s, nil
	}
	s.flags = buf.GetU8(offFlags)
	s.loaded |= fieldFlags
	s.size = int(buf.GetI32(offSize))
	s.loaded |= fieldSize

	var err error
	s.enc, err = EncodersForVersion(s.encodersVersionFromFlags())
	if err != nil {
		return nil, err
	}
	s.layout = newRecordLayout(s.enc, s.isLeaf())
	return s, nil
}

// NewReadSession opens a read session over an already-latched buf.
func NewReadSession(buf PageBuffer, cmp Comparator, unlatch Unlatch) (*Session, error) {
	return newSession(buf, cmp, unlatch, sessionRead)
}

// NewWriteSession opens a write session over an already-latched buf.
func NewWriteSession(buf PageBuffer, cmp Comparator, unlatch Unlatch) (*Session, error) {
	return newSession(buf, cmp, unlatch, sessionWrite)
}

// NewCreateSession opens a create session over an already-latched,
// freshly allocated buf. Callers must call Create exactly once before
// Close.
func NewCreateSession(buf PageBuffer, cmp Comparator, unlatch Unlatch) *Session {
	s, _ := newSession(buf, cmp, unlatch, sessionCreate)
	return s
}

func (s *Session) encodersVersionFromFlags() uint8 {
	return (s.flags >> encodersVersionShift) & encodersVersionMask
}

func (s *Session) isLeaf() bool { return s.flags&flagLeaf != 0 }

func (s *Session) requireMutable(what string) {
	assert(s.mode == sessionWrite || s.mode == sessionCreate, what+" requires a write or create session")
	assert(!s.closed, what+" called on a closed session")
}

func (s *Session) requireCreated(what string) {
	if s.mode == sessionCreate {
		assert(s.created, what+" called before Create on a create session")
	}
}

// Size returns the number of records currently stored.
func (s *Session) Size() int {
	s.requireCreated("Size")
	return s.size
}

// IsLeaf reports whether this node is a leaf.
func (s *Session) IsLeaf() bool {
	s.requireCreated("IsLeaf")
	return s.isLeaf()
}

func (s *Session) getFreeDataPosition() int {
	if s.loaded&fieldFreeDataPosition == 0 {
		s.freeDataPosition = int(s.buf.GetU32(offFreeDataPosition))
		s.loaded |= fieldFreeDataPosition
	}
	return s.freeDataPosition
}

func (s *Session) setFreeDataPosition(v int) {
	s.freeDataPosition = v
	s.loaded |= fieldFreeDataPosition
	s.dirty |= fieldFreeDataPosition
}

func (s *Session) setSize(v int) {
	s.size = v
	s.dirty |= fieldSize
}

// TreeSize returns the caller-owned whole-tree element count. Only
// meaningful on the tree's designated root page.
func (s *Session) TreeSize() int64 {
	s.requireCreated("TreeSize")
	if s.loaded&fieldTreeSize == 0 {
		s.treeSize = s.buf.GetI64(offTreeSize)
		s.loaded |= fieldTreeSize
	}
	return s.treeSize
}

// SetTreeSize overwrites the caller-owned whole-tree element count.
func (s *Session) SetTreeSize(v int64) {
	s.requireMutable("SetTreeSize")
	s.treeSize = v
	s.loaded |= fieldTreeSize
	s.dirty |= fieldTreeSize
}

// getFreeBytes returns the number of unused bytes between the end of
// the slot directory and the start of the data region.
func (s *Session) getFreeBytes() int {
	return s.getFreeDataPosition() - s.size*s.layout.recordSize - recordsOffset
}

// GetFreeBytes is the public accessor for getFreeBytes.
func (s *Session) GetFreeBytes() int {
	s.requireCreated("GetFreeBytes")
	return s.getFreeBytes()
}

// deltaFits reports whether delta additional bytes can be accommodated
// without exceeding the page.
func (s *Session) deltaFits(delta int) bool {
	return delta <= s.getFreeBytes()
}

// DeltaFits is the public accessor used by callers before Insert*.
func (s *Session) DeltaFits(delta int) bool {
	s.requireCreated("DeltaFits")
	return s.deltaFits(delta)
}

// CheckEntrySize fails with ErrTooLargeEntry if a record of the given
// key/value sizes could never fit on any page of this size, per spec
// §3 invariant 7 and §7.
func (s *Session) CheckEntrySize(keySize, valueSize int) error {
	s.requireCreated("CheckEntrySize")
	full := s.layout.fullEntrySize(s.isLeaf(), keySize, valueSize)
	if full > maxEntrySize(s.buf.Len()) {
		return newError(ErrTooLargeEntry)
	}
	return nil
}

// FullEntrySize is the public accessor for layout.fullEntrySize.
func (s *Session) FullEntrySize(keySize, valueSize int) int {
	s.requireCreated("FullEntrySize")
	return s.layout.fullEntrySize(s.isLeaf(), keySize, valueSize)
}

// Close flushes dirty header fields (write/create sessions only) and
// releases the latch exactly once.
func (s *Session) Close() {
	assert(!s.closed, "session closed twice")
	switch s.mode {
	case sessionRead:
		assert(s.dirty == 0, "dirty fields on a read session at close")
	case sessionCreate:
		assert(s.created, "create session closed without calling Create")
		s.flushDirty()
	case sessionWrite:
		s.flushDirty()
	}
	s.closed = true
	s.unlatch()
}

func (s *Session) flushDirty() {
	if s.dirty&fieldFreeDataPosition != 0 {
		s.buf.SetU32(offFreeDataPosition, uint32(s.freeDataPosition))
	}
	if s.dirty&fieldFlags != 0 {
		s.buf.SetU8(offFlags, s.flags)
	}
	if s.dirty&fieldSize != 0 {
		s.buf.SetI32(offSize, int32(s.size))
	}
	if s.dirty&fieldTreeSize != 0 {
		s.buf.SetI64(offTreeSize, s.treeSize)
	}
	s.dirty = 0
}

func (s *Session) keyAt(i int) any {
	v, err := s.KeyAt(i)
	assert(err == nil, "keyAt: decode failure")
	return v
}
