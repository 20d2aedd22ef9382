package lsmnode

// Marker links an internal separator to a block on a lower LSM level.
// A marker with BlockIndex == 0 is considered empty (no block
// assigned).
type Marker struct {
	Index      int // logical marker index: -1 (leftmost) or a slot index
	BlockIndex int64
	PagesUsed  int
}

func (m Marker) empty() bool { return m.BlockIndex == 0 }

func (s *Session) childPointerOffset(i int) int { return s.valuePartOffset(i) }

func (s *Session) markerOffset(i int) int { return s.valuePartOffset(i) + s.layout.pointerWidth }

// LeftPointer returns the page pointer guarding keys less than slot
// 0's key. Internal nodes only.
func (s *Session) LeftPointer() int64 {
	assert(!s.isLeaf(), "LeftPointer called on a leaf")
	return s.buf.GetI64(offLeftPointer)
}

// SetLeftPointer overwrites the left-pointer header field directly;
// unlike flags/size/freeDataPosition/treeSize it is not cached under
// the dirty bitmask since it changes far less often.
func (s *Session) SetLeftPointer(p int64) {
	s.requireMutable("SetLeftPointer")
	assert(!s.isLeaf(), "SetLeftPointer called on a leaf")
	s.buf.SetI64(offLeftPointer, p)
}

// LeftSibling/RightSibling are page pointers to the predecessor and
// successor node at the same tree level. Zero means "no sibling".
func (s *Session) LeftSibling() int64  { return s.buf.GetI64(offLeftSibling) }
func (s *Session) RightSibling() int64 { return s.buf.GetI64(offRightSibling) }

func (s *Session) SetLeftSibling(p int64) {
	s.requireMutable("SetLeftSibling")
	s.buf.SetI64(offLeftSibling, p)
}

func (s *Session) SetRightSibling(p int64) {
	s.requireMutable("SetRightSibling")
	s.buf.SetI64(offRightSibling, p)
}

// PointerAt returns the child page pointer guarding keys in
// [key_i, key_{i+1}); PointerAt(-1) is equivalent to LeftPointer.
func (s *Session) PointerAt(i int) int64 {
	assert(!s.isLeaf(), "PointerAt called on a leaf")
	if i == -1 {
		return s.LeftPointer()
	}
	assert(i >= 0 && i < s.size, "PointerAt: index out of range")
	return s.readPointer(s.childPointerOffset(i))
}

// UpdatePointer overwrites the child pointer at logical index i.
func (s *Session) UpdatePointer(i int, pointer int64) {
	s.requireMutable("UpdatePointer")
	assert(!s.isLeaf(), "UpdatePointer called on a leaf")
	if i == -1 {
		s.SetLeftPointer(pointer)
		return
	}
	assert(i >= 0 && i < s.size, "UpdatePointer: index out of range")
	s.writePointer(s.childPointerOffset(i), pointer)
}

// InsertPointer inserts a new separator key at the slot identified by
// insertionPoint along with its child pointer and marker. Callers must
// have already verified DeltaFits/CheckEntrySize as for InsertValue.
func (s *Session) InsertPointer(insertionPoint int, key any, keySize int, childPointer int64, markerBlockIndex int64, markerPagesUsed int) {
	s.requireMutable("InsertPointer")
	assert(!s.isLeaf(), "InsertPointer called on a leaf")
	assert(isInsertionPoint(insertionPoint), "InsertPointer: insertionPoint is not a miss result")

	i := toIndex(insertionPoint)
	s.allocateRecord(i)
	s.emitKey(i, key, keySize)
	s.writePointer(s.childPointerOffset(i), childPointer)
	moff := s.markerOffset(i)
	s.writePointer(moff, markerBlockIndex)
	s.writePosition(moff+s.layout.pointerWidth, markerPagesUsed)
	s.setSize(s.size + 1)
}

// MarkerAt returns the marker at logical index i (-1 for the leftmost
// marker, stored in the header; 0..size-1 inline after the matching
// slot's child pointer).
func (s *Session) MarkerAt(i int) Marker {
	assert(!s.isLeaf(), "MarkerAt called on a leaf")
	assert(i >= -1 && i < s.size, "MarkerAt: index out of range")
	if i == -1 {
		return Marker{
			Index:      -1,
			BlockIndex: s.buf.GetI64(offLeftMarkerBlock),
			PagesUsed:  int(s.buf.GetI32(offLeftMarkerUsage)),
		}
	}
	moff := s.markerOffset(i)
	return Marker{
		Index:      i,
		BlockIndex: s.readPointer(moff),
		PagesUsed:  s.readPosition(moff + s.layout.pointerWidth),
	}
}

// UpdateMarker overwrites the marker at logical index i.
func (s *Session) UpdateMarker(i int, blockIndex int64, pagesUsed int) {
	s.requireMutable("UpdateMarker")
	assert(!s.isLeaf(), "UpdateMarker called on a leaf")
	assert(i >= -1 && i < s.size, "UpdateMarker: index out of range")
	if i == -1 {
		s.buf.SetI64(offLeftMarkerBlock, blockIndex)
		s.buf.SetI32(offLeftMarkerUsage, int32(pagesUsed))
		return
	}
	moff := s.markerOffset(i)
	s.writePointer(moff, blockIndex)
	s.writePosition(moff+s.layout.pointerWidth, pagesUsed)
}

// UpdateMarkerPagesUsed overwrites only the pages-used field of the
// marker at logical index i, leaving its block index untouched.
func (s *Session) UpdateMarkerPagesUsed(i int, pagesUsed int) {
	s.requireMutable("UpdateMarkerPagesUsed")
	assert(!s.isLeaf(), "UpdateMarkerPagesUsed called on a leaf")
	assert(i >= -1 && i < s.size, "UpdateMarkerPagesUsed: index out of range")
	if i == -1 {
		s.buf.SetI32(offLeftMarkerUsage, int32(pagesUsed))
		return
	}
	s.writePosition(s.markerOffset(i)+s.layout.pointerWidth, pagesUsed)
}

// LeftMostMarkerIndex always returns -1: the leftmost marker's
// logical index, by definition.
func (s *Session) LeftMostMarkerIndex() int { return -1 }

// RightMostMarkerIndex scans slots from size-1 downward and returns
// the first non-empty marker's index, or -1 if every slot marker is
// empty (the leftmost marker is not consulted here).
func (s *Session) RightMostMarkerIndex() int {
	assert(!s.isLeaf(), "RightMostMarkerIndex called on a leaf")
	for i := s.size - 1; i >= 0; i-- {
		if !s.MarkerAt(i).empty() {
			return i
		}
	}
	return -1
}

// NearestMarker starts at the -1-based index derived from searchIndex
// and walks downward (toward -1) until a non-empty slot marker is
// found. If every slot marker on the way is empty, it returns the
// leftmost marker (-1) whether or not that one is empty; Create
// initializes it as empty (BlockIndex 0).
func (s *Session) NearestMarker(searchIndex int) Marker {
	assert(!s.isLeaf(), "NearestMarker called on a leaf")
	i := toMinusOneBasedIndex(searchIndex)
	for i > -1 {
		if m := s.MarkerAt(i); !m.empty() {
			return m
		}
		i--
	}
	return s.MarkerAt(-1)
}
