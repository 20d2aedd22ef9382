package lsmnode

// halfSize is the target free-space threshold a split aims for: half
// of the space available to records, mirroring maxEntrySize's
// derivation from RECORDS_OFFSET.
func halfSize(pageBytes int) int {
	return (pageBytes - recordsOffset) / 2
}

func (s *Session) exactKeySize(i int) int {
	if s.layout.keysInlined {
		return s.layout.keyWidth
	}
	pos := s.readPosition(s.keyPartOffset(i))
	return s.keySizeAt(pos)
}

func (s *Session) exactValueSize(i int) int {
	assert(s.isLeaf(), "exactValueSize called on an internal node")
	if s.layout.valuesInlined {
		return s.layout.valueWidth
	}
	pos := s.readPosition(s.valuePartOffset(i))
	return s.valueSizeAt(pos)
}

// CountEntriesToMoveUntilHalfFree scans records from the tail,
// accumulating their full entry size, and returns how many must move
// out for this page's free space to reach halfSize. The loop condition
// tests the loop variable i (not size), so the scan stops at record 0
// at the latest; the system this was modeled on tested size instead
// and could spin past the record array.
func (s *Session) CountEntriesToMoveUntilHalfFree() int {
	target := halfSize(s.buf.Len())
	free := s.getFreeBytes()
	leaf := s.isLeaf()
	count := 0
	for i := s.size - 1; i >= 0 && free < target; i-- {
		ks := s.exactKeySize(i)
		vs := s.layout.pointerWidth
		if leaf {
			vs = s.exactValueSize(i)
		}
		free += s.layout.fullEntrySize(leaf, ks, vs)
		count++
	}
	return count
}

type leafRecord struct {
	key       any
	keySize   int
	value     any
	valueSize int
}

type internalRecord struct {
	key             any
	keySize         int
	childPointer    int64
	markerBlock     int64
	markerPagesUsed int
}

// MoveTailTo moves the last length records from s to positions
// [0, length) of dest, an empty node of the same kind (leaf/internal),
// then compacts s to retain its first size-length records. Both
// sessions must be write (or create, for dest) sessions.
func (s *Session) MoveTailTo(dest *Session, length int) {
	s.requireMutable("MoveTailTo")
	dest.requireMutable("MoveTailTo")
	assert(dest.size == 0, "MoveTailTo: destination is not empty")
	assert(s.isLeaf() == dest.isLeaf(), "MoveTailTo: leaf/internal mismatch")
	assert(length >= 0 && length <= s.size, "MoveTailTo: length out of range")

	moveStart := s.size - length
	leaf := s.isLeaf()

	if leaf {
		moved := make([]leafRecord, length)
		for j := 0; j < length; j++ {
			i := moveStart + j
			key, err := s.KeyAt(i)
			assert(err == nil, "MoveTailTo: key decode failure")
			value, err := s.ValueAt(i)
			assert(err == nil, "MoveTailTo: value decode failure")
			moved[j] = leafRecord{key, s.exactKeySize(i), value, s.exactValueSize(i)}
		}
		retained := make([]leafRecord, moveStart)
		for i := 0; i < moveStart; i++ {
			key, err := s.KeyAt(i)
			assert(err == nil, "MoveTailTo: key decode failure")
			value, err := s.ValueAt(i)
			assert(err == nil, "MoveTailTo: value decode failure")
			retained[i] = leafRecord{key, s.exactKeySize(i), value, s.exactValueSize(i)}
		}

		s.clear()
		for _, r := range retained {
			s.InsertValue(toInsertionPoint(s.size), r.key, r.keySize, r.value, r.valueSize)
		}
		for _, r := range moved {
			dest.InsertValue(toInsertionPoint(dest.size), r.key, r.keySize, r.value, r.valueSize)
		}
		return
	}

	moved := make([]internalRecord, length)
	for j := 0; j < length; j++ {
		i := moveStart + j
		key, err := s.KeyAt(i)
		assert(err == nil, "MoveTailTo: key decode failure")
		m := s.MarkerAt(i)
		moved[j] = internalRecord{key, s.exactKeySize(i), s.PointerAt(i), m.BlockIndex, m.PagesUsed}
	}
	retained := make([]internalRecord, moveStart)
	for i := 0; i < moveStart; i++ {
		key, err := s.KeyAt(i)
		assert(err == nil, "MoveTailTo: key decode failure")
		m := s.MarkerAt(i)
		retained[i] = internalRecord{key, s.exactKeySize(i), s.PointerAt(i), m.BlockIndex, m.PagesUsed}
	}

	s.clear()
	for _, r := range retained {
		s.InsertPointer(toInsertionPoint(s.size), r.key, r.keySize, r.childPointer, r.markerBlock, r.markerPagesUsed)
	}
	for _, r := range moved {
		dest.InsertPointer(toInsertionPoint(dest.size), r.key, r.keySize, r.childPointer, r.markerBlock, r.markerPagesUsed)
	}
}

// clear resets size to 0 and the data region to empty, without
// touching flags/leftPointer/siblings.
func (s *Session) clear() {
	s.setSize(0)
	s.setFreeDataPosition(s.buf.Len())
}
