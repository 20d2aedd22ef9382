package lsmnode

// recordOffset returns the page offset of slot i's first byte.
func (s *Session) recordOffset(i int) int {
	return recordsOffset + i*s.layout.recordSize
}

func (s *Session) keyPartOffset(i int) int { return s.recordOffset(i) }

func (s *Session) valuePartOffset(i int) int { return s.recordOffset(i) + s.layout.keyWidth }

// readPosition/writePosition move one PagePosition-encoded value
// to/from an absolute page offset. PagePosition is always a bound
// encoder (layout.go asserts this at session open).
func (s *Session) readPosition(off int) int {
	raw := s.buf.Read(off, s.layout.positionWidth)
	v, _, err := s.enc.PagePosition.Decode(raw)
	assert(err == nil, "readPosition: decode failure")
	return anyToInt(v)
}

func (s *Session) writePosition(off int, v int) {
	enc, err := s.enc.PagePosition.Encode(nil, v)
	assert(err == nil, "writePosition: encode failure")
	s.buf.Write(off, enc)
}

func (s *Session) readPointer(off int) int64 {
	raw := s.buf.Read(off, s.layout.pointerWidth)
	v, _, err := s.enc.PagePointer.Decode(raw)
	assert(err == nil, "readPointer: decode failure")
	return anyToInt64(v)
}

func (s *Session) writePointer(off int, v int64) {
	enc, err := s.enc.PagePointer.Encode(nil, v)
	assert(err == nil, "writePointer: encode failure")
	s.buf.Write(off, enc)
}

func anyToInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int32:
		return int(t)
	case uint32:
		return int(t)
	case int64:
		return int(t)
	case uint64:
		return int(t)
	default:
		panic("lsmnode: PagePosition encoder returned unsupported type")
	}
}

func anyToInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case uint64:
		return int64(t)
	case int32:
		return int64(t)
	case uint32:
		return int64(t)
	case int:
		return int64(t)
	default:
		panic("lsmnode: PagePointer encoder returned unsupported type")
	}
}

// allocateRecord shifts slots [i, size) one slot width rightward,
// opening a hole at slot i. It does not change size or touch the data
// region.
func (s *Session) allocateRecord(i int) {
	n := s.size - i
	if n > 0 {
		src := s.recordOffset(i)
		dst := s.recordOffset(i + 1)
		s.buf.Move(dst, src, n*s.layout.recordSize)
	}
}

// deleteRecord shifts slots [i+1, size) one slot width leftward,
// closing the hole left at slot i. It does not change size.
func (s *Session) deleteRecord(i int) {
	n := s.size - i - 1
	if n > 0 {
		src := s.recordOffset(i + 1)
		dst := s.recordOffset(i)
		s.buf.Move(dst, src, n*s.layout.recordSize)
	}
}

// allocateData reserves length bytes at the front of the data region
// and returns their start offset, updating freeDataPosition.
func (s *Session) allocateData(length int) int {
	newFDP := s.getFreeDataPosition() - length
	s.setFreeDataPosition(newFDP)
	return newFDP
}

// deleteData releases the length bytes starting at dataPos, compacting
// the data region so that freeDataPosition remains its lowest-used
// address, and patches every slot's out-of-line offset that pointed
// before dataPos.
func (s *Session) deleteData(dataPos, length int) {
	fdp := s.getFreeDataPosition()
	if dataPos != fdp {
		n := dataPos - fdp
		s.buf.Move(fdp+length, fdp, n)
		s.patchOffsetsBelow(dataPos, length)
	}
	s.setFreeDataPosition(fdp + length)
}

// patchOffsetsBelow adds delta to every out-of-line key/value offset
// strictly less than dataPos, after deleteData has shifted the bytes
// those offsets pointed at.
func (s *Session) patchOffsetsBelow(dataPos, delta int) {
	leaf := s.isLeaf()
	for i := 0; i < s.size; i++ {
		if !s.layout.keysInlined {
			off := s.keyPartOffset(i)
			pos := s.readPosition(off)
			if pos < dataPos {
				s.writePosition(off, pos+delta)
			}
		}
		if leaf && !s.layout.valuesInlined {
			off := s.valuePartOffset(i)
			pos := s.readPosition(off)
			if pos < dataPos {
				s.writePosition(off, pos+delta)
			}
		}
	}
}
