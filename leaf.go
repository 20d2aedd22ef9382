package lsmnode

// ValueAt decodes and returns the value stored in slot i of a leaf.
func (s *Session) ValueAt(i int) (any, error) {
	assert(s.isLeaf(), "ValueAt called on an internal node")
	assert(i >= 0 && i < s.size, "ValueAt: index out of range")
	off := s.valuePartOffset(i)
	if s.layout.valuesInlined {
		raw := s.buf.Read(off, s.layout.valueWidth)
		v, _, err := s.enc.Value.Decode(raw)
		return v, err
	}
	pos := s.readPosition(off)
	raw := s.buf.Read(pos, s.valueSizeAt(pos))
	v, _, err := s.enc.Value.Decode(raw)
	return v, err
}

func (s *Session) valueSizeAt(pos int) int {
	n := s.enc.Value.MaximumSize()
	if n <= 0 || pos+n > s.buf.Len() {
		n = s.buf.Len() - pos
	}
	raw := s.buf.Read(pos, n)
	_, consumed, err := s.enc.Value.Decode(raw)
	assert(err == nil, "valueSizeAt: decode failure")
	return consumed
}

func (s *Session) emitValue(i int, value any, valueSize int) {
	off := s.valuePartOffset(i)
	if s.layout.valuesInlined {
		enc, err := s.enc.Value.Encode(nil, value)
		assert(err == nil, "emitValue: encode failure")
		assert(len(enc) == s.layout.valueWidth, "emitValue: inline value size mismatch")
		s.buf.Write(off, enc)
		return
	}
	pos := s.allocateData(valueSize)
	s.writePosition(off, pos)
	enc, err := s.enc.Value.Encode(nil, value)
	assert(err == nil, "emitValue: encode failure")
	s.buf.Write(pos, enc)
}

// InsertValue inserts (key, value) at the slot identified by
// insertionPoint, a miss result from IndexOf. Callers must have
// already verified DeltaFits(FullEntrySize(keySize, valueSize)) and
// CheckEntrySize(keySize, valueSize) == nil.
func (s *Session) InsertValue(insertionPoint int, key any, keySize int, value any, valueSize int) {
	s.requireMutable("InsertValue")
	assert(s.isLeaf(), "InsertValue called on an internal node")
	assert(isInsertionPoint(insertionPoint), "InsertValue: insertionPoint is not a miss result")

	i := toIndex(insertionPoint)
	s.allocateRecord(i)
	s.emitKey(i, key, keySize)
	s.emitValue(i, value, valueSize)
	s.setSize(s.size + 1)
}

// UpdateValue overwrites slot i's value in place, reusing its existing
// out-of-line bytes when the new encoded size matches currentSize.
func (s *Session) UpdateValue(i int, value any, newSize, currentSize int) {
	s.requireMutable("UpdateValue")
	assert(s.isLeaf(), "UpdateValue called on an internal node")
	assert(i >= 0 && i < s.size, "UpdateValue: index out of range")

	if s.layout.valuesInlined {
		s.emitValue(i, value, newSize)
		return
	}
	off := s.valuePartOffset(i)
	pos := s.readPosition(off)
	if newSize == currentSize {
		enc, err := s.enc.Value.Encode(nil, value)
		assert(err == nil, "UpdateValue: encode failure")
		s.buf.Write(pos, enc)
		return
	}
	s.deleteData(pos, currentSize)
	s.emitValue(i, value, newSize)
}

// Delete removes slot i of a leaf or internal node, releasing any
// out-of-line key/value bytes it owned and compacting the slot
// directory. The value part of an internal slot is fixed-width, so
// valueSize is ignored there.
func (s *Session) Delete(i, keySize, valueSize int) {
	s.requireMutable("Delete")
	assert(i >= 0 && i < s.size, "Delete: index out of range")

	if s.isLeaf() {
		if !s.layout.valuesInlined {
			pos := s.readPosition(s.valuePartOffset(i))
			s.deleteData(pos, valueSize)
		}
	}
	if !s.layout.keysInlined {
		pos := s.readPosition(s.keyPartOffset(i))
		s.deleteData(pos, keySize)
	}
	s.deleteRecord(i)
	s.setSize(s.size - 1)
}
