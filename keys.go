package lsmnode

// KeyAt decodes and returns the key stored in slot i, inline or
// out-of-line as the session's layout dictates. Valid for both leaf
// and internal nodes.
func (s *Session) KeyAt(i int) (any, error) {
	assert(i >= 0 && i < s.size, "KeyAt: index out of range")
	off := s.keyPartOffset(i)
	if s.layout.keysInlined {
		raw := s.buf.Read(off, s.layout.keyWidth)
		v, _, err := s.enc.Key.Decode(raw)
		return v, err
	}
	pos := s.readPosition(off)
	raw := s.buf.Read(pos, s.keySizeAt(pos))
	v, _, err := s.enc.Key.Decode(raw)
	return v, err
}

// keySizeAt returns the exact encoded size of the out-of-line key
// whose bytes begin at pos, probed through the encoder's own decode
// (an unbound encoder must be able to tell where its own value ends).
func (s *Session) keySizeAt(pos int) int {
	n := s.enc.Key.MaximumSize()
	if n <= 0 || pos+n > s.buf.Len() {
		n = s.buf.Len() - pos
	}
	raw := s.buf.Read(pos, n)
	_, consumed, err := s.enc.Key.Decode(raw)
	assert(err == nil, "keySizeAt: decode failure")
	return consumed
}

// emitKey writes key into slot i's key part, inline or out-of-line,
// allocating data-region bytes as needed. keySize is the caller-
// provided exact encoded size (used for out-of-line allocation).
func (s *Session) emitKey(i int, key any, keySize int) {
	off := s.keyPartOffset(i)
	if s.layout.keysInlined {
		enc, err := s.enc.Key.Encode(nil, key)
		assert(err == nil, "emitKey: encode failure")
		assert(len(enc) == s.layout.keyWidth, "emitKey: inline key size mismatch")
		s.buf.Write(off, enc)
		return
	}
	pos := s.allocateData(keySize)
	s.writePosition(off, pos)
	enc, err := s.enc.Key.Encode(nil, key)
	assert(err == nil, "emitKey: encode failure")
	s.buf.Write(pos, enc)
}
