package lsmnode

// CloneFrom overwrites this page with a byte-identical raw copy of
// other's page, in CLONE_BUFFER_SIZE-sized chunks. Used by splits that
// need to pre-stage a new root or sibling from an existing page.
// Afterwards this session's header cache is re-derived from the fresh
// bytes, including re-resolving the encoder set for whatever
// encodersVersion the cloned page carries.
func (s *Session) CloneFrom(other *Session) error {
	s.requireMutable("CloneFrom")
	n := s.buf.Len()
	assert(other.buf.Len() == n, "CloneFrom: page size mismatch")

	for pos := 0; pos < n; pos += cloneBufferSize {
		chunk := cloneBufferSize
		if pos+chunk > n {
			chunk = n - pos
		}
		s.buf.Write(pos, other.buf.Read(pos, chunk))
	}

	s.loaded = 0
	s.dirty = 0
	s.flags = s.buf.GetU8(offFlags)
	s.loaded |= fieldFlags
	s.size = int(s.buf.GetI32(offSize))
	s.loaded |= fieldSize

	enc, err := EncodersForVersion(s.encodersVersionFromFlags())
	if err != nil {
		return err
	}
	s.enc = enc
	s.layout = newRecordLayout(enc, s.isLeaf())
	return nil
}

// ConvertToNonLeaf turns an (empty, about-to-be-repurposed) leaf page
// into an internal page: resets freeDataPosition, clears size, clears
// every flag bit except the encoders version, and re-derives the
// record layout for internal slots. Nothing of the previous contents
// is preserved.
func (s *Session) ConvertToNonLeaf() {
	s.requireMutable("ConvertToNonLeaf")

	s.flags &= encodersVersionMask << encodersVersionShift
	s.dirty |= fieldFlags

	s.setSize(0)
	s.setFreeDataPosition(s.buf.Len())

	s.layout = newRecordLayout(s.enc, false)
}
