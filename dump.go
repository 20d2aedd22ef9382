package lsmnode

import "fmt"

// Dump renders a human-readable description of a node's contents for
// debugging. It is not part of the node's functional contract and
// must not be relied on by other components — its format is free to
// change between versions.
func (s *Session) Dump() string {
	kind := "internal"
	if s.isLeaf() {
		kind = "leaf"
	}
	out := fmt.Sprintf("node(%s) size=%d freeBytes=%d leftSibling=%d rightSibling=%d\n",
		kind, s.size, s.getFreeBytes(), s.LeftSibling(), s.RightSibling())

	if !s.isLeaf() {
		out += fmt.Sprintf("  leftPointer=%d\n", s.LeftPointer())
	}

	for i := 0; i < s.size; i++ {
		key, err := s.KeyAt(i)
		if err != nil {
			out += fmt.Sprintf("  [%d] key=<decode error: %v>\n", i, err)
			continue
		}
		if s.isLeaf() {
			value, err := s.ValueAt(i)
			if err != nil {
				out += fmt.Sprintf("  [%d] key=%v value=<decode error: %v>\n", i, key, err)
				continue
			}
			out += fmt.Sprintf("  [%d] key=%v value=%v\n", i, key, value)
			continue
		}
		m := s.MarkerAt(i)
		out += fmt.Sprintf("  [%d] key=%v child=%d marker=(block=%d, pagesUsed=%d)\n",
			i, key, s.PointerAt(i), m.BlockIndex, m.PagesUsed)
	}
	return out
}
