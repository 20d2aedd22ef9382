package lsmnode

// Comparator orders two decoded keys, returning <0, 0, >0 exactly like
// bytes.Compare. Key comparison policy is injected by the caller and
// is out of scope for this package — the node only ever calls through
// this function.
type Comparator func(a, b any) int

// IndexOf performs a binary search over the slot directory for key
// and returns a signed index: a non-negative result is the index of a
// slot whose key compares equal to key; a negative result encodes the
// insertion point that would keep keys ordered, via
// -(insertionPoint+1) (see ToInsertionPoint/ToIndex).
func (s *Session) IndexOf(key any) int {
	lo, hi := 0, s.size
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		cmp := s.cmp(s.keyAt(mid), key)
		switch {
		case cmp == 0:
			return mid
		case cmp < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return ToInsertionPoint(lo)
}

// IsInsertionPoint reports whether r encodes a miss (insertion point)
// rather than a matched slot index.
func IsInsertionPoint(r int) bool { return r < 0 }

// ToIndex decodes the insertion point carried by a miss result r.
func ToIndex(r int) int { return -r - 1 }

// ToInsertionPoint encodes insertion point i as a miss result.
func ToInsertionPoint(i int) int { return -(i + 1) }

// ToMinusOneBasedIndex returns r itself if it is a match, else the
// index of the greatest key strictly less than the search key
// (ToIndex(r)-1), clamped so that "no such key" is reported as -1.
func ToMinusOneBasedIndex(r int) int {
	if !IsInsertionPoint(r) {
		return r
	}
	i := ToIndex(r) - 1
	if i < -1 {
		return -1
	}
	return i
}

// IsPreceding reports whether the slot identified by l immediately
// precedes the slot identified by r in key order.
func IsPreceding(l, r int) bool {
	return ToMinusOneBasedIndex(r)-ToMinusOneBasedIndex(l) == 1
}

// isInsertionPoint/toIndex/toInsertionPoint/toMinusOneBasedIndex are
// unexported aliases used internally so call sites read naturally
// without the package's own exported-contract casing.
func isInsertionPoint(r int) bool    { return IsInsertionPoint(r) }
func toIndex(r int) int              { return ToIndex(r) }
func toInsertionPoint(i int) int     { return ToInsertionPoint(i) }
func toMinusOneBasedIndex(r int) int { return ToMinusOneBasedIndex(r) }
