package lsmnode

// recordLayout is the once-per-session-computed descriptor of how a
// record slot is shaped under this node's encoders. It replaces the
// scattered runtime branching spec's source does on "is this encoder
// bound" with a small set of decisions made once and reused for every
// slot in the session.
type recordLayout struct {
	keysInlined   bool
	valuesInlined bool // leaf only; meaningless for internal nodes

	keyWidth   int // bytes occupied by the key part of a slot
	valueWidth int // bytes occupied by the value part of a slot (leaf) or child+marker (internal)

	pointerWidth  int // PagePointer.MaximumSize()
	positionWidth int // PagePosition.MaximumSize()
	markerSize    int // pointerWidth-shaped blockIndex + positionWidth pagesUsed

	recordSize int // keyWidth + valueWidth
}

func newRecordLayout(enc EncoderSet, leaf bool) recordLayout {
	assert(enc.PagePointer.IsOfBoundSize(), "page-index encoder must be of bound size")
	assert(enc.PagePosition.IsOfBoundSize(), "page-position encoder must be of bound size")

	l := recordLayout{
		pointerWidth:  enc.PagePointer.MaximumSize(),
		positionWidth: enc.PagePosition.MaximumSize(),
	}
	l.markerSize = l.pointerWidth + l.positionWidth

	l.keysInlined = enc.Key.IsOfBoundSize() && enc.Key.MaximumSize() <= InlineKeysThreshold
	if l.keysInlined {
		l.keyWidth = enc.Key.MaximumSize()
	} else {
		l.keyWidth = l.positionWidth
	}

	if leaf {
		l.valuesInlined = enc.Value.IsOfBoundSize() && enc.Value.MaximumSize() <= InlineValuesThreshold
		if l.valuesInlined {
			l.valueWidth = enc.Value.MaximumSize()
		} else {
			l.valueWidth = l.positionWidth
		}
	} else {
		l.valueWidth = l.pointerWidth + l.markerSize
	}

	l.recordSize = l.keyWidth + l.valueWidth
	return l
}

// fullEntrySize is the caller-facing precondition check of spec §4.4:
// the total bytes a new record of the given key/value size would add
// to the page, used by deltaFits and checkEntrySize before an insert
// is attempted.
func (l recordLayout) fullEntrySize(leaf bool, keySize, valueSize int) int {
	size := keySize
	if !l.keysInlined {
		size += l.positionWidth
	}
	if leaf {
		size += valueSize
		if !l.valuesInlined {
			size += l.positionWidth
		}
	} else {
		size += valueSize + l.markerSize
	}
	return size
}

// maxEntrySize is MAX_ENTRY_SIZE from spec §3 invariant 7.
func maxEntrySize(pageBytes int) int {
	return (pageBytes - recordsOffset) / 2
}
