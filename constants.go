package lsmnode

// Layout constants for the node header and record area. These mirror
// the teacher's page-header/node-header offset tables but are adapted
// to the LSM node's field set (free-data-position, flags, size,
// tree-size, left-pointer, left marker, siblings) instead of MDBX's
// page header.
const (
	// offFreeDataPosition is the byte offset of the 4-byte free-data-position field.
	offFreeDataPosition = 0
	// offFlags is the byte offset of the 1-byte flags field.
	offFlags = 4
	// offSize is the byte offset of the 4-byte size field.
	offSize = 5
	// offTreeSize is the byte offset of the 8-byte tree-size field.
	offTreeSize = 9
	// offLeftPointer is the byte offset of the 8-byte left-pointer field.
	offLeftPointer = 17
	// offLeftMarkerBlock is the byte offset of the 8-byte left-marker-block field.
	offLeftMarkerBlock = 25
	// offLeftMarkerUsage is the byte offset of the 4-byte left-marker-usage field.
	offLeftMarkerUsage = 33
	// offLeftSibling is the byte offset of the 8-byte left-sibling field.
	offLeftSibling = 37
	// offRightSibling is the byte offset of the 8-byte right-sibling field.
	offRightSibling = 45

	// recordsOffset is the first byte of the slot directory, right after
	// the fixed header fields above (padded to an 8-byte boundary for
	// aligned record slots). The header itself starts at offset 0: no
	// base-class bytes precede it.
	recordsOffset = 56
)

// Flag byte bit layout, see spec.md §6.
const (
	flagLeaf          uint8 = 1 << 0
	flagContinuedFrom uint8 = 1 << 1
	flagContinuedTo   uint8 = 1 << 2
	flagExtension     uint8 = 1 << 7

	// encodersVersionShift/Mask extract the 4-bit encoders-version field
	// from bits 3..6 of the flags byte.
	encodersVersionShift = 3
	encodersVersionMask  = 0x0F
)

// Default tunables for version 0 of the on-page format, fixed by the
// outer tree per spec.md §6. The record layout (layout.go) reads the
// two inline thresholds directly from these package constants, so the
// same thresholds apply to every registered encoders version; an
// EncoderSet carries no thresholds of its own.
const (
	// InlineKeysThreshold is the maximum bound key size still stored inline in a slot.
	InlineKeysThreshold = 8
	// InlineValuesThreshold is the maximum bound value size still stored inline in a slot.
	InlineValuesThreshold = 8
	// EncodersVersionDefault is the version 0 encoder set's identifier.
	EncodersVersionDefault = 0

	// cloneBufferSize is the chunk size used by cloneFrom's bulk copy loop.
	cloneBufferSize = 4096
)
