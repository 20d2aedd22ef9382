package lsmnode

import (
	"fmt"
	"sync"
)

// Encoder reads and writes one typed value to/from page bytes. The
// node never interprets the bytes it stores through an Encoder; it
// only needs to know how large they are and, for out-of-line storage,
// how to re-derive that size from a raw slice when decoding.
type Encoder interface {
	// Encode appends the on-page representation of v to dst and
	// returns the extended slice.
	Encode(dst []byte, v any) ([]byte, error)
	// Decode reads one value starting at b[0] and returns it together
	// with the number of bytes consumed.
	Decode(b []byte) (v any, n int, err error)
	// SizeOf returns the on-page encoded size of v without encoding it.
	SizeOf(v any) int
	// MaximumSize returns the largest possible encoded size. For a
	// bound encoder this equals every SizeOf result.
	MaximumSize() int
	// IsOfBoundSize reports whether every value encodes to exactly
	// MaximumSize bytes.
	IsOfBoundSize() bool
}

// EncoderSet is the full set of codecs a Node needs: one for keys, one
// for leaf values, and two fixed-width codecs for the internal-node
// child pointer / marker fields. PagePointer and PagePosition are
// always bound (IsOfBoundSize() == true) — the layout math in
// layout.go depends on this.
type EncoderSet struct {
	Key         Encoder
	Value       Encoder
	PagePointer Encoder
	PagePosition Encoder
}

var (
	encoderRegistryMu sync.RWMutex
	encoderRegistry   = map[uint8]EncoderSet{}
)

// RegisterEncoderVersion binds an EncoderSet to an on-page encoders
// version (0..15, the 4-bit flags field). Registering the same
// version twice replaces the previous binding; this is expected at
// process start-up only, never from a hot path.
func RegisterEncoderVersion(version uint8, set EncoderSet) {
	assert(version <= encodersVersionMask, "encoders version out of range")
	encoderRegistryMu.Lock()
	defer encoderRegistryMu.Unlock()
	encoderRegistry[version] = set
}

// EncodersForVersion returns the EncoderSet bound to version, or
// ErrVersionMismatch if nothing was registered for it.
func EncodersForVersion(version uint8) (EncoderSet, error) {
	encoderRegistryMu.RLock()
	defer encoderRegistryMu.RUnlock()
	set, ok := encoderRegistry[version]
	if !ok {
		return EncoderSet{}, wrapError(ErrVersionMismatch, fmt.Errorf("version %d", version))
	}
	return set, nil
}
