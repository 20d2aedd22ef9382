package lsmnode

// Version constants for the on-page format and package release,
// independent of each other: bumping EncodersVersionDefault requires
// a new registered EncoderSet, bumping these does not.
const (
	Major = 0
	Minor = 1
	Patch = 0
)

// Version returns the package's release string.
func Version() string {
	return "lsmnode 0.1.0"
}
