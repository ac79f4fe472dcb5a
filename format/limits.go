package format

// Limits holds the security ceilings enforced during decoding.
//
// The decoder checks these incrementally, before materializing anything sized
// by untrusted input: a declared row count above MaxSequenceLen fails before
// any row is allocated, and an oversized line fails while scanning. Limits is
// passed explicitly into every decode call rather than living in package
// state, so tests can tighten individual ceilings without interference.
type Limits struct {
	// MaxDocumentSize caps the total input size in bytes.
	MaxDocumentSize int

	// MaxLineLength caps the length of a single line in bytes.
	MaxLineLength int

	// MaxSequenceLen caps element counts: declared table row counts and
	// inline list lengths.
	MaxSequenceLen int

	// MaxMappingKeys caps key counts: declared table columns plus sparse
	// extras, and inline object keys.
	MaxMappingKeys int

	// MaxNestingDepth caps the depth of inline literals and of dotted paths
	// during unflattening.
	MaxNestingDepth int
}

// DefaultLimits returns the documented production ceilings.
func DefaultLimits() Limits {
	return Limits{
		MaxDocumentSize: 100 * 1024 * 1024, // 100 MiB
		MaxLineLength:   1024 * 1024,       // 1 MiB
		MaxSequenceLen:  1_000_000,
		MaxMappingKeys:  100_000,
		MaxNestingDepth: 100,
	}
}
