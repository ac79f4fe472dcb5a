package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Sum computes the xxHash64 of the given bytes.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Shape computes a signature over an ordered set of flattened leaf paths.
// Two records flatten to the same table shape iff their Shape values match.
// The separator cannot appear in a dotted path segment, so distinct path
// sets never collide by concatenation.
func Shape(paths []string) uint64 {
	d := xxhash.New()
	for _, p := range paths {
		_, _ = d.WriteString(p)
		_, _ = d.Write([]byte{0})
	}

	return d.Sum64()
}
