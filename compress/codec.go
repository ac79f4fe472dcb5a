package compress

import (
	"errors"
	"fmt"

	"github.com/arloliu/zon/format"
)

// ErrSizeLimit is returned when a payload would decompress beyond the
// caller's size bound.
var ErrSizeLimit = errors.New("decompressed size exceeds limit")

// Codec compresses and decompresses one envelope payload.
//
// Implementations must be safe for concurrent use; the returned slices are
// owned by the caller and the input is never modified.
type Codec interface {
	// Compress compresses data into a newly allocated slice.
	Compress(data []byte) ([]byte, error)

	// Decompress inverts Compress. maxSize bounds the decompressed output:
	// the payload size is attacker-controlled, so no implementation may
	// allocate past the bound before failing with ErrSizeLimit. A corrupted
	// input or one produced by a different algorithm is an error.
	Decompress(data []byte, maxSize int) ([]byte, error)
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec returns the built-in Codec for the compression type.
func GetCodec(ct format.CompressionType) (Codec, error) {
	if c, ok := builtinCodecs[ct]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", ct)
}
