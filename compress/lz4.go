package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool reuses lz4.Compressor instances, which keep internal
// state worth preserving between calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec provides LZ4 block compression, the fastest of the supported
// algorithms at the lowest ratio.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec creates an LZ4 block codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress grows its output buffer adaptively: LZ4 blocks do not carry the
// decompressed size, so it starts at 4x the input and doubles on short-buffer
// errors. The buffer never exceeds maxSize; a block that still does not fit
// is over the caller's bound, not a larger allocation.
func (LZ4Codec) Decompress(data []byte, maxSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if maxSize <= 0 {
		return nil, ErrSizeLimit
	}

	bufSize := len(data) * 4
	if bufSize > maxSize {
		bufSize = maxSize
	}

	for {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
				if bufSize >= maxSize {
					return nil, ErrSizeLimit
				}
				bufSize *= 2
				if bufSize > maxSize {
					bufSize = maxSize
				}

				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}
}
