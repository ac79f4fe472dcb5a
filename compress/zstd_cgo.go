//go:build cgo

package compress

import (
	"bytes"
	"io"

	"github.com/valyala/gozstd"
)

func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress streams through the frame with a hard read limit instead of
// trusting its declared content size, so an inflated frame cannot force an
// allocation past maxSize.
func (ZstdCodec) Decompress(data []byte, maxSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if maxSize < 0 {
		return nil, ErrSizeLimit
	}

	zr := gozstd.NewReader(bytes.NewReader(data))
	defer zr.Release()

	out, err := io.ReadAll(io.LimitReader(zr, int64(maxSize)+1))
	if err != nil {
		return nil, err
	}
	if len(out) > maxSize {
		return nil, ErrSizeLimit
	}

	return out, nil
}
