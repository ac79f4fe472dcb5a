//go:build !cgo

package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// The klauspost zstd encoder is designed for reuse: after a warmup it
// operates without allocations. A pool keeps warmed instances available
// across calls.
var zstdEncoderPool = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("zstd encoder init: %v", err))
		}

		return enc
	},
}

func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	enc, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(enc)

	// EncodeAll is stateless, safe with a pooled encoder.
	return enc.EncodeAll(data, nil), nil
}

// Decompress builds a decoder bounded at maxSize, so a frame claiming a huge
// content size fails inside the library before the output buffer grows past
// the bound. Decoders are per-call: the memory ceiling is a creation-time
// option and the bound varies between calls.
func (ZstdCodec) Decompress(data []byte, maxSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if maxSize <= 0 {
		return nil, ErrSizeLimit
	}

	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
		zstd.WithDecoderMaxMemory(uint64(maxSize)),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd decoder init: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		// The bound surfaces as either error depending on whether the frame
		// header trips on its window or its declared content size.
		if errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded) {
			return nil, ErrSizeLimit
		}

		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(out) > maxSize {
		return nil, ErrSizeLimit
	}

	return out, nil
}
