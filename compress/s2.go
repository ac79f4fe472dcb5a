package compress

import "github.com/klauspost/compress/s2"

// S2Codec provides S2 compression, a Snappy-compatible format tuned for
// throughput over ratio.
type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec creates an S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

func (S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress reads the block's declared decoded length before allocating, so
// an inflated frame fails without a large buffer ever existing.
func (S2Codec) Decompress(data []byte, maxSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if n < 0 || n > maxSize {
		return nil, ErrSizeLimit
	}

	return s2.Decode(make([]byte, n), data)
}
