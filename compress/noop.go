package compress

// NoOpCodec passes the payload through untouched. It keeps an enveloped
// document inspectable with plain tools and serves as the baseline in
// compression comparisons.
//
// Both methods return the input slice as-is; callers must not modify the
// input afterwards if they use the result.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec creates a pass-through codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

func (NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (NoOpCodec) Decompress(data []byte, maxSize int) ([]byte, error) {
	if len(data) > maxSize {
		return nil, ErrSizeLimit
	}

	return data, nil
}
