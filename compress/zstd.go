package compress

// ZstdCodec provides Zstandard compression, the default choice when ratio
// matters more than speed. Encoded documents are highly repetitive text, so
// zstd typically shrinks them the furthest of the supported algorithms.
//
// The implementation is selected at build time: cgo builds bind the native
// libzstd through gozstd, pure-Go builds use klauspost's port.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a Zstandard codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
