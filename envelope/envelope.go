// Package envelope frames a complete textual document in a binary container
// for storage and transport.
//
// Layout, all integers little-endian:
//
//	offset  size  field
//	0       4     magic "ZONB"
//	4       1     envelope version
//	5       1     compression type
//	6       8     uncompressed payload size
//	14      8     xxHash64 checksum of the uncompressed payload
//	22      -     compressed payload
//
// The declared size is validated against the document limit before the
// payload is decompressed, so a maliciously inflated header fails fast
// instead of forcing a large allocation. This is a framing of the whole
// document, not a streaming format.
package envelope

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/arloliu/zon/compress"
	"github.com/arloliu/zon/errs"
	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/internal/hash"
	"github.com/arloliu/zon/internal/pool"
)

// Version is the binary envelope layout version.
const Version = 1

const (
	magicLen   = 4
	headerSize = magicLen + 1 + 1 + 8 + 8
)

var magic = [magicLen]byte{'Z', 'O', 'N', 'B'}

// Seal wraps an encoded document in a binary envelope using the given
// compression type.
func Seal(doc string, ct format.CompressionType) ([]byte, error) {
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownCompression, ct)
	}

	payload := []byte(doc)
	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("envelope compression: %w", err)
	}

	buf := pool.GetDocBuffer()
	defer pool.PutDocBuffer(buf)

	_, _ = buf.Write(magic[:])
	_ = buf.WriteByte(Version)
	_ = buf.WriteByte(byte(ct))

	var u64 [8]byte
	binary.LittleEndian.PutUint64(u64[:], uint64(len(payload)))
	_, _ = buf.Write(u64[:])
	binary.LittleEndian.PutUint64(u64[:], hash.Sum(payload))
	_, _ = buf.Write(u64[:])
	_, _ = buf.Write(compressed)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// Open unwraps a binary envelope and returns the original document text.
// The declared payload size is bounded by limits.MaxDocumentSize before
// decompression; a checksum mismatch means the payload was corrupted.
func Open(data []byte, limits format.Limits) (string, error) {
	if len(data) < headerSize {
		return "", errs.ErrBadEnvelope
	}
	if [magicLen]byte(data[:magicLen]) != magic {
		return "", errs.ErrBadEnvelope
	}
	if data[magicLen] != Version {
		return "", fmt.Errorf("%w: unsupported version %d", errs.ErrBadEnvelope, data[magicLen])
	}

	ct := format.CompressionType(data[magicLen+1])
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return "", fmt.Errorf("%w: 0x%02x", errs.ErrUnknownCompression, data[magicLen+1])
	}

	declared := binary.LittleEndian.Uint64(data[6:14])
	if declared > uint64(limits.MaxDocumentSize) {
		return "", errs.ErrDocumentSizeExceeded
	}
	checksum := binary.LittleEndian.Uint64(data[14:22])

	// The declared size caps the decompression itself, so a payload whose
	// real size contradicts its header never materializes in memory.
	payload, err := codec.Decompress(data[headerSize:], int(declared))
	if err != nil {
		if errors.Is(err, compress.ErrSizeLimit) {
			return "", fmt.Errorf("%w: payload exceeds declared size", errs.ErrBadEnvelope)
		}

		return "", fmt.Errorf("envelope decompression: %w", err)
	}
	if uint64(len(payload)) != declared {
		return "", errs.ErrBadEnvelope
	}
	if hash.Sum(payload) != checksum {
		return "", errs.ErrChecksumMismatch
	}

	return string(payload), nil
}
