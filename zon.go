// Package zon implements a lossless, human-readable serialization codec for
// tree-shaped data, optimized for minimal symbol count.
//
// Uniform record sequences flatten into column-oriented tables; every column
// runs an entropy tournament that picks the cheapest of several encoding
// strategies (explicit, enum, delta, arithmetic range, textual pattern,
// fixed-point multiplier, repeats) while proving losslessness by re-decoding
// its own output. The row stream periodically re-synchronizes through fully
// explicit anchor rows, so a reader can re-ground its state without prior
// history.
//
// Encoding:
//
//	doc, err := zon.Encode(v)
//	doc, err := zon.Encode(v, codec.WithAnchorInterval(10))
//
// Decoding is strict by default: declared-vs-actual row and field counts
// must match. Lenient mode truncates or null-fills instead; the security
// ceilings on document size, line length, sequence length, mapping keys and
// nesting depth stay fatal in both modes:
//
//	v, err := zon.Decode(doc)
//	v, err := zon.Decode(doc, codec.WithLenientMode())
//
// EncodeBinary and DecodeBinary wrap the textual document in a checksummed,
// optionally compressed binary envelope for storage and transport.
package zon

import (
	"github.com/arloliu/zon/codec"
	"github.com/arloliu/zon/envelope"
	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/value"
)

// Encode serializes a value tree into the textual document form.
//
// The input must be a tree; a container reachable from itself fails with a
// circular reference error.
func Encode(v *value.Value, opts ...codec.EncoderOption) (string, error) {
	enc, err := codec.NewEncoder(opts...)
	if err != nil {
		return "", err
	}

	return enc.Encode(v)
}

// Decode parses a textual document back into a value tree.
func Decode(text string, opts ...codec.DecoderOption) (*value.Value, error) {
	dec, err := codec.NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return dec.Decode(text)
}

// EncodeBinary serializes a value tree and seals it in a binary envelope
// using the given compression type.
func EncodeBinary(v *value.Value, ct format.CompressionType, opts ...codec.EncoderOption) ([]byte, error) {
	doc, err := Encode(v, opts...)
	if err != nil {
		return nil, err
	}

	return envelope.Seal(doc, ct)
}

// DecodeBinary opens a binary envelope and decodes the document inside. The
// compression type is read from the envelope header; the declared payload
// size is bounded by the decoder's document limit before decompression.
func DecodeBinary(data []byte, opts ...codec.DecoderOption) (*value.Value, error) {
	cfg, err := codec.NewDecoderConfig(opts...)
	if err != nil {
		return nil, err
	}

	doc, err := envelope.Open(data, cfg.Limits)
	if err != nil {
		return nil, err
	}

	return Decode(doc, opts...)
}
