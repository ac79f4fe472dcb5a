package envelope

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zon/format"
)

const sampleDoc = "#Z:1.1\nname:Alice\nscore:42\n"

func TestSealOpenRoundTrip(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			sealed, err := Seal(sampleDoc, ct)
			require.NoError(t, err)
			require.Equal(t, byte('Z'), sealed[0])

			doc, err := Open(sealed, format.DefaultLimits())
			require.NoError(t, err)
			require.Equal(t, sampleDoc, doc)
		})
	}
}

func TestSealUnknownCompression(t *testing.T) {
	_, err := Seal(sampleDoc, format.CompressionType(0xEE))
	require.Error(t, err)
}

func TestOpenRejectsTruncated(t *testing.T) {
	_, err := Open([]byte("ZONB"), format.DefaultLimits())
	require.ErrorContains(t, err, "malformed")
}

func TestOpenRejectsBadMagic(t *testing.T) {
	sealed, err := Seal(sampleDoc, format.CompressionNone)
	require.NoError(t, err)

	sealed[0] = 'X'
	_, err = Open(sealed, format.DefaultLimits())
	require.ErrorContains(t, err, "malformed")
}

func TestOpenRejectsUnknownVersion(t *testing.T) {
	sealed, err := Seal(sampleDoc, format.CompressionNone)
	require.NoError(t, err)

	sealed[4] = 99
	_, err = Open(sealed, format.DefaultLimits())
	require.ErrorContains(t, err, "unsupported version")
}

func TestOpenRejectsUnknownCompression(t *testing.T) {
	sealed, err := Seal(sampleDoc, format.CompressionNone)
	require.NoError(t, err)

	sealed[5] = 0xEE
	_, err = Open(sealed, format.DefaultLimits())
	require.ErrorContains(t, err, "unknown compression")
}

func TestOpenRejectsInflatedDeclaredSize(t *testing.T) {
	sealed, err := Seal(sampleDoc, format.CompressionNone)
	require.NoError(t, err)

	// Declare a payload far past the document ceiling; the size check must
	// fire before any decompression happens.
	binary.LittleEndian.PutUint64(sealed[6:14], 1<<40)
	_, err = Open(sealed, format.DefaultLimits())
	require.ErrorContains(t, err, "document size limit")
}

func TestOpenBoundsDecompressionByDeclaredSize(t *testing.T) {
	big := make([]byte, 0, 1<<20)
	for len(big) < 1<<20 {
		big = append(big, "row,row,row,row\n"...)
	}

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			sealed, err := Seal(string(big), ct)
			require.NoError(t, err)

			// Shrink the declared size below the real payload. The declared
			// value bounds decompression, so the full megabyte must never be
			// produced and the open fails as malformed.
			binary.LittleEndian.PutUint64(sealed[6:14], 10)
			_, err = Open(sealed, format.DefaultLimits())
			require.ErrorContains(t, err, "malformed")
		})
	}
}

func TestOpenRejectsCorruptedPayload(t *testing.T) {
	sealed, err := Seal(sampleDoc, format.CompressionNone)
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xFF
	_, err = Open(sealed, format.DefaultLimits())
	require.ErrorContains(t, err, "checksum")
}
