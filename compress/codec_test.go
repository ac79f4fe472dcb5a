package compress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zon/format"
)

func sampleDoc() []byte {
	// Repetitive line-oriented text, the shape every codec sees in practice.
	var b strings.Builder
	b.WriteString("#Z:1.1\n")
	b.WriteString("users:@(40)!50:id:R(1,1),name:S,status:E(active,inactive)\n")
	for i := 0; i < 40; i++ {
		b.WriteString("_,alice,0\n")
	}

	return []byte(b.String())
}

func TestCodecRoundTrip(t *testing.T) {
	data := sampleDoc()

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			c, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := c.Compress(data)
			require.NoError(t, err)

			out, err := c.Decompress(compressed, len(data))
			require.NoError(t, err)
			require.True(t, bytes.Equal(data, out))
		})
	}
}

func TestCodecShrinksRepetitiveText(t *testing.T) {
	data := sampleDoc()

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		c, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := c.Compress(data)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(data), ct.String())
	}
}

func TestCodecEmptyInput(t *testing.T) {
	for ct := range builtinCodecs {
		c, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := c.Compress(nil)
		require.NoError(t, err)

		out, err := c.Decompress(compressed, 16)
		require.NoError(t, err)
		require.Empty(t, out)
	}
}

func TestGetCodecUnknown(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0xFF))
	require.Error(t, err)
}

func TestDecompressCorruptedInput(t *testing.T) {
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2} {
		c, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = c.Decompress([]byte("definitely not a compressed frame"), 1<<20)
		require.Error(t, err, ct.String())
	}
}

func TestDecompressEnforcesSizeLimit(t *testing.T) {
	data := sampleDoc()

	for ct := range builtinCodecs {
		c, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := c.Compress(data)
		require.NoError(t, err)

		_, err = c.Decompress(compressed, 8)
		require.Error(t, err, ct.String())

		out, err := c.Decompress(compressed, len(data))
		require.NoError(t, err, ct.String())
		require.True(t, bytes.Equal(data, out), ct.String())
	}
}
