package zon

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zon/codec"
	"github.com/arloliu/zon/errs"
	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/value"
)

func TestRoundTripFromJSON(t *testing.T) {
	inputs := []string{
		`{}`,
		`[]`,
		`42`,
		`"plain text"`,
		`{"name":"Alice","age":30,"active":true,"score":null}`,
		`{"server":{"host":"db-01","port":5432,"tls":{"enabled":true}}}`,
		`{"tags":["a","b","c"],"weights":[0.5,1.25,2.0]}`,
		`[{"id":1,"state":"on"},{"id":2,"state":"on"},{"id":3,"state":"off"}]`,
		`{"users":[{"id":10,"name":"Ann"},{"id":20,"name":"Ben"}],"total":2}`,
		`{"text":"commas, colons: and \"quotes\""}`,
		`[1,"two",3.5,null,true]`,
	}

	for _, in := range inputs {
		v, err := value.FromJSON([]byte(in))
		require.NoError(t, err, in)

		doc, err := Encode(v)
		require.NoError(t, err, in)

		got, err := Decode(doc)
		require.NoError(t, err, in)
		require.True(t, value.Equal(v, got), "input %s\ndocument:\n%s", in, doc)
	}
}

func TestRoundTripLargeUniformTable(t *testing.T) {
	recs := value.Sequence()
	for i := 0; i < 500; i++ {
		recs.Append(value.Mapping(
			value.Field("seq", value.Int(int64(i*7))),
			value.Field("sensor", value.Text(fmt.Sprintf("probe-%03d", i%4))),
			value.Field("temp", value.Float(float64(2000+i)/100)),
			value.Field("ok", value.Bool(i%17 != 0)),
		))
	}

	doc, err := Encode(recs)
	require.NoError(t, err)

	got, err := Decode(doc)
	require.NoError(t, err)
	require.True(t, value.Equal(recs, got))

	// The column stream must be far smaller than one literal per cell.
	require.Less(t, len(doc), 500*20)
}

func TestRoundTripRandomDocuments(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 60; i++ {
		v := randomValue(rng, 0)

		doc, err := Encode(v)
		require.NoError(t, err)

		got, err := Decode(doc)
		require.NoError(t, err, "document:\n%s", doc)
		require.True(t, value.Equal(v, got), "document:\n%s", doc)
	}
}

// randomValue builds a tree that survives the codec's canonicalization:
// record lists share one key set, since column union null-fills divergent
// records, and keys avoid dots, since dotted keys merge into nested paths.
func randomValue(rng *rand.Rand, depth int) *value.Value {
	if depth >= 3 {
		return randomScalar(rng)
	}

	switch rng.Intn(6) {
	case 0:
		m := value.Mapping()
		for i, n := 0, rng.Intn(5); i < n; i++ {
			m.Set(randomKey(rng, i), randomValue(rng, depth+1))
		}

		return m
	case 1:
		seq := value.Sequence()
		for i, n := 0, rng.Intn(5); i < n; i++ {
			seq.Append(randomScalar(rng))
		}

		return seq
	case 2:
		keys := make([]string, 1+rng.Intn(3))
		for i := range keys {
			keys[i] = randomKey(rng, i)
		}
		seq := value.Sequence()
		for i, n := 0, 2+rng.Intn(6); i < n; i++ {
			rec := value.Mapping()
			for _, k := range keys {
				rec.Set(k, randomScalar(rng))
			}
			seq.Append(rec)
		}

		return seq
	default:
		return randomScalar(rng)
	}
}

func randomScalar(rng *rand.Rand) *value.Value {
	switch rng.Intn(6) {
	case 0:
		return value.Null()
	case 1:
		return value.Bool(rng.Intn(2) == 0)
	case 2:
		return value.Int(rng.Int63n(2000) - 1000)
	case 3:
		return value.Float(float64(rng.Int63n(100000)) / 100)
	case 4:
		return value.Text(randomText(rng))
	default:
		return value.Text(strings.Repeat("ab,:\"^_", rng.Intn(3)+1))
	}
}

func randomKey(rng *rand.Rand, i int) string {
	return fmt.Sprintf("k%d%c", i, 'a'+rune(rng.Intn(26)))
}

func randomText(rng *rand.Rand) string {
	const alphabet = "abcdefghij KLMNOP,:123"
	b := make([]byte, rng.Intn(12))
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}

	return string(b)
}

func TestEncoderOptionsPropagate(t *testing.T) {
	recs := value.Sequence()
	for i := 0; i < 12; i++ {
		recs.Append(value.Mapping(value.Field("n", value.Int(int64(i)))))
	}

	doc, err := Encode(recs, codec.WithAnchorInterval(5))
	require.NoError(t, err)
	require.Contains(t, doc, "!5:")

	got, err := Decode(doc)
	require.NoError(t, err)
	require.True(t, value.Equal(recs, got))
}

func TestDecodeLenient(t *testing.T) {
	doc := "#Z:1.1\nitems:@(5)!50:n:S\n1\n2\n"

	_, err := Decode(doc)
	var de *errs.DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, errs.CodeRowCountMismatch, de.Code)

	v, err := Decode(doc, codec.WithLenientMode())
	require.NoError(t, err)
	require.Equal(t, 2, v.Get("items").Len())
}

func TestBinaryRoundTrip(t *testing.T) {
	v := value.Mapping(
		value.Field("service", value.Text("ingest")),
		value.Field("events", value.Sequence(
			value.Mapping(value.Field("id", value.Int(1)), value.Field("kind", value.Text("start"))),
			value.Mapping(value.Field("id", value.Int(2)), value.Field("kind", value.Text("start"))),
			value.Mapping(value.Field("id", value.Int(3)), value.Field("kind", value.Text("stop"))),
		)),
	)

	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
	for _, ct := range types {
		t.Run(ct.String(), func(t *testing.T) {
			data, err := EncodeBinary(v, ct)
			require.NoError(t, err)

			got, err := DecodeBinary(data)
			require.NoError(t, err)
			require.True(t, value.Equal(v, got))
		})
	}
}

func TestBinaryRejectsCorruption(t *testing.T) {
	data, err := EncodeBinary(value.Mapping(value.Field("k", value.Text("v"))), format.CompressionS2)
	require.NoError(t, err)

	data[len(data)-1] ^= 0xFF
	_, err = DecodeBinary(data)
	require.Error(t, err)
}

func TestBinaryHonorsDocumentLimit(t *testing.T) {
	recs := value.Sequence()
	for i := 0; i < 100; i++ {
		recs.Append(value.Mapping(value.Field("n", value.Int(int64(i)))))
	}
	data, err := EncodeBinary(recs, format.CompressionZstd)
	require.NoError(t, err)

	limits := format.DefaultLimits()
	limits.MaxDocumentSize = 16
	_, err = DecodeBinary(data, codec.WithLimits(limits))
	require.ErrorIs(t, err, errs.ErrDocumentSizeExceeded)
}
