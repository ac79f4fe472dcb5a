package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatScalar(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want string
	}{
		{"null", Null(), "null"},
		{"true", Bool(true), "T"},
		{"false", Bool(false), "F"},
		{"int", Int(42), "42"},
		{"negative int", Int(-7), "-7"},
		{"zero", Int(0), "0"},
		{"float", Float(3.14), "3.14"},
		{"integral float keeps point", Float(5.0), "5.0"},
		{"negative float", Float(-0.5), "-0.5"},
		{"bare text", Text("hello"), "hello"},
		{"dotted text", Text("a.b-c_d"), "a.b-c_d"},
		{"empty text", Text(""), `""`},
		{"text with comma", Text("a,b"), `"a,b"`},
		{"text with colon", Text("a:b"), `"a:b"`},
		{"text with space", Text("a b"), `"a b"`},
		{"text with quote", Text(`say "hi"`), `"say ""hi"""`},
		{"numeric-looking text", Text("42"), `"42"`},
		{"leading-zero text stays bare", Text("007"), "007"},
		{"reserved true", Text("true"), `"true"`},
		{"reserved T", Text("T"), `"T"`},
		{"reserved null alias", Text("None"), `"None"`},
		{"gas token", Text("_"), `"_"`},
		{"ditto token", Text("^"), `"^"`},
		{"run-shaped text", Text("12x"), `"12x"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatScalar(tt.v))
		})
	}
}

func TestFormatScalarNormalizesNonFinite(t *testing.T) {
	require.Equal(t, "null", FormatScalar(Float(math.NaN())))
	require.Equal(t, "null", FormatScalar(Float(math.Inf(1))))
	require.Equal(t, "null", FormatScalar(Float(math.Inf(-1))))
}

func TestParseScalarInvertsFormat(t *testing.T) {
	values := []*Value{
		Null(),
		Bool(true),
		Bool(false),
		Int(0),
		Int(42),
		Int(-123456789),
		Float(3.14),
		Float(5.0),
		Float(-0.001),
		Text(""),
		Text("hello"),
		Text("a,b"),
		Text(`quo"ted`),
		Text("42"),
		Text("true"),
		Text("null"),
		Text("_"),
		Text("^"),
	}
	for _, v := range values {
		tok := FormatScalar(v)
		got, err := ParseScalar(tok)
		require.NoError(t, err, tok)
		require.True(t, Equal(v, got), "token %q decoded to %s", tok, got)
	}
}

func TestParseScalarAliases(t *testing.T) {
	for _, tok := range []string{"null", "NULL", "None", "nil"} {
		v, err := ParseScalar(tok)
		require.NoError(t, err)
		require.True(t, v.IsNull(), tok)
	}
	for _, tok := range []string{"T", "true", "TRUE", "True"} {
		v, err := ParseScalar(tok)
		require.NoError(t, err)
		b, err := v.AsBool()
		require.NoError(t, err)
		require.True(t, b, tok)
	}
	for _, tok := range []string{"F", "false", "False"} {
		v, err := ParseScalar(tok)
		require.NoError(t, err)
		b, err := v.AsBool()
		require.NoError(t, err)
		require.False(t, b, tok)
	}
}

func TestParseScalarNumbers(t *testing.T) {
	v, err := ParseScalar("42")
	require.NoError(t, err)
	require.Equal(t, KindInt, v.Kind())

	v, err = ParseScalar("42.0")
	require.NoError(t, err)
	require.Equal(t, KindFloat, v.Kind())

	// Exponent form is accepted on decode even though never emitted.
	v, err = ParseScalar("1e3")
	require.NoError(t, err)
	f, err := v.AsFloat()
	require.NoError(t, err)
	require.Equal(t, 1000.0, f)

	// Leading zeros mark a text token, matching the encoder.
	v, err = ParseScalar("007")
	require.NoError(t, err)
	require.Equal(t, KindText, v.Kind())
}

func TestUnquoteErrors(t *testing.T) {
	for _, tok := range []string{`"`, `"abc`, `"a"b"`, `""x`} {
		_, err := ParseScalar(tok)
		require.Error(t, err, tok)
	}
}
