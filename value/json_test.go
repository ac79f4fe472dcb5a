package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromJSONPreservesNumberKinds(t *testing.T) {
	v, err := FromJSON([]byte(`{"count":3,"ratio":0.5,"whole":2.0}`))
	require.NoError(t, err)

	require.Equal(t, KindInt, v.Get("count").Kind())
	require.Equal(t, KindFloat, v.Get("ratio").Kind())
	require.Equal(t, KindFloat, v.Get("whole").Kind())
}

func TestFromJSONPreservesKeyOrder(t *testing.T) {
	v, err := FromJSON([]byte(`{"z":1,"a":2,"m":3}`))
	require.NoError(t, err)

	entries, err := v.AsMapping()
	require.NoError(t, err)
	require.Equal(t, "z", entries[0].Key)
	require.Equal(t, "a", entries[1].Key)
	require.Equal(t, "m", entries[2].Key)
}

func TestJSONRoundTrip(t *testing.T) {
	inputs := []string{
		`{"name":"Alice","active":true,"score":null}`,
		`[1,2,3]`,
		`{"nested":{"deep":[{"k":"v"}]}}`,
		`"just text"`,
		`42`,
	}
	for _, in := range inputs {
		v, err := FromJSON([]byte(in))
		require.NoError(t, err, in)

		out, err := ToJSON(v)
		require.NoError(t, err, in)

		back, err := FromJSON(out)
		require.NoError(t, err, in)
		require.True(t, Equal(v, back), in)
	}
}

func TestFromJSONRejectsMalformed(t *testing.T) {
	for _, in := range []string{`{`, `{"a":}`, `[1,`, ``} {
		_, err := FromJSON([]byte(in))
		require.Error(t, err, in)
	}
}
