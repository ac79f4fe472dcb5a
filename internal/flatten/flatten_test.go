package flatten

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zon/internal/collision"
	"github.com/arloliu/zon/value"
)

func TestFlattenLeafClassification(t *testing.T) {
	m := value.Mapping(
		value.Field("scalar", value.Int(1)),
		value.Field("nested", value.Mapping(
			value.Field("inner", value.Text("x")),
		)),
		value.Field("list", value.Sequence(value.Int(1), value.Int(2))),
		value.Field("empty", value.Mapping()),
	)

	f := Flatten(m, nil)
	require.Equal(t, []string{"scalar", "nested.inner", "list", "empty"}, f.Paths)
	require.Equal(t, value.KindSequence, f.Leaves["list"].Kind())
	require.Equal(t, value.KindMapping, f.Leaves["empty"].Kind())
}

func TestFlattenUnflattenInverse(t *testing.T) {
	m := value.Mapping(
		value.Field("a", value.Mapping(
			value.Field("b", value.Mapping(
				value.Field("c", value.Int(7)),
			)),
			value.Field("d", value.Bool(true)),
		)),
		value.Field("e", value.Text("leaf")),
	)

	f := Flatten(m, nil)
	got, err := Unflatten(f.Leaves, f.Paths, 100, nil)
	require.NoError(t, err)
	require.True(t, value.Equal(m, got))
}

func TestFlattenNestedWinsOverLiteralDottedKey(t *testing.T) {
	// Both entries collapse to the path "a.b"; the nested descent wins and
	// the literal flat key is recorded as dropped.
	m := value.Mapping(
		value.Field("a.b", value.Int(1)),
		value.Field("a", value.Mapping(
			value.Field("b", value.Int(2)),
		)),
	)

	tracker := collision.NewTracker()
	f := Flatten(m, tracker)

	n, err := f.Leaves["a.b"].AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.True(t, tracker.HasCollision())
	require.Equal(t, []string{"a.b"}, tracker.Dropped())
}

func TestUnflattenDropsPathThroughScalar(t *testing.T) {
	leaves := map[string]*value.Value{
		"a":   value.Int(1),
		"a.b": value.Int(2),
	}
	tracker := collision.NewTracker()
	got, err := Unflatten(leaves, []string{"a", "a.b"}, 100, tracker)
	require.NoError(t, err)

	// "a" already holds a scalar, so "a.b" cannot descend and is dropped.
	n, err := got.Get("a").AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	require.Equal(t, []string{"a.b"}, tracker.Dropped())
}

func TestUnflattenKeepsMappingOverLaterLeaf(t *testing.T) {
	leaves := map[string]*value.Value{
		"a.b": value.Int(2),
		"a":   value.Int(1),
	}
	tracker := collision.NewTracker()
	got, err := Unflatten(leaves, []string{"a.b", "a"}, 100, tracker)
	require.NoError(t, err)

	// "a" is already the mapping built for "a.b"; the later scalar leaf is
	// dropped instead of overwriting the nested value.
	n, err := got.Get("a").Get("b").AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.Equal(t, []string{"a"}, tracker.Dropped())
}

func TestUnflattenEnforcesDepth(t *testing.T) {
	leaves := map[string]*value.Value{"a.b.c.d": value.Int(1)}
	_, err := Unflatten(leaves, []string{"a.b.c.d"}, 3, nil)
	require.Error(t, err)
}
