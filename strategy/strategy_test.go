package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/value"
)

func ints(ns ...int64) []*value.Value {
	vs := make([]*value.Value, len(ns))
	for i, n := range ns {
		vs[i] = value.Int(n)
	}

	return vs
}

func floats(fs ...float64) []*value.Value {
	vs := make([]*value.Value, len(fs))
	for i, f := range fs {
		vs[i] = value.Float(f)
	}

	return vs
}

func texts(ss ...string) []*value.Value {
	vs := make([]*value.Value, len(ss))
	for i, s := range ss {
		vs[i] = value.Text(s)
	}

	return vs
}

func explicitTokens(vs []*value.Value) []string {
	toks := make([]string, len(vs))
	for i, v := range vs {
		toks[i] = value.FormatScalar(v)
	}

	return toks
}

func resolveScalar(tok string) (*value.Value, error) {
	return value.ParseScalar(tok)
}

func TestTryRange(t *testing.T) {
	r, ok := TryRange(ints(1, 2, 3, 4, 5))
	require.True(t, ok)
	require.Equal(t, "R(1,1)", r.Spec())

	r, ok = TryRange(ints(100, 90, 80, 70))
	require.True(t, ok)
	require.Equal(t, "R(100,-10)", r.Spec())

	_, ok = TryRange(ints(1, 2, 4))
	require.False(t, ok)

	// Constant columns belong to Liquid.
	_, ok = TryRange(ints(7, 7, 7))
	require.False(t, ok)

	_, ok = TryRange(ints(42))
	require.False(t, ok)

	_, ok = TryRange(floats(1, 2, 3))
	require.False(t, ok)
}

func TestTryPattern(t *testing.T) {
	p, ok := TryPattern(texts("LOG-0001", "LOG-0002", "LOG-0003"))
	require.True(t, ok)
	require.Equal(t, `P("LOG-{4}",1,1)`, p.Spec())

	v, err := p.Reconstruct(2, format.GasToken, nil, resolveScalar)
	require.NoError(t, err)
	require.Equal(t, "LOG-0003", v.String())

	p, ok = TryPattern(texts("item9", "item10", "item11"))
	require.True(t, ok)
	require.Equal(t, `P("item{1}",9,1)`, p.Spec())

	_, ok = TryPattern(texts("alpha", "beta"))
	require.False(t, ok)

	_, ok = TryPattern(texts("a1", "a3"))
	require.True(t, ok)

	_, ok = TryPattern(texts("a1", "b2"))
	require.False(t, ok)
}

func TestTryMultiplier(t *testing.T) {
	m, ok := TryMultiplier(floats(12.5, 13.75, 14.0))
	require.True(t, ok)
	require.Equal(t, "M(100)", m.Spec())
	require.Equal(t, "1250", m.Token(0, value.Float(12.5), nil, "12.5"))

	v, err := m.Reconstruct(0, "1375", nil, resolveScalar)
	require.NoError(t, err)
	f, err := v.AsFloat()
	require.NoError(t, err)
	require.Equal(t, 13.75, f)

	// Third decimal place does not scale exactly.
	_, ok = TryMultiplier(floats(0.125))
	require.False(t, ok)

	_, ok = TryMultiplier(ints(1, 2))
	require.False(t, ok)
}

func TestTryEnum(t *testing.T) {
	e, ok := TryEnum(texts("red", "green", "red", "red", "green"))
	require.True(t, ok)
	require.Equal(t, "E(red,green)", e.Spec())
	require.Equal(t, "0", e.Token(0, value.Text("red"), nil, "red"))
	require.Equal(t, "1", e.Token(1, value.Text("green"), nil, "green"))

	v, err := e.Reconstruct(3, "1", nil, resolveScalar)
	require.NoError(t, err)
	require.Equal(t, "green", v.String())

	_, err = e.Reconstruct(0, "5", nil, resolveScalar)
	require.Error(t, err)
	_, err = e.Reconstruct(0, "x", nil, resolveScalar)
	require.Error(t, err)

	// Single distinct value is Liquid territory.
	_, ok = TryEnum(texts("only", "only"))
	require.False(t, ok)

	// Domain cap.
	many := make([]*value.Value, 0, format.MaxEnumDomain+1)
	for i := 0; i <= format.MaxEnumDomain; i++ {
		many = append(many, value.Int(int64(i*7)))
	}
	_, ok = TryEnum(many)
	require.False(t, ok)
}

func TestTryDelta(t *testing.T) {
	d, ok := TryDelta(ints(100, 103, 101, 101))
	require.True(t, ok)
	require.Equal(t, "D(100)", d.Spec())
	require.Equal(t, "3", d.Token(1, value.Int(103), value.Int(100), "103"))
	require.Equal(t, format.GasToken, d.Token(3, value.Int(101), value.Int(101), "101"))

	v, err := d.Reconstruct(2, "-2", value.Int(103), resolveScalar)
	require.NoError(t, err)
	n, err := v.AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(101), n)

	df, ok := TryDelta(floats(1.5, 2.0, 2.5))
	require.True(t, ok)
	require.Equal(t, "D(1.5)", df.Spec())
	require.Equal(t, "0.5", df.Token(1, value.Float(2.0), value.Float(1.5), "2.0"))

	// Mixed int/float never qualifies.
	_, ok = TryDelta([]*value.Value{value.Int(1), value.Float(2.0)})
	require.False(t, ok)

	_, ok = TryDelta(ints(5))
	require.False(t, ok)
}

func TestParseRuleRoundTrip(t *testing.T) {
	specs := []string{
		"S",
		"L",
		"E(red,green,T,3)",
		"D(100)",
		"D(1.5)",
		"R(1,1)",
		"R(100,-10)",
		`P("LOG-{4}",1,1)`,
		"M(100)",
	}
	for _, spec := range specs {
		r, err := ParseRule(spec)
		require.NoError(t, err, spec)
		require.Equal(t, spec, r.Spec(), spec)
	}
}

func TestParseRuleErrors(t *testing.T) {
	for _, spec := range []string{"", "X", "Q(1)", "R(1)", "R(a,b)", "E()", "D(x)", "M(0)", `P("no-placeholder",1,1)`, "S(1)"} {
		_, err := ParseRule(spec)
		require.Error(t, err, spec)
	}
}

func TestSelectPicksCheapestRule(t *testing.T) {
	interval := format.DefaultAnchorInterval

	run := func(vs []*value.Value) Rule {
		return Select(vs, explicitTokens(vs), interval, resolveScalar)
	}

	require.Equal(t, format.StrategyRange, run(ints(10, 20, 30, 40, 50, 60, 70, 80)).Kind())
	require.Equal(t, format.StrategyPattern,
		run(texts("u-001", "u-002", "u-003", "u-004", "u-005", "u-006", "u-007", "u-008")).Kind())
	require.Equal(t, format.StrategyLiquid, run(texts("same", "same", "same", "same")).Kind())
	require.Equal(t, format.StrategyEnum,
		run(texts("active", "inactive", "active", "active", "inactive", "active", "inactive", "active")).Kind())
	require.Equal(t, format.StrategyDelta, run(ints(1000000, 1000003, 1000001, 1000004, 1000002, 1000005)).Kind())
	require.Equal(t, format.StrategyMultiplier,
		run(floats(101.25, 12.75, 93.25, 10.75, 99.25, 11.75, 95.25, 12.25)).Kind())
}

func TestSelectPrefersFullyImpliedRule(t *testing.T) {
	// Short progressions are the worst case for byte scoring: the literal
	// tokens of 1,2,3 are cheaper than Range's header spec. The column still
	// selects Range because every non-anchor row is implied, which lets rows
	// collapse into run lines.
	vs := ints(1, 2, 3)
	r := Select(vs, explicitTokens(vs), format.DefaultAnchorInterval, resolveScalar)
	require.Equal(t, format.StrategyRange, r.Kind())
}

func TestSelectForcesSolid(t *testing.T) {
	interval := format.DefaultAnchorInterval

	r := Select([]*value.Value{value.Int(42)}, []string{"42"}, interval, resolveScalar)
	require.Equal(t, format.StrategySolid, r.Kind())

	nulls := []*value.Value{value.Null(), value.Null(), value.Null()}
	r = Select(nulls, explicitTokens(nulls), interval, resolveScalar)
	require.Equal(t, format.StrategySolid, r.Kind())
}

func TestSelectTiePriority(t *testing.T) {
	// Distinct free-form strings: Liquid emits the same explicit tokens as
	// Solid, so costs tie and the priority order decides in Liquid's favor.
	vs := texts("alpha", "bravo", "charlie", "delta", "echo")
	r := Select(vs, explicitTokens(vs), format.DefaultAnchorInterval, resolveScalar)
	require.Equal(t, format.StrategyLiquid, r.Kind())
}

func TestRuleVerifyRejectsLossyCandidate(t *testing.T) {
	// Values match the range shape except one row; the candidate never forms.
	vs := ints(1, 2, 3, 5)
	_, ok := TryRange(vs)
	require.False(t, ok)

	r := Select(vs, explicitTokens(vs), format.DefaultAnchorInterval, resolveScalar)

	// Whatever wins must replay losslessly.
	var prev *value.Value
	for i, v := range vs {
		var got *value.Value
		var err error
		if i%format.DefaultAnchorInterval == 0 {
			got, err = resolveScalar(value.FormatScalar(v))
		} else {
			tok := r.Token(i, v, prev, value.FormatScalar(v))
			got, err = r.Reconstruct(i, tok, prev, resolveScalar)
		}
		require.NoError(t, err)
		require.True(t, value.Equal(got, v))
		prev = got
	}
}
