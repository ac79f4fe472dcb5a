package strategy

import (
	"strconv"

	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/value"
)

// Range generates the column from an arithmetic progression: row i holds
// start + i*step. Every non-anchor cell collapses to the gas token, making
// this the cheapest possible rule for counters and synthetic ids.
type Range struct {
	start int64
	step  int64
}

var _ Rule = (*Range)(nil)

// TryRange builds a Range candidate when the column is all integers in a
// strict arithmetic progression with a nonzero step. A zero step is a
// constant column, which Liquid already handles for one gas token per row.
func TryRange(values []*value.Value) (*Range, bool) {
	if len(values) < 2 {
		return nil, false
	}
	for _, v := range values {
		if v.Kind() != value.KindInt {
			return nil, false
		}
	}

	first, _ := values[0].AsInt()
	second, _ := values[1].AsInt()
	if subOverflows(second, first) {
		return nil, false
	}
	step := second - first
	if step == 0 {
		return nil, false
	}

	for i := 2; i < len(values); i++ {
		cur, _ := values[i].AsInt()
		prev, _ := values[i-1].AsInt()
		if subOverflows(cur, prev) || cur-prev != step {
			return nil, false
		}
	}

	return &Range{start: first, step: step}, true
}

// newRange builds a Range from parsed parameters (decode path).
func newRange(start, step int64) *Range {
	return &Range{start: start, step: step}
}

func (*Range) Kind() format.StrategyKind {
	return format.StrategyRange
}

func (r *Range) Spec() string {
	return "R(" + strconv.FormatInt(r.start, 10) + "," + strconv.FormatInt(r.step, 10) + ")"
}

func (r *Range) Token(_ int, _ *value.Value, _ *value.Value, _ string) string {
	return format.GasToken
}

func (r *Range) Implied(i int, v *value.Value, _ *value.Value) bool {
	n, err := v.AsInt()

	return err == nil && n == r.at(i)
}

func (r *Range) Reconstruct(i int, tok string, _ *value.Value, resolve Resolver) (*value.Value, error) {
	if implied(tok) {
		return value.Int(r.at(i)), nil
	}

	return resolve(tok)
}

func (r *Range) at(i int) int64 {
	return r.start + r.step*int64(i)
}
