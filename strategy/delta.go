package strategy

import (
	"strconv"
	"strings"

	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/value"
)

// Delta stores the numeric difference from the previous row. A zero diff
// collapses to the gas token, so slowly drifting series cost only the digits
// of their movement.
//
// The column must be homogeneous: all int or all float. Mixing would force a
// kind decision at decode time and break the round trip.
type Delta struct {
	base  *value.Value
	isInt bool
}

var _ Rule = (*Delta)(nil)

// TryDelta builds a Delta candidate for a homogeneous numeric column with at
// least two rows. Float columns additionally require every consecutive diff
// to reconstruct the next value exactly in float64 arithmetic.
func TryDelta(values []*value.Value) (*Delta, bool) {
	if len(values) < 2 {
		return nil, false
	}

	kind := values[0].Kind()
	if kind != value.KindInt && kind != value.KindFloat {
		return nil, false
	}
	for _, v := range values {
		if v.Kind() != kind {
			return nil, false
		}
	}

	if kind == value.KindInt {
		for i := 1; i < len(values); i++ {
			a, _ := values[i].AsInt()
			b, _ := values[i-1].AsInt()
			if subOverflows(a, b) {
				return nil, false
			}
		}

		return &Delta{base: values[0], isInt: true}, true
	}

	for i := 1; i < len(values); i++ {
		a, _ := values[i].AsFloat()
		b, _ := values[i-1].AsFloat()
		d := a - b
		if value.Float(d).IsNull() || b+d != a {
			return nil, false
		}
	}

	return &Delta{base: values[0]}, true
}

// newDelta builds a Delta from a parsed base value (decode path).
func newDelta(base *value.Value) *Delta {
	return &Delta{base: base, isInt: base.Kind() == value.KindInt}
}

func subOverflows(a, b int64) bool {
	d := a - b
	return (d < a) != (b > 0)
}

func (*Delta) Kind() format.StrategyKind {
	return format.StrategyDelta
}

func (d *Delta) Spec() string {
	return "D(" + value.FormatScalar(d.base) + ")"
}

func (d *Delta) Token(_ int, v *value.Value, prev *value.Value, explicit string) string {
	if prev == nil {
		prev = d.base
	}
	if d.isInt {
		a, errA := v.AsInt()
		b, errB := prev.AsInt()
		if errA != nil || errB != nil {
			return explicit
		}
		diff := a - b
		if diff == 0 {
			return format.GasToken
		}

		return strconv.FormatInt(diff, 10)
	}

	a, errA := v.AsFloat()
	b, errB := prev.AsFloat()
	if errA != nil || errB != nil {
		return explicit
	}
	diff := a - b
	if diff == 0 {
		return format.GasToken
	}

	return formatFloatToken(diff)
}

func (d *Delta) Implied(_ int, v *value.Value, prev *value.Value) bool {
	if prev == nil {
		prev = d.base
	}

	return value.Equal(v, prev)
}

func (d *Delta) Reconstruct(_ int, tok string, prev *value.Value, resolve Resolver) (*value.Value, error) {
	if prev == nil {
		prev = d.base
	}
	if implied(tok) {
		return prev, nil
	}

	if d.isInt && !strings.ContainsAny(tok, ".eE") {
		if diff, err := strconv.ParseInt(tok, 10, 64); err == nil {
			b, errB := prev.AsInt()
			if errB == nil {
				return value.Int(b + diff), nil
			}
		}
	} else if diff, err := strconv.ParseFloat(tok, 64); err == nil {
		b, errB := prev.AsFloat()
		if errB == nil {
			return value.Float(b + diff), nil
		}
	}

	// Not a numeric diff: treat as an explicit override.
	return resolve(tok)
}

// formatFloatToken mirrors the canonical float rendering used for explicit
// cells, so diff tokens round-trip through the same parser.
func formatFloatToken(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
