package strategy

import (
	"math"
	"strconv"

	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/value"
)

// DefaultMultiplierFactor is the fixed-point scale the encoder proposes.
// Two decimal places cover the common monetary and percentage columns.
const DefaultMultiplierFactor = 100

// Multiplier stores floats as fixed-point integers: the wire token is the
// value times the factor, so 12.5 at factor 100 travels as 1250. Only exact
// scalings qualify, which the candidate constructor enforces.
type Multiplier struct {
	factor int64
}

var _ Rule = (*Multiplier)(nil)

// TryMultiplier builds a Multiplier candidate when every value is a float
// whose product with the factor is an integer that divides back to the exact
// original float64.
func TryMultiplier(values []*value.Value) (*Multiplier, bool) {
	if len(values) == 0 {
		return nil, false
	}
	for _, v := range values {
		f, err := v.AsFloat()
		if err != nil {
			return nil, false
		}
		scaled := f * DefaultMultiplierFactor
		if math.Abs(scaled) >= 1<<53 {
			return nil, false
		}
		n := int64(math.Round(scaled))
		if float64(n) != scaled || float64(n)/DefaultMultiplierFactor != f {
			return nil, false
		}
	}

	return &Multiplier{factor: DefaultMultiplierFactor}, true
}

// newMultiplier builds a Multiplier from a parsed factor (decode path).
func newMultiplier(factor int64) *Multiplier {
	return &Multiplier{factor: factor}
}

func (*Multiplier) Kind() format.StrategyKind {
	return format.StrategyMultiplier
}

func (m *Multiplier) Spec() string {
	return "M(" + strconv.FormatInt(m.factor, 10) + ")"
}

func (m *Multiplier) Token(_ int, v *value.Value, _ *value.Value, explicit string) string {
	f, err := v.AsFloat()
	if err != nil {
		return explicit
	}

	return strconv.FormatInt(int64(math.Round(f*float64(m.factor))), 10)
}

func (*Multiplier) Implied(_ int, _ *value.Value, _ *value.Value) bool {
	return false
}

func (m *Multiplier) Reconstruct(_ int, tok string, prev *value.Value, resolve Resolver) (*value.Value, error) {
	if implied(tok) {
		if prev != nil {
			return prev, nil
		}

		return value.Null(), nil
	}

	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return value.Float(float64(n) / float64(m.factor)), nil
	}

	return resolve(tok)
}
