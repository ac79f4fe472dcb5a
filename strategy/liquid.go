package strategy

import (
	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/value"
)

// Liquid collapses repeats: a non-anchor row equal to the previous row value
// emits the single ditto token, anything else falls back to the explicit
// literal. Always a candidate; it wins on low-churn columns.
type Liquid struct{}

var _ Rule = Liquid{}

// NewLiquid creates the repeats-compression rule.
func NewLiquid() Liquid {
	return Liquid{}
}

func (Liquid) Kind() format.StrategyKind {
	return format.StrategyLiquid
}

func (Liquid) Spec() string {
	return "L"
}

func (Liquid) Token(_ int, v *value.Value, prev *value.Value, explicit string) string {
	if prev != nil && value.Equal(v, prev) {
		return format.DittoToken
	}

	return explicit
}

func (Liquid) Implied(_ int, v *value.Value, prev *value.Value) bool {
	return prev != nil && value.Equal(v, prev)
}

func (Liquid) Reconstruct(_ int, tok string, prev *value.Value, resolve Resolver) (*value.Value, error) {
	if tok == format.DittoToken || implied(tok) {
		if prev != nil {
			return prev, nil
		}

		return value.Null(), nil
	}

	return resolve(tok)
}
