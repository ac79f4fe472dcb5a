package strategy

import (
	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/value"
)

// Solid stores an explicit literal per row. It is the universal fallback:
// always applicable, always lossless, never compressed.
type Solid struct{}

var _ Rule = Solid{}

// NewSolid creates the explicit-literal rule.
func NewSolid() Solid {
	return Solid{}
}

func (Solid) Kind() format.StrategyKind {
	return format.StrategySolid
}

func (Solid) Spec() string {
	return "S"
}

func (Solid) Token(_ int, _ *value.Value, _ *value.Value, explicit string) string {
	return explicit
}

func (Solid) Implied(_ int, _ *value.Value, _ *value.Value) bool {
	return false
}

func (Solid) Reconstruct(_ int, tok string, prev *value.Value, resolve Resolver) (*value.Value, error) {
	if implied(tok) {
		// No generative rule to fill the gap: repeat the previous row value,
		// or null when there is none.
		if prev != nil {
			return prev, nil
		}

		return value.Null(), nil
	}

	return resolve(tok)
}
