// Package strategy implements the per-column encoding strategies and the
// entropy tournament that picks one per column.
//
// Each strategy is a Rule: it knows its header spec (the name:RULE(params)
// declaration), how to emit the non-anchor wire token for a row, and how to
// reconstruct the row value from that token during decode. Anchor rows bypass
// the rule entirely: every column is explicit there so a reader can re-ground
// its state without prior rows.
package strategy

import (
	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/value"
)

// Resolver parses an explicit cell token into a value. The codec supplies it
// so rules stay unaware of dictionary references and inline literals.
type Resolver func(tok string) (*value.Value, error)

// Rule is one column's chosen encoding strategy.
//
// Implementations are immutable after construction; the per-column running
// state (previous value, row index) lives with the caller, which makes the
// replay trivially parallel across columns.
type Rule interface {
	// Kind returns the strategy variant.
	Kind() format.StrategyKind

	// Spec returns the header declaration for this rule, e.g. "E(a,b)" or
	// "R(1,1)". Parsing the spec back yields an equivalent rule.
	Spec() string

	// Token returns the wire token for a non-anchor row. explicit is the
	// precomputed explicit token for the row value, used by strategies that
	// fall back to literal emission.
	Token(i int, v *value.Value, prev *value.Value, explicit string) string

	// Implied reports whether row i carries no information beyond the rule:
	// the token would be the gas or ditto token. Rows where every column is
	// implied may collapse into an RLE run line.
	Implied(i int, v *value.Value, prev *value.Value) bool

	// Reconstruct computes the row value from a non-anchor wire token.
	// An empty token is treated like the gas token for compatibility with
	// hand-written documents.
	Reconstruct(i int, tok string, prev *value.Value, resolve Resolver) (*value.Value, error)
}

// implied reports whether a wire token means "derive from the rule".
func implied(tok string) bool {
	return tok == "" || tok == format.GasToken
}
