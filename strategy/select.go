package strategy

import (
	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/value"
)

// Select runs the entropy tournament for one column and returns the winning
// rule.
//
// A rule that implies every non-anchor row wins outright: the column carries
// zero per-row payload and its rows can collapse into run lines, which beats
// any header-spec saving a literal rule could offer. Otherwise every
// applicable candidate is scored by its encoded length: the header spec plus
// the wire token of each row, with anchor rows charged the explicit literal
// since they bypass the rule. A candidate only competes after a full
// simulated decode reproduces the column exactly, so the winner is lossless
// by construction, not by convention.
//
// Ties break on a fixed priority so identical input always yields identical
// output: Range, Pattern, Multiplier, Enum, Delta, Liquid, Solid.
func Select(values []*value.Value, explicit []string, anchorInterval int, resolve Resolver) Rule {
	if forceSolid(values) {
		return NewSolid()
	}

	var best Rule
	bestCost := 0
	for _, cand := range candidates(values) {
		if !verify(cand, values, explicit, anchorInterval, resolve) {
			continue
		}
		if zeroPayload(cand, values, explicit, anchorInterval) {
			return cand
		}
		// Strict comparison: on equal cost the earlier candidate keeps the
		// win, so the priority order doubles as the tie-break.
		if c := cost(cand, values, explicit, anchorInterval); best == nil || c < bestCost {
			best = cand
			bestCost = c
		}
	}
	if best == nil {
		best = NewSolid()
	}

	return best
}

// zeroPayload reports whether the rule emits the gas token for every
// non-anchor row, leaving the column fully implied between anchors.
func zeroPayload(r Rule, values []*value.Value, explicit []string, anchorInterval int) bool {
	var prev *value.Value
	for i, v := range values {
		if !isAnchor(i, anchorInterval) {
			if r.Token(i, v, prev, explicit[i]) != format.GasToken {
				return false
			}
		}
		prev = v
	}

	return true
}

// forceSolid covers the degenerate columns where compression cannot help:
// a single row has no pattern to exploit, and an all-null column is already
// one gas token per row under any rule.
func forceSolid(values []*value.Value) bool {
	if len(values) <= 1 {
		return true
	}
	for _, v := range values {
		if !v.IsNull() {
			return false
		}
	}

	return true
}

// candidates returns the applicable rules in tie-break priority order:
// generative rules first, then Enum, Delta, Liquid, with Solid as the
// always-applicable tail.
func candidates(values []*value.Value) []Rule {
	rules := make([]Rule, 0, 7)
	if r, ok := TryRange(values); ok {
		rules = append(rules, r)
	}
	if p, ok := TryPattern(values); ok {
		rules = append(rules, p)
	}
	if m, ok := TryMultiplier(values); ok {
		rules = append(rules, m)
	}
	if e, ok := TryEnum(values); ok {
		rules = append(rules, e)
	}
	if d, ok := TryDelta(values); ok {
		rules = append(rules, d)
	}
	rules = append(rules, NewLiquid(), NewSolid())

	return rules
}

// cost measures the wire footprint of a rule on this column. Gas tokens are
// free: fully implied cells collapse into run lines, so a rule with zero
// per-row payload is charged only its header spec and anchor literals.
func cost(r Rule, values []*value.Value, explicit []string, anchorInterval int) int {
	total := len(r.Spec())
	var prev *value.Value
	for i, v := range values {
		if isAnchor(i, anchorInterval) {
			total += len(explicit[i])
		} else if tok := r.Token(i, v, prev, explicit[i]); tok != format.GasToken {
			total += len(tok)
		}
		prev = v
	}

	return total
}

// verify simulates a full decode of the column under the candidate rule and
// rejects it on any mismatch with the source values.
func verify(r Rule, values []*value.Value, explicit []string, anchorInterval int, resolve Resolver) bool {
	var prev *value.Value
	for i, v := range values {
		var decoded *value.Value
		var err error
		if isAnchor(i, anchorInterval) {
			decoded, err = resolve(explicit[i])
		} else {
			tok := r.Token(i, v, prev, explicit[i])
			decoded, err = r.Reconstruct(i, tok, prev, resolve)
		}
		if err != nil || !value.Equal(decoded, v) {
			return false
		}
		prev = decoded
	}

	return true
}

func isAnchor(i, interval int) bool {
	return interval > 0 && i%interval == 0
}
