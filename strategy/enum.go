package strategy

import (
	"strconv"
	"strings"

	"github.com/arloliu/zon/errs"
	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/value"
)

// Enum stores a small ordered domain in the header and a domain index per
// row. The domain is self-contained: every entry is a scalar token, never a
// dictionary reference, so an enum column decodes from the header alone.
type Enum struct {
	domain []*value.Value
	index  map[string]int
}

var _ Rule = (*Enum)(nil)

// TryEnum builds an Enum candidate when the column has between 2 and
// format.MaxEnumDomain distinct scalar values. Domain order is first
// occurrence, which keeps encoding deterministic.
func TryEnum(values []*value.Value) (*Enum, bool) {
	index := make(map[string]int)
	var domain []*value.Value
	for _, v := range values {
		if !v.IsScalar() {
			return nil, false
		}
		tok := value.FormatScalar(v)
		if _, seen := index[tok]; seen {
			continue
		}
		if len(domain) >= format.MaxEnumDomain {
			return nil, false
		}
		index[tok] = len(domain)
		domain = append(domain, v)
	}
	if len(domain) < 2 {
		return nil, false
	}

	return &Enum{domain: domain, index: index}, true
}

// newEnum builds an Enum from an already-parsed domain (decode path).
func newEnum(domain []*value.Value) *Enum {
	index := make(map[string]int, len(domain))
	for i, v := range domain {
		index[value.FormatScalar(v)] = i
	}

	return &Enum{domain: domain, index: index}
}

// Domain returns the ordered domain values.
func (e *Enum) Domain() []*value.Value {
	return e.domain
}

func (*Enum) Kind() format.StrategyKind {
	return format.StrategyEnum
}

func (e *Enum) Spec() string {
	var b strings.Builder
	b.WriteString("E(")
	for i, v := range e.domain {
		if i > 0 {
			b.WriteByte(format.FieldSeparator)
		}
		b.WriteString(value.FormatScalar(v))
	}
	b.WriteByte(')')

	return b.String()
}

func (e *Enum) Token(_ int, v *value.Value, _ *value.Value, explicit string) string {
	if i, ok := e.index[value.FormatScalar(v)]; ok {
		return strconv.Itoa(i)
	}

	// Value outside the domain: only reachable on foreign inputs, since the
	// tournament verifies domain coverage before accepting the candidate.
	return explicit
}

func (*Enum) Implied(_ int, _ *value.Value, _ *value.Value) bool {
	return false
}

func (e *Enum) Reconstruct(_ int, tok string, _ *value.Value, _ Resolver) (*value.Value, error) {
	if implied(tok) {
		return nil, errs.ErrEnumIndexRange
	}
	idx, err := strconv.Atoi(tok)
	if err != nil {
		return nil, errs.ErrEnumIndexRange
	}
	if idx < 0 || idx >= len(e.domain) {
		return nil, errs.ErrEnumIndexRange
	}

	return e.domain[idx], nil
}
