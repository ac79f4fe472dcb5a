package strategy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/value"
)

// Pattern generates text rows from a template whose single numeric field
// advances arithmetically: "LOG-{4}" with start 1, step 1 yields LOG-0001,
// LOG-0002 and so on. The placeholder digit is the zero-pad width.
type Pattern struct {
	prefix string
	suffix string
	width  int
	start  int64
	step   int64
}

var _ Rule = (*Pattern)(nil)

// TryPattern builds a Pattern candidate for an all-text column of at least
// two rows where every value is prefix + padded number + suffix and the
// numbers form an arithmetic progression. The prefix and suffix may not
// contain braces, which the template reserves for the placeholder.
func TryPattern(values []*value.Value) (*Pattern, bool) {
	if len(values) < 2 {
		return nil, false
	}
	for _, v := range values {
		if v.Kind() != value.KindText {
			return nil, false
		}
	}

	first, _ := values[0].AsText()
	lo, hi := digitRun(first)
	if lo < 0 {
		return nil, false
	}
	prefix, digits, suffix := first[:lo], first[lo:hi], first[hi:]
	if strings.ContainsAny(prefix, "{}") || strings.ContainsAny(suffix, "{}") {
		return nil, false
	}

	start, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil, false
	}

	p := &Pattern{prefix: prefix, suffix: suffix, width: len(digits)}

	second, _ := values[1].AsText()
	next, ok := p.extract(second)
	if !ok {
		return nil, false
	}
	p.start = start
	p.step = next - start

	for i, v := range values {
		s, _ := v.AsText()
		if s != p.render(i) {
			return nil, false
		}
	}

	return p, true
}

// newPattern builds a Pattern from parsed template parameters (decode path).
func newPattern(prefix, suffix string, width int, start, step int64) *Pattern {
	return &Pattern{prefix: prefix, suffix: suffix, width: width, start: start, step: step}
}

// digitRun returns the bounds of the first run of ASCII digits in s, or
// (-1, -1) when none exists.
func digitRun(s string) (int, int) {
	lo := -1
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			if lo < 0 {
				lo = i
			}

			continue
		}
		if lo >= 0 {
			return lo, i
		}
	}
	if lo >= 0 {
		return lo, len(s)
	}

	return -1, -1
}

// extract strips the prefix and suffix and parses the remaining digits.
func (p *Pattern) extract(s string) (int64, bool) {
	if !strings.HasPrefix(s, p.prefix) || !strings.HasSuffix(s, p.suffix) {
		return 0, false
	}
	mid := s[len(p.prefix) : len(s)-len(p.suffix)]
	if mid == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(mid, 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

func (p *Pattern) render(i int) string {
	return fmt.Sprintf("%s%0*d%s", p.prefix, p.width, p.start+p.step*int64(i), p.suffix)
}

func (*Pattern) Kind() format.StrategyKind {
	return format.StrategyPattern
}

func (p *Pattern) Spec() string {
	tpl := p.prefix + "{" + strconv.Itoa(p.width) + "}" + p.suffix

	return fmt.Sprintf("P(%s,%d,%d)", value.PackString(tpl), p.start, p.step)
}

func (p *Pattern) Token(_ int, _ *value.Value, _ *value.Value, _ string) string {
	return format.GasToken
}

func (p *Pattern) Implied(i int, v *value.Value, _ *value.Value) bool {
	s, err := v.AsText()

	return err == nil && s == p.render(i)
}

func (p *Pattern) Reconstruct(i int, tok string, _ *value.Value, resolve Resolver) (*value.Value, error) {
	if implied(tok) {
		return value.Text(p.render(i)), nil
	}

	return resolve(tok)
}
