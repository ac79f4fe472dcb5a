package value

import (
	"strings"

	"github.com/arloliu/zon/errs"
	"github.com/arloliu/zon/format"
)

// Inline renders a value as a self-describing inline literal: scalars as
// their wire token, sequences as [a,b,c], mappings as {k:v,...}. This is the
// atomic-leaf form used for sequences that do not qualify as tables and for
// mappings nested inside them.
func Inline(v *Value) string {
	var b strings.Builder
	appendInline(&b, v)

	return b.String()
}

func appendInline(b *strings.Builder, v *Value) {
	switch v.Kind() {
	case KindSequence:
		b.WriteByte('[')
		for i, e := range v.seqVal {
			if i > 0 {
				b.WriteByte(format.FieldSeparator)
			}
			appendInline(b, e)
		}
		b.WriteByte(']')
	case KindMapping:
		b.WriteByte('{')
		for i, e := range v.mapVal {
			if i > 0 {
				b.WriteByte(format.FieldSeparator)
			}
			b.WriteString(PackString(e.Key))
			b.WriteByte(format.MetaSeparator)
			appendInline(b, e.Value)
		}
		b.WriteByte('}')
	default:
		b.WriteString(FormatScalar(v))
	}
}

// ParseInline parses a complete inline literal or scalar token. Depth and
// element counts are checked against limits as the parse descends, so an
// adversarial literal fails before it materializes.
func ParseInline(s string, limits format.Limits) (*Value, error) {
	p := &inlineParser{src: s, limits: limits}
	v, err := p.parseValue(0)
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos != len(p.src) {
		return nil, errs.ErrBadQuoting
	}

	return v, nil
}

type inlineParser struct {
	src    string
	pos    int
	limits format.Limits
}

func (p *inlineParser) skipSpaces() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *inlineParser) parseValue(depth int) (*Value, error) {
	if depth > p.limits.MaxNestingDepth {
		return nil, errs.ErrNestingDepthExceeded
	}
	p.skipSpaces()
	if p.pos >= len(p.src) {
		return nil, errs.ErrBadQuoting
	}

	switch p.src[p.pos] {
	case '[':
		return p.parseSequence(depth)
	case '{':
		return p.parseMapping(depth)
	case '"':
		s, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}

		return Text(s), nil
	default:
		return parseBare(p.parseBareToken()), nil
	}
}

func (p *inlineParser) parseSequence(depth int) (*Value, error) {
	p.pos++ // consume '['
	seq := Sequence()
	p.skipSpaces()
	if p.pos < len(p.src) && p.src[p.pos] == ']' {
		p.pos++
		return seq, nil
	}

	for {
		elem, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		seq.Append(elem)
		if seq.Len() > p.limits.MaxSequenceLen {
			return nil, errs.ErrSequenceLenExceeded
		}

		p.skipSpaces()
		if p.pos >= len(p.src) {
			return nil, errs.ErrBadQuoting
		}
		switch p.src[p.pos] {
		case format.FieldSeparator:
			p.pos++
		case ']':
			p.pos++
			return seq, nil
		default:
			return nil, errs.ErrBadQuoting
		}
	}
}

func (p *inlineParser) parseMapping(depth int) (*Value, error) {
	p.pos++ // consume '{'
	m := Mapping()
	p.skipSpaces()
	if p.pos < len(p.src) && p.src[p.pos] == '}' {
		p.pos++
		return m, nil
	}

	for {
		p.skipSpaces()
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		p.skipSpaces()
		if p.pos >= len(p.src) || p.src[p.pos] != format.MetaSeparator {
			return nil, errs.ErrBadQuoting
		}
		p.pos++ // consume ':'

		val, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		m.Set(key, val)
		if m.Len() > p.limits.MaxMappingKeys {
			return nil, errs.ErrMappingKeysExceeded
		}

		p.skipSpaces()
		if p.pos >= len(p.src) {
			return nil, errs.ErrBadQuoting
		}
		switch p.src[p.pos] {
		case format.FieldSeparator:
			p.pos++
		case '}':
			p.pos++
			return m, nil
		default:
			return nil, errs.ErrBadQuoting
		}
	}
}

func (p *inlineParser) parseKey() (string, error) {
	if p.pos < len(p.src) && p.src[p.pos] == '"' {
		return p.parseQuoted()
	}

	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == format.MetaSeparator || c == format.FieldSeparator || c == '}' || c == ']' {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return "", errs.ErrBadQuoting
	}

	return strings.TrimRight(p.src[start:p.pos], " "), nil
}

// parseQuoted consumes a quoted string starting at the current position.
func (p *inlineParser) parseQuoted() (string, error) {
	var b strings.Builder
	p.pos++ // consume opening quote
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '"' {
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '"' {
				b.WriteByte('"')
				p.pos += 2

				continue
			}
			p.pos++

			return b.String(), nil
		}
		b.WriteByte(c)
		p.pos++
	}

	return "", errs.ErrBadQuoting
}

// parseBareToken consumes an unquoted token up to the next structural
// delimiter at the current nesting level.
func (p *inlineParser) parseBareToken() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == format.FieldSeparator || c == ']' || c == '}' {
			break
		}
		p.pos++
	}

	return strings.TrimRight(p.src[start:p.pos], " ")
}

// SplitFields splits a row or parameter list on top-level commas, honoring
// quoted strings (with quote doubling) and bracket nesting so an inline
// literal or quoted cell survives as a single field.
func SplitFields(s string) []string {
	if s == "" {
		return nil
	}

	fields := make([]string, 0, 8)
	var depth int
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote {
			if c == '"' {
				if i+1 < len(s) && s[i+1] == '"' {
					i++
					continue
				}
				inQuote = false
			}

			continue
		}
		switch c {
		case '"':
			inQuote = true
		case '[', '{', '(':
			depth++
		case ']', '}', ')':
			if depth > 0 {
				depth--
			}
		case format.FieldSeparator:
			if depth == 0 {
				fields = append(fields, s[start:i])
				start = i + 1
			}
		}
	}
	fields = append(fields, s[start:])

	return fields
}
