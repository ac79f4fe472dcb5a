package value

import (
	"strconv"
	"strings"

	"github.com/arloliu/zon/errs"
	"github.com/arloliu/zon/format"
)

// FormatScalar renders a scalar value as a single wire token.
//
// Booleans render as T/F, null as "null", numbers in canonical decimal form
// (no exponent, shortest digits, integral floats keep a trailing ".0" so the
// int/float distinction survives the round trip). Text renders bare when it
// cannot be confused with any other token kind, and double-quoted with quote
// doubling otherwise.
//
// Container values render as their inline literal; see Inline.
func FormatScalar(v *Value) string {
	switch v.Kind() {
	case KindNull:
		return format.NullLiteral
	case KindBool:
		if v.boolVal {
			return format.TrueLiteral
		}

		return format.FalseLiteral
	case KindInt:
		return strconv.FormatInt(v.intVal, 10)
	case KindFloat:
		return formatFloat(v.floatVal)
	case KindText:
		return PackString(v.textVal)
	default:
		return Inline(v)
	}
}

// formatFloat renders a float in canonical decimal form. The 'f' format never
// produces an exponent, and -1 precision yields the shortest digit string
// that parses back to the identical float64.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		// Keep integral floats distinguishable from ints.
		s += ".0"
	}

	return s
}

// PackString renders a text value as a wire token, quoting only when needed.
func PackString(s string) string {
	if s == "" {
		return `""`
	}
	if bareSafe(s) {
		return s
	}

	return Quote(s)
}

// Quote wraps s in double quotes, doubling embedded quotes (CSV style).
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			b.WriteString(`""`)
		} else {
			b.WriteByte(s[i])
		}
	}
	b.WriteByte('"')

	return b.String()
}

// bareSafe reports whether s can appear on the wire unquoted without being
// mistaken for another token kind or a structural delimiter.
func bareSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '-', c == '.':
		default:
			return false
		}
	}

	// Reserved stream tokens.
	if s == format.GasToken || s == format.DittoToken {
		return false
	}
	// Tokens that would decode as null or a boolean.
	if isReservedWord(s) {
		return false
	}
	// Tokens that would decode as a number.
	if isNumberToken(s) {
		return false
	}
	// Tokens matching the run-line syntax would be misread when they make up
	// an entire data line.
	if isRunToken(s) {
		return false
	}

	return true
}

// isRunToken matches the RLE run line form: one or more digits followed by
// the run suffix.
func isRunToken(s string) bool {
	if len(s) < 2 || s[len(s)-1] != format.RunSuffix {
		return false
	}
	for i := 0; i < len(s)-1; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// isReservedWord matches the null and boolean aliases the decoder accepts.
func isReservedWord(s string) bool {
	switch s {
	case format.TrueLiteral, format.FalseLiteral:
		return true
	}
	switch strings.ToLower(s) {
	case "null", "none", "nil", "true", "false":
		return true
	}

	return false
}

// isNumberToken reports whether s parses as a canonical number: optional
// sign, no leading zeros in the integer part, optional fraction and exponent.
// Leading-zero digit strings like "007" are treated as text, matching the
// encoder which never emits them.
func isNumberToken(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	if i >= len(s) {
		return false
	}

	// Integer part: "0" or nonzero-led digits.
	if s[i] == '0' {
		i++
	} else if s[i] >= '1' && s[i] <= '9' {
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	} else {
		return false
	}

	// Fraction.
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}

	// Exponent: accepted on decode, never emitted.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}

	return i == len(s)
}

// ParseScalar inverts FormatScalar for a single wire token.
//
// Quoted tokens become text; bare tokens resolve in order: null/boolean
// aliases, canonical int, decimal/exponent float, then text. Malformed
// quoting is the only error.
func ParseScalar(tok string) (*Value, error) {
	if len(tok) >= 1 && tok[0] == '"' {
		s, err := Unquote(tok)
		if err != nil {
			return nil, err
		}

		return Text(s), nil
	}

	return parseBare(tok), nil
}

// parseBare resolves an unquoted token.
func parseBare(tok string) *Value {
	switch tok {
	case format.TrueLiteral:
		return Bool(true)
	case format.FalseLiteral:
		return Bool(false)
	}
	switch strings.ToLower(tok) {
	case "null", "none", "nil":
		return Null()
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}

	if isNumberToken(tok) {
		if !strings.ContainsAny(tok, ".eE") {
			if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
				return Int(n)
			}
			// Out of int64 range: fall through to float.
		}
		if f, err := strconv.ParseFloat(tok, 64); err == nil {
			return Float(f)
		}
	}

	return Text(tok)
}

// Unquote inverts Quote: strips the surrounding quotes and collapses doubled
// quotes. A lone interior quote or a missing closing quote is malformed.
func Unquote(tok string) (string, error) {
	if len(tok) < 2 || tok[0] != '"' || tok[len(tok)-1] != '"' {
		return "", errs.ErrBadQuoting
	}

	var b strings.Builder
	b.Grow(len(tok) - 2)
	inner := tok[1 : len(tok)-1]
	for i := 0; i < len(inner); i++ {
		if inner[i] == '"' {
			if i+1 >= len(inner) || inner[i+1] != '"' {
				return "", errs.ErrBadQuoting
			}
			b.WriteByte('"')
			i++

			continue
		}
		b.WriteByte(inner[i])
	}

	return b.String(), nil
}
