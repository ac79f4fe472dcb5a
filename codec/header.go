package codec

import (
	"strconv"
	"strings"

	"github.com/arloliu/zon/errs"
	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/strategy"
	"github.com/arloliu/zon/value"
)

// headerLine renders a table declaration:
//
//	name:@(rowCount)!interval:col1:RULE,col2:RULE,...
//
// The name prefix is omitted for the anonymous table of a top-level sequence
// document. Column names and rule parameters requiring quoting use the same
// quoting rule as scalar cells, so SplitFields recovers the fields exactly.
func headerLine(name string, rows, interval int, columns []string, rules []strategy.Rule) string {
	var b strings.Builder
	if name != "" {
		b.WriteString(value.PackString(name))
		b.WriteByte(format.MetaSeparator)
	}
	b.WriteByte(format.TableMarker)
	b.WriteByte('(')
	b.WriteString(strconv.Itoa(rows))
	b.WriteByte(')')
	b.WriteByte(format.AnchorMarker)
	b.WriteString(strconv.Itoa(interval))
	b.WriteByte(format.MetaSeparator)
	for i, col := range columns {
		if i > 0 {
			b.WriteByte(format.FieldSeparator)
		}
		b.WriteString(value.PackString(col))
		b.WriteByte(format.MetaSeparator)
		b.WriteString(rules[i].Spec())
	}

	return b.String()
}

// tableHeader is the parsed form of a table declaration line.
type tableHeader struct {
	name     string
	rows     int
	interval int
	columns  []string
	rules    []strategy.Rule
}

// isTableHeader reports whether a line declares a table: a top-level "@("
// either at the start of the line or right after the name separator. Quoted
// regions are skipped so a scalar value containing "@(" cannot masquerade as
// a header.
func isTableHeader(line string) bool {
	return headerMarkerPos(line) >= 0
}

// headerMarkerPos returns the index of the unquoted table marker, or -1.
func headerMarkerPos(line string) int {
	inQuote := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inQuote {
			if c == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
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
		case format.TableMarker:
			if i+1 < len(line) && line[i+1] == '(' {
				if i == 0 || line[i-1] == format.MetaSeparator {
					return i
				}
			}
		}
	}

	return -1
}

// parseHeader parses a table declaration line.
func parseHeader(line string) (*tableHeader, error) {
	pos := headerMarkerPos(line)
	if pos < 0 {
		return nil, errs.ErrBadTableHeader
	}

	h := &tableHeader{}
	if pos > 0 {
		raw := line[:pos-1]
		if strings.HasPrefix(raw, `"`) {
			name, err := value.Unquote(raw)
			if err != nil {
				return nil, errs.ErrBadTableHeader
			}
			h.name = name
		} else {
			h.name = raw
		}
		if h.name == "" {
			return nil, errs.ErrBadTableHeader
		}
	}

	rest := line[pos+2:] // after "@("
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return nil, errs.ErrBadTableHeader
	}
	rows, err := strconv.Atoi(rest[:end])
	if err != nil || rows < 0 {
		return nil, errs.ErrBadTableHeader
	}
	h.rows = rows

	rest = rest[end+1:]
	if len(rest) == 0 || rest[0] != format.AnchorMarker {
		return nil, errs.ErrBadTableHeader
	}
	sep := strings.IndexByte(rest, format.MetaSeparator)
	if sep < 0 {
		return nil, errs.ErrBadTableHeader
	}
	interval, err := strconv.Atoi(rest[1:sep])
	if err != nil || interval < 1 {
		return nil, errs.ErrBadTableHeader
	}
	h.interval = interval

	body := rest[sep+1:]
	if body == "" {
		return h, nil
	}
	for _, field := range value.SplitFields(body) {
		col, spec, err := splitColumnDecl(field)
		if err != nil {
			return nil, err
		}
		rule, err := strategy.ParseRule(spec)
		if err != nil {
			return nil, err
		}
		h.columns = append(h.columns, col)
		h.rules = append(h.rules, rule)
	}

	return h, nil
}

// splitColumnDecl splits one "name:RULE" field, allowing a quoted name.
func splitColumnDecl(field string) (string, string, error) {
	if strings.HasPrefix(field, `"`) {
		end := closingQuote(field)
		if end < 0 || end+1 >= len(field) || field[end+1] != format.MetaSeparator {
			return "", "", errs.ErrBadTableHeader
		}
		name, err := value.Unquote(field[:end+1])
		if err != nil {
			return "", "", errs.ErrBadTableHeader
		}

		return name, field[end+2:], nil
	}

	sep := strings.IndexByte(field, format.MetaSeparator)
	if sep <= 0 || sep+1 >= len(field) {
		return "", "", errs.ErrBadTableHeader
	}

	return field[:sep], field[sep+1:], nil
}

// closingQuote returns the index of the quote closing a token that starts
// with one, honoring quote doubling, or -1.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		if s[i] != '"' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '"' {
			i++
			continue
		}

		return i
	}

	return -1
}

// topLevelColon returns the index of the first key separator outside quoted
// regions and bracket nesting, or -1 when the line is not a key:value form.
func topLevelColon(line string) int {
	inQuote := false
	depth := 0
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inQuote {
			if c == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
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
		case format.MetaSeparator:
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// isRunLine reports whether a line is an RLE run declaration: digits followed
// by the run suffix.
func isRunLine(line string) bool {
	if len(line) < 2 || line[len(line)-1] != format.RunSuffix {
		return false
	}
	for i := 0; i < len(line)-1; i++ {
		if line[i] < '0' || line[i] > '9' {
			return false
		}
	}

	return true
}
