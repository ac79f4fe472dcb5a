package codec

import (
	"sort"
	"strconv"
	"strings"

	"github.com/arloliu/zon/errs"
	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/value"
)

// dictionary is a per-table string pool. Repeated text cells reference an
// entry as %i instead of spelling the literal out, including on anchor rows:
// the dictionary line precedes every data row, so a reference is still
// self-contained.
type dictionary struct {
	entries []string
	index   map[string]int
}

// buildDictionary scans the table's text cells and pools the strings whose
// repetition pays for a dictionary entry. A string of length n repeated f
// times saves roughly f*(n-2) cell bytes against an entry cost of n plus
// separators, so only f*(n-2) > n+5 qualifies. Entries are capped so
// references stay at most two digits.
func buildDictionary(t *table) *dictionary {
	freq := make(map[string]int)
	first := make(map[string]int)
	pos := 0
	for _, row := range t.rows {
		for _, v := range row {
			s, err := v.AsText()
			if err != nil || len(s) < format.DictMinStringLen {
				continue
			}
			if _, seen := freq[s]; !seen {
				first[s] = pos
			}
			freq[s]++
			pos++
		}
	}

	var candidates []string
	for s, f := range freq {
		if f*(len(s)-2) > len(s)+5 {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if freq[a] != freq[b] {
			return freq[a] > freq[b]
		}

		return first[a] < first[b]
	})
	if len(candidates) > format.DictMaxEntries {
		candidates = candidates[:format.DictMaxEntries]
	}

	d := &dictionary{entries: candidates, index: make(map[string]int, len(candidates))}
	for i, s := range candidates {
		d.index[s] = i
	}

	return d
}

// ref returns the %i reference token for s, or false when s is not pooled.
func (d *dictionary) ref(s string) (string, bool) {
	if d == nil {
		return "", false
	}
	i, ok := d.index[s]
	if !ok {
		return "", false
	}

	return string(format.DictMarker) + strconv.Itoa(i), true
}

// line renders the %:v1,v2,... dictionary declaration.
func (d *dictionary) line() string {
	var b strings.Builder
	b.WriteByte(format.DictMarker)
	b.WriteByte(format.MetaSeparator)
	for i, s := range d.entries {
		if i > 0 {
			b.WriteByte(format.FieldSeparator)
		}
		b.WriteString(value.PackString(s))
	}

	return b.String()
}

// resolve maps a %i token back to the pooled string.
func (d *dictionary) resolve(tok string) (string, error) {
	if d == nil || len(tok) < 2 {
		return "", errs.ErrBadDictionary
	}
	i, err := strconv.Atoi(tok[1:])
	if err != nil || i < 0 || i >= len(d.entries) {
		return "", errs.ErrBadDictionary
	}

	return d.entries[i], nil
}

// parseDictionaryLine parses a %:v1,v2,... line into a dictionary.
func parseDictionaryLine(line string) (*dictionary, error) {
	body := line[2:]
	if body == "" {
		return nil, errs.ErrBadDictionary
	}

	fields := value.SplitFields(body)
	d := &dictionary{entries: make([]string, 0, len(fields)), index: make(map[string]int, len(fields))}
	for _, f := range fields {
		s := f
		if strings.HasPrefix(f, `"`) {
			var err error
			s, err = value.Unquote(f)
			if err != nil {
				return nil, errs.ErrBadDictionary
			}
		}
		d.index[s] = len(d.entries)
		d.entries = append(d.entries, s)
	}

	return d, nil
}

// isDictRef reports whether a cell token is a dictionary reference.
func isDictRef(tok string) bool {
	return len(tok) >= 2 && tok[0] == format.DictMarker
}

// isDictionaryLine reports whether a line declares a table dictionary.
func isDictionaryLine(line string) bool {
	return len(line) >= 2 && line[0] == format.DictMarker && line[1] == format.MetaSeparator
}
