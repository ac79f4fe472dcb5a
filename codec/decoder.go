package codec

import (
	"errors"
	"strconv"
	"strings"

	"github.com/arloliu/zon/errs"
	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/internal/collision"
	"github.com/arloliu/zon/internal/flatten"
	"github.com/arloliu/zon/value"
)

// Decoder parses a textual document back into a value tree. Structural
// mismatches follow the configured mode; security ceilings are fatal in both
// modes and are checked before the offending structure materializes.
type Decoder struct {
	cfg *DecoderConfig
}

// NewDecoder creates a Decoder with the supplied options applied over the
// defaults.
func NewDecoder(opts ...DecoderOption) (*Decoder, error) {
	cfg, err := NewDecoderConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Decoder{cfg: cfg}, nil
}

// Decode parses a complete document.
func (d *Decoder) Decode(text string) (*value.Value, error) {
	limits := d.cfg.Limits
	if len(text) > limits.MaxDocumentSize {
		return nil, errs.NewDecodeError(errs.CodeDocumentSizeExceeded, errs.ErrDocumentSizeExceeded, 0, 0, "document")
	}

	switch strings.TrimRight(text, "\n") {
	case format.EmptyMappingDoc:
		return value.Mapping(), nil
	case format.EmptySequenceDoc:
		return value.Sequence(), nil
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		if len(line) > limits.MaxLineLength {
			return nil, errs.NewDecodeError(errs.CodeLineLengthExceeded, errs.ErrLineLengthExceeded, i+1, 0, "document")
		}
	}

	leaves := make(map[string]*value.Value)
	var order []string
	var anon *value.Value
	var inlineRoot *value.Value
	var lastTable string
	tracker := collision.NewTracker()

	i := 0
	for i < len(lines) {
		line := lines[i]
		lineNo := i + 1

		if line == "" || line[0] == '#' {
			i++

			continue
		}

		if isTableHeader(line) {
			name, seq, consumed, err := d.decodeTable(lines, i, tracker)
			if err != nil {
				return nil, err
			}
			if name == "" {
				if anon != nil {
					return nil, errs.NewDecodeError(errs.CodeBadTableHeader, errs.ErrBadTableHeader, lineNo, 0, "document")
				}
				anon = seq
				lastTable = "(anonymous)"
			} else {
				if _, dup := leaves[name]; !dup {
					order = append(order, name)
				}
				leaves[name] = seq
				lastTable = name
			}
			i += consumed

			continue
		}

		if sep := topLevelColon(line); sep > 0 {
			key := line[:sep]
			if strings.HasPrefix(key, `"`) {
				var err error
				key, err = value.Unquote(key)
				if err != nil {
					return nil, errs.NewDecodeError(errs.CodeBadQuoting, err, lineNo, 1, "document")
				}
			}
			v, err := resolveCell(line[sep+1:], nil, limits)
			if err != nil {
				return nil, errs.NewDecodeError(codeFor(err), err, lineNo, sep+2, "document")
			}
			if _, dup := leaves[key]; !dup {
				order = append(order, key)
				if len(order) > limits.MaxMappingKeys {
					return nil, errs.NewDecodeError(errs.CodeMappingKeysExceeded, errs.ErrMappingKeysExceeded, lineNo, 0, "document")
				}
			}
			leaves[key] = v
			i++

			continue
		}

		if len(leaves) == 0 && anon == nil && inlineRoot == nil {
			v, err := value.ParseInline(line, limits)
			if err != nil {
				return nil, errs.NewDecodeError(codeFor(err), err, lineNo, 1, "document")
			}
			inlineRoot = v
			i++

			continue
		}

		// A bare data line outside any table block: in a document that holds
		// tables this is a surplus row.
		if lastTable != "" {
			return nil, errs.NewDecodeError(errs.CodeRowCountMismatch, errs.ErrRowCountMismatch, lineNo, 0, "table "+lastTable)
		}

		return nil, errs.NewDecodeError(errs.CodeBadTableHeader, errs.ErrBadTableHeader, lineNo, 0, "document")
	}

	if anon != nil {
		if len(leaves) > 0 || inlineRoot != nil {
			return nil, errs.NewDecodeError(errs.CodeBadTableHeader, errs.ErrBadTableHeader, 0, 0, "document")
		}

		return anon, nil
	}
	if inlineRoot != nil {
		if len(leaves) > 0 {
			return nil, errs.NewDecodeError(errs.CodeBadTableHeader, errs.ErrBadTableHeader, 0, 0, "document")
		}

		return inlineRoot, nil
	}

	root, err := flatten.Unflatten(leaves, order, limits.MaxNestingDepth, tracker)
	if err != nil {
		return nil, errs.NewDecodeError(codeFor(err), err, 0, 0, "document")
	}

	return root, nil
}

// decodeTable parses a table block starting at the header line and returns
// the table name, its record sequence, and the number of lines consumed.
func (d *Decoder) decodeTable(lines []string, start int, tracker *collision.Tracker) (string, *value.Value, int, error) {
	limits := d.cfg.Limits
	lenient := d.cfg.Mode == format.ModeLenient

	h, err := parseHeader(lines[start])
	if err != nil {
		return "", nil, 0, errs.NewDecodeError(codeFor(err), err, start+1, 0, "document")
	}
	ctx := "table " + h.name
	if h.name == "" {
		ctx = "table (anonymous)"
	}
	if h.rows > limits.MaxSequenceLen {
		return "", nil, 0, errs.NewDecodeError(errs.CodeSequenceLenExceeded, errs.ErrSequenceLenExceeded, start+1, 0, ctx)
	}
	if len(h.columns) > limits.MaxMappingKeys {
		return "", nil, 0, errs.NewDecodeError(errs.CodeMappingKeysExceeded, errs.ErrMappingKeysExceeded, start+1, 0, ctx)
	}

	i := start + 1
	var dict *dictionary
	if i < len(lines) && isDictionaryLine(lines[i]) {
		dict, err = parseDictionaryLine(lines[i])
		if err != nil {
			return "", nil, 0, errs.NewDecodeError(errs.CodeBadDictionary, err, i+1, 0, ctx)
		}
		i++
	}

	t := &table{name: h.name, columns: h.columns}
	prev := make([]*value.Value, len(h.columns))
	resolve := func(tok string) (*value.Value, error) {
		return resolveCell(tok, dict, limits)
	}

	for i < len(lines) {
		line := lines[i]
		lineNo := i + 1
		if line != "" && line[0] == '#' {
			i++

			continue
		}
		// A blank line is only a row when the table has zero columns, where
		// each record genuinely encodes as an empty line.
		if line == "" && len(h.columns) > 0 {
			i++

			continue
		}
		if isTableHeader(line) {
			break
		}
		if len(t.rows) >= h.rows && !lenient {
			break
		}
		// The sequence ceiling binds in both modes; lenient only relaxes the
		// declared row count, not the security limits.
		if len(t.rows) >= limits.MaxSequenceLen {
			return "", nil, 0, errs.NewDecodeError(errs.CodeSequenceLenExceeded, errs.ErrSequenceLenExceeded, lineNo, 0, ctx)
		}

		if isRunLine(line) {
			n, convErr := strconv.Atoi(line[:len(line)-1])
			if convErr != nil || n < 1 {
				return "", nil, 0, errs.NewDecodeError(errs.CodeBadRun, errs.ErrBadRun, lineNo, 0, ctx)
			}
			if len(t.rows)+n > limits.MaxSequenceLen {
				return "", nil, 0, errs.NewDecodeError(errs.CodeSequenceLenExceeded, errs.ErrSequenceLenExceeded, lineNo, 0, ctx)
			}
			if len(t.rows)+n > h.rows {
				if !lenient {
					return "", nil, 0, errs.NewDecodeError(errs.CodeRowCountMismatch, errs.ErrRowCountMismatch, lineNo, 0, ctx)
				}
			}
			for k := 0; k < n; k++ {
				r := len(t.rows)
				row := make([]*value.Value, len(h.columns))
				for c := range h.columns {
					v, rerr := h.rules[c].Reconstruct(r, format.GasToken, prev[c], resolve)
					if rerr != nil {
						return "", nil, 0, errs.NewDecodeError(codeFor(rerr), rerr, lineNo, c+1, ctx)
					}
					row[c] = v
					prev[c] = v
				}
				t.rows = append(t.rows, row)
				t.extras = append(t.extras, nil)
			}
			i++

			continue
		}

		row, extras, rowErr := d.parseRow(line, h, dict, prev, len(t.rows), lineNo, ctx)
		if rowErr != nil {
			return "", nil, 0, rowErr
		}
		t.rows = append(t.rows, row)
		t.extras = append(t.extras, extras)
		i++
	}

	if len(t.rows) != h.rows && !lenient {
		return "", nil, 0, errs.NewDecodeError(errs.CodeRowCountMismatch, errs.ErrRowCountMismatch, start+1, 0, ctx)
	}

	seq, err := t.records(limits.MaxNestingDepth, tracker)
	if err != nil {
		return "", nil, 0, errs.NewDecodeError(codeFor(err), err, start+1, 0, ctx)
	}

	return h.name, seq, i - start, nil
}

// parseRow reconstructs one data row. Anchor rows resolve cells explicitly;
// other rows replay each column's rule against its running state. Cells
// beyond the declared columns are tolerated when they carry their own
// key:value form, and merge into the record as sparse extras.
func (d *Decoder) parseRow(line string, h *tableHeader, dict *dictionary, prev []*value.Value, rowIdx, lineNo int, ctx string) ([]*value.Value, []value.Entry, error) {
	limits := d.cfg.Limits
	lenient := d.cfg.Mode == format.ModeLenient
	resolve := func(tok string) (*value.Value, error) {
		return resolveCell(tok, dict, limits)
	}

	cells := value.SplitFields(line)

	var extras []value.Entry
	if len(cells) > len(h.columns) {
		for n, cell := range cells[len(h.columns):] {
			sep := topLevelColon(cell)
			if sep <= 0 {
				if lenient {
					continue
				}

				return nil, nil, errs.NewDecodeError(errs.CodeFieldCountMismatch, errs.ErrFieldCountMismatch, lineNo, len(h.columns)+n+1, ctx)
			}
			key := cell[:sep]
			if strings.HasPrefix(key, `"`) {
				var err error
				key, err = value.Unquote(key)
				if err != nil {
					return nil, nil, errs.NewDecodeError(errs.CodeBadQuoting, err, lineNo, len(h.columns)+n+1, ctx)
				}
			}
			v, err := resolve(cell[sep+1:])
			if err != nil {
				return nil, nil, errs.NewDecodeError(codeFor(err), err, lineNo, len(h.columns)+n+1, ctx)
			}
			extras = append(extras, value.Field(key, v))
		}
		cells = cells[:len(h.columns)]
	} else if len(cells) < len(h.columns) && !lenient {
		return nil, nil, errs.NewDecodeError(errs.CodeFieldCountMismatch, errs.ErrFieldCountMismatch, lineNo, len(cells)+1, ctx)
	}

	anchor := rowIdx%h.interval == 0
	row := make([]*value.Value, len(h.columns))
	for c := range h.columns {
		if c >= len(cells) {
			// Lenient null-fill for short rows.
			row[c] = value.Null()
			prev[c] = row[c]

			continue
		}

		tok := cells[c]
		var v *value.Value
		var err error
		if anchor && !impliedToken(tok) {
			v, err = resolve(tok)
		} else {
			v, err = h.rules[c].Reconstruct(rowIdx, tok, prev[c], resolve)
		}
		if err != nil {
			return nil, nil, errs.NewDecodeError(codeFor(err), err, lineNo, c+1, ctx)
		}
		row[c] = v
		prev[c] = v
	}

	return row, extras, nil
}

// impliedToken reports whether a cell token defers to the column rule.
func impliedToken(tok string) bool {
	return tok == "" || tok == format.GasToken || tok == format.DittoToken
}

// resolveCell parses an explicit cell token: dictionary references, inline
// container literals, and scalar tokens. An empty cell reads as null.
func resolveCell(tok string, dict *dictionary, limits format.Limits) (*value.Value, error) {
	if tok == "" {
		return value.Null(), nil
	}
	if isDictRef(tok) {
		s, err := dict.resolve(tok)
		if err != nil {
			return nil, err
		}

		return value.Text(s), nil
	}
	if tok[0] == '[' || tok[0] == '{' {
		return value.ParseInline(tok, limits)
	}

	return value.ParseScalar(tok)
}

// codeFor maps a sentinel error to its stable code.
func codeFor(err error) string {
	switch {
	case errors.Is(err, errs.ErrRowCountMismatch):
		return errs.CodeRowCountMismatch
	case errors.Is(err, errs.ErrFieldCountMismatch):
		return errs.CodeFieldCountMismatch
	case errors.Is(err, errs.ErrBadQuoting):
		return errs.CodeBadQuoting
	case errors.Is(err, errs.ErrUnknownStrategy):
		return errs.CodeUnknownStrategy
	case errors.Is(err, errs.ErrEnumIndexRange):
		return errs.CodeEnumIndexRange
	case errors.Is(err, errs.ErrBadTableHeader):
		return errs.CodeBadTableHeader
	case errors.Is(err, errs.ErrBadDictionary):
		return errs.CodeBadDictionary
	case errors.Is(err, errs.ErrBadRun):
		return errs.CodeBadRun
	case errors.Is(err, errs.ErrDocumentSizeExceeded):
		return errs.CodeDocumentSizeExceeded
	case errors.Is(err, errs.ErrLineLengthExceeded):
		return errs.CodeLineLengthExceeded
	case errors.Is(err, errs.ErrSequenceLenExceeded):
		return errs.CodeSequenceLenExceeded
	case errors.Is(err, errs.ErrMappingKeysExceeded):
		return errs.CodeMappingKeysExceeded
	case errors.Is(err, errs.ErrNestingDepthExceeded):
		return errs.CodeNestingDepthExceeded
	default:
		return errs.CodeBadTableHeader
	}
}
