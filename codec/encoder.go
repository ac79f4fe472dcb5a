package codec

import (
	"strconv"
	"sync"

	"github.com/arloliu/zon/errs"
	"github.com/arloliu/zon/format"
	"github.com/arloliu/zon/internal/collision"
	"github.com/arloliu/zon/internal/flatten"
	"github.com/arloliu/zon/internal/pool"
	"github.com/arloliu/zon/strategy"
	"github.com/arloliu/zon/value"
)

// Encoder converts a value tree into the textual document form. It is a pure
// function of its configuration and input; one Encoder may be used from
// multiple goroutines.
type Encoder struct {
	cfg *EncoderConfig
}

// NewEncoder creates an Encoder with the supplied options applied over the
// defaults.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg, err := NewEncoderConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Encoder{cfg: cfg}, nil
}

// Encode serializes root. The input must be a tree: a container reachable
// from itself fails with a circular reference error before any output is
// produced.
func (e *Encoder) Encode(root *value.Value) (string, error) {
	if err := checkCircular(root, make(map[*value.Value]struct{})); err != nil {
		return "", &errs.EncodeError{Err: err}
	}

	switch root.Kind() {
	case value.KindMapping:
		if root.Len() == 0 {
			return format.EmptyMappingDoc, nil
		}

		return e.encodeMapping(root)
	case value.KindSequence:
		if root.Len() == 0 {
			return format.EmptySequenceDoc, nil
		}

		return e.encodeSequence(root)
	default:
		return format.VersionMarker + "\n" + value.FormatScalar(root) + "\n", nil
	}
}

// checkCircular walks the ownership tree and fails when a container is
// reachable from itself.
func checkCircular(v *value.Value, onPath map[*value.Value]struct{}) error {
	switch v.Kind() {
	case value.KindSequence, value.KindMapping:
	default:
		return nil
	}

	if _, ok := onPath[v]; ok {
		return errs.ErrCircularReference
	}
	onPath[v] = struct{}{}
	defer delete(onPath, v)

	if v.Kind() == value.KindSequence {
		elems, _ := v.AsSequence()
		for _, elem := range elems {
			if err := checkCircular(elem, onPath); err != nil {
				return err
			}
		}

		return nil
	}

	entries, _ := v.AsMapping()
	for _, entry := range entries {
		if err := checkCircular(entry.Value, onPath); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) encodeMapping(root *value.Value) (string, error) {
	buf := pool.GetDocBuffer()
	defer pool.PutDocBuffer(buf)

	writeLine(buf, format.VersionMarker)

	tracker := collision.NewTracker()
	flat := flatten.Flatten(root, tracker)

	// Scalar lines first, then table blocks, per the document layout.
	var tables []*table
	for _, path := range flat.Paths {
		v := flat.Leaves[path]
		if isRecordList(v) {
			elems, _ := v.AsSequence()
			tables = append(tables, buildTable(path, elems, tracker))

			continue
		}

		_, _ = buf.WriteString(value.PackString(path))
		_ = buf.WriteByte(format.MetaSeparator)
		writeLine(buf, value.FormatScalar(v))
	}
	for _, t := range tables {
		e.encodeTable(buf, t)
	}

	return buf.String(), nil
}

func (e *Encoder) encodeSequence(root *value.Value) (string, error) {
	buf := pool.GetDocBuffer()
	defer pool.PutDocBuffer(buf)

	writeLine(buf, format.VersionMarker)

	if isRecordList(root) {
		elems, _ := root.AsSequence()
		e.encodeTable(buf, buildTable("", elems, collision.NewTracker()))
	} else {
		writeLine(buf, value.Inline(root))
	}

	return buf.String(), nil
}

// encodeTable emits one table block: header, optional dictionary line, and
// the row stream with anchor rows explicit and fully implied runs collapsed.
func (e *Encoder) encodeTable(buf *pool.ByteBuffer, t *table) {
	dict := buildDictionary(t)
	interval := e.cfg.AnchorInterval
	resolve := func(tok string) (*value.Value, error) {
		return resolveCell(tok, dict, e.cfg.Limits)
	}

	// Per-column tournament; columns share no mutable state, so they score
	// concurrently.
	explicit := make([][]string, len(t.columns))
	rules := make([]strategy.Rule, len(t.columns))
	var wg sync.WaitGroup
	for c := range t.columns {
		wg.Add(1)
		go func(c int) {
			defer wg.Done()
			vals := t.column(c)
			toks := make([]string, len(vals))
			for r, v := range vals {
				toks[r] = explicitToken(v, dict)
			}
			explicit[c] = toks
			rules[c] = strategy.Select(vals, toks, interval, resolve)
		}(c)
	}
	wg.Wait()

	writeLine(buf, headerLine(t.name, len(t.rows), interval, t.columns, rules))
	if dict != nil {
		writeLine(buf, dict.line())
	}

	prev := make([]*value.Value, len(t.columns))
	r := 0
	for r < len(t.rows) {
		if r%interval != 0 && len(t.columns) > 0 {
			if n := e.impliedRunLen(t, rules, prev, r); n >= 2 {
				_, _ = buf.WriteString(strconv.Itoa(n))
				_ = buf.WriteByte(format.RunSuffix)
				_ = buf.WriteByte('\n')
				for k := 0; k < n; k++ {
					for c := range t.columns {
						prev[c] = t.rows[r+k][c]
					}
				}
				r += n

				continue
			}
		}

		anchor := r%interval == 0
		for c := range t.columns {
			if c > 0 {
				_ = buf.WriteByte(format.FieldSeparator)
			}
			tok := explicit[c][r]
			if !anchor {
				tok = rules[c].Token(r, t.rows[r][c], prev[c], explicit[c][r])
			}
			_, _ = buf.WriteString(tok)
			prev[c] = t.rows[r][c]
		}
		_ = buf.WriteByte('\n')
		r++
	}
}

// impliedRunLen returns how many consecutive rows starting at r are fully
// implied by the column rules, stopping at the next anchor. State is
// simulated on a copy so the caller's running state is untouched.
func (e *Encoder) impliedRunLen(t *table, rules []strategy.Rule, prev []*value.Value, r int) int {
	sim := append([]*value.Value(nil), prev...)
	n := 0
	for r+n < len(t.rows) && (r+n)%e.cfg.AnchorInterval != 0 {
		implied := true
		for c := range t.columns {
			if !rules[c].Implied(r+n, t.rows[r+n][c], sim[c]) {
				implied = false

				break
			}
		}
		if !implied {
			break
		}
		for c := range t.columns {
			sim[c] = t.rows[r+n][c]
		}
		n++
	}

	return n
}

// explicitToken renders a cell value explicitly, preferring a dictionary
// reference for pooled strings.
func explicitToken(v *value.Value, dict *dictionary) string {
	if s, err := v.AsText(); err == nil {
		if ref, ok := dict.ref(s); ok {
			return ref
		}
	}

	return value.FormatScalar(v)
}

func writeLine(buf *pool.ByteBuffer, s string) {
	_, _ = buf.WriteString(s)
	_ = buf.WriteByte('\n')
}
