package codec

import (
	"sort"

	"github.com/arloliu/zon/internal/collision"
	"github.com/arloliu/zon/internal/flatten"
	"github.com/arloliu/zon/internal/hash"
	"github.com/arloliu/zon/value"
)

// table is the transient column layout derived from one record sequence.
// It exists only for the duration of a single encode or decode call.
type table struct {
	// name is the dotted path of the record list, empty for the anonymous
	// table of a top-level sequence document.
	name string

	// columns are the union of the records' leaf paths, sorted
	// lexicographically for deterministic output.
	columns []string

	// rows is the row-major value matrix; every row has len(columns) cells,
	// absent paths filled with null.
	rows [][]*value.Value

	// extras holds per-row sparse key:value pairs beyond the declared
	// columns, populated only on decode.
	extras [][]value.Entry
}

// isRecordList reports whether a sequence qualifies as a table: non-empty
// and every element a mapping. Everything else serializes as an atomic
// inline literal.
func isRecordList(v *value.Value) bool {
	elems, err := v.AsSequence()
	if err != nil || len(elems) == 0 {
		return false
	}
	for _, e := range elems {
		if e.Kind() != value.KindMapping {
			return false
		}
	}

	return true
}

// buildTable flattens each record and lays the sequence out as a column
// matrix.
//
// Records sharing a shape signature reuse the first record's path order
// directly; a mixed sequence falls back to the union of all paths with
// null-fill for the absent ones.
func buildTable(name string, elems []*value.Value, tracker *collision.Tracker) *table {
	flats := make([]flatten.Flat, len(elems))
	shapes := make([]uint64, len(elems))
	uniform := true
	for i, rec := range elems {
		// Collision state is scoped per record; the same path appearing in
		// every row is the normal table shape, not a collision.
		rt := collision.NewTracker()
		flats[i] = flatten.Flatten(rec, rt)
		if tracker != nil {
			for _, p := range rt.Dropped() {
				tracker.Drop(p)
			}
		}
		sorted := append([]string(nil), flats[i].Paths...)
		sort.Strings(sorted)
		shapes[i] = hash.Shape(sorted)
		if i > 0 && shapes[i] != shapes[0] {
			uniform = false
		}
	}

	var columns []string
	if uniform {
		columns = append([]string(nil), flats[0].Paths...)
		sort.Strings(columns)
	} else {
		seen := make(map[string]struct{})
		for _, f := range flats {
			for _, p := range f.Paths {
				if _, ok := seen[p]; !ok {
					seen[p] = struct{}{}
					columns = append(columns, p)
				}
			}
		}
		sort.Strings(columns)
	}

	rows := make([][]*value.Value, len(elems))
	for i, f := range flats {
		row := make([]*value.Value, len(columns))
		for c, col := range columns {
			if v, ok := f.Leaves[col]; ok {
				row[c] = v
			} else {
				row[c] = value.Null()
			}
		}
		rows[i] = row
	}

	return &table{name: name, columns: columns, rows: rows}
}

// column returns the ordered values of column c across all rows.
func (t *table) column(c int) []*value.Value {
	vals := make([]*value.Value, len(t.rows))
	for r, row := range t.rows {
		vals[r] = row[c]
	}

	return vals
}

// records rebuilds the table rows as nested record mappings, merging any
// per-row sparse extras after the declared columns.
func (t *table) records(maxDepth int, tracker *collision.Tracker) (*value.Value, error) {
	seq := value.Sequence()
	for r, row := range t.rows {
		leaves := make(map[string]*value.Value, len(t.columns))
		order := t.columns
		for c, col := range t.columns {
			leaves[col] = row[c]
		}
		if r < len(t.extras) && len(t.extras[r]) > 0 {
			order = append([]string(nil), t.columns...)
			for _, e := range t.extras[r] {
				if _, dup := leaves[e.Key]; !dup {
					order = append(order, e.Key)
				}
				leaves[e.Key] = e.Value
			}
		}
		rec, err := flatten.Unflatten(leaves, order, maxDepth, tracker)
		if err != nil {
			return nil, err
		}
		seq.Append(rec)
	}

	return seq, nil
}
