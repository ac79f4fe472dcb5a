// Package flatten converts between nested mappings and flat dotted-path maps.
//
// A leaf is anything that is not a non-empty mapping: scalars, sequences of
// any shape, and empty mappings all flatten to a single path. Sequences are
// never split into per-element paths here: flattening arbitrary arrays into
// columns would need multi-valued cells and break the one-path-one-scalar
// invariant, so they stay atomic and serialize as inline literals.
package flatten

import (
	"strings"

	"github.com/arloliu/zon/errs"
	"github.com/arloliu/zon/internal/collision"
	"github.com/arloliu/zon/value"
)

// Separator joins mapping keys into a flattened path.
const Separator = "."

// Flat is the result of flattening one record: leaf values addressed by
// dotted path, plus the paths in depth-first document order.
type Flat struct {
	Leaves map[string]*value.Value
	Paths  []string
}

// Flatten converts a mapping into its flat dotted-path form.
//
// A literal key containing the separator can collide with a nested descent
// producing the same path string; tracker applies the nested-wins policy and
// records the dropped path. Pass nil to drop collisions silently.
func Flatten(m *value.Value, tracker *collision.Tracker) Flat {
	f := Flat{Leaves: make(map[string]*value.Value)}
	entries, err := m.AsMapping()
	if err != nil {
		return f
	}
	flattenInto(&f, "", entries, tracker)

	return f
}

func flattenInto(f *Flat, prefix string, entries []value.Entry, tracker *collision.Tracker) {
	for _, e := range entries {
		path := e.Key
		if prefix != "" {
			path = prefix + Separator + e.Key
		}

		if e.Value.Kind() == value.KindMapping && e.Value.Len() > 0 {
			sub, _ := e.Value.AsMapping()
			flattenInto(f, path, sub, tracker)

			continue
		}

		origin := collision.OriginNested
		if strings.Contains(e.Key, Separator) {
			origin = collision.OriginLiteral
		}

		if tracker != nil {
			if !tracker.Track(path, origin) {
				continue
			}
		} else if _, dup := f.Leaves[path]; dup {
			continue
		}

		if _, dup := f.Leaves[path]; !dup {
			f.Paths = append(f.Paths, path)
		}
		f.Leaves[path] = e.Value
	}
}

// Unflatten rebuilds a nested mapping from dotted paths, creating
// intermediate mappings on demand. Paths are applied in order; when an
// intermediate segment already holds a non-mapping value the whole path is
// dropped and recorded, never overwriting the existing value.
//
// maxDepth caps the segment count per path so adversarial input cannot force
// unbounded tree depth.
func Unflatten(leaves map[string]*value.Value, order []string, maxDepth int, tracker *collision.Tracker) (*value.Value, error) {
	root := value.Mapping()

	for _, path := range order {
		v, ok := leaves[path]
		if !ok {
			continue
		}

		segs := strings.Split(path, Separator)
		if len(segs) > maxDepth {
			return nil, errs.ErrNestingDepthExceeded
		}

		cur := root
		dropped := false
		for _, seg := range segs[:len(segs)-1] {
			next := cur.Get(seg)
			if next == nil {
				next = value.Mapping()
				cur.Set(seg, next)
			} else if next.Kind() != value.KindMapping {
				if tracker != nil {
					tracker.Drop(path)
				}
				dropped = true

				break
			}
			cur = next
		}
		if dropped {
			continue
		}
		last := segs[len(segs)-1]
		// The final segment follows the same policy as intermediates: a
		// mapping built by an earlier path wins over a literal leaf landing
		// on the same key.
		if ex := cur.Get(last); ex != nil && ex.Kind() == value.KindMapping {
			if tracker != nil {
				tracker.Drop(path)
			}

			continue
		}
		cur.Set(last, v)
	}

	return root, nil
}
