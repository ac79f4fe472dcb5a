package collision

// Origin identifies how a flattened path was produced.
type Origin uint8

const (
	// OriginLiteral means the path came from a single mapping key that happens
	// to contain the path separator (a literal "a.b" key).
	OriginLiteral Origin = iota

	// OriginNested means the path was produced by descending nested mappings
	// ({"a": {"b": ...}} flattening to "a.b").
	OriginNested
)

// Tracker detects dotted-path collisions while flattening and unflattening.
//
// Two distinct logical keys can collapse to the same path string when a
// literal key embeds the separator. The documented policy is nested wins: the
// literal flat key is dropped, never silently merged over the nested value.
// The tracker records every dropped path so callers can surface the loss.
type Tracker struct {
	seen    map[string]Origin
	dropped []string
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		seen: make(map[string]Origin),
	}
}

// Track registers a flattened path and reports whether the caller should keep
// the associated value.
//
// On a collision the nested origin wins: tracking a literal path after a
// nested one returns false, and tracking a nested path after a literal one
// returns true (the caller overwrites). Either way the losing path is
// recorded as dropped.
func (t *Tracker) Track(path string, origin Origin) bool {
	prev, exists := t.seen[path]
	if !exists {
		t.seen[path] = origin
		return true
	}

	if prev == OriginNested && origin == OriginLiteral {
		t.dropped = append(t.dropped, path)
		return false
	}
	if prev == OriginLiteral && origin == OriginNested {
		t.dropped = append(t.dropped, path)
		t.seen[path] = OriginNested

		return true
	}

	// Same origin twice: mapping keys are unique, so this can only be two
	// literal keys producing the same string. First one wins.
	t.dropped = append(t.dropped, path)

	return false
}

// Drop records a path that was lost during unflattening, when an intermediate
// segment already held a non-mapping value.
func (t *Tracker) Drop(path string) {
	t.dropped = append(t.dropped, path)
}

// HasCollision returns true if any path was dropped.
func (t *Tracker) HasCollision() bool {
	return len(t.dropped) > 0
}

// Dropped returns the dropped paths in the order they were lost.
func (t *Tracker) Dropped() []string {
	return t.dropped
}

// Reset clears all tracked state so the tracker can be reused.
func (t *Tracker) Reset() {
	for k := range t.seen {
		delete(t.seen, k)
	}
	t.dropped = t.dropped[:0]
}
