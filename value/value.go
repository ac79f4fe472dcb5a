package value

import (
	"fmt"
	"math"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindText
	KindSequence
	KindMapping
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is the closed tagged union the codec accepts and produces:
// Null | Bool | Int | Float | Text | Sequence | Mapping.
//
// Mapping entries keep document order for deterministic re-emission, but
// equality is order-insensitive: mapping keys are unique and insertion order
// carries no meaning.
type Value struct {
	kind Kind

	boolVal  bool
	intVal   int64
	floatVal float64
	textVal  string

	seqVal []*Value
	mapVal []Entry
}

// Entry is a key-value pair in a Mapping.
type Entry struct {
	Key   string
	Value *Value
}

// Null creates a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Int creates an integer value.
func Int(v int64) *Value {
	return &Value{kind: KindInt, intVal: v}
}

// Float creates a float value. NaN and ±Inf have no canonical textual form
// and normalize to Null at construction, so they can never reach the wire.
func Float(v float64) *Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Null()
	}

	return &Value{kind: KindFloat, floatVal: v}
}

// Text creates a text value.
func Text(v string) *Value {
	return &Value{kind: KindText, textVal: v}
}

// Sequence creates a sequence value.
func Sequence(elems ...*Value) *Value {
	return &Value{kind: KindSequence, seqVal: elems}
}

// Mapping creates a mapping value from ordered entries.
func Mapping(entries ...Entry) *Value {
	return &Value{kind: KindMapping, mapVal: entries}
}

// Field creates an Entry for use in Mapping construction.
func Field(key string, v *Value) Entry {
	return Entry{Key: key, Value: v}
}

// Kind returns the variant tag. A nil *Value reads as Null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}

	return v.kind
}

// IsNull returns true for nil or null values.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if v.Kind() != KindBool {
		return false, fmt.Errorf("zon: expected bool, got %s", v.Kind())
	}

	return v.boolVal, nil
}

// AsInt returns the integer value.
func (v *Value) AsInt() (int64, error) {
	if v.Kind() != KindInt {
		return 0, fmt.Errorf("zon: expected int, got %s", v.Kind())
	}

	return v.intVal, nil
}

// AsFloat returns the float value.
func (v *Value) AsFloat() (float64, error) {
	if v.Kind() != KindFloat {
		return 0, fmt.Errorf("zon: expected float, got %s", v.Kind())
	}

	return v.floatVal, nil
}

// AsText returns the text value.
func (v *Value) AsText() (string, error) {
	if v.Kind() != KindText {
		return "", fmt.Errorf("zon: expected text, got %s", v.Kind())
	}

	return v.textVal, nil
}

// AsSequence returns the sequence elements.
func (v *Value) AsSequence() ([]*Value, error) {
	if v.Kind() != KindSequence {
		return nil, fmt.Errorf("zon: expected sequence, got %s", v.Kind())
	}

	return v.seqVal, nil
}

// AsMapping returns the mapping entries in document order.
func (v *Value) AsMapping() ([]Entry, error) {
	if v.Kind() != KindMapping {
		return nil, fmt.Errorf("zon: expected mapping, got %s", v.Kind())
	}

	return v.mapVal, nil
}

// Len returns the element count of a sequence or mapping, zero otherwise.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindSequence:
		return len(v.seqVal)
	case KindMapping:
		return len(v.mapVal)
	default:
		return 0
	}
}

// Get returns the value for key in a mapping, or nil when absent.
func (v *Value) Get(key string) *Value {
	if v.Kind() != KindMapping {
		return nil
	}
	for _, e := range v.mapVal {
		if e.Key == key {
			return e.Value
		}
	}

	return nil
}

// Set replaces or appends a mapping entry.
func (v *Value) Set(key string, val *Value) {
	if v.kind != KindMapping {
		panic("zon: Set on non-mapping value")
	}
	for i := range v.mapVal {
		if v.mapVal[i].Key == key {
			v.mapVal[i].Value = val
			return
		}
	}
	v.mapVal = append(v.mapVal, Entry{Key: key, Value: val})
}

// Append adds an element to a sequence.
func (v *Value) Append(val *Value) {
	if v.kind != KindSequence {
		panic("zon: Append on non-sequence value")
	}
	v.seqVal = append(v.seqVal, val)
}

// Number returns a numeric value as float64 when int or float.
func (v *Value) Number() (float64, bool) {
	switch v.Kind() {
	case KindInt:
		return float64(v.intVal), true
	case KindFloat:
		return v.floatVal, true
	default:
		return 0, false
	}
}

// IsNumeric returns true for int or float values.
func (v *Value) IsNumeric() bool {
	k := v.Kind()
	return k == KindInt || k == KindFloat
}

// IsScalar returns true for anything that is not a sequence or mapping.
func (v *Value) IsScalar() bool {
	k := v.Kind()
	return k != KindSequence && k != KindMapping
}

// Equal reports deep equality. Int and Float values never compare equal even
// when numerically identical; mapping comparison ignores entry order.
func Equal(a, b *Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}

	switch a.Kind() {
	case KindNull:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindInt:
		return a.intVal == b.intVal
	case KindFloat:
		return a.floatVal == b.floatVal
	case KindText:
		return a.textVal == b.textVal
	case KindSequence:
		if len(a.seqVal) != len(b.seqVal) {
			return false
		}
		for i := range a.seqVal {
			if !Equal(a.seqVal[i], b.seqVal[i]) {
				return false
			}
		}

		return true
	case KindMapping:
		if len(a.mapVal) != len(b.mapVal) {
			return false
		}
		for _, e := range a.mapVal {
			if !b.has(e.Key) {
				return false
			}
			if !Equal(e.Value, b.Get(e.Key)) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

func (v *Value) has(key string) bool {
	for _, e := range v.mapVal {
		if e.Key == key {
			return true
		}
	}

	return false
}

// String renders the value as its inline literal form, for diagnostics.
func (v *Value) String() string {
	return Inline(v)
}
