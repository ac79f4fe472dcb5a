package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FromJSON converts a JSON document to a Value tree.
//
// Numbers decode through json.Number so the int/float distinction survives:
// a token without fraction or exponent becomes Int, anything else Float.
// Object key order is preserved.
func FromJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := fromJSONToken(dec)
	if err != nil {
		return nil, fmt.Errorf("zon: json parse: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("zon: json parse: trailing data")
	}

	return v, nil
}

func fromJSONToken(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return Text(t), nil
	case json.Number:
		return fromJSONNumber(t), nil
	case json.Delim:
		switch t {
		case '[':
			seq := Sequence()
			for dec.More() {
				elem, err := fromJSONToken(dec)
				if err != nil {
					return nil, err
				}
				seq.Append(elem)
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return nil, err
			}

			return seq, nil
		case '{':
			m := Mapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := keyTok.(string)
				val, err := fromJSONToken(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // closing '}'
				return nil, err
			}

			return m, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func fromJSONNumber(n json.Number) *Value {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return Int(i)
		}
	}
	if f, err := n.Float64(); err == nil {
		return Float(f)
	}

	return Text(s)
}

// ToJSON converts a Value tree to compact JSON.
func ToJSON(v *Value) ([]byte, error) {
	var b bytes.Buffer
	if err := appendJSON(&b, v); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

func appendJSON(b *bytes.Buffer, v *Value) error {
	switch v.Kind() {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.boolVal {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindInt:
		fmt.Fprintf(b, "%d", v.intVal)
	case KindFloat:
		b.WriteString(formatFloat(v.floatVal))
	case KindText:
		enc, err := json.Marshal(v.textVal)
		if err != nil {
			return err
		}
		b.Write(enc)
	case KindSequence:
		b.WriteByte('[')
		for i, e := range v.seqVal {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := appendJSON(b, e); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case KindMapping:
		b.WriteByte('{')
		for i, e := range v.mapVal {
			if i > 0 {
				b.WriteByte(',')
			}
			enc, err := json.Marshal(e.Key)
			if err != nil {
				return err
			}
			b.Write(enc)
			b.WriteByte(':')
			if err := appendJSON(b, e.Value); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	}

	return nil
}
