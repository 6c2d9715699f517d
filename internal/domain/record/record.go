package record

import (
	"bytes"
	"encoding/json"
)

// Record is one row of the registry table: an immutable field→value view.
// Values are always literal strings as loaded from the source, formatted
// identifiers included. Callers cannot mutate the backing store through a
// Record.
type Record struct {
	values map[string]string
}

// New creates a record from a field→value map. The map is copied.
func New(values map[string]string) Record {
	cp := make(map[string]string, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return Record{values: cp}
}

// Value returns the value of a field and whether the field exists.
func (r Record) Value(field string) (string, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Len returns the number of fields in the record.
func (r Record) Len() int { return len(r.values) }

// Projected is a record reduced to an allow-list of fields. Field order is
// the allow-list declaration order and is preserved through JSON marshaling.
type Projected struct {
	keys   []string
	values map[string]string
}

// Project builds the exposed view of a record: exactly the allow-listed
// fields the record actually has, in allow-list order. Fields absent from
// the record are omitted, not filled with placeholders.
func Project(r Record, exposed []string) Projected {
	p := Projected{values: make(map[string]string, len(exposed))}
	for _, f := range exposed {
		v, ok := r.values[f]
		if !ok {
			continue
		}
		p.keys = append(p.keys, f)
		p.values[f] = v
	}
	return p
}

// Fields returns the projected field names in projection order.
func (p Projected) Fields() []string {
	return append([]string(nil), p.keys...)
}

// Value returns the value of a projected field and whether it is present.
func (p Projected) Value(field string) (string, bool) {
	v, ok := p.values[field]
	return v, ok
}

// Len returns the number of projected fields.
func (p Projected) Len() int { return len(p.keys) }

// MarshalJSON emits a JSON object with keys in projection order.
// encoding/json would sort map keys, losing the configured field order.
func (p Projected) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
