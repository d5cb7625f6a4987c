// Package trace records the ordered stream of game events and randomness draws as
// JSON lines, one self-describing object per line with keys in sorted order, so that
// two runs can be diffed record by record.
package trace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// EventKey is the discriminator present on every record.
const EventKey = "event"

// Fields holds the named values of a record. Keys must not collide with EventKey.
type Fields map[string]any

// Clone copies the fields together with any nested slices and maps, so that the copy
// can be changed without touching the original.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case []int:
		return slices.Clone(v)
	case []string:
		return slices.Clone(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	case Fields:
		return v.Clone()
	case map[string]any:
		return map[string]any(Fields(v).Clone())
	default:
		return v
	}
}

// Record is one entry of a trace.
type Record struct {
	Event  string
	Fields Fields
}

// Get returns a field value.
func (r Record) Get(key string) any {
	return r.Fields[key]
}

func (r Record) MarshalJSON() ([]byte, error) {
	return encode(r)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	event, ok := raw[EventKey].(string)
	if !ok {
		return errors.New("record without a string event field")
	}
	delete(raw, EventKey)
	r.Event = event
	r.Fields = raw
	return nil
}

// Canonical renders the record as the exact line written to a trace file, without the
// trailing newline. Two records are structurally equal iff their canonical forms are.
func (r Record) Canonical() string {
	b, err := encode(r)
	if err != nil {
		return fmt.Sprintf("{%q:%q,\"unencodable\":%q}", EventKey, r.Event, err.Error())
	}
	return string(b)
}

// Equal compares two records structurally.
func Equal(a, b Record) bool {
	return a.Canonical() == b.Canonical()
}

func encode(r Record) ([]byte, error) {
	flat := make(map[string]any, len(r.Fields)+1)
	for k, v := range r.Fields {
		flat[k] = v
	}
	flat[EventKey] = r.Event

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// map keys are emitted in sorted order
	if err := enc.Encode(flat); err != nil {
		return nil, fmt.Errorf("encode %s record: %w", r.Event, err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
