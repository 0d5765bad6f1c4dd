package lookup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Status sentinels attached in place of field data.
const (
	// StatusNotConfigured means the store has no record for the rule.
	StatusNotConfigured = "Not Configured in DB"

	// StatusError means the lookup failed.
	StatusError = "Error fetching data"

	// StatusNotFound is reported by some collaborators instead of
	// StatusNotConfigured.
	StatusNotFound = "Not Found"
)

// Field is one column of a rule's stored configuration.
type Field struct {
	Key   string
	Value any
}

// Result is the outcome of one lookup: either ordered field data or a status.
type Result struct {
	Status string
	Fields []Field
}

// StatusResult returns a Result carrying only a status.
func StatusResult(status string) Result {
	return Result{Status: status}
}

// FieldsResult returns a Result carrying field data.
func FieldsResult(fields []Field) Result {
	return Result{Fields: fields}
}

// FromMap builds a field Result from an unordered map, sorting keys.
// A map holding a string "status" becomes a status Result.
func FromMap(m map[string]any) Result {
	if s, ok := m["status"].(string); ok {
		return StatusResult(s)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, Field{Key: k, Value: m[k]})
	}
	return FieldsResult(fields)
}

// IsStatus reports whether the result is a status sentinel.
func (r Result) IsStatus() bool {
	return r.Status != ""
}

// Get returns the value of the named field.
func (r Result) Get(key string) (any, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Pairs renders the result for reports: the status itself, or one
// "key: value" line per field.
func (r Result) Pairs() string {
	if r.IsStatus() {
		return r.Status
	}
	lines := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		lines[i] = f.Key + ": " + FormatValue(f.Value)
	}
	return strings.Join(lines, "\n")
}

// FormatValue renders a field value the way reports show it.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case []byte:
		return string(t)
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// MarshalJSON encodes a status result as {"status": ...} and field data as an
// object with keys in field order.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.IsStatus() {
		return json.Marshal(map[string]string{"status": r.Status})
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object produced by MarshalJSON. Key order is
// preserved; numbers decode as json.Number.
func (r *Result) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("lookup result must be a JSON object")
	}

	var fields []Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var val any
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		fields = append(fields, Field{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = Result{}
	for _, f := range fields {
		if f.Key == "status" {
			if s, ok := f.Value.(string); ok {
				r.Status = s
				return nil
			}
		}
	}
	r.Fields = fields
	return nil
}
