package schema

import (
	"maps"
	"strings"

	"github.com/google/uuid"
)

// Record is a validated, immutable instance of a schema.
// Accessors return copies, so callers cannot mutate stored state.
type Record struct {
	schema   *Schema
	values   map[string]any
	computed map[string]any
}

func (r *Record) Schema() *Schema { return r.schema }

// Get returns a stored or computed value. Dotted paths walk nested records,
// mappings and sequences ("address.city", "allergies.0").
func (r *Record) Get(path string) (any, bool) {
	head, rest, nested := strings.Cut(path, ".")
	v, ok := r.lookup(head)
	if !ok {
		return nil, false
	}
	if !nested {
		return cloneValue(v), true
	}
	v, ok = walk(v, rest)
	if !ok {
		return nil, false
	}
	return cloneValue(v), true
}

func (r *Record) lookup(name string) (any, bool) {
	if v, ok := r.values[name]; ok {
		return v, true
	}
	v, ok := r.computed[name]
	return v, ok
}

func walk(v any, path string) (any, bool) {
	for _, part := range strings.Split(path, ".") {
		switch cur := v.(type) {
		case *Record:
			next, ok := cur.lookup(part)
			if !ok {
				return nil, false
			}
			v = next
		case map[string]any:
			next, ok := cur[part]
			if !ok {
				return nil, false
			}
			v = next
		case []any:
			i, ok := index(part, len(cur))
			if !ok {
				return nil, false
			}
			v = cur[i]
		default:
			return nil, false
		}
	}
	return v, true
}

func index(s string, n int) (int, bool) {
	if s == "" {
		return 0, false
	}
	i := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		i = i*10 + int(c-'0')
		if i >= n {
			return 0, false
		}
	}
	return i, true
}

// Has reports whether path resolves to a value, nil included.
func (r *Record) Has(path string) bool {
	_, ok := r.Get(path)
	return ok
}

// IsNil reports whether path is unset or holds nil.
func (r *Record) IsNil(path string) bool {
	v, ok := r.Get(path)
	return !ok || v == nil
}

func (r *Record) String(path string) string {
	v, _ := r.Get(path)
	s, _ := v.(string)
	return s
}

func (r *Record) Int(path string) int64 {
	v, _ := r.Get(path)
	n, _ := v.(int64)
	return n
}

// Float returns a number field. Integer values are widened.
func (r *Record) Float(path string) float64 {
	v, _ := r.Get(path)
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

// FloatOK distinguishes an unset or nil number from zero.
func (r *Record) FloatOK(path string) (float64, bool) {
	v, _ := r.Get(path)
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func (r *Record) Bool(path string) bool {
	v, _ := r.Get(path)
	b, _ := v.(bool)
	return b
}

func (r *Record) UUID(path string) uuid.UUID {
	v, _ := r.Get(path)
	id, _ := v.(uuid.UUID)
	return id
}

func (r *Record) Map(path string) map[string]any {
	v, _ := r.Get(path)
	m, _ := v.(map[string]any)
	return m
}

// StringMap returns the string values of a mapping, skipping others.
func (r *Record) StringMap(path string) map[string]string {
	m := r.Map(path)
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

func (r *Record) List(path string) []any {
	v, _ := r.Get(path)
	l, _ := v.([]any)
	return l
}

// Strings returns the string items of a sequence, skipping others.
func (r *Record) Strings(path string) []string {
	l := r.List(path)
	if l == nil {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, v := range l {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Record returns a nested record, or nil.
func (r *Record) Record(path string) *Record {
	v, _ := r.Get(path)
	rec, _ := v.(*Record)
	return rec
}

// Values returns a copy of the stored fields, computed fields excluded.
func (r *Record) Values() map[string]any {
	return cloneValue(r.values).(map[string]any)
}

// cloneValue deep copies mappings and sequences. Records are immutable and shared.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case map[string]string:
		return maps.Clone(val)
	case []string:
		return append([]string(nil), val...)
	}
	return v
}
