package schema

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// scalarCoercer converts a raw value into the canonical Go representation of a type.
// strict disables conversions between representations.
type scalarCoercer func(value any, strict bool) (any, bool)

// scalarCoercers is the coercion table for non-composite types.
// Mappings, sequences and records recurse through the engine instead.
var scalarCoercers = map[Type]scalarCoercer{
	TypeString:  coerceString,
	TypeInteger: coerceInteger,
	TypeNumber:  coerceNumber,
	TypeBoolean: coerceBoolean,
	TypeURL:     coerceString,
	TypeEmail:   coerceString,
	TypeUUID:    coerceUUID,
}

func coerceString(value any, strict bool) (any, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		if strict {
			return nil, false
		}
		return string(v), true
	}
	return nil, false
}

func coerceInteger(value any, strict bool) (any, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return uintToInt64(uint64(v))
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return uintToInt64(v)
	case float32:
		if strict {
			return nil, false
		}
		return floatToInt64(float64(v))
	case float64:
		if strict {
			return nil, false
		}
		return floatToInt64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if strict {
			return nil, false
		}
		f, err := v.Float64()
		if err != nil {
			return nil, false
		}
		return floatToInt64(f)
	case string:
		if strict {
			return nil, false
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	}
	return nil, false
}

func uintToInt64(v uint64) (any, bool) {
	if v > math.MaxInt64 {
		return nil, false
	}
	return int64(v), true
}

// floatToInt64 accepts only finite floats without a fractional part.
func floatToInt64(f float64) (any, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, false
	}
	return int64(f), true
}

// coerceNumber accepts integers even in strict mode; only strings are refused.
func coerceNumber(value any, strict bool) (any, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return nil, false
		}
		f = n
	case string:
		if strict {
			return nil, false
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, false
		}
		f = n
	default:
		n, ok := coerceInteger(value, true)
		if !ok {
			return nil, false
		}
		f = float64(n.(int64))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}

func coerceBoolean(value any, strict bool) (any, bool) {
	if b, ok := value.(bool); ok {
		return b, true
	}
	if strict {
		return nil, false
	}
	if s, ok := value.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "yes", "y", "on", "t":
			return true, true
		case "false", "0", "no", "n", "off", "f":
			return false, true
		}
		return nil, false
	}
	if n, ok := coerceInteger(value, true); ok {
		switch n.(int64) {
		case 0:
			return false, true
		case 1:
			return true, true
		}
	}
	return nil, false
}

// coerceUUID accepts uuid.UUID values and strings; string syntax is checked as a format.
func coerceUUID(value any, _ bool) (any, bool) {
	switch v := value.(type) {
	case uuid.UUID:
		return v, true
	case string:
		return v, true
	case []byte:
		if len(v) == 16 {
			id, err := uuid.FromBytes(v)
			return id, err == nil
		}
	}
	return nil, false
}

// canonicalChoice converts a declared choice into the representation stored by the engine.
func canonicalChoice(t Type, choice any) (any, bool) {
	coerce, ok := scalarCoercers[t]
	if !ok {
		return nil, false
	}
	v, ok := coerce(choice, false)
	if !ok {
		return nil, false
	}
	if s, isString := v.(string); isString && t == TypeUUID {
		id, err := uuid.Parse(s)
		return id, err == nil
	}
	return v, true
}

// canonicalDefault converts a declared default to the representation the
// field stores, so accessors see a default like any validated value.
// Values that do not convert are kept as given.
func canonicalDefault(f *Field, v any) any {
	if v == nil {
		return nil
	}
	switch f.Type {
	case TypeList:
		items, ok := asList(v)
		if !ok {
			return v
		}
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = canonicalDefault(f.Elem, item)
		}
		return out
	case TypeMapping:
		m, ok := asMapping(v)
		if !ok {
			return v
		}
		out := make(map[string]any, len(m))
		for k, item := range m {
			out[k] = canonicalDefault(f.Elem, item)
		}
		return out
	}
	if c, ok := canonicalChoice(f.Type, v); ok {
		return c
	}
	return v
}
