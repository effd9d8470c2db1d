package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/schemakit/pkg/validator"
)

// Validate builds a record from raw input. On failure the returned error is a
// validator.ValidationErrors holding every field error, or the single error of
// the first failing record validator.
func (s *Schema) Validate(raw map[string]any) (*Record, error) {
	rec, errs := s.build(raw, "")
	if len(errs) > 0 {
		return nil, errs
	}
	return rec, nil
}

// MustValidate works like Validate but panics on invalid input.
func (s *Schema) MustValidate(raw map[string]any) *Record {
	rec, err := s.Validate(raw)
	if err != nil {
		panic(err)
	}
	return rec
}

// ValidateJSON decodes a JSON object, keeping numbers exact, and validates it.
func (s *Schema) ValidateJSON(data []byte) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after the top-level object", ErrInvalidInput)
	}
	return s.Validate(raw)
}

// ValidateYAML decodes a YAML mapping and validates it.
func (s *Schema) ValidateYAML(data []byte) (*Record, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}
	return s.Validate(raw)
}

// build runs the whole pipeline for one record. path prefixes reported errors.
func (s *Schema) build(raw map[string]any, path string) (*Record, validator.ValidationErrors) {
	var errs validator.ValidationErrors
	values := make(map[string]any, len(s.fields))

	for i := range s.fields {
		f := &s.fields[i]
		fieldPath := validator.JoinPath(path, f.Name)

		value, present := raw[f.Name]
		if !present {
			if f.HasDefault {
				values[f.Name] = cloneValue(f.Default)
				continue
			}
			errs.Add(missingError(fieldPath))
			continue
		}

		v, fieldErrs := f.resolve(value, fieldPath)
		if len(fieldErrs) > 0 {
			errs = append(errs, fieldErrs...)
			continue
		}
		values[f.Name] = v
	}

	if s.extra == ExtraForbid {
		for _, key := range slices.Sorted(maps.Keys(raw)) {
			if _, declared := s.index[key]; !declared {
				errs.Add(extraError(validator.JoinPath(path, key), raw[key]))
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	rec := &Record{schema: s, values: values}
	for _, v := range s.validators {
		if err := v.fn(rec); err != nil {
			return nil, recordErrors(path, v.name, err)
		}
	}

	rec.computed = make(map[string]any, len(s.computed))
	for _, cf := range s.computed {
		rec.computed[cf.Name] = cf.Compute(rec)
	}
	return rec, nil
}

// resolve runs hooks, coercion, format, bounds and field validators for one value.
func (f *Field) resolve(value any, path string) (any, validator.ValidationErrors) {
	for _, hook := range f.Before {
		v, err := hook(value)
		if err != nil {
			return nil, fieldValidatorErrors(path, value, err)
		}
		value = v
	}

	if value == nil {
		if f.Nullable || f.Type == TypeAny {
			return nil, nil
		}
		return nil, validator.ValidationErrors{typeError(path, f.Type, value)}
	}

	v, errs := f.coerce(value, path)
	if len(errs) > 0 {
		return nil, errs
	}

	if errs := f.checkFormat(v, path); len(errs) > 0 {
		return nil, errs
	}
	if s, ok := v.(string); ok && f.Type == TypeUUID {
		// format check above guarantees the syntax
		v = mustParseUUID(s)
	}

	if errs := f.checkBounds(v, path); len(errs) > 0 {
		return nil, errs
	}

	for _, fn := range f.Validators {
		out, err := fn(v)
		if err != nil {
			return nil, fieldValidatorErrors(path, v, err)
		}
		if returned, isErr := out.(error); isErr {
			return nil, fieldValidatorErrors(path, v, returned)
		}
		v = out
	}
	return v, nil
}

// coerce dispatches to the scalar coercion table or recurses into composites.
func (f *Field) coerce(value any, path string) (any, validator.ValidationErrors) {
	switch f.Type {
	case TypeAny:
		return cloneValue(value), nil
	case TypeRecord:
		return f.coerceRecord(value, path)
	case TypeMapping:
		return f.coerceMapping(value, path)
	case TypeList:
		return f.coerceList(value, path)
	}

	coerce := scalarCoercers[f.Type]
	v, ok := coerce(value, f.Strict)
	if !ok {
		return nil, validator.ValidationErrors{typeError(path, f.Type, value)}
	}
	return v, nil
}

func (f *Field) coerceRecord(value any, path string) (any, validator.ValidationErrors) {
	switch v := value.(type) {
	case *Record:
		if v != nil && v.schema == f.Schema {
			return v, nil
		}
	case map[string]any:
		rec, errs := f.Schema.build(v, path)
		if len(errs) > 0 {
			return nil, errs
		}
		return rec, nil
	}
	return nil, validator.ValidationErrors{typeError(path, f.Type, value)}
}

func (f *Field) coerceMapping(value any, path string) (any, validator.ValidationErrors) {
	src, ok := asMapping(value)
	if !ok {
		return nil, validator.ValidationErrors{typeError(path, f.Type, value)}
	}

	var errs validator.ValidationErrors
	out := make(map[string]any, len(src))
	for _, key := range slices.Sorted(maps.Keys(src)) {
		v, itemErrs := f.Elem.resolve(src[key], validator.JoinPath(path, key))
		if len(itemErrs) > 0 {
			errs = append(errs, itemErrs...)
			continue
		}
		out[key] = v
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (f *Field) coerceList(value any, path string) (any, validator.ValidationErrors) {
	src, ok := asList(value)
	if !ok {
		return nil, validator.ValidationErrors{typeError(path, f.Type, value)}
	}

	var errs validator.ValidationErrors
	out := make([]any, 0, len(src))
	for i, item := range src {
		v, itemErrs := f.Elem.resolve(item, validator.JoinPath(path, strconv.Itoa(i)))
		if len(itemErrs) > 0 {
			errs = append(errs, itemErrs...)
			continue
		}
		out = append(out, v)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func asMapping(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[string]string:
		out := make(map[string]any, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		return toAnySlice(v), true
	case []int:
		return toAnySlice(v), true
	case []int64:
		return toAnySlice(v), true
	case []float64:
		return toAnySlice(v), true
	case []bool:
		return toAnySlice(v), true
	case []map[string]any:
		return toAnySlice(v), true
	}
	return nil, false
}

func toAnySlice[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// checkFormat runs the built-in syntax checks of url, email and uuid fields.
func (f *Field) checkFormat(v any, path string) validator.ValidationErrors {
	s, ok := v.(string)
	if !ok {
		return nil
	}

	var rules []validator.Rule
	switch f.Type {
	case TypeEmail:
		rules = append(rules, validator.ValidEmail(path, s))
	case TypeURL:
		rules = append(rules, validator.ValidURL(path, s))
	case TypeUUID:
		rules = append(rules, validator.ValidUUID(path, s))
	}
	if f.Pattern != nil {
		rules = append(rules, validator.MatchesRegex(path, s, f.Pattern))
	}
	return validator.Collect(rules...)
}

// checkBounds applies numeric, length and choice constraints. Strict never disables them.
func (f *Field) checkBounds(v any, path string) validator.ValidationErrors {
	var rules []validator.Rule

	if n, ok := asFloat(v); ok && f.Type.numeric() {
		if f.Gt != nil {
			rules = append(rules, validator.GreaterThan(path, n, *f.Gt))
		}
		if f.Ge != nil {
			rules = append(rules, validator.MinNum(path, n, *f.Ge))
		}
		if f.Lt != nil {
			rules = append(rules, validator.LessThan(path, n, *f.Lt))
		}
		if f.Le != nil {
			rules = append(rules, validator.MaxNum(path, n, *f.Le))
		}
	}

	switch val := v.(type) {
	case string:
		if f.MinLength != nil {
			rules = append(rules, validator.MinLenString(path, val, *f.MinLength))
		}
		if f.MaxLength != nil {
			rules = append(rules, validator.MaxLenString(path, val, *f.MaxLength))
		}
	case []any:
		if f.MinLength != nil {
			rules = append(rules, validator.MinLenSlice(path, val, *f.MinLength))
		}
		if f.MaxLength != nil {
			rules = append(rules, validator.MaxLenSlice(path, val, *f.MaxLength))
		}
	case map[string]any:
		if f.MinLength != nil {
			rules = append(rules, validator.MinLenMap(path, val, *f.MinLength))
		}
		if f.MaxLength != nil {
			rules = append(rules, validator.MaxLenMap(path, val, *f.MaxLength))
		}
	}

	if len(f.Choices) > 0 {
		rules = append(rules, validator.InList(path, v, f.Choices))
	}

	errs := validator.Collect(rules...)
	for i := range errs {
		errs[i].Value = v
	}
	return errs
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func missingError(path string) validator.ValidationError {
	return validator.ValidationError{
		Field:          path,
		Code:           validator.CodeMissing,
		Message:        "field is required",
		TranslationKey: "validation.required",
		TranslationValues: map[string]any{
			"field": path,
		},
	}
}

func typeError(path string, t Type, value any) validator.ValidationError {
	return validator.ValidationError{
		Field:          path,
		Code:           validator.CodeTypeMismatch,
		Message:        "must be a valid " + t.label(),
		Value:          value,
		TranslationKey: "validation.type_mismatch",
		TranslationValues: map[string]any{
			"field": path,
			"type":  t.label(),
		},
	}
}

func extraError(path string, value any) validator.ValidationError {
	return validator.ValidationError{
		Field:          path,
		Code:           validator.CodeExtraForbidden,
		Message:        "extra fields are not permitted",
		Value:          value,
		TranslationKey: "validation.extra_forbidden",
		TranslationValues: map[string]any{
			"field": path,
		},
	}
}

// fieldValidatorErrors reports a hook or validator failure. Rule failures
// returned as validator.ValidationErrors keep their messages and keys.
func fieldValidatorErrors(path string, value any, err error) validator.ValidationErrors {
	if verrs := validator.ExtractValidationErrors(err); len(verrs) > 0 {
		var out validator.ValidationErrors
		out.Merge(path, verrs)
		for i := range out {
			out[i].Code = validator.CodeFieldValidator
			if out[i].Value == nil {
				out[i].Value = value
			}
		}
		return out
	}
	return validator.ValidationErrors{{
		Field:          path,
		Code:           validator.CodeFieldValidator,
		Message:        err.Error(),
		Value:          value,
		TranslationKey: "validation.field_validator",
		TranslationValues: map[string]any{
			"field":   path,
			"message": err.Error(),
		},
	}}
}

func recordErrors(path, name string, err error) validator.ValidationErrors {
	if verrs := validator.ExtractValidationErrors(err); len(verrs) > 0 {
		var out validator.ValidationErrors
		out.Merge(path, verrs)
		for i := range out {
			out[i].Code = validator.CodeRecordValidator
		}
		return out
	}
	return validator.ValidationErrors{{
		Field:          path,
		Code:           validator.CodeRecordValidator,
		Message:        err.Error(),
		TranslationKey: "validation.record_validator",
		TranslationValues: map[string]any{
			"field":     path,
			"validator": name,
			"message":   err.Error(),
		},
	}}
}

func mustParseUUID(s string) any {
	id, err := uuid.Parse(s)
	if err != nil {
		panic(fmt.Sprintf("schema: uuid %q passed format check: %v", s, err))
	}
	return id
}
