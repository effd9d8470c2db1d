package schema

import (
	"fmt"
	"regexp"
	"slices"
)

// HookFunc transforms a raw value before coercion.
type HookFunc func(value any) (any, error)

// ValidatorFunc receives a coerced value and returns the value to store.
// A non-nil error marks the field as failed.
type ValidatorFunc func(value any) (any, error)

// Field declares one field of a record schema.
// A field is required unless it has a default; Optional declares a nil default.
type Field struct {
	Name        string
	Type        Type
	Title       string
	Description string
	Examples    []any

	Default    any
	HasDefault bool
	Nullable   bool

	// Strict disables coercion between representations ("30" is not an integer).
	Strict bool

	Gt, Ge, Lt, Le       *float64
	MinLength, MaxLength *int
	Pattern              *regexp.Regexp
	Choices              []any

	// Elem describes mapping values and sequence items.
	Elem *Field
	// Schema describes a nested record.
	Schema *Schema

	Before     []HookFunc
	Validators []ValidatorFunc
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// NewField builds a field of any type.
func NewField(name string, typ Type, opts ...FieldOption) Field {
	f := Field{Name: name, Type: typ}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func String(name string, opts ...FieldOption) Field {
	return NewField(name, TypeString, opts...)
}

// Int declares an integer field. Values are stored as int64.
func Int(name string, opts ...FieldOption) Field {
	return NewField(name, TypeInteger, opts...)
}

// Float declares a number field. Values are stored as float64.
func Float(name string, opts ...FieldOption) Field {
	return NewField(name, TypeNumber, opts...)
}

func Bool(name string, opts ...FieldOption) Field {
	return NewField(name, TypeBoolean, opts...)
}

func URL(name string, opts ...FieldOption) Field {
	return NewField(name, TypeURL, opts...)
}

func Email(name string, opts ...FieldOption) Field {
	return NewField(name, TypeEmail, opts...)
}

// UUID declares a field stored as uuid.UUID.
func UUID(name string, opts ...FieldOption) Field {
	return NewField(name, TypeUUID, opts...)
}

// Map declares a mapping with string keys and values of the given element type.
func Map(name string, elem Type, opts ...FieldOption) Field {
	return MapOf(name, Field{Type: elem}, opts...)
}

// MapOf declares a mapping whose values follow elem.
func MapOf(name string, elem Field, opts ...FieldOption) Field {
	return NewField(name, TypeMapping, append([]FieldOption{Elem(elem)}, opts...)...)
}

// List declares a sequence of values of the given element type.
func List(name string, elem Type, opts ...FieldOption) Field {
	return ListOf(name, Field{Type: elem}, opts...)
}

// ListOf declares a sequence whose items follow elem.
func ListOf(name string, elem Field, opts ...FieldOption) Field {
	return NewField(name, TypeList, append([]FieldOption{Elem(elem)}, opts...)...)
}

// Nested declares a field validated by another schema.
func Nested(name string, s *Schema, opts ...FieldOption) Field {
	f := NewField(name, TypeRecord, opts...)
	f.Schema = s
	return f
}

// Default sets the value used when the field is absent. Defaults are not validated.
func Default(v any) FieldOption {
	return func(f *Field) {
		f.Default = v
		f.HasDefault = true
	}
}

// Optional accepts nil and defaults to nil unless a default is set.
func Optional() FieldOption {
	return func(f *Field) {
		f.Nullable = true
		if !f.HasDefault {
			f.HasDefault = true
			f.Default = nil
		}
	}
}

// Nullable accepts an explicit nil while keeping the field required.
func Nullable() FieldOption {
	return func(f *Field) { f.Nullable = true }
}

func Strict() FieldOption {
	return func(f *Field) { f.Strict = true }
}

func Gt(v float64) FieldOption {
	return func(f *Field) { f.Gt = &v }
}

func Ge(v float64) FieldOption {
	return func(f *Field) { f.Ge = &v }
}

func Lt(v float64) FieldOption {
	return func(f *Field) { f.Lt = &v }
}

func Le(v float64) FieldOption {
	return func(f *Field) { f.Le = &v }
}

// MinLength bounds characters for strings, items for sequences and keys for mappings.
func MinLength(n int) FieldOption {
	return func(f *Field) { f.MinLength = &n }
}

func MaxLength(n int) FieldOption {
	return func(f *Field) { f.MaxLength = &n }
}

// Pattern panics on an invalid expression, like regexp.MustCompile.
func Pattern(expr string) FieldOption {
	re := regexp.MustCompile(expr)
	return func(f *Field) { f.Pattern = re }
}

// OneOf restricts the value to the given choices.
func OneOf(choices ...any) FieldOption {
	return func(f *Field) { f.Choices = append(f.Choices, choices...) }
}

func Title(title string) FieldOption {
	return func(f *Field) { f.Title = title }
}

func Description(desc string) FieldOption {
	return func(f *Field) { f.Description = desc }
}

func Examples(examples ...any) FieldOption {
	return func(f *Field) { f.Examples = append(f.Examples, examples...) }
}

// Before registers a hook that runs on the raw value before coercion.
func Before(fn HookFunc) FieldOption {
	return func(f *Field) { f.Before = append(f.Before, fn) }
}

// Validate registers a validator that runs after coercion, format and bound checks.
func Validate(fn ValidatorFunc) FieldOption {
	return func(f *Field) { f.Validators = append(f.Validators, fn) }
}

// ValidateAs registers a typed validator. The coerced value must be a T
// (string, int64, float64, bool, uuid.UUID, map[string]any, []any or *Record).
func ValidateAs[T any](fn func(T) (T, error)) FieldOption {
	return Validate(func(value any) (any, error) {
		v, ok := value.(T)
		if !ok {
			var zero T
			return nil, fmt.Errorf("validator expects %T, got %T", zero, value)
		}
		return fn(v)
	})
}

// Elem replaces the element declaration of a mapping or sequence field.
func Elem(elem Field) FieldOption {
	return func(f *Field) { f.Elem = &elem }
}

// Required reports whether the field must be present in raw input.
func (f Field) Required() bool {
	return !f.HasDefault
}

func (f Field) clone() Field {
	f.Examples = slices.Clone(f.Examples)
	f.Choices = slices.Clone(f.Choices)
	f.Before = slices.Clone(f.Before)
	f.Validators = slices.Clone(f.Validators)
	if f.Elem != nil {
		elem := f.Elem.clone()
		f.Elem = &elem
	}
	return f
}
