package schema

import (
	"fmt"
	"slices"
	"strings"
)

// RecordValidatorFunc inspects a fully resolved record. A non-nil error aborts construction.
type RecordValidatorFunc func(r *Record) error

// ComputeFunc derives a value from resolved fields. It must be pure.
type ComputeFunc func(r *Record) any

// ExtraPolicy controls keys in raw input that the schema does not declare.
type ExtraPolicy int

const (
	// ExtraIgnore drops unknown keys, including computed field names.
	ExtraIgnore ExtraPolicy = iota
	// ExtraForbid reports unknown keys as extra_forbidden errors.
	ExtraForbid
)

// ComputedField is a derived, read-only field.
type ComputedField struct {
	Name        string
	Type        Type
	Title       string
	Description string
	Compute     ComputeFunc
}

type recordValidator struct {
	name string
	fn   RecordValidatorFunc
}

// Schema is an immutable record declaration. It is safe for concurrent use.
type Schema struct {
	name        string
	title       string
	description string
	fields      []Field
	index       map[string]int
	validators  []recordValidator
	computed    []ComputedField
	extra       ExtraPolicy
}

// Option configures a Schema.
type Option func(*Schema)

// WithTitle sets the schema title used in JSON Schema output.
func WithTitle(title string) Option {
	return func(s *Schema) { s.title = title }
}

func WithDescription(desc string) Option {
	return func(s *Schema) { s.description = desc }
}

// WithRecordValidator registers a whole-record validator. Validators run in
// registration order and the first failure stops construction.
func WithRecordValidator(name string, fn RecordValidatorFunc) Option {
	return func(s *Schema) {
		s.validators = append(s.validators, recordValidator{name: name, fn: fn})
	}
}

// WithComputed registers a computed field evaluated after all validators pass.
func WithComputed(name string, typ Type, fn ComputeFunc) Option {
	return WithComputedField(ComputedField{Name: name, Type: typ, Compute: fn})
}

func WithComputedField(cf ComputedField) Option {
	return func(s *Schema) { s.computed = append(s.computed, cf) }
}

func WithExtra(policy ExtraPolicy) Option {
	return func(s *Schema) { s.extra = policy }
}

// New declares a schema. It returns ErrInvalidSchema when the declaration is inconsistent.
func New(name string, fields []Field, opts ...Option) (*Schema, error) {
	s := &Schema{
		name:   name,
		fields: make([]Field, 0, len(fields)),
	}
	for _, f := range fields {
		s.fields = append(s.fields, f.clone())
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNew works like New but panics on an invalid declaration.
func MustNew(name string, fields []Field, opts ...Option) *Schema {
	s, err := New(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Extend declares a new schema holding the receiver's fields, validators and
// computed fields followed by the given ones. A field with an existing name
// replaces the inherited declaration in place.
func (s *Schema) Extend(name string, fields []Field, opts ...Option) (*Schema, error) {
	merged := make([]Field, 0, len(s.fields)+len(fields))
	merged = append(merged, s.fields...)
	for _, f := range fields {
		if i := slices.IndexFunc(merged, func(existing Field) bool { return existing.Name == f.Name }); i >= 0 {
			merged[i] = f
			continue
		}
		merged = append(merged, f)
	}

	inherited := make([]Option, 0, len(s.validators)+len(s.computed)+4+len(opts))
	inherited = append(inherited, WithTitle(s.title), WithDescription(s.description), WithExtra(s.extra))
	for _, v := range s.validators {
		inherited = append(inherited, WithRecordValidator(v.name, v.fn))
	}
	for _, cf := range s.computed {
		inherited = append(inherited, WithComputedField(cf))
	}
	return New(name, merged, append(inherited, opts...)...)
}

func (s *Schema) Name() string { return s.name }

// Fields returns a copy of the field declarations in order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.clone()
	}
	return out
}

func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i].clone(), true
}

// FieldNames lists stored fields in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// ComputedNames lists computed fields in declaration order.
func (s *Schema) ComputedNames() []string {
	names := make([]string, len(s.computed))
	for i, cf := range s.computed {
		names[i] = cf.Name
	}
	return names
}

func (s *Schema) computedField(name string) (ComputedField, bool) {
	for _, cf := range s.computed {
		if cf.Name == name {
			return cf, true
		}
	}
	return ComputedField{}, false
}

func (s *Schema) init() error {
	if strings.TrimSpace(s.name) == "" {
		return fmt.Errorf("%w: schema name is empty", ErrInvalidSchema)
	}

	s.index = make(map[string]int, len(s.fields))
	for i := range s.fields {
		f := &s.fields[i]
		if err := checkField(f, true); err != nil {
			return fmt.Errorf("%w: schema %q: %v", ErrInvalidSchema, s.name, err)
		}
		if _, dup := s.index[f.Name]; dup {
			return fmt.Errorf("%w: schema %q: duplicate field %q", ErrInvalidSchema, s.name, f.Name)
		}
		s.index[f.Name] = i
	}

	seen := make(map[string]bool, len(s.computed))
	for _, cf := range s.computed {
		switch {
		case cf.Name == "" || strings.Contains(cf.Name, "."):
			return fmt.Errorf("%w: schema %q: invalid computed field name %q", ErrInvalidSchema, s.name, cf.Name)
		case cf.Compute == nil:
			return fmt.Errorf("%w: schema %q: computed field %q has no function", ErrInvalidSchema, s.name, cf.Name)
		case !cf.Type.valid():
			return fmt.Errorf("%w: schema %q: computed field %q has unknown type %q", ErrInvalidSchema, s.name, cf.Name, cf.Type)
		case seen[cf.Name]:
			return fmt.Errorf("%w: schema %q: duplicate computed field %q", ErrInvalidSchema, s.name, cf.Name)
		}
		if _, clash := s.index[cf.Name]; clash {
			return fmt.Errorf("%w: schema %q: computed field %q shadows a stored field", ErrInvalidSchema, s.name, cf.Name)
		}
		seen[cf.Name] = true
	}

	for _, v := range s.validators {
		if v.fn == nil {
			return fmt.Errorf("%w: schema %q: record validator %q is nil", ErrInvalidSchema, s.name, v.name)
		}
	}
	return nil
}

// checkField validates a declaration and normalizes its choices.
// Element declarations are anonymous, named fields are not.
func checkField(f *Field, named bool) error {
	if named && (f.Name == "" || strings.Contains(f.Name, ".")) {
		return fmt.Errorf("invalid field name %q", f.Name)
	}
	if !f.Type.valid() {
		return fmt.Errorf("field %q: unknown type %q", f.Name, f.Type)
	}

	if f.Type == TypeRecord && f.Schema == nil {
		return fmt.Errorf("field %q: nested record has no schema", f.Name)
	}
	if f.Type == TypeMapping || f.Type == TypeList {
		if f.Elem == nil {
			f.Elem = &Field{Type: TypeAny}
		}
		if err := checkField(f.Elem, false); err != nil {
			return fmt.Errorf("field %q: element: %v", f.Name, err)
		}
	}

	if (f.Gt != nil || f.Ge != nil || f.Lt != nil || f.Le != nil) && !f.Type.numeric() {
		return fmt.Errorf("field %q: numeric bounds on %s field", f.Name, f.Type)
	}
	if lo, hi, ok := numericRange(f); ok && (lo.value > hi.value || (lo.value == hi.value && (lo.exclusive || hi.exclusive))) {
		return fmt.Errorf("field %q: empty numeric range", f.Name)
	}

	if (f.MinLength != nil || f.MaxLength != nil) && !f.Type.sized() {
		return fmt.Errorf("field %q: length bounds on %s field", f.Name, f.Type)
	}
	if (f.MinLength != nil && *f.MinLength < 0) || (f.MaxLength != nil && *f.MaxLength < 0) {
		return fmt.Errorf("field %q: negative length bound", f.Name)
	}
	if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
		return fmt.Errorf("field %q: min length exceeds max length", f.Name)
	}
	if f.Pattern != nil && !f.Type.textual() {
		return fmt.Errorf("field %q: pattern on %s field", f.Name, f.Type)
	}

	if len(f.Choices) > 0 {
		if _, ok := scalarCoercers[f.Type]; !ok {
			return fmt.Errorf("field %q: choices on %s field", f.Name, f.Type)
		}
		for i, c := range f.Choices {
			v, ok := canonicalChoice(f.Type, c)
			if !ok {
				return fmt.Errorf("field %q: choice %v is not a valid %s", f.Name, c, f.Type.label())
			}
			f.Choices[i] = v
		}
	}

	for _, fn := range f.Before {
		if fn == nil {
			return fmt.Errorf("field %q: nil before hook", f.Name)
		}
	}
	for _, fn := range f.Validators {
		if fn == nil {
			return fmt.Errorf("field %q: nil validator", f.Name)
		}
	}

	if f.HasDefault {
		f.Default = canonicalDefault(f, f.Default)
	}
	return nil
}

type bound struct {
	value     float64
	exclusive bool
}

// numericRange returns the effective lower and upper bounds when both exist.
func numericRange(f *Field) (lo, hi bound, ok bool) {
	var hasLo, hasHi bool
	if f.Ge != nil {
		lo, hasLo = bound{value: *f.Ge}, true
	}
	if f.Gt != nil && (!hasLo || *f.Gt >= lo.value) {
		lo, hasLo = bound{value: *f.Gt, exclusive: true}, true
	}
	if f.Le != nil {
		hi, hasHi = bound{value: *f.Le}, true
	}
	if f.Lt != nil && (!hasHi || *f.Lt <= hi.value) {
		hi, hasHi = bound{value: *f.Lt, exclusive: true}, true
	}
	return lo, hi, hasLo && hasHi
}
