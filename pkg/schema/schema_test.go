package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

func TestNewRejectsInconsistentDeclarations(t *testing.T) {
	address := schema.MustNew("Address", []schema.Field{schema.String("city")})
	compute := func(*schema.Record) any { return nil }

	tests := []struct {
		name   string
		fields []schema.Field
		opts   []schema.Option
	}{
		{"duplicate field", []schema.Field{schema.String("a"), schema.Int("a")}, nil},
		{"empty field name", []schema.Field{schema.String("")}, nil},
		{"dotted field name", []schema.Field{schema.String("a.b")}, nil},
		{"unknown type", []schema.Field{schema.NewField("a", "date")}, nil},
		{"nested without schema", []schema.Field{schema.Nested("a", nil)}, nil},
		{"numeric bound on string", []schema.Field{schema.String("a", schema.Gt(1))}, nil},
		{"empty numeric range", []schema.Field{schema.Int("a", schema.Gt(5), schema.Lt(5))}, nil},
		{"inverted numeric range", []schema.Field{schema.Int("a", schema.Ge(10), schema.Le(1))}, nil},
		{"length bound on integer", []schema.Field{schema.Int("a", schema.MaxLength(3))}, nil},
		{"inverted length range", []schema.Field{schema.String("a", schema.MinLength(5), schema.MaxLength(2))}, nil},
		{"negative length", []schema.Field{schema.String("a", schema.MinLength(-1))}, nil},
		{"pattern on boolean", []schema.Field{schema.Bool("a", schema.Pattern("x"))}, nil},
		{"choice of wrong type", []schema.Field{schema.Int("a", schema.OneOf("x"))}, nil},
		{"choices on nested record", []schema.Field{schema.Nested("a", address, schema.OneOf("x"))}, nil},
		{"nil validator", []schema.Field{schema.String("a", schema.Validate(nil))}, nil},
		{"invalid element", []schema.Field{schema.ListOf("a", schema.Field{Type: "nope"})}, nil},
		{"computed shadows field", []schema.Field{schema.String("a")}, []schema.Option{schema.WithComputed("a", schema.TypeString, compute)}},
		{"computed without function", nil, []schema.Option{schema.WithComputed("c", schema.TypeString, nil)}},
		{"duplicate computed", nil, []schema.Option{
			schema.WithComputed("c", schema.TypeString, compute),
			schema.WithComputed("c", schema.TypeString, compute),
		}},
		{"nil record validator", nil, []schema.Option{schema.WithRecordValidator("v", nil)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := schema.New("Broken", tt.fields, tt.opts...)
			assert.ErrorIs(t, err, schema.ErrInvalidSchema)
			assert.Nil(t, s)
		})
	}

	t.Run("empty schema name", func(t *testing.T) {
		_, err := schema.New(" ", nil)
		assert.ErrorIs(t, err, schema.ErrInvalidSchema)
	})

	t.Run("MustNew panics", func(t *testing.T) {
		assert.Panics(t, func() {
			schema.MustNew("Broken", []schema.Field{schema.String("a"), schema.String("a")})
		})
	})
}

func TestSchemaAccessors(t *testing.T) {
	s := schema.MustNew("Patient", []schema.Field{
		schema.String("name", schema.Title("Name"), schema.OneOf("a", "b")),
		schema.Int("age"),
	}, schema.WithComputed("label", schema.TypeString, func(r *schema.Record) any { return r.String("name") }))

	assert.Equal(t, "Patient", s.Name())
	assert.Equal(t, []string{"name", "age"}, s.FieldNames())
	assert.Equal(t, []string{"label"}, s.ComputedNames())

	f, ok := s.Field("name")
	require.True(t, ok)
	assert.Equal(t, "Name", f.Title)
	assert.True(t, f.Required())

	t.Run("returned declarations are copies", func(t *testing.T) {
		fields := s.Fields()
		fields[0].Choices[0] = "z"
		again, _ := s.Field("name")
		assert.Equal(t, []any{"a", "b"}, again.Choices)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, ok := s.Field("nope")
		assert.False(t, ok)
	})
}

func TestExtend(t *testing.T) {
	base := schema.MustNew("Base", []schema.Field{
		schema.String("name"),
		schema.Int("age"),
	}, schema.WithTitle("Base record"))

	ext, err := base.Extend("Extended", []schema.Field{
		schema.Int("age", schema.Gt(0)),
		schema.Email("email"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age", "email"}, ext.FieldNames())
	assert.Equal(t, []string{"name", "age"}, base.FieldNames())

	_, err = ext.Validate(map[string]any{"name": "a", "age": 0, "email": "a@b.co"})
	assert.Error(t, err)
	_, err = base.Validate(map[string]any{"name": "a", "age": 0})
	assert.NoError(t, err)
}
