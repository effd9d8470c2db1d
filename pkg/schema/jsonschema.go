package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
	jsv "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// defaultTitle turns a field name into a title: "linkedin_url" becomes "Linkedin Url".
func defaultTitle(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}

// JSONSchema describes the schema as a JSON Schema (draft 2020-12) document.
// Nested records are emitted once under $defs and referenced.
func (s *Schema) JSONSchema() *jsonschema.Schema {
	defs := jsonschema.Definitions{}
	root := s.objectSchema(defs)
	root.Version = jsonschema.Version
	if len(defs) > 0 {
		root.Definitions = defs
	}
	return root
}

// JSONSchemaBytes returns the indented JSON encoding of JSONSchema.
func (s *Schema) JSONSchemaBytes() ([]byte, error) {
	return json.MarshalIndent(s.JSONSchema(), "", "  ")
}

// CompileJSONSchema compiles the exported document so plain JSON values can be
// checked against it without building records. Formats are asserted.
func (s *Schema) CompileJSONSchema() (*jsv.Schema, error) {
	data, err := s.JSONSchemaBytes()
	if err != nil {
		return nil, fmt.Errorf("marshaling schema %q: %w", s.name, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling schema %q: %w", s.name, err)
	}

	url := s.name + ".schema.json"
	c := jsv.NewCompiler()
	c.AssertFormat()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("adding schema %q: %w", s.name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %q: %w", s.name, err)
	}
	return compiled, nil
}

func (s *Schema) objectSchema(defs jsonschema.Definitions) *jsonschema.Schema {
	out := &jsonschema.Schema{
		Type:        "object",
		Title:       s.title,
		Description: s.description,
		Properties:  jsonschema.NewProperties(),
	}
	if out.Title == "" {
		out.Title = s.name
	}
	if s.extra == ExtraForbid {
		out.AdditionalProperties = jsonschema.FalseSchema
	}

	for i := range s.fields {
		f := &s.fields[i]
		out.Properties.Set(f.Name, f.propertySchema(defs))
		if f.Required() {
			out.Required = append(out.Required, f.Name)
		}
	}

	for _, cf := range s.computed {
		prop := typeSchema(&Field{Type: cf.Type}, defs)
		prop = nullable(prop)
		prop.Title = cf.Title
		if prop.Title == "" {
			prop.Title = defaultTitle(cf.Name)
		}
		prop.Description = cf.Description
		prop.ReadOnly = true
		out.Properties.Set(cf.Name, prop)
	}
	return out
}

func (f *Field) propertySchema(defs jsonschema.Definitions) *jsonschema.Schema {
	prop := typeSchema(f, defs)
	if f.Nullable && f.Type != TypeAny {
		prop = nullable(prop)
	}

	prop.Title = f.Title
	if prop.Title == "" {
		prop.Title = defaultTitle(f.Name)
	}
	prop.Description = f.Description
	for _, ex := range f.Examples {
		prop.Examples = append(prop.Examples, jsonValue(ex))
	}
	if f.HasDefault && f.Default != nil {
		prop.Default = jsonValue(f.Default)
	}
	return prop
}

// typeSchema describes the value space of a field, constraints included.
func typeSchema(f *Field, defs jsonschema.Definitions) *jsonschema.Schema {
	out := &jsonschema.Schema{}

	switch f.Type {
	case TypeString:
		out.Type = "string"
	case TypeInteger:
		out.Type = "integer"
	case TypeNumber:
		out.Type = "number"
	case TypeBoolean:
		out.Type = "boolean"
	case TypeURL:
		out.Type, out.Format = "string", "uri"
	case TypeEmail:
		out.Type, out.Format = "string", "email"
	case TypeUUID:
		out.Type, out.Format = "string", "uuid"
	case TypeMapping:
		out.Type = "object"
		if f.Elem != nil && f.Elem.Type != TypeAny {
			out.AdditionalProperties = f.Elem.elementSchema(defs)
		}
	case TypeList:
		out.Type = "array"
		if f.Elem != nil && f.Elem.Type != TypeAny {
			out.Items = f.Elem.elementSchema(defs)
		}
	case TypeRecord:
		name := f.Schema.name
		if _, done := defs[name]; !done {
			// placeholder guards against self references
			defs[name] = &jsonschema.Schema{}
			defs[name] = f.Schema.objectSchema(defs)
		}
		return &jsonschema.Schema{Ref: "#/$defs/" + name}
	case TypeAny:
		return out
	}

	if f.Gt != nil {
		out.ExclusiveMinimum = number(*f.Gt)
	}
	if f.Ge != nil {
		out.Minimum = number(*f.Ge)
	}
	if f.Lt != nil {
		out.ExclusiveMaximum = number(*f.Lt)
	}
	if f.Le != nil {
		out.Maximum = number(*f.Le)
	}

	switch {
	case f.Type.textual():
		out.MinLength = length(f.MinLength)
		out.MaxLength = length(f.MaxLength)
	case f.Type == TypeList:
		out.MinItems = length(f.MinLength)
		out.MaxItems = length(f.MaxLength)
	case f.Type == TypeMapping:
		out.MinProperties = length(f.MinLength)
		out.MaxProperties = length(f.MaxLength)
	}

	if f.Pattern != nil {
		out.Pattern = f.Pattern.String()
	}
	for _, c := range f.Choices {
		out.Enum = append(out.Enum, jsonValue(c))
	}
	return out
}

func (f *Field) elementSchema(defs jsonschema.Definitions) *jsonschema.Schema {
	out := typeSchema(f, defs)
	if f.Nullable {
		out = nullable(out)
	}
	return out
}

func nullable(s *jsonschema.Schema) *jsonschema.Schema {
	if s.Ref == "" && s.Type == "" {
		return s
	}
	return &jsonschema.Schema{
		AnyOf: []*jsonschema.Schema{s, {Type: "null"}},
	}
}

func number(v float64) json.Number {
	return json.Number(strconv.FormatFloat(v, 'f', -1, 64))
}

func length(n *int) *uint64 {
	if n == nil {
		return nil
	}
	v := uint64(*n)
	return &v
}

// jsonValue renders defaults, examples and choices the way DumpJSON renders values.
func jsonValue(v any) any {
	switch val := v.(type) {
	case uuid.UUID:
		return val.String()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = jsonValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = jsonValue(item)
		}
		return out
	}
	return v
}
