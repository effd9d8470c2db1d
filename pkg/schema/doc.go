// Package schema declares record schemas and turns raw input mappings into
// validated, immutable records.
//
// A Schema is an ordered list of Field declarations plus optional whole-record
// validators and computed fields. Validate runs every field through the same
// pipeline: presence and defaults, before hooks, coercion to the field's
// semantic Type, format checks, bound checks and field validators. All field
// failures are collected into a validator.ValidationErrors with dotted paths
// ("address.zip", "allergies.1"). Record validators run only when every field
// passed, in registration order, and the first failure stops construction.
// Computed fields are evaluated last.
//
// # Usage
//
//	patient := schema.MustNew("Patient", []schema.Field{
//	    schema.String("name", schema.MaxLength(30)),
//	    schema.Int("age", schema.Strict(), schema.Gt(0), schema.Lt(110)),
//	    schema.Email("email"),
//	    schema.List("allergies", schema.TypeString, schema.Optional()),
//	})
//
//	rec, err := patient.Validate(map[string]any{"name": "Ada", "age": 30, "email": "ada@example.com"})
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // inspect verrs.ByField()
//	}
//
//	out, err := rec.Dump(schema.Exclude("address.state"))
//
// # Coercion
//
// Without Strict, integers accept integral floats and numeric strings, numbers
// accept numeric strings and booleans accept common textual forms. Strict keeps
// only the native representation. Numbers accept integers in both modes.
//
// # Serialization
//
// Dump, DumpJSON and DumpYAML accept Include or Exclude selectors, never both
// (ErrConflictingSelectors). JSONSchema exports the declaration and
// CompileJSONSchema compiles it for checking plain JSON values.
package schema
