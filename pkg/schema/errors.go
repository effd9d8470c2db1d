package schema

import "errors"

// Configuration errors. Validation failures are reported as validator.ValidationErrors instead.
var (
	// ErrInvalidSchema is returned when a schema declaration is inconsistent.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrConflictingSelectors is returned when include and exclude are combined in one dump.
	ErrConflictingSelectors = errors.New("include and exclude cannot be combined")

	// ErrUnknownField is returned when a record is asked for a field its schema does not declare.
	ErrUnknownField = errors.New("unknown field")

	// ErrDecode is returned when a record cannot be decoded into a Go value.
	ErrDecode = errors.New("failed to decode record")

	// ErrInvalidInput is returned when a JSON or YAML document is not an object.
	ErrInvalidInput = errors.New("invalid input document")
)
