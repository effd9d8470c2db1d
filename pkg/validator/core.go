package validator

import (
	"errors"
	"fmt"
	"strings"
)

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Code classifies a validation failure.
type Code string

const (
	CodeMissing         Code = "missing"
	CodeTypeMismatch    Code = "type_mismatch"
	CodeFormatInvalid   Code = "format_invalid"
	CodeOutOfBounds     Code = "out_of_bounds"
	CodeFieldValidator  Code = "field_validator"
	CodeRecordValidator Code = "record_validator"
	CodeExtraForbidden  Code = "extra_forbidden"
)

// ValidationError represents a single validation error with translation support.
// Field is a dotted path ("address.zip") and is empty for record-level failures.
type ValidationError struct {
	Field             string
	Code              Code
	Message           string
	Value             any
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range ve {
		if err.Field == "" {
			parts = append(parts, err.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

// Merge appends errs with their field paths nested under prefix.
func (ve *ValidationErrors) Merge(prefix string, errs ValidationErrors) {
	for _, err := range errs {
		err.Field = JoinPath(prefix, err.Field)
		if err.TranslationValues != nil {
			if _, ok := err.TranslationValues["field"]; ok {
				values := make(map[string]any, len(err.TranslationValues))
				for k, v := range err.TranslationValues {
					values[k] = v
				}
				values["field"] = err.Field
				err.TranslationValues = values
			}
		}
		*ve = append(*ve, err)
	}
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// HasCode reports whether field failed with the given code.
func (ve ValidationErrors) HasCode(field string, code Code) bool {
	for _, err := range ve {
		if err.Field == field && err.Code == code {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) GetErrors(field string) []ValidationError {
	var errors []ValidationError
	for _, err := range ve {
		if err.Field == field {
			errors = append(errors, err)
		}
	}
	return errors
}

// ByField groups errors by field path.
func (ve ValidationErrors) ByField() map[string][]ValidationError {
	grouped := make(map[string][]ValidationError, len(ve))
	for _, err := range ve {
		grouped[err.Field] = append(grouped[err.Field], err)
	}
	return grouped
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Rule represents a single validation rule.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply executes multiple validation rules and returns any validation errors.
func Apply(rules ...Rule) error {
	errs := Collect(rules...)
	if errs.IsEmpty() {
		return nil
	}

	return errs
}

// Collect executes rules and returns the failures without wrapping them into an error.
func Collect(rules ...Rule) ValidationErrors {
	var errors ValidationErrors

	for _, rule := range rules {
		if !rule.Check() {
			errors = append(errors, rule.Error)
		}
	}

	return errors
}

// JoinPath joins a parent path and a child path with a dot.
func JoinPath(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	default:
		return parent + "." + child
	}
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}
