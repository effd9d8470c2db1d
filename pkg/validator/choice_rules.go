package validator

import (
	"fmt"
	"slices"
)

// InList validates that value is one of the allowed values.
func InList[T comparable](field string, value T, allowedValues []T) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(allowedValues, value)
		},
		Error: ValidationError{
			Field:          field,
			Code:           CodeFormatInvalid,
			Message:        fmt.Sprintf("must be one of: %v", allowedValues),
			Value:          value,
			TranslationKey: "validation.in_list",
			TranslationValues: map[string]any{
				"field":   field,
				"allowed": allowedValues,
			},
		},
	}
}
