package validator

import "fmt"

func MinLenSlice[T any](field string, value []T, min int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) >= min
		},
		Error: ValidationError{
			Field:          field,
			Code:           CodeOutOfBounds,
			Message:        fmt.Sprintf("must have at least %d items", min),
			Value:          value,
			TranslationKey: "validation.min_items",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
			},
		},
	}
}

func MaxLenSlice[T any](field string, value []T, max int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) <= max
		},
		Error: ValidationError{
			Field:          field,
			Code:           CodeOutOfBounds,
			Message:        fmt.Sprintf("must have at most %d items", max),
			Value:          value,
			TranslationKey: "validation.max_items",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

func MinLenMap[K comparable, V any](field string, value map[K]V, min int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) >= min
		},
		Error: ValidationError{
			Field:          field,
			Code:           CodeOutOfBounds,
			Message:        fmt.Sprintf("must have at least %d items", min),
			Value:          value,
			TranslationKey: "validation.min_items",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
			},
		},
	}
}

func MaxLenMap[K comparable, V any](field string, value map[K]V, max int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) <= max
		},
		Error: ValidationError{
			Field:          field,
			Code:           CodeOutOfBounds,
			Message:        fmt.Sprintf("must have at most %d items", max),
			Value:          value,
			TranslationKey: "validation.max_items",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}
