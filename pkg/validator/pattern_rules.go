package validator

import (
	"regexp"
)

// MatchesRegex validates value against a precompiled pattern.
func MatchesRegex(field, value string, pattern *regexp.Regexp) Rule {
	return Rule{
		Check: func() bool {
			return pattern != nil && pattern.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Code:           CodeFormatInvalid,
			Message:        "must match pattern " + pattern.String(),
			Value:          value,
			TranslationKey: "validation.regex_pattern",
			TranslationValues: map[string]any{
				"field":   field,
				"pattern": pattern.String(),
			},
		},
	}
}
