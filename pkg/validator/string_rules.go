package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// MaxLenString validates the length of value in characters, not bytes.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at most %d characters long", max),
			TranslationKey: "validation.max_length",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

// PrintableString rejects control characters such as NUL or escape sequences.
func PrintableString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			for _, r := range value {
				if r < 0x20 || r == 0x7f {
					return false
				}
			}
			return utf8.ValidString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "contains invalid characters",
			TranslationKey: "validation.printable",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
