package validator

import (
	"fmt"
	"slices"
	"strings"
)

func MaxLenMap[K comparable, V any](field string, value map[K]V, max int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must have at most %d entries", max),
			TranslationKey: "validation.max_entries",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

// ExcludedKeys fails when value contains any of the given keys.
func ExcludedKeys[V any](field string, value map[string]V, keys ...string) Rule {
	var found []string
	for _, k := range keys {
		if _, ok := value[k]; ok {
			found = append(found, k)
		}
	}
	return Rule{
		Check: func() bool {
			return len(found) == 0
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("reserved keys not allowed: %s", strings.Join(found, ", ")),
			TranslationKey: "validation.reserved_keys",
			TranslationValues: map[string]any{
				"field": field,
				"keys":  found,
			},
		},
	}
}

// KeysMatch fails when any key of value is rejected by ok.
// Offending keys are reported in sorted order.
func KeysMatch[V any](field string, value map[string]V, ok func(string) bool, message string) Rule {
	var bad []string
	for k := range value {
		if !ok(k) {
			bad = append(bad, k)
		}
	}
	slices.Sort(bad)
	return Rule{
		Check: func() bool {
			return len(bad) == 0
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("%s: %s", message, strings.Join(bad, ", ")),
			TranslationKey: "validation.invalid_keys",
			TranslationValues: map[string]any{
				"field": field,
				"keys":  bad,
			},
		},
	}
}
