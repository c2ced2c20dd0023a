package validator_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cities/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Run("returns default message when no errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("joins field messages", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "city", Message: "field is required"})
		errs.Add(validator.ValidationError{Field: "extra", Message: "too many"})
		assert.Equal(t, "validation failed: city: field is required; extra: too many", errs.Error())
	})
}

func TestValidationErrors_Accessors(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "city", Message: "a"},
		{Field: "city", Message: "b"},
		{Field: "extra", Message: "c"},
	}

	assert.True(t, errs.Has("city"))
	assert.False(t, errs.Has("id"))
	assert.Equal(t, []string{"a", "b"}, errs.Get("city"))
	assert.Equal(t, map[string][]string{"city": {"a", "b"}, "extra": {"c"}}, errs.Map())
	assert.Nil(t, validator.ValidationErrors{}.Map())
}

func TestApply(t *testing.T) {
	t.Run("nil when all rules pass", func(t *testing.T) {
		err := validator.Apply(
			validator.RequiredString("city", "Austin"),
			validator.MaxLenString("city", "Austin", 10),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		err := validator.Apply(
			validator.RequiredString("city", "   "),
			validator.MaxLenString("name", "abcdef", 3),
			validator.When("kind", false, "must be a string", "validation.type"),
		)
		require.Error(t, err)
		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 3)
		assert.True(t, errs.Has("city"))
		assert.True(t, errs.Has("name"))
		assert.Equal(t, []string{"must be a string"}, errs.Get("kind"))
	})

	t.Run("survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("create: %w", validator.Apply(validator.RequiredString("city", "")))
		assert.True(t, validator.IsValidationError(err))
		assert.Len(t, validator.ExtractValidationErrors(err), 1)
		assert.False(t, validator.IsValidationError(errors.New("plain")))
		assert.Nil(t, validator.ExtractValidationErrors(nil))
	})
}

func TestStringRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule validator.Rule
		pass bool
	}{
		{"required ok", validator.RequiredString("f", "x"), true},
		{"required blank", validator.RequiredString("f", " \t"), false},
		{"max len counts runes", validator.MaxLenString("f", "Zürich", 6), true},
		{"max len exceeded", validator.MaxLenString("f", strings.Repeat("a", 101), 100), false},
		{"printable ok", validator.PrintableString("f", "São Paulo"), true},
		{"printable nul", validator.PrintableString("f", "Aus\x00tin"), false},
		{"printable escape", validator.PrintableString("f", "\x1b[31mred"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.pass, tt.rule.Check())
		})
	}
}

func TestCollectionRules(t *testing.T) {
	t.Parallel()

	extra := map[string]any{"population": 1, "_id": "x", "a.b": true, "$set": 1}

	t.Run("max entries", func(t *testing.T) {
		assert.True(t, validator.MaxLenMap("extra", extra, 4).Check())
		assert.False(t, validator.MaxLenMap("extra", extra, 3).Check())
	})

	t.Run("excluded keys", func(t *testing.T) {
		rule := validator.ExcludedKeys("extra", extra, "_id", "id")
		assert.False(t, rule.Check())
		assert.Contains(t, rule.Error.Message, "_id")
		assert.NotContains(t, rule.Error.Message, "id,")
		assert.True(t, validator.ExcludedKeys("extra", map[string]any{"state": "TX"}, "_id").Check())
	})

	t.Run("keys match", func(t *testing.T) {
		rule := validator.KeysMatch("extra", extra, func(k string) bool {
			return !strings.HasPrefix(k, "$") && !strings.Contains(k, ".")
		}, "invalid field names")
		assert.False(t, rule.Check())
		assert.Equal(t, "invalid field names: $set, a.b", rule.Error.Message)
	})
}
