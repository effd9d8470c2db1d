package validator_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/schemakit/pkg/validator"
)

func TestInList(t *testing.T) {
	genders := []string{"male", "female", "other"}

	t.Run("strings", func(t *testing.T) {
		assert.True(t, validator.InList("gender", "female", genders).Check())
		assert.False(t, validator.InList("gender", "Female", genders).Check())
		assert.False(t, validator.InList("gender", "", genders).Check())
	})

	t.Run("integers", func(t *testing.T) {
		assert.True(t, validator.InList("level", 2, []int{1, 2, 3}).Check())
		assert.False(t, validator.InList("level", 4, []int{1, 2, 3}).Check())
	})

	t.Run("dynamic values", func(t *testing.T) {
		id := uuid.New()
		allowed := []any{int64(1), "a", id}
		assert.True(t, validator.InList[any]("v", id, allowed).Check())
		assert.True(t, validator.InList[any]("v", int64(1), allowed).Check())
		assert.False(t, validator.InList[any]("v", 1, allowed).Check())
	})

	t.Run("empty list rejects everything", func(t *testing.T) {
		assert.False(t, validator.InList("gender", "male", nil).Check())
	})

	t.Run("error metadata", func(t *testing.T) {
		rule := validator.InList("gender", "x", genders)
		assert.Equal(t, validator.CodeFormatInvalid, rule.Error.Code)
		assert.Equal(t, "must be one of: [male female other]", rule.Error.Message)
		assert.Equal(t, "validation.in_list", rule.Error.TranslationKey)
		assert.Equal(t, genders, rule.Error.TranslationValues["allowed"])
	})
}
