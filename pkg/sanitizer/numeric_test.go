package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/schemakit/pkg/sanitizer"
)

func TestRoundToDecimalPlaces(t *testing.T) {
	assert.Equal(t, 22.86, sanitizer.RoundToDecimalPlaces(22.857142, 2))
	assert.Equal(t, 23.0, sanitizer.RoundToDecimalPlaces(22.5, 0))
	assert.Equal(t, 23.0, sanitizer.RoundToDecimalPlaces(22.5, -1))
	assert.Equal(t, float32(1.5), sanitizer.RoundToDecimalPlaces(float32(1.46), 1))
}

func TestSafeDivide(t *testing.T) {
	assert.Equal(t, 2.5, sanitizer.SafeDivide(5.0, 2, 0))
	assert.Equal(t, -1.0, sanitizer.SafeDivide(5.0, 0, -1))
	assert.Equal(t, 2, sanitizer.SafeDivide(5, 2, 0))
}
