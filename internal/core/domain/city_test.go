package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"New York", "new york"},
		{" new york ", "new york"},
		{"  Paris ", "paris"},
		{"paris", "paris"},
		{"BOSTON", "boston"},
		{"", ""},
		{"   ", ""},
		{"São Paulo", "são paulo"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCity(tt.input), "input %q", tt.input)
	}
}

func TestNormalizeCityCollisions(t *testing.T) {
	// Inputs that normalize to the same key count as the same city.
	assert.Equal(t, NormalizeCity("  Paris "), NormalizeCity("paris"))
	assert.Equal(t, NormalizeCity("New York"), NormalizeCity(" new york "))
}
