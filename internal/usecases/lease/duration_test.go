package lease

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationToken(t *testing.T) {
	tests := []struct {
		token string
		want  float64
	}{
		{"8", 8},
		{"12h", 12},
		{"1d", 24},
		{"2d", 48},
		{"3x", 8},   // unknown suffix falls back to default
		{"", 8},     // absent token
		{"h", 8},    // no digits
		{"2d3h", 8}, // not part of the grammar
		{"-4", 8},
		{"0", 0}, // explicit zero is honored
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDurationToken(tt.token), "token %q", tt.token)
	}
}
