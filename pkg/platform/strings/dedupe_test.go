package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "trims whitespace",
			input:    []string{"  VIP  ", "Referral  ", "  Prospect"},
			expected: []string{"VIP", "Referral", "Prospect"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"New Client", "VIP", "New Client", "Referral", "VIP"},
			expected: []string{"New Client", "VIP", "Referral"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"VIP", "", "  ", "Referral"},
			expected: []string{"VIP", "Referral"},
		},
		{
			name:     "comparison is case sensitive",
			input:    []string{"Vip", "vip", "VIP"},
			expected: []string{"Vip", "vip", "VIP"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestPrependUnique(t *testing.T) {
	t.Run("moves existing value to the front", func(t *testing.T) {
		got := PrependUnique([]string{"a", "b", "c"}, "b", 8)
		assert.Equal(t, []string{"b", "a", "c"}, got)
	})

	t.Run("truncates to limit", func(t *testing.T) {
		got := PrependUnique([]string{"a", "b", "c"}, "d", 3)
		assert.Equal(t, []string{"d", "a", "b"}, got)
	})

	t.Run("does not modify input", func(t *testing.T) {
		in := []string{"a", "b"}
		_ = PrependUnique(in, "b", 0)
		assert.Equal(t, []string{"a", "b"}, in)
	})

	t.Run("nil input", func(t *testing.T) {
		assert.Equal(t, []string{"x"}, PrependUnique(nil, "x", 8))
	})
}
