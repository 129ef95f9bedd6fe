package pii

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{name: "empty", input: "", ok: false},
		{name: "whitespace only", input: "   ", ok: false},
		{name: "no at sign", input: "not-an-email", expected: MaskToken, ok: true},
		{name: "typical", input: "sarah.j@email.com", expected: "s******@email.com", ok: true},
		{name: "single char local keeps two asterisks", input: "a@b.co", expected: "a**@b.co", ok: true},
		{name: "two char local keeps two asterisks", input: "ab@b.co", expected: "a**@b.co", ok: true},
		{name: "domain case preserved", input: "jen@Email.COM", expected: "j**@Email.COM", ok: true},
		{name: "empty local part", input: "@email.com", expected: "**@email.com", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MaskEmail(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestMaskEmailPreservesDomain checks that the masked output never reveals
// more than one character of the local part and keeps the domain intact.
func TestMaskEmailPreservesDomain(t *testing.T) {
	for _, email := range []string{"m.brown@email.com", "x@y.z", "long.local.part+tag@sub.example.org", "ünï@codé.de"} {
		masked, ok := MaskEmail(email)
		require.True(t, ok)

		at := strings.IndexByte(email, '@')
		maskedAt := strings.IndexByte(masked, '@')
		require.GreaterOrEqual(t, maskedAt, 0)
		assert.Equal(t, email[at+1:], masked[maskedAt+1:], email)

		local := []rune(masked[:maskedAt])
		revealed := 0
		for _, r := range local {
			if r != '*' {
				revealed++
			}
		}
		assert.LessOrEqual(t, revealed, 1, email)
	}
}

func TestMaskPhone(t *testing.T) {
	t.Run("too few digits", func(t *testing.T) {
		_, ok := MaskPhone("(12) 3")
		assert.False(t, ok)
	})

	t.Run("exactly four digits", func(t *testing.T) {
		got, ok := MaskPhone("1234")
		require.True(t, ok)
		assert.Equal(t, "***-***-1234", got)
	})

	t.Run("formatted phone exposes last four only", func(t *testing.T) {
		for _, phone := range []string{"+1 (555) 867-5309", "5558675309", "44 20 7946 0958", "0987654321098"} {
			got, ok := MaskPhone(phone)
			require.True(t, ok)

			digits := SanitizePhone(phone)
			last4 := digits[len(digits)-4:]
			assert.True(t, strings.HasSuffix(got, last4), phone)
			assert.Equal(t, last4, SanitizePhone(got), "no other original digit may leak for %s", phone)
		}
	})
}

func TestLast4(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"1234", true},
		{"123", false},
		{"12345", false},
		{"12a4", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidLast4(tt.input))
			masked, ok := MaskLast4(tt.input)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, "***-"+tt.input, masked)
			}
		})
	}

	assert.Equal(t, "12345", SanitizeLast4("12-34-5"), "sanitizing does not truncate")
	assert.Equal(t, "6789", SanitizeLast4(" 67 89 "))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "sarah.j@email.com", NormalizeEmail("  Sarah.J@Email.COM "))
	assert.Equal(t, "15550123", SanitizePhone("+1 (555) 0123"))
	assert.Empty(t, SanitizePhone("n/a"))
}
