package pii

import "strings"

// SanitizePhone strips every non-digit character.
// The result is both the stored form and the comparison form.
func SanitizePhone(phone string) string {
	return digitsOnly(phone)
}

// MaskPhone exposes only the last four digits.
// Returns false if fewer than four digits remain after sanitization.
func MaskPhone(phone string) (string, bool) {
	digits := SanitizePhone(phone)
	if len(digits) < 4 {
		return "", false
	}
	return "***-***-" + digits[len(digits)-4:], true
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
