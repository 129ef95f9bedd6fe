package pii

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaskToken is returned when a value is present but cannot be partially revealed.
const MaskToken = "***"

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail returns the canonical comparison form of an email address.
// It is never used for display.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email has a local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailShape.MatchString(email)
}

// MaskEmail reveals the first character of the local part and the full domain.
// The rest of the local part is replaced by at least two asterisks.
// Returns false for empty input.
func MaskEmail(email string) (string, bool) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", false
	}
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return MaskToken, true
	}
	local, domain := email[:at], email[at+1:]

	first, size := utf8.DecodeRuneInString(local)
	hidden := utf8.RuneCountInString(local) - 1
	if hidden < 2 {
		hidden = 2
	}
	var b strings.Builder
	if size > 0 {
		b.WriteRune(first)
	}
	b.WriteString(strings.Repeat("*", hidden))
	b.WriteByte('@')
	b.WriteString(domain)
	return b.String(), true
}
