package pii

// SanitizeLast4 strips non-digits from an SSN suffix. It does not truncate,
// so over-long input still fails ValidLast4.
func SanitizeLast4(value string) string {
	return digitsOnly(value)
}

// ValidLast4 reports whether value is exactly four ASCII digits.
func ValidLast4(value string) bool {
	return len(value) == 4 && digitsOnly(value) == value
}

// MaskLast4 renders a valid SSN suffix as ***-NNNN.
func MaskLast4(value string) (string, bool) {
	if !ValidLast4(value) {
		return "", false
	}
	return "***-" + value, true
}
