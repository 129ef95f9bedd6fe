package engine

import "strings"

// SearchPath is the results page that consumes BuildSearchURL targets.
const SearchPath = "/search"

const upperHex = "0123456789ABCDEF"

// BuildSearchURL returns "/search?q=" followed by the term escaped exactly as
// JavaScript's encodeURIComponent does, so existing results pages decode it
// unchanged. The term is not normalized.
func BuildSearchURL(term string) string {
	return SearchPath + "?q=" + EncodeURIComponent(term)
}

// EncodeURIComponent percent-encodes every UTF-8 byte except the unreserved
// set A-Z a-z 0-9 - _ . ! ~ * ' ( ). Invalid UTF-8 is replaced with U+FFFD
// first, since Go strings may hold bytes a JavaScript string cannot.
func EncodeURIComponent(s string) string {
	s = strings.ToValidUTF8(s, "�")
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0F])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
