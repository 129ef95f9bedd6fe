// Package strings holds small slice helpers for tag and history lists.
package strings

import (
	"slices"
	"strings"
)

// DedupeAndTrim trims each value and keeps the first occurrence of every
// non-blank one, in input order. Matching is case-sensitive, so "VIP" and
// "vip" are distinct tags. A nil or empty input is returned as is.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// PrependUnique puts v first, drops any later copy of it and keeps at most
// limit entries (limit <= 0 keeps all). values is not modified.
func PrependUnique(values []string, v string, limit int) []string {
	out := append([]string{v}, slices.DeleteFunc(slices.Clone(values), func(s string) bool {
		return s == v
	})...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
