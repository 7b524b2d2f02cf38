package runtime

import "unicode/utf16"

// UTF16Len returns the length of s in UTF-16 code units, matching the
// `.length` semantics spec.md §4.2 requires for String values (a
// surrogate-pair astral character counts as 2, not 1, unlike a Go
// rune count).
func UTF16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// UTF16Units splits s into its individual UTF-16 code units, each
// re-encoded back to a one-unit Go string, for code-unit indexed
// access (String.prototype.charAt/[] and friends).
func UTF16Units(s string) []string {
	units := utf16.Encode([]rune(s))
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = string(utf16.Decode([]uint16{u}))
	}
	return out
}
