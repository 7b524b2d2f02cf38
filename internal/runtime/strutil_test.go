package runtime

import "testing"

func TestUTF16LenCountsSurrogatePairsAsTwo(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"abc", 3},
		{"", 0},
		{"\U0001F600", 2}, // astral emoji: one surrogate pair
		{"café", 4},
	}
	for _, tt := range tests {
		if got := UTF16Len(tt.s); got != tt.want {
			t.Errorf("UTF16Len(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestUTF16UnitsSplitsSurrogatePairs(t *testing.T) {
	units := UTF16Units("a\U0001F600b")
	if len(units) != 4 {
		t.Fatalf("len = %d, want 4 (a, high surrogate, low surrogate, b)", len(units))
	}
	if units[0] != "a" || units[3] != "b" {
		t.Fatalf("units = %#v", units)
	}
}
