package internal

import "testing"

func TestCountChars(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"Hello, traveler.", 16},
		{"Привет, путник.", 15},
		{"Вайтран ⚔", 9},
	}

	for _, tt := range tests {
		if got := CountChars(tt.input); got != tt.want {
			t.Errorf("CountChars(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{" ", true},
		{"\t\n  \r", true},
		{" ", true},
		{"\uFEFF", true},
		{" \uFEFF\u3000\u2028 ", true},
		{"\u0085", false},
		{"a", false},
		{"  Dovahkiin  ", false},
	}

	for _, tt := range tests {
		if got := IsBlank(tt.input); got != tt.want {
			t.Errorf("IsBlank(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
