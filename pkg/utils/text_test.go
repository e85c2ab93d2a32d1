package utils

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	if Truncate("hello", 10) != "hello" {
		t.Error("short string unchanged")
	}
	if Truncate("hello world", 5) != "hello..." {
		t.Errorf("got %s", Truncate("hello world", 5))
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
	// Multi-byte runes are never split.
	if got := Truncate("Llys Ynadon Caerdydd", 4); got != "Llys..." {
		t.Errorf("got %s", got)
	}
	if got := Truncate("ŵŷâ", 3); got != "ŵŷâ" {
		t.Errorf("three runes fit in 3: got %s", got)
	}
	if got := Truncate("ŵŷâê", 2); got != "ŵŷ..." {
		t.Errorf("got %s", got)
	}
}

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Manchester Crown Court", 5, "Manchester Crown Court"},
		{"Manchester Crown Court", 2, "Manchester Crown..."},
		{"  Inner   London  ", 5, "Inner London"},
		{"a b c", 0, "a b c"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := TruncateWords(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateWords(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
