package ansi

import (
	"strings"
	"testing"
)

const red = "\x1b[31m"
const reset = "\x1b[0m"

func TestVisualWidth(t *testing.T) {
	cases := map[string]int{
		"abc":               3,
		red + "abc" + reset: 3,
		"日本":                4,
		"":                  0,
	}
	for s, want := range cases {
		if got := VisualWidth(s); got != want {
			t.Errorf("VisualWidth(%q) = %d, want %d", s, got, want)
		}
	}
}

func TestPadExact(t *testing.T) {
	if got := PadExact("ab", 4); got != "ab  " {
		t.Fatalf("PadExact pad = %q", got)
	}
	if got := Strip(PadExact(red+"abcdef"+reset, 3)); got != "abc" {
		t.Fatalf("PadExact clip = %q", got)
	}
	if got := PadExact("x", 0); got != "" {
		t.Fatalf("PadExact zero = %q", got)
	}
	if got := PadLeft("7", 3); got != "  7" {
		t.Fatalf("PadLeft = %q", got)
	}
}

func TestSliceHorizontal(t *testing.T) {
	if got := SliceHorizontal("0123456789", 3, 4); got != "3456" {
		t.Fatalf("SliceHorizontal = %q", got)
	}
	if got := Strip(SliceHorizontal(red+"0123456789"+reset, 0, 2)); got != "01" {
		t.Fatalf("SliceHorizontal styled = %q", got)
	}
}

func TestWrapLine(t *testing.T) {
	got := WrapLine("abcdefgh", 3)
	if strings.Join(got, "|") != "abc|def|gh" {
		t.Fatalf("WrapLine = %q", got)
	}
	if got := WrapLine("abc", 0); len(got) != 1 || got[0] != "" {
		t.Fatalf("WrapLine zero width = %q", got)
	}
}
