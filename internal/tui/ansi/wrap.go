package ansi

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// WrapLine hard-wraps s at width columns, preserving styling across the breaks.
func WrapLine(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	return strings.Split(ansi.Hardwrap(s, width, false), "\n")
}
