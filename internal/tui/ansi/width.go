// Package ansi measures and cuts strings that may carry ANSI styling.
package ansi

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// VisualWidth returns the number of terminal columns s occupies, ignoring escape sequences.
func VisualWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

// Strip removes all ANSI escape sequences from s.
func Strip(s string) string {
	return ansi.Strip(s)
}
