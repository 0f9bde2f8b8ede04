package ansi

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SliceHorizontal returns at most width columns of s starting at visual column start. Styling is preserved.
func SliceHorizontal(s string, start, width int) string {
	if width <= 0 {
		return ""
	}
	if start <= 0 {
		return ansi.Truncate(s, width, "")
	}
	return ansi.TruncateLeft(ansi.Truncate(s, start+width, ""), start, "")
}

// PadExact pads or clips s to exactly w columns.
func PadExact(s string, w int) string {
	if w <= 0 {
		return ""
	}
	vw := VisualWidth(s)
	switch {
	case vw > w:
		return ansi.Truncate(s, w, "")
	case vw < w:
		return s + strings.Repeat(" ", w-vw)
	}
	return s
}

// PadLeft right-aligns s in w columns.
func PadLeft(s string, w int) string {
	if vw := VisualWidth(s); vw < w {
		return strings.Repeat(" ", w-vw) + s
	}
	return s
}

// TruncateToWidth truncates s to w columns, marking the cut with an ellipsis.
func TruncateToWidth(s string, w int) string {
	return ansi.Truncate(s, w, "…")
}
