package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	tuiansi "github.com/interpretive-systems/difftable/internal/tui/ansi"
)

// StatusBar manages the bottom status bar.
type StatusBar struct {
	lastRefresh time.Time
	lastCommit  string
	keyBuffer   string
	message     string
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetLastRefresh updates the refresh timestamp.
func (s *StatusBar) SetLastRefresh(t time.Time) {
	s.lastRefresh = t
}

// SetLastCommit updates the last commit summary.
func (s *StatusBar) SetLastCommit(msg string) {
	s.lastCommit = msg
}

// SetKeyBuffer updates the pending count display.
func (s *StatusBar) SetKeyBuffer(buf string) {
	s.keyBuffer = buf
}

// SetMessage shows a transient message (ex: an error) in place of the help hint.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
}

// Render renders the status bar at width columns. The refresh time on the right is never truncated away unless the bar is narrower than it.
func (s *StatusBar) Render(width int) string {
	left := "h: help"
	switch {
	case s.keyBuffer != "":
		left = s.keyBuffer
	case s.message != "":
		left = s.message
	}
	if s.lastCommit != "" {
		left += "  |  last: " + s.lastCommit
	}
	faint := lipgloss.NewStyle().Faint(true)
	right := faint.Render("refreshed: " + s.lastRefresh.Format("15:04:05"))

	rightW := tuiansi.VisualWidth(right)
	if rightW >= width {
		return tuiansi.TruncateToWidth(right, width)
	}
	avail := width - rightW - 1
	left = faint.Render(left)
	if tuiansi.VisualWidth(left) > avail {
		left = tuiansi.TruncateToWidth(left, avail)
	}
	return tuiansi.PadExact(left, avail) + " " + right
}

// Rule returns a horizontal rule of width columns.
func Rule(width int) string {
	return strings.Repeat("─", max(width, 0))
}
