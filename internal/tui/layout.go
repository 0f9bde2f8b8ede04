package tui

import (
	"strings"

	"github.com/interpretive-systems/difftable/internal/theme"
	tuiansi "github.com/interpretive-systems/difftable/internal/tui/ansi"
	"github.com/interpretive-systems/difftable/internal/tui/components"
)

const minPane = 20

// Layout splits the screen into a file list, a divider and the diff pane, between a top bar and a bottom bar.
type Layout struct {
	width     int
	height    int
	leftWidth int
}

// NewLayout creates a new layout manager.
func NewLayout() *Layout {
	return &Layout{}
}

// SetSize updates the screen size. The left pane starts at a third of the width.
func (l *Layout) SetSize(width, height int) {
	l.width, l.height = width, height
	if l.leftWidth == 0 {
		l.leftWidth = max(width/3, 24)
	}
}

// SetLeftWidth sets the left pane width.
func (l *Layout) SetLeftWidth(width int) {
	l.leftWidth = width
}

func (l *Layout) Width() int  { return l.width }
func (l *Layout) Height() int { return l.height }

// LeftWidth returns the left pane width, at least minPane.
func (l *Layout) LeftWidth() int {
	return max(l.leftWidth, minPane)
}

// RightWidth returns the diff pane width.
func (l *Layout) RightWidth() int {
	return max(l.width-l.LeftWidth()-1, 1)
}

// ContentHeight returns the rows left for the panes: the screen minus top bar, two rules, bottom bar and overlay.
func (l *Layout) ContentHeight(overlayHeight int) int {
	return max(l.height-4-overlayHeight, 1)
}

// AdjustLeftWidth moves the divider by delta, keeping both panes at least minPane wide.
func (l *Layout) AdjustLeftWidth(delta int) {
	l.leftWidth = min(max(l.LeftWidth()+delta, minPane), max(l.width-minPane, minPane))
}

// Frame is what RenderFrame paints.
type Frame struct {
	TopLeft, TopRight string
	Left, Right       []string
	Overlay           []string
	Bottom            string
}

// RenderFrame paints f with th.
func (l *Layout) RenderFrame(f Frame, th theme.Theme) string {
	var b strings.Builder
	b.WriteString(l.bar(f.TopLeft, f.TopRight))
	b.WriteByte('\n')
	b.WriteString(th.DividerText(components.Rule(l.width)))

	leftW, rightW := l.LeftWidth(), l.RightWidth()
	sep := th.DividerText("│")
	for i := 0; i < max(len(f.Left), len(f.Right)); i++ {
		var left, right string
		if i < len(f.Left) {
			left = f.Left[i]
		}
		if i < len(f.Right) {
			right = f.Right[i]
		}
		b.WriteByte('\n')
		b.WriteString(tuiansi.PadExact(left, leftW))
		b.WriteString(sep)
		b.WriteString(tuiansi.PadExact(right, rightW))
	}
	for _, line := range f.Overlay {
		b.WriteByte('\n')
		b.WriteString(tuiansi.PadExact(line, l.width))
	}
	b.WriteByte('\n')
	b.WriteString(th.DividerText(components.Rule(l.width)))
	b.WriteByte('\n')
	b.WriteString(f.Bottom)
	return b.String()
}

// bar lays out left and right on one line; right wins when space runs out.
func (l *Layout) bar(left, right string) string {
	rightW := tuiansi.VisualWidth(right)
	if rightW >= l.width {
		return tuiansi.TruncateToWidth(right, l.width)
	}
	avail := l.width - rightW - 1
	if tuiansi.VisualWidth(left) > avail {
		left = tuiansi.TruncateToWidth(left, avail)
	}
	return tuiansi.PadExact(left, avail) + " " + right
}
