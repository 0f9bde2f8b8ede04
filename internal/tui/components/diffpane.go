package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/interpretive-systems/difftable/internal/diffmodel"
	"github.com/interpretive-systems/difftable/internal/diffview"
	"github.com/interpretive-systems/difftable/internal/theme"
	tuiansi "github.com/interpretive-systems/difftable/internal/tui/ansi"
	"github.com/interpretive-systems/difftable/internal/unified"
)

// ViewMode selects how the diff pane presents the current file.
type ViewMode int

const (
	SideBySide ViewMode = iota
	Inline
	Unified
)

func (m ViewMode) String() string {
	switch m {
	case SideBySide:
		return "sidebyside"
	case Inline:
		return "inline"
	case Unified:
		return "unified"
	}
	return fmt.Sprintf("ViewMode(%d)", int(m))
}

// Next returns the mode after m in the side-by-side, inline, unified cycle.
func (m ViewMode) Next() ViewMode {
	return (m + 1) % 3
}

// ParseViewMode accepts the table mode names plus "unified".
func ParseViewMode(s string) (ViewMode, error) {
	if s == "unified" {
		return Unified, nil
	}
	m, err := diffview.ParseMode(s)
	if err != nil {
		return 0, err
	}
	if m == diffview.Inline {
		return Inline, nil
	}
	return SideBySide, nil
}

// DiffPane manages the right pane. It keeps the rendered tables of the current file and its unified text, which is computed the first time the
// pane is drawn in Unified mode and reused until another file is set.
type DiffPane struct {
	file    *diffmodel.File
	binary  bool
	err     error
	tables  map[diffview.Mode]diffview.Table
	memo    *unified.Memo
	mode    ViewMode
	wrap    bool
	xOffset int
	theme   theme.Theme

	viewport viewport.Model
	content  []string
}

// NewDiffPane creates an empty pane in side-by-side mode.
func NewDiffPane(th theme.Theme) *DiffPane {
	return &DiffPane{theme: th}
}

// SetFile shows f. binary files are listed without content.
func (d *DiffPane) SetFile(f diffmodel.File, binary bool) error {
	t, err := diffview.RenderFile(f, diffview.SideBySide)
	if err != nil {
		d.SetError(err)
		return err
	}
	d.file, d.binary, d.err = &f, binary, nil
	d.tables = map[diffview.Mode]diffview.Table{diffview.SideBySide: t}
	d.memo = unified.NewMemo(t, unified.Options{EOL: "\n"})
	d.xOffset = 0
	d.viewport.GotoTop()
	return nil
}

// SetError replaces the content with err.
func (d *DiffPane) SetError(err error) {
	d.Clear()
	d.err = err
}

// Clear drops the current file; the pane shows a loading placeholder.
func (d *DiffPane) Clear() {
	d.file, d.binary, d.err = nil, false, nil
	d.tables, d.memo = nil, nil
}

// File returns the shown file, or nil.
func (d *DiffPane) File() *diffmodel.File {
	return d.file
}

// Memo returns the unified-text cache of the current file, or nil.
func (d *DiffPane) Memo() *unified.Memo {
	return d.memo
}

// Mode returns the view mode.
func (d *DiffPane) Mode() ViewMode {
	return d.mode
}

// SetMode sets the view mode.
func (d *DiffPane) SetMode(m ViewMode) {
	d.mode = m
}

// Wrap reports whether long lines are wrapped.
func (d *DiffPane) Wrap() bool {
	return d.wrap
}

// SetWrap sets line wrapping. Wrapping resets horizontal scroll.
func (d *DiffPane) SetWrap(wrap bool) {
	d.wrap = wrap
	if wrap {
		d.xOffset = 0
	}
}

// XOffset returns the horizontal scroll offset.
func (d *DiffPane) XOffset() int {
	return d.xOffset
}

// ScrollLeft scrolls left by delta columns.
func (d *DiffPane) ScrollLeft(delta int) {
	if !d.wrap {
		d.xOffset = max(d.xOffset-delta, 0)
	}
}

// ScrollRight scrolls right by delta columns.
func (d *DiffPane) ScrollRight(delta int) {
	if !d.wrap {
		d.xOffset += delta
	}
}

// ScrollHome resets horizontal scroll.
func (d *DiffPane) ScrollHome() {
	d.xOffset = 0
}

// Viewport returns the underlying viewport for vertical scrolling.
func (d *DiffPane) Viewport() *viewport.Model {
	return &d.viewport
}

// Refresh resizes the viewport and repaints its content.
func (d *DiffPane) Refresh(width, height int) {
	d.viewport.Width = width
	d.viewport.Height = height
	d.content = d.Render(width)
	d.viewport.SetContent(strings.Join(d.content, "\n"))
}

// Content returns the lines painted by the last Refresh.
func (d *DiffPane) Content() []string {
	return d.content
}

// View returns the viewport view.
func (d *DiffPane) View() string {
	return d.viewport.View()
}

// Render paints the current file at width columns.
func (d *DiffPane) Render(width int) []string {
	faint := lipgloss.NewStyle().Faint(true)
	switch {
	case d.err != nil:
		return []string{d.theme.DelText("error: " + d.err.Error())}
	case d.file == nil:
		return []string{"Loading diff…"}
	case d.binary:
		return []string{faint.Render("(Binary file; no text diff)")}
	}
	none := []string{faint.Render("(no differences)")}

	if d.mode == Unified {
		text, err := d.memo.Text()
		if err != nil {
			return []string{d.theme.DelText("error: " + err.Error())}
		}
		if text == "" {
			return none
		}
		return d.fit(d.paintUnified(text), width)
	}

	tm := diffview.SideBySide
	if d.mode == Inline {
		tm = diffview.Inline
	}
	t, err := d.table(tm)
	if err != nil {
		return []string{d.theme.DelText("error: " + err.Error())}
	}
	if t.Empty() {
		return none
	}
	if tm == diffview.Inline {
		return d.renderInline(t, width)
	}
	return d.renderSideBySide(t, width)
}

// table returns the table of the current file in mode m, rendering it on first use.
func (d *DiffPane) table(m diffview.Mode) (diffview.Table, error) {
	if t, ok := d.tables[m]; ok {
		return t, nil
	}
	t, err := diffview.RenderFile(*d.file, m)
	if err != nil {
		return diffview.Table{}, err
	}
	d.tables[m] = t
	return t, nil
}

func numWidth(t diffview.Table) int {
	w := 1
	for _, r := range t.Rows() {
		w = max(w, len(r.LineNum(diffview.SideBase)), len(r.LineNum(diffview.SideChanged)))
	}
	return w
}

func (d *DiffPane) skipLine(section string, width int) string {
	label := diffview.Ellipsis
	if section != "" {
		label += " " + section
	}
	label = d.theme.MetaText(label) + " "
	fill := max(width-tuiansi.VisualWidth(label), 0)
	return label + d.theme.DividerText(strings.Repeat("·", fill))
}

func marker(m diffview.Mark) string {
	switch m {
	case diffview.MarkDel:
		return "-"
	case diffview.MarkIns:
		return "+"
	}
	return " "
}

func (d *DiffPane) paint(m diffview.Mark, s string) string {
	switch m {
	case diffview.MarkDel:
		return d.theme.DelText(s)
	case diffview.MarkIns:
		return d.theme.AddText(s)
	}
	return s
}

// half paints one side of a side-by-side row at width columns, one string per wrapped line.
func (d *DiffPane) half(r diffview.Row, side diffview.Side, numW, width int) []string {
	cell, _ := r.ContentCell(side)
	num := r.LineNum(side)
	bodyW := width - numW - 3
	if bodyW < 1 {
		return []string{tuiansi.PadExact(d.theme.LineNumText(tuiansi.PadLeft(num, numW)), width)}
	}
	if num == "" {
		return []string{strings.Repeat(" ", width)}
	}
	prefix := d.theme.LineNumText(tuiansi.PadLeft(num, numW)) + " " + d.paint(cell.Mark, marker(cell.Mark)) + " "
	cont := strings.Repeat(" ", numW+3)

	var parts []string
	if d.wrap {
		parts = tuiansi.WrapLine(cell.Text, bodyW)
	} else {
		parts = []string{tuiansi.SliceHorizontal(cell.Text, d.xOffset, bodyW)}
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		lead := cont
		if i == 0 {
			lead = prefix
		}
		out[i] = lead + tuiansi.PadExact(d.paint(cell.Mark, p), bodyW)
	}
	return out
}

func (d *DiffPane) renderSideBySide(t diffview.Table, width int) []string {
	halfW := max((width-1)/2, 10)
	numW := numWidth(t)
	mid := d.theme.DividerText("│")
	lines := make([]string, 0, len(t.Groups))
	for _, g := range t.Groups {
		for _, r := range g.Rows {
			if r.IsSkip() {
				lines = append(lines, d.skipLine(g.Section, width))
				continue
			}
			left := d.half(r, diffview.SideBase, numW, halfW)
			right := d.half(r, diffview.SideChanged, numW, halfW)
			for i := 0; i < max(len(left), len(right)); i++ {
				l, rr := strings.Repeat(" ", halfW), strings.Repeat(" ", halfW)
				if i < len(left) {
					l = left[i]
				}
				if i < len(right) {
					rr = right[i]
				}
				lines = append(lines, l+mid+rr)
			}
		}
	}
	return lines
}

func (d *DiffPane) renderInline(t diffview.Table, width int) []string {
	numW := numWidth(t)
	lines := make([]string, 0, len(t.Groups))
	for _, g := range t.Groups {
		for _, r := range g.Rows {
			if r.IsSkip() {
				lines = append(lines, d.skipLine(g.Section, width))
				continue
			}
			cell, _ := r.ContentCell(diffview.SideBase)
			nums := d.theme.LineNumText(tuiansi.PadLeft(r.LineNum(diffview.SideBase), numW) + " " + tuiansi.PadLeft(r.LineNum(diffview.SideChanged), numW))
			line := nums + " " + d.paint(cell.Mark, marker(cell.Mark)+" "+cell.Text)
			lines = append(lines, d.fit([]string{line}, width)...)
		}
	}
	return lines
}

func (d *DiffPane) paintUnified(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		switch {
		case i < 4 || strings.HasPrefix(l, "@@ "):
			lines[i] = d.theme.MetaText(l)
		case strings.HasPrefix(l, "+"):
			lines[i] = d.theme.AddText(l)
		case strings.HasPrefix(l, "-"):
			lines[i] = d.theme.DelText(l)
		}
	}
	return lines
}

// fit wraps or horizontally scrolls whole lines to width.
func (d *DiffPane) fit(lines []string, width int) []string {
	if d.wrap {
		out := make([]string, 0, len(lines))
		for _, l := range lines {
			out = append(out, tuiansi.WrapLine(l, width)...)
		}
		return out
	}
	if d.xOffset == 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = tuiansi.SliceHorizontal(l, d.xOffset, width)
	}
	return out
}
