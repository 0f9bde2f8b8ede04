// Package diffview projects a diffmodel.File into table rows for side-by-side or inline display.
//
// Line numbers are stored as cell text and cells are located by their label, not by position. Painters (the TUI,
// the show command) consume Rows directly; the unified package reads a rendered Table back into patch text.
package diffview

import (
	"fmt"
	"strconv"

	"github.com/interpretive-systems/difftable/internal/diffmodel"
)

// Mode selects the table layout.
type Mode int

const (
	SideBySide Mode = iota // [num, content] | [num, content]
	Inline                 // [num, num, content]
)

func (m Mode) String() string {
	switch m {
	case SideBySide:
		return "sidebyside"
	case Inline:
		return "inline"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "sidebyside" or "inline".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "sidebyside", "side-by-side":
		return SideBySide, nil
	case "inline":
		return Inline, nil
	}
	return 0, fmt.Errorf("unknown view mode %q", s)
}

// Columns returns the number of columns of a row in mode m.
func (m Mode) Columns() int {
	if m == Inline {
		return 3
	}
	return 4
}

// CellKind labels what a cell holds.
type CellKind int

const (
	CellLineNum  CellKind = iota // line number as decimal text; "" when blank
	CellContent                  // line content; "" when blank
	CellEllipsis                 // the "…" of a skipped row
)

// Side is the revision a cell belongs to.
type Side int

const (
	SideBase Side = iota
	SideChanged
)

// Mark is the change emphasis of a content cell.
type Mark int

const (
	MarkNone Mark = iota
	MarkDel
	MarkIns
)

// Ellipsis is the text of a skipped row.
const Ellipsis = "…"

// Cell is one labeled table cell.
type Cell struct {
	Kind CellKind
	Side Side
	Text string
	Mark Mark
	Span int // columns covered; 0 and 1 both mean a single column
}

// Row is one table row. First and Last flag the boundary rows of a block's run so painters can group them visually.
type Row struct {
	Cells []Cell
	First bool
	Last  bool
}

// Group is the rendered rows of one block.
type Group struct {
	Kind    diffmodel.Kind
	Section string // Skipped groups: heading of the run that follows
	Rows    []Row
}

// Table is a rendered file.
type Table struct {
	Mode     Mode
	Name     string
	OldLabel string
	NewLabel string
	Groups   []Group
}

// Rows returns every row of t in order.
func (t Table) Rows() []Row {
	var rows []Row
	for _, g := range t.Groups {
		rows = append(rows, g.Rows...)
	}
	return rows
}

// Empty reports whether t has no rows.
func (t Table) Empty() bool {
	for _, g := range t.Groups {
		if len(g.Rows) > 0 {
			return false
		}
	}
	return true
}

func (r Row) cell(kind CellKind, side Side) (Cell, bool) {
	for _, c := range r.Cells {
		if c.Kind == kind && (kind == CellEllipsis || c.Side == side) {
			return c, true
		}
	}
	return Cell{}, false
}

// IsSkip reports whether r is a skipped-region row.
func (r Row) IsSkip() bool {
	_, ok := r.cell(CellEllipsis, SideBase)
	return ok
}

// BaseNum parses the base line-number cell. ok is false when the cell is missing, blank or not a number.
func (r Row) BaseNum() (n int, ok bool) {
	return r.num(SideBase)
}

// ChangedNum parses the changed line-number cell. ok is false when the cell is missing, blank or not a number.
func (r Row) ChangedNum() (n int, ok bool) {
	return r.num(SideChanged)
}

func (r Row) num(side Side) (int, bool) {
	c, ok := r.cell(CellLineNum, side)
	if !ok || c.Text == "" {
		return 0, false
	}
	n, err := strconv.Atoi(c.Text)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Content returns the content of r for side. Inline rows have a single content cell; it is returned for either side.
func (r Row) Content(side Side) string {
	c, _ := r.ContentCell(side)
	return c.Text
}

// ContentCell returns the content cell of r for side, with the same single-cell rule as Content.
func (r Row) ContentCell(side Side) (Cell, bool) {
	var content []Cell
	for _, c := range r.Cells {
		if c.Kind == CellContent {
			content = append(content, c)
		}
	}
	if len(content) == 1 {
		return content[0], true
	}
	for _, c := range content {
		if c.Side == side {
			return c, true
		}
	}
	return Cell{}, false
}

// LineNum returns the text of r's line-number cell for side, "" when blank or missing.
func (r Row) LineNum(side Side) string {
	c, _ := r.cell(CellLineNum, side)
	return c.Text
}
