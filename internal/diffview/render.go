package diffview

import (
	"fmt"
	"strconv"

	"github.com/golang/glog"
	"github.com/interpretive-systems/difftable/internal/diffmodel"
)

// RenderFile renders every block of f. A file with no blocks renders to a table with no groups.
//
// Contiguity of offsets between blocks is not checked here; see diffmodel.File.Validate.
func RenderFile(f diffmodel.File, mode Mode) (Table, error) {
	t := Table{
		Mode:     mode,
		Name:     f.Name,
		OldLabel: f.OldLabel,
		NewLabel: f.NewLabel,
		Groups:   make([]Group, 0, len(f.Blocks)),
	}
	for i, b := range f.Blocks {
		rows, err := RenderBlock(b, mode)
		if err != nil {
			return Table{}, fmt.Errorf("%s: block[%d]: %w", f.Name, i, err)
		}
		t.Groups = append(t.Groups, Group{Kind: b.Kind, Section: b.Section, Rows: rows})
	}
	glog.V(1).Infof("diffview: rendered %s (%s): %d blocks", f.Name, mode, len(f.Blocks))
	return t, nil
}

// RenderBlock renders one block. A block violating its kind's shape is rejected with an error wrapping diffmodel.ErrMalformed.
func RenderBlock(b diffmodel.Block, mode Mode) ([]Row, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if mode != SideBySide && mode != Inline {
		return nil, fmt.Errorf("unknown view mode %d", int(mode))
	}

	var rows []Row
	switch b.Kind {
	case diffmodel.Skipped:
		rows = []Row{{Cells: []Cell{{Kind: CellEllipsis, Text: Ellipsis, Span: mode.Columns()}}}}
	case diffmodel.Unmodified:
		for i := range b.Base.Lines {
			rows = append(rows, pairRow(mode,
				lineOf(b.Base, i, MarkNone),
				lineOf(b.Changed, i, MarkNone)))
		}
	case diffmodel.Added:
		for i := range b.Changed.Lines {
			rows = append(rows, pairRow(mode, line{}, lineOf(b.Changed, i, MarkIns)))
		}
	case diffmodel.Removed:
		for i := range b.Base.Lines {
			rows = append(rows, pairRow(mode, lineOf(b.Base, i, MarkDel), line{}))
		}
	case diffmodel.Modified:
		if mode == Inline {
			for i := range b.Base.Lines {
				rows = append(rows, pairRow(mode, lineOf(b.Base, i, MarkDel), line{}))
			}
			for i := range b.Changed.Lines {
				rows = append(rows, pairRow(mode, line{}, lineOf(b.Changed, i, MarkIns)))
			}
			break
		}
		// Driven by the longer side; the shorter side is matched by index only.
		n := max(len(b.Base.Lines), len(b.Changed.Lines))
		for i := 0; i < n; i++ {
			rows = append(rows, pairRow(mode,
				lineOf(b.Base, i, MarkDel),
				lineOf(b.Changed, i, MarkIns)))
		}
	}

	if len(rows) == 0 {
		return nil, nil
	}
	rows[0].First = true
	rows[len(rows)-1].Last = true
	glog.V(2).Infof("diffview: %s block -> %d rows", b.Kind, len(rows))
	return rows, nil
}

// line is one side of a row. A zero line renders as blank cells.
type line struct {
	num  int
	text string
	mark Mark
	ok   bool
}

// lineOf returns s.Lines[i] numbered against s, or a blank line when i is past the end of s.
func lineOf(s diffmodel.Side, i int, mark Mark) line {
	if i >= len(s.Lines) {
		return line{}
	}
	return line{num: s.Offset + i, text: s.Lines[i], mark: mark, ok: true}
}

func (l line) numCell(side Side) Cell {
	c := Cell{Kind: CellLineNum, Side: side}
	if l.ok {
		c.Text = strconv.Itoa(l.num)
	}
	return c
}

func (l line) contentCell(side Side) Cell {
	return Cell{Kind: CellContent, Side: side, Text: l.text, Mark: l.mark}
}

func pairRow(mode Mode, base, changed line) Row {
	if mode == Inline {
		content := base.contentCell(SideBase)
		if !base.ok {
			content = changed.contentCell(SideChanged)
		}
		return Row{Cells: []Cell{base.numCell(SideBase), changed.numCell(SideChanged), content}}
	}
	return Row{Cells: []Cell{
		base.numCell(SideBase),
		base.contentCell(SideBase),
		changed.numCell(SideChanged),
		changed.contentCell(SideChanged),
	}}
}
