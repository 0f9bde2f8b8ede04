// Package unified rebuilds unified-diff text from a rendered diffview.Table.
//
// Reconstruction works from what is already on screen: Classify reads the table's rows back into Lines (context, add, remove, skip), and Render folds
// those Lines into hunks, re-deriving every "@@" header from the row numbers and the skip markers rather than from block offsets.
package unified

import "fmt"

// Line is one classified row: Context, Add, Remove or Skip.
type Line interface {
	line()
}

// Context is a line present on both sides.
type Context struct {
	Old, New int
	Text     string
}

// Add is a line present only on the new side.
type Add struct {
	New  int
	Text string
}

// Remove is a line present only on the old side.
type Remove struct {
	Old  int
	Text string
}

// Skip marks an elided region; the next line starts a new hunk. Section, if set, is appended to that hunk's header.
type Skip struct {
	Section string
}

func (Context) line() {}
func (Add) line()     {}
func (Remove) line()  {}
func (Skip) line()    {}

func (c Context) String() string { return fmt.Sprintf("context(%d,%d) %q", c.Old, c.New, c.Text) }
func (a Add) String() string     { return fmt.Sprintf("add(%d) %q", a.New, a.Text) }
func (r Remove) String() string  { return fmt.Sprintf("remove(%d) %q", r.Old, r.Text) }
func (s Skip) String() string    { return fmt.Sprintf("skip %q", s.Section) }
