package components

import (
	"fmt"

	"github.com/interpretive-systems/difftable/internal/source"
)

// FileList manages the left pane file list.
type FileList struct {
	entries  []source.Entry
	selected int
	offset   int
}

// NewFileList creates a new file list.
func NewFileList() *FileList {
	return &FileList{}
}

// SetEntries replaces the list, keeping the selection on the same path when it is still listed.
func (f *FileList) SetEntries(entries []source.Entry) {
	var keep string
	if e := f.SelectedEntry(); e != nil {
		keep = e.Path
	}
	f.entries = entries
	f.selected = 0
	for i, e := range entries {
		if e.Path == keep {
			f.selected = i
			break
		}
	}
}

// Entries returns the listed entries.
func (f *FileList) Entries() []source.Entry {
	return f.entries
}

// Selected returns the currently selected index.
func (f *FileList) Selected() int {
	return f.selected
}

// SelectedEntry returns the selected entry, or nil when the list is empty.
func (f *FileList) SelectedEntry() *source.Entry {
	if f.selected < 0 || f.selected >= len(f.entries) {
		return nil
	}
	return &f.entries[f.selected]
}

// MoveSelection moves the selection by delta and reports whether it changed.
func (f *FileList) MoveSelection(delta int) bool {
	if len(f.entries) == 0 {
		return false
	}
	sel := min(max(f.selected+delta, 0), len(f.entries)-1)
	changed := sel != f.selected
	f.selected = sel
	return changed
}

// GoToTop moves selection to the first file.
func (f *FileList) GoToTop() bool {
	return f.MoveSelection(-f.selected)
}

// GoToBottom moves selection to the last file.
func (f *FileList) GoToBottom() bool {
	return f.MoveSelection(len(f.entries) - 1 - f.selected)
}

// PageUp scrolls the list window up one page without moving the selection.
func (f *FileList) PageUp(visible int) {
	f.offset = max(f.offset-pageStep(visible), 0)
}

// PageDown scrolls the list window down one page without moving the selection.
func (f *FileList) PageDown(visible int) {
	f.offset = min(f.offset+pageStep(visible), max(len(f.entries)-visible, 0))
}

func pageStep(visible int) int {
	if visible <= 1 {
		return 1
	}
	return visible - 1
}

// ensureVisible scrolls the window so the selection is on screen.
func (f *FileList) ensureVisible(visible int) {
	if visible <= 0 {
		return
	}
	if f.selected < f.offset {
		f.offset = f.selected
	} else if f.selected >= f.offset+visible {
		f.offset = f.selected - visible + 1
	}
	f.offset = min(max(f.offset, 0), max(len(f.entries)-visible, 0))
}

// Render renders at most height lines of the list.
func (f *FileList) Render(height int) []string {
	if len(f.entries) == 0 {
		return []string{"No changes detected"}
	}
	f.ensureVisible(height)
	end := min(f.offset+height, len(f.entries))
	lines := make([]string, 0, end-f.offset)
	for i := f.offset; i < end; i++ {
		e := f.entries[i]
		marker := "  "
		if i == f.selected {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", marker, StatusLabel(e), e.Path))
	}
	return lines
}

// StatusLabel returns the short status shown before a path.
func StatusLabel(e source.Entry) string {
	label := e.Status
	if label == "" {
		label = "-"
	}
	if e.Binary {
		label += "b"
	}
	return label
}
