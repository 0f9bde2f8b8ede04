package unified

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/golang/glog"
	"github.com/interpretive-systems/difftable/internal/diffmodel"
	"github.com/interpretive-systems/difftable/internal/diffview"
)

// separator is the line under "Index: <name>".
var separator = strings.Repeat("=", 67)

// Header is the file-level header of the unified text.
type Header struct {
	Name     string
	OldLabel string // written verbatim after "--- "
	NewLabel string // written verbatim after "+++ "
}

// Options control Render.
type Options struct {
	EOL string // line terminator; "" means DefaultEOL()
}

// DefaultEOL returns the platform line terminator.
func DefaultEOL() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

func (o Options) eol() string {
	if o.EOL == "" {
		return DefaultEOL()
	}
	return o.EOL
}

// hunk is the accumulator for the hunk being built.
type hunk struct {
	oldOffset, oldLength int
	newOffset, newLength int
	section              string
	placeholder          int // index in out reserved for this hunk's "@@" line
	lines                int
}

// builder threads the output and the open hunk through the fold.
type builder struct {
	out []string
	cur hunk
}

// open reserves the header slot of a new hunk.
func (b *builder) open(section string) {
	b.cur = hunk{section: section, placeholder: len(b.out)}
	b.out = append(b.out, "")
}

// close writes the header of the open hunk into its placeholder, or drops the placeholder when the hunk is empty. A side with lines but no anchoring
// context line gets offset 1.
func (b *builder) close() {
	h := b.cur
	if h.lines == 0 {
		b.out = append(b.out[:h.placeholder], b.out[h.placeholder+1:]...)
		return
	}
	if h.oldOffset == 0 && h.oldLength > 0 {
		h.oldOffset = 1
	}
	if h.newOffset == 0 && h.newLength > 0 {
		h.newOffset = 1
	}
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.oldOffset, h.oldLength, h.newOffset, h.newLength)
	if h.section != "" {
		header += " " + h.section
	}
	b.out[h.placeholder] = header
}

func (b *builder) add(l Line) error {
	switch l := l.(type) {
	case Skip:
		if b.cur.lines == 0 {
			// Nothing to close yet; the section belongs to the hunk that is still empty.
			b.cur.section = l.Section
			return nil
		}
		b.close()
		b.open(l.Section)
	case Context:
		b.out = append(b.out, " "+l.Text)
		b.cur.oldLength++
		b.cur.newLength++
		if b.cur.oldOffset == 0 {
			b.cur.oldOffset = l.Old
		}
		if b.cur.newOffset == 0 {
			b.cur.newOffset = l.New
		}
		b.cur.lines++
	case Add:
		b.out = append(b.out, "+"+l.Text)
		b.cur.newLength++
		b.cur.lines++
	case Remove:
		b.out = append(b.out, "-"+l.Text)
		b.cur.oldLength++
		b.cur.lines++
	default:
		return fmt.Errorf("%w: unknown line type %T", ErrMismatch, l)
	}
	return nil
}

// Render folds lines into unified-diff text under h. It returns "" when lines contains no context, add or remove line.
func Render(h Header, lines []Line, opts Options) (string, error) {
	b := &builder{out: []string{
		"Index: " + h.Name,
		separator,
		"--- " + h.OldLabel,
		"+++ " + h.NewLabel,
	}}
	b.open("")
	for i, l := range lines {
		if err := b.add(l); err != nil {
			return "", fmt.Errorf("line[%d]: %w", i, err)
		}
	}
	b.close()

	if len(b.out) == 4 {
		return "", nil
	}
	glog.V(2).Infof("unified: %s: %d output lines", h.Name, len(b.out))
	return strings.Join(b.out, opts.eol()), nil
}

// RenderTable classifies t and renders it under t's name and labels.
func RenderTable(t diffview.Table, opts Options) (string, error) {
	lines, err := Classify(t)
	if err != nil {
		return "", fmt.Errorf("%s: %w", t.Name, err)
	}
	return Render(Header{Name: t.Name, OldLabel: t.OldLabel, NewLabel: t.NewLabel}, lines, opts)
}

// FromFile renders f as a side-by-side table and reconstructs its unified text.
func FromFile(f diffmodel.File, opts Options) (string, error) {
	t, err := diffview.RenderFile(f, diffview.SideBySide)
	if err != nil {
		return "", err
	}
	return RenderTable(t, opts)
}
