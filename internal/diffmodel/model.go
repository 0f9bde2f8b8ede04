// Package diffmodel holds the block representation of one file comparison.
//
// A File is an ordered sequence of Blocks. Each Block classifies a run of lines (unmodified, added, removed or modified) and carries the lines of both
// revisions together with the 1-based line number of each side's first line. Skipped blocks mark elided regions between non-adjacent runs; they carry
// no lines.
//
// Files are produced once by an upstream collaborator (a patch parser, a model file) and are not mutated afterwards.
package diffmodel

import "fmt"

// Kind classifies a Block. The zero Kind is invalid, so a decoded block without a kind fails validation.
type Kind int

// Block kinds.
const (
	Unmodified Kind = iota + 1
	Added
	Removed
	Modified
	Skipped
)

var kindNames = [...]string{
	Unmodified: "unmodified",
	Added:      "added",
	Removed:    "removed",
	Modified:   "modified",
	Skipped:    "skipped",
}

func (k Kind) valid() bool {
	return k >= Unmodified && int(k) < len(kindNames)
}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind parses the lower-case name of a kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name != "" && name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown block kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, fmt.Errorf("unknown block kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Side is one revision's view of a block.
type Side struct {
	Offset int      `json:"offset" yaml:"offset"` // 1-based line number of Lines[0]; 0 when unset or when Lines is empty.
	Lines  []string `json:"lines" yaml:"lines"`   // Line contents without terminators.
}

// End returns the line number just past the last line of s.
func (s Side) End() int {
	return s.Offset + len(s.Lines)
}

// Block is a maximal run of lines sharing one classification.
//
// Shape by kind:
//   - Unmodified: len(Base.Lines) == len(Changed.Lines), pairwise identical content.
//   - Added: Base.Lines is empty.
//   - Removed: Changed.Lines is empty.
//   - Modified: both sides non-empty; lengths may differ.
//   - Skipped: both sides empty.
type Block struct {
	Kind    Kind   `json:"kind" yaml:"kind"`
	Base    Side   `json:"base" yaml:"base"`
	Changed Side   `json:"changed" yaml:"changed"`
	Section string `json:"section,omitempty" yaml:"section,omitempty"` // Skipped only: heading of the run that follows (ex: enclosing function).
}

// File is the comparison of one file between two revisions.
type File struct {
	Name     string  `json:"name" yaml:"name"`
	OldLabel string  `json:"oldLabel" yaml:"oldLabel"` // Shown verbatim in table headers and the unified "---" line.
	NewLabel string  `json:"newLabel" yaml:"newLabel"` // Shown verbatim in table headers and the unified "+++" line.
	Blocks   []Block `json:"blocks" yaml:"blocks"`
}

// Equal returns an unmodified block whose lines start at baseOffset in the old file and changedOffset in the new one.
func Equal(baseOffset, changedOffset int, lines ...string) Block {
	return Block{
		Kind:    Unmodified,
		Base:    Side{Offset: baseOffset, Lines: lines},
		Changed: Side{Offset: changedOffset, Lines: lines},
	}
}

// Insert returns an added block.
func Insert(changedOffset int, lines ...string) Block {
	return Block{Kind: Added, Changed: Side{Offset: changedOffset, Lines: lines}}
}

// Delete returns a removed block.
func Delete(baseOffset int, lines ...string) Block {
	return Block{Kind: Removed, Base: Side{Offset: baseOffset, Lines: lines}}
}

// Replace returns a modified block replacing base with changed.
func Replace(baseOffset int, base []string, changedOffset int, changed []string) Block {
	return Block{
		Kind:    Modified,
		Base:    Side{Offset: baseOffset, Lines: base},
		Changed: Side{Offset: changedOffset, Lines: changed},
	}
}

// Skip returns a skipped marker. section may be empty.
func Skip(section string) Block {
	return Block{Kind: Skipped, Section: section}
}

// Unchanged returns the file for a comparison with no differences: a single unmodified block spanning lines, starting at line 1.
func Unchanged(name string, lines []string) File {
	f := File{Name: name, OldLabel: name, NewLabel: name}
	if len(lines) > 0 {
		f.Blocks = []Block{Equal(1, 1, lines...)}
	}
	return f
}

// OldLineCount returns the number of old-revision lines covered by f.
func (f File) OldLineCount() int {
	n := 0
	for _, b := range f.Blocks {
		switch b.Kind {
		case Unmodified, Removed, Modified:
			n += len(b.Base.Lines)
		}
	}
	return n
}

// NewLineCount returns the number of new-revision lines covered by f.
func (f File) NewLineCount() int {
	n := 0
	for _, b := range f.Blocks {
		switch b.Kind {
		case Unmodified, Added, Modified:
			n += len(b.Changed.Lines)
		}
	}
	return n
}

// HasChanges reports whether any block of f is added, removed or modified.
func (f File) HasChanges() bool {
	for _, b := range f.Blocks {
		switch b.Kind {
		case Added, Removed, Modified:
			return true
		}
	}
	return false
}
