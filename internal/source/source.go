// Package source supplies the files the viewer lists and renders.
package source

import (
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/interpretive-systems/difftable/internal/diffmodel"
	"github.com/interpretive-systems/difftable/internal/gitx"
	"github.com/interpretive-systems/difftable/internal/patch"
)

// Entry is one listed file.
type Entry struct {
	Path   string
	Status string // one of "M", "A", "D", "?"
	Binary bool
}

// Source lists files and loads the comparison of one of them.
type Source interface {
	Entries() ([]Entry, error)
	File(path string) (diffmodel.File, error)
}

// Repo is a git working tree. With Staged set it compares HEAD against the index, otherwise HEAD against the working tree.
type Repo struct {
	Root   string
	Staged bool
}

// Entries lists the changed files of the repository, restricted to staged ones when r.Staged is set.
func (r Repo) Entries() ([]Entry, error) {
	changes, err := gitx.ChangedFiles(r.Root)
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, c := range changes {
		if r.Staged && !c.Staged {
			continue
		}
		e := Entry{Path: c.Path, Status: "M", Binary: c.Binary}
		switch {
		case c.Deleted:
			e.Status = "D"
		case c.Added:
			e.Status = "A"
		case c.Untracked:
			e.Status = "?"
		}
		out = append(out, e)
	}
	return out, nil
}

// File diffs path and parses the result. An unchanged path yields a File with no blocks.
func (r Repo) File(path string) (diffmodel.File, error) {
	diff := gitx.DiffHEAD
	if r.Staged {
		diff = gitx.DiffStaged
	}
	text, err := diff(r.Root, path)
	if err != nil {
		return diffmodel.File{}, fmt.Errorf("%s: %w", path, err)
	}
	files, err := patch.ParseString(text)
	if err != nil {
		return diffmodel.File{}, fmt.Errorf("%s: %w", path, err)
	}
	if len(files) == 0 {
		return diffmodel.File{Name: path, OldLabel: "a/" + path, NewLabel: "b/" + path}, nil
	}
	return files[0], nil
}

// Static serves a fixed set of files, in input order.
type Static struct {
	files  []diffmodel.File
	byName map[string]int
}

// NewStatic returns a Static over files. Later files replace earlier ones with the same name.
func NewStatic(files []diffmodel.File) *Static {
	s := &Static{byName: map[string]int{}}
	for _, f := range files {
		if i, ok := s.byName[f.Name]; ok {
			s.files[i] = f
			continue
		}
		s.byName[f.Name] = len(s.files)
		s.files = append(s.files, f)
	}
	return s
}

// Entries lists the files in input order.
func (s *Static) Entries() ([]Entry, error) {
	out := make([]Entry, 0, len(s.files))
	for _, f := range s.files {
		out = append(out, Entry{Path: f.Name, Status: status(f)})
	}
	return out, nil
}

// File returns the file named path.
func (s *Static) File(path string) (diffmodel.File, error) {
	i, ok := s.byName[path]
	if !ok {
		return diffmodel.File{}, fmt.Errorf("%s: %w", path, os.ErrNotExist)
	}
	return s.files[i], nil
}

// Files returns every file in input order.
func (s *Static) Files() []diffmodel.File {
	return s.files
}

func status(f diffmodel.File) string {
	switch {
	case f.OldLabel == "/dev/null":
		return "A"
	case f.NewLabel == "/dev/null":
		return "D"
	}
	return "M"
}

// Open loads path as a model file (.json, .yaml, .yml) or, for any other name, as a patch. "-" reads a patch from stdin.
func Open(path string) (*Static, error) {
	if path == "-" {
		return Read(os.Stdin)
	}
	if _, ok := diffmodel.FormatForPath(path); ok {
		files, err := diffmodel.LoadFile(path)
		if err != nil {
			return nil, err
		}
		return NewStatic(files), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	s, err := Read(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Read parses a patch from r.
func Read(r io.Reader) (*Static, error) {
	files, err := patch.Parse(r)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("source: %d files from patch", len(files))
	return NewStatic(files), nil
}
