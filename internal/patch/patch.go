// Package patch converts unified and git-format patches into diff models.
package patch

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/golang/glog"
	"github.com/interpretive-systems/difftable/internal/diffmodel"
)

const devNull = "/dev/null"

// Parse reads every file of the patch in r. Binary files yield a File with no blocks.
//
// Git-format files are labelled a/<old> and b/<new>. Files of a plain unified patch keep the paths of their ---/+++ lines as labels, and are named
// after the new path with any leading b/ removed.
func Parse(r io.Reader) ([]diffmodel.File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read patch: %w", err)
	}
	files, preamble, err := gitdiff.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse patch: %w", err)
	}
	if preamble != "" {
		glog.V(2).Infof("patch: skipped %d bytes of preamble", len(preamble))
	}
	headers := scanHeaders(string(data))
	if len(headers) != len(files) {
		glog.Warningf("patch: found %d file headers for %d files, labelling all as git format", len(headers), len(files))
		headers = make([]fileHeader, len(files))
		for i := range headers {
			headers[i].git = true
		}
	}
	out := make([]diffmodel.File, 0, len(files))
	for i, gf := range files {
		f := convert(gf, headers[i])
		if err := f.Validate(); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	glog.V(1).Infof("patch: parsed %d files", len(out))
	return out, nil
}

// ParseString is Parse over a string.
func ParseString(s string) ([]diffmodel.File, error) {
	return Parse(strings.NewReader(s))
}

func convert(gf *gitdiff.File, h fileHeader) diffmodel.File {
	var f diffmodel.File
	if h.git {
		f = diffmodel.File{
			Name:     gf.NewName,
			OldLabel: label("a/", gf.OldName, gf.IsNew),
			NewLabel: label("b/", gf.NewName, gf.IsDelete),
		}
		if gf.IsDelete || f.Name == "" {
			f.Name = gf.OldName
		}
	} else {
		f = diffmodel.File{
			Name:     strings.TrimPrefix(h.new, "b/"),
			OldLabel: h.old,
			NewLabel: h.new,
		}
		if gf.IsDelete || h.new == devNull {
			f.Name = strings.TrimPrefix(h.old, "a/")
		}
	}
	if gf.IsBinary {
		glog.V(1).Infof("patch: %s: binary, no blocks", f.Name)
		return f
	}
	for i, frag := range gf.TextFragments {
		if i > 0 || frag.OldPosition > 1 || frag.NewPosition > 1 || frag.Comment != "" {
			f.Blocks = append(f.Blocks, diffmodel.Skip(frag.Comment))
		}
		f.Blocks = append(f.Blocks, blocks(frag)...)
	}
	return f
}

func label(prefix, name string, absent bool) string {
	if absent || name == "" {
		return devNull
	}
	return prefix + name
}

// fileHeader is how one file of a patch was introduced. old and new are the raw ---/+++ paths of a plain unified file.
type fileHeader struct {
	git      bool
	old, new string
}

// scanHeaders returns one fileHeader per file of the patch text, in order. Fragment bodies are skipped by their line counts, so a removed "-- x"
// line is never taken for a --- header.
func scanHeaders(text string) []fileHeader {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	var (
		out      []fileHeader
		inGitHdr bool
	)
	for i := 0; i < len(lines); i++ {
		l := lines[i]
		switch {
		case strings.HasPrefix(l, "diff --git "):
			out = append(out, fileHeader{git: true})
			inGitHdr = true
		case strings.HasPrefix(l, "@@ -"):
			inGitHdr = false
			i += fragmentLen(l, lines[i+1:])
		case strings.HasPrefix(l, "Binary files ") || l == "GIT binary patch":
			inGitHdr = false
		case inGitHdr:
		case strings.HasPrefix(l, "--- ") && i+2 < len(lines) && strings.HasPrefix(lines[i+1], "+++ ") && strings.HasPrefix(lines[i+2], "@@ -"):
			out = append(out, fileHeader{old: headerPath(l[4:]), new: headerPath(lines[i+1][4:])})
			i++
		}
	}
	return out
}

// fragmentLen counts the body lines of the fragment introduced by header.
func fragmentLen(header string, rest []string) int {
	fields := strings.Fields(header)
	if len(fields) < 3 {
		return 0
	}
	oldN, newN := rangeLen(fields[1]), rangeLen(fields[2])
	n := 0
	for ; n < len(rest) && (oldN > 0 || newN > 0); n++ {
		switch l := rest[n]; {
		case strings.HasPrefix(l, "-"):
			oldN--
		case strings.HasPrefix(l, "+"):
			newN--
		case strings.HasPrefix(l, "\\"):
		default:
			oldN--
			newN--
		}
	}
	if n < len(rest) && strings.HasPrefix(rest[n], "\\") {
		n++
	}
	return n
}

// rangeLen returns the line count of a "-a,b" or "+c,d" range; a range without a count covers one line.
func rangeLen(r string) int {
	_, count, ok := strings.Cut(r, ",")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(count)
	if err != nil {
		return 0
	}
	return n
}

// headerPath extracts the path of a ---/+++ line: a quoted name, or everything up to the timestamp tab.
func headerPath(s string) string {
	if strings.HasPrefix(s, `"`) {
		if q, err := strconv.QuotedPrefix(s); err == nil {
			if name, err := strconv.Unquote(q); err == nil {
				return name
			}
		}
	}
	name, _, _ := strings.Cut(s, "\t")
	return name
}

// blocks groups the lines of frag into runs: context lines into unmodified blocks, and each maximal run of deletions and additions into one
// removed, added or modified block.
func blocks(frag *gitdiff.TextFragment) []diffmodel.Block {
	var (
		out              []diffmodel.Block
		oldLine, newLine = int(frag.OldPosition), int(frag.NewPosition)
		context          []string
		ctxOld, ctxNew   int
		dels, adds       []string
		delOld, addNew   int
	)
	// Positions of a side with no lines in the fragment name the line before it; count from the next one.
	if frag.OldLines == 0 {
		oldLine++
	}
	if frag.NewLines == 0 {
		newLine++
	}

	flushContext := func() {
		if len(context) > 0 {
			out = append(out, diffmodel.Equal(ctxOld, ctxNew, context...))
			context = nil
		}
	}
	flushChange := func() {
		switch {
		case len(dels) > 0 && len(adds) > 0:
			out = append(out, diffmodel.Replace(delOld, dels, addNew, adds))
		case len(dels) > 0:
			out = append(out, diffmodel.Delete(delOld, dels...))
		case len(adds) > 0:
			out = append(out, diffmodel.Insert(addNew, adds...))
		}
		dels, adds = nil, nil
	}

	for _, l := range frag.Lines {
		text := strings.TrimSuffix(l.Line, "\n")
		switch l.Op {
		case gitdiff.OpContext:
			flushChange()
			if len(context) == 0 {
				ctxOld, ctxNew = oldLine, newLine
			}
			context = append(context, text)
			oldLine++
			newLine++
		case gitdiff.OpDelete:
			flushContext()
			if len(dels) == 0 {
				delOld = oldLine
			}
			dels = append(dels, text)
			oldLine++
		case gitdiff.OpAdd:
			flushContext()
			if len(adds) == 0 {
				addNew = newLine
			}
			adds = append(adds, text)
			newLine++
		}
	}
	flushContext()
	flushChange()
	return out
}
