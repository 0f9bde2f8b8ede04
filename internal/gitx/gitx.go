// Package gitx shells out to git for the read-only plumbing the viewer needs.
package gitx

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/golang/glog"
)

// FileChange represents a changed file in the repo.
type FileChange struct {
	Path      string
	Staged    bool
	Unstaged  bool
	Untracked bool
	Binary    bool
	Deleted   bool
	Added     bool // staged as new: absent from HEAD, present in the index
}

// RepoRoot resolves the git repository root from a given path (or current dir).
func RepoRoot(path string) (string, error) {
	if path == "" {
		path = "."
	}
	out, err := exec.Command("git", "-C", path, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("rev-parse: %w", err)
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", errors.New("empty git root")
	}
	return root, nil
}

// ChangedFiles lists files changed relative to HEAD, combining staged, unstaged, and untracked.
func ChangedFiles(repoRoot string) ([]FileChange, error) {
	unstaged, err := listNames(repoRoot, "diff", "--name-only", "--diff-filter=ACDMRTUXB")
	if err != nil {
		return nil, err
	}
	staged, err := listNames(repoRoot, "diff", "--name-only", "--cached", "--diff-filter=ACDMRTUXB")
	if err != nil {
		return nil, err
	}
	untracked, err := listNames(repoRoot, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	deletedUnstaged, _ := listNames(repoRoot, "ls-files", "-d")
	deletedStaged, _ := listNames(repoRoot, "diff", "--cached", "--name-only", "--diff-filter=D")
	addedStaged, _ := listNames(repoRoot, "diff", "--cached", "--name-only", "--diff-filter=A")

	m := map[string]*FileChange{}
	mark := func(paths []string, fn func(fc *FileChange)) {
		for _, p := range paths {
			fc := m[p]
			if fc == nil {
				fc = &FileChange{Path: p}
				m[p] = fc
			}
			fn(fc)
		}
	}
	mark(unstaged, func(fc *FileChange) { fc.Unstaged = true })
	mark(staged, func(fc *FileChange) { fc.Staged = true })
	mark(untracked, func(fc *FileChange) { fc.Untracked = true })
	mark(deletedUnstaged, func(fc *FileChange) { fc.Deleted = true; fc.Unstaged = true })
	mark(deletedStaged, func(fc *FileChange) { fc.Deleted = true; fc.Staged = true })
	mark(addedStaged, func(fc *FileChange) { fc.Added = true; fc.Staged = true })

	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	out := make([]FileChange, 0, len(paths))
	for _, p := range paths {
		fc := m[p]
		fc.Binary = isBinary(repoRoot, p)
		out = append(out, *fc)
	}
	glog.V(1).Infof("gitx: %s: %d changed files", repoRoot, len(out))
	return out, nil
}

func listNames(repoRoot string, args ...string) ([]string, error) {
	b, err := exec.Command("git", append([]string{"-C", repoRoot}, args...)...).Output()
	if err != nil {
		return nil, fmt.Errorf("git %v: %w", strings.Join(args, " "), err)
	}
	var out []string
	for _, l := range strings.Split(string(b), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out, nil
}

// DiffHEAD returns a unified diff between HEAD and the working tree for a single file. Untracked files are diffed against /dev/null.
func DiffHEAD(repoRoot, path string) (string, error) {
	if isTracked(repoRoot, path) {
		return diff(repoRoot, "diff", "--no-color", "--text", "HEAD", "--", path)
	}
	return diff(repoRoot, "diff", "--no-color", "--no-index", "--text", "/dev/null", path)
}

// DiffStaged returns the unified diff between HEAD and the index for a single file.
func DiffStaged(repoRoot, path string) (string, error) {
	return diff(repoRoot, "diff", "--no-color", "--text", "--cached", "--", path)
}

// diff runs git with args. Exit status 1 with output is git's "differences found" and is not an error.
func diff(repoRoot string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", repoRoot}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	b, err := cmd.Output()
	if err != nil {
		var exit *exec.ExitError
		if !errors.As(err, &exit) || exit.ExitCode() != 1 || len(b) == 0 {
			return "", fmt.Errorf("git diff: %w: %s", err, strings.TrimSpace(stderr.String()))
		}
	}
	return string(b), nil
}

func isBinary(repoRoot, path string) bool {
	var args []string
	if isTracked(repoRoot, path) {
		args = []string{"-C", repoRoot, "diff", "--numstat", "HEAD", "--", path}
	} else {
		args = []string{"-C", repoRoot, "diff", "--numstat", "--no-index", "/dev/null", path}
	}
	b, _ := exec.Command("git", args...).Output()
	// numstat returns "-\t-\tpath" for binary files
	parts := strings.Split(strings.TrimSpace(string(b)), "\t")
	return len(parts) >= 2 && (parts[0] == "-" || parts[1] == "-")
}

func isTracked(repoRoot, path string) bool {
	return exec.Command("git", "-C", repoRoot, "ls-files", "--error-unmatch", "--", path).Run() == nil
}

// CurrentBranch returns the checked-out branch name, or "HEAD" when detached.
func CurrentBranch(repoRoot string) (string, error) {
	b, err := exec.Command("git", "-C", repoRoot, "rev-parse", "--abbrev-ref", "HEAD").Output()
	if err != nil {
		return "", fmt.Errorf("rev-parse --abbrev-ref: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// LastCommitSummary returns short hash and subject of last commit.
func LastCommitSummary(repoRoot string) (string, error) {
	b, err := exec.Command("git", "-C", repoRoot, "log", "-1", "--pretty=format:%h %s").Output()
	if err != nil {
		return "", fmt.Errorf("git log: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
