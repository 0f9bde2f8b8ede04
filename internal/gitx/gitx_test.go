package gitx

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// newRepo initializes a repository on branch main with f1.txt and del.txt committed.
func newRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	mustRun(t, dir, "git", "-c", "init.defaultBranch=main", "init", "-q")
	mustRun(t, dir, "git", "config", "user.email", "test@example.com")
	mustRun(t, dir, "git", "config", "user.name", "Test User")

	write(t, filepath.Join(dir, "f1.txt"), "one\nline\n")
	write(t, filepath.Join(dir, "del.txt"), "to delete\n")
	mustRun(t, dir, "git", "add", ".")
	mustRun(t, dir, "git", "commit", "-q", "-m", "init")
	return dir
}

func TestChangedFiles_AndDiffHEAD(t *testing.T) {
	dir := newRepo(t)

	// modify f1 (unstaged), create new (untracked), delete del.txt (unstaged)
	write(t, filepath.Join(dir, "f1.txt"), "one\nline changed\n")
	write(t, filepath.Join(dir, "new.txt"), "brand new\n")
	if err := os.Remove(filepath.Join(dir, "del.txt")); err != nil {
		t.Fatal(err)
	}

	files, err := ChangedFiles(dir)
	if err != nil {
		t.Fatalf("ChangedFiles error: %v", err)
	}
	m := map[string]FileChange{}
	for _, f := range files {
		m[f.Path] = f
	}
	if !m["f1.txt"].Unstaged {
		t.Fatalf("expected f1.txt to be unstaged modified, got %+v", m["f1.txt"])
	}
	if !m["new.txt"].Untracked {
		t.Fatalf("expected new.txt to be untracked, got %+v", m["new.txt"])
	}
	if !(m["del.txt"].Deleted && m["del.txt"].Unstaged) {
		t.Fatalf("expected del.txt to be deleted unstaged, got %+v", m["del.txt"])
	}

	d, err := DiffHEAD(dir, "f1.txt")
	if err != nil {
		t.Fatalf("DiffHEAD error: %v", err)
	}
	if !strings.Contains(d, "-line") || !strings.Contains(d, "+line changed") {
		t.Fatalf("unexpected diff: %s", d)
	}

	d, err = DiffHEAD(dir, "new.txt")
	if err != nil {
		t.Fatalf("DiffHEAD untracked error: %v", err)
	}
	if !strings.Contains(d, "+brand new") {
		t.Fatalf("unexpected untracked diff: %s", d)
	}
}

func TestDiffStaged(t *testing.T) {
	dir := newRepo(t)
	write(t, filepath.Join(dir, "f1.txt"), "one\nstaged\n")
	mustRun(t, dir, "git", "add", "f1.txt")
	write(t, filepath.Join(dir, "f1.txt"), "one\nstaged\nunstaged\n")

	d, err := DiffStaged(dir, "f1.txt")
	if err != nil {
		t.Fatalf("DiffStaged error: %v", err)
	}
	if !strings.Contains(d, "+staged") || strings.Contains(d, "+unstaged") {
		t.Fatalf("unexpected staged diff: %s", d)
	}

	files, err := ChangedFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || !files[0].Staged || !files[0].Unstaged {
		t.Fatalf("expected f1.txt staged and unstaged, got %+v", files)
	}

	d, err = DiffStaged(dir, "del.txt")
	if err != nil || d != "" {
		t.Fatalf("expected empty staged diff for untouched file, got %q, %v", d, err)
	}
}

func TestChangedFiles_StagedNewFile(t *testing.T) {
	dir := newRepo(t)
	write(t, filepath.Join(dir, "added.txt"), "hello\n")
	mustRun(t, dir, "git", "add", "added.txt")

	files, err := ChangedFiles(dir)
	if err != nil {
		t.Fatalf("ChangedFiles error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected one change, got %+v", files)
	}
	if fc := files[0]; fc.Path != "added.txt" || !fc.Added || !fc.Staged || fc.Untracked {
		t.Fatalf("expected added.txt staged as new, got %+v", fc)
	}
}

func TestRepoInfo(t *testing.T) {
	dir := newRepo(t)

	root, err := RepoRoot(dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(root) != filepath.Base(dir) {
		t.Fatalf("RepoRoot = %s, want %s", root, dir)
	}
	branch, err := CurrentBranch(dir)
	if err != nil || branch != "main" {
		t.Fatalf("CurrentBranch = %q, %v", branch, err)
	}
	sum, err := LastCommitSummary(dir)
	if err != nil || !strings.HasSuffix(sum, " init") {
		t.Fatalf("LastCommitSummary = %q, %v", sum, err)
	}
	if _, err := RepoRoot(t.TempDir()); err == nil {
		t.Fatal("expected error outside a repository")
	}
}

func mustRun(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("command %s %v failed: %v\n%s", name, args, err, out)
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
