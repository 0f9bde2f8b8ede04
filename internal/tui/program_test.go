package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/interpretive-systems/difftable/internal/diffmodel"
	"github.com/interpretive-systems/difftable/internal/source"
	"github.com/interpretive-systems/difftable/internal/tui/components"
)

func sampleFile() diffmodel.File {
	return diffmodel.File{Name: "file1.txt", OldLabel: "a/file1.txt", NewLabel: "b/file1.txt", Blocks: []diffmodel.Block{
		diffmodel.Equal(1, 1, "line1"),
		diffmodel.Replace(2, []string{"line2"}, 2, []string{"line2 changed"}),
		diffmodel.Equal(3, 3, "line3"),
	}}
}

func baseModelForTest(t *testing.T) Program {
	t.Helper()
	src := source.NewStatic([]diffmodel.File{sampleFile(), {Name: "file2.txt", OldLabel: "/dev/null", NewLabel: "b/file2.txt"}})
	m := New(Options{Source: src})
	m.layout.SetSize(80, 16)
	m.layout.SetLeftWidth(24)

	entries, _ := src.Entries()
	m.state.FileList.SetEntries(entries)
	m.state.StatusBar.SetLastRefresh(time.Date(2024, 10, 1, 12, 34, 56, 0, time.UTC))
	if err := m.state.DiffPane.SetFile(sampleFile(), false); err != nil {
		t.Fatal(err)
	}
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_SideBySide_Render(t *testing.T) {
	m := baseModelForTest(t)
	m.recalcViewport()

	plain := ansi.Strip(m.View())
	if !strings.HasPrefix(plain, "Changes | file1.txt (M)") {
		t.Fatalf("unexpected header: %q", strings.SplitN(plain, "\n", 2)[0])
	}
	if !strings.Contains(plain, "│") {
		t.Fatalf("expected vertical divider in view")
	}
	if !strings.Contains(plain, "line2 changed") {
		t.Fatalf("expected changed text in right pane")
	}
	if !strings.Contains(plain, "refreshed: 12:34:56") {
		t.Fatalf("expected bottom bar timestamp, got: %q", plain)
	}
}

func TestView_Inline_Render(t *testing.T) {
	m := baseModelForTest(t)
	m.Update(key("i"))

	plain := ansi.Strip(m.View())
	if !strings.Contains(plain, "2   - line2") {
		t.Fatalf("expected inline deleted line, got: %q", plain)
	}
	if !strings.Contains(plain, "  2 + line2 changed") {
		t.Fatalf("expected inline added line, got: %q", plain)
	}
	if !strings.Contains(plain, "inline") {
		t.Fatalf("expected mode in top bar, got: %q", plain)
	}
}

func TestUnifiedToggleReusesText(t *testing.T) {
	m := baseModelForTest(t)
	memo := m.state.DiffPane.Memo()

	m.Update(key("u"))
	plain := ansi.Strip(m.View())
	if !strings.Contains(plain, "@@ -1,3 +1,3 @@") || !strings.Contains(plain, "+line2 changed") {
		t.Fatalf("expected unified text, got: %q", plain)
	}
	m.Update(key("s"))
	m.Update(key("u"))
	if m.state.DiffPane.Memo() != memo {
		t.Fatalf("unified cache replaced by a mode toggle")
	}

	// Loading another file replaces it.
	m.Update(key("j"))
	if m.state.DiffPane.Memo() == memo {
		t.Fatalf("expected the cache to be dropped with the file")
	}
	m.Update(fileMsg{path: "file2.txt", file: diffmodel.File{Name: "file2.txt"}})
	if m.state.DiffPane.File() == nil || m.state.DiffPane.File().Name != "file2.txt" {
		t.Fatalf("expected file2.txt loaded, got %+v", m.state.DiffPane.File())
	}
}

func TestCycleModeAndCounts(t *testing.T) {
	m := baseModelForTest(t)
	for _, want := range []components.ViewMode{components.Inline, components.Unified, components.SideBySide} {
		m.Update(key("v"))
		if got := m.state.DiffPane.Mode(); got != want {
			t.Fatalf("mode = %s, want %s", got, want)
		}
	}

	m.Update(key("9"))
	if m.keyHandler.KeyBuffer() != "9" {
		t.Fatalf("expected pending count")
	}
	m.Update(key("j"))
	if m.state.FileList.Selected() != 1 {
		t.Fatalf("selection = %d, want clamped to 1", m.state.FileList.Selected())
	}
}

func TestStaleFileMsgIgnored(t *testing.T) {
	m := baseModelForTest(t)
	m.Update(fileMsg{path: "file2.txt", file: diffmodel.File{Name: "file2.txt"}})
	if m.state.DiffPane.File().Name != "file1.txt" {
		t.Fatalf("message for an unselected file replaced the pane")
	}
}

func TestHelpOverlay(t *testing.T) {
	m := baseModelForTest(t)
	m.Update(key("h"))
	if !strings.Contains(ansi.Strip(m.View()), "Cycle view mode") {
		t.Fatalf("expected help overlay")
	}
	m.Update(key("j"))
	if m.state.FileList.Selected() != 0 {
		t.Fatalf("keys must not reach the list while help is open")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state.ShowHelp {
		t.Fatalf("esc should close help")
	}
}
