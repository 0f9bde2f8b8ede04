package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/glog"
	"github.com/interpretive-systems/difftable/internal/gitx"
	"github.com/interpretive-systems/difftable/internal/prefs"
	"github.com/interpretive-systems/difftable/internal/source"
)

// loadEntries lists the files of src.
func loadEntries(src source.Source) tea.Cmd {
	return func() tea.Msg {
		entries, err := src.Entries()
		return entriesMsg{entries: entries, err: err}
	}
}

// loadFile loads the comparison of path.
func loadFile(src source.Source, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := src.File(path)
		return fileMsg{path: path, file: f, err: err}
	}
}

// loadLastCommit loads the last commit summary.
func loadLastCommit(repoRoot string) tea.Cmd {
	return func() tea.Msg {
		s, err := gitx.LastCommitSummary(repoRoot)
		return lastCommitMsg{summary: s, err: err}
	}
}

// loadCurrentBranch loads the current branch name.
func loadCurrentBranch(repoRoot string) tea.Cmd {
	return func() tea.Msg {
		name, err := gitx.CurrentBranch(repoRoot)
		return currentBranchMsg{name: name, err: err}
	}
}

// loadPrefs loads user preferences.
func loadPrefs(repoRoot string) tea.Cmd {
	return func() tea.Msg {
		return prefsMsg{p: prefs.Load(repoRoot)}
	}
}

// savePref runs save in the background. Failures are logged only.
func savePref(name string, save func() error) tea.Cmd {
	return func() tea.Msg {
		if err := save(); err != nil {
			glog.Warningf("tui: saving %s: %v", name, err)
		}
		return nil
	}
}

// tickOnce schedules a single tick after 1 second.
func tickOnce() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}
