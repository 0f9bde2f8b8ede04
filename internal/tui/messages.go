package tui

import (
	"github.com/interpretive-systems/difftable/internal/diffmodel"
	"github.com/interpretive-systems/difftable/internal/prefs"
	"github.com/interpretive-systems/difftable/internal/source"
)

// tickMsg triggers periodic refresh.
type tickMsg struct{}

// entriesMsg contains the listed files.
type entriesMsg struct {
	entries []source.Entry
	err     error
}

// fileMsg contains one loaded file.
type fileMsg struct {
	path string
	file diffmodel.File
	err  error
}

// lastCommitMsg contains the last commit summary.
type lastCommitMsg struct {
	summary string
	err     error
}

// currentBranchMsg contains the current branch name.
type currentBranchMsg struct {
	name string
	err  error
}

// prefsMsg contains loaded preferences.
type prefsMsg struct {
	p prefs.Prefs
}
