package tui

import (
	"time"

	"github.com/interpretive-systems/difftable/internal/source"
	"github.com/interpretive-systems/difftable/internal/theme"
	"github.com/interpretive-systems/difftable/internal/tui/components"
)

// Options configure a viewer session.
type Options struct {
	// Source lists and loads files. Required.
	Source source.Source
	// RepoRoot enables git features (branch, last commit, preferences, staged toggle, periodic refresh). Empty for patch and model files.
	RepoRoot string
	// Mode is the initial view mode; a saved preference overrides it.
	Mode components.ViewMode
	// Theme names the base theme, "dark" or "light".
	Theme string
	// StdinConsumed is set when the diff was read from stdin.
	StdinConsumed bool
}

// State holds all application state.
type State struct {
	Source   source.Source
	RepoRoot string
	Staged   bool

	Branch      string
	LastCommit  string
	LastRefresh time.Time
	ShowHelp    bool

	FileList  *components.FileList
	DiffPane  *components.DiffPane
	StatusBar *components.StatusBar
	Theme     theme.Theme
}

// NewState creates initial application state.
func NewState(opts Options) *State {
	th := theme.Base(opts.Theme)
	if opts.RepoRoot != "" {
		th = theme.FromRepo(opts.RepoRoot, opts.Theme)
	}
	s := &State{
		Source:    opts.Source,
		RepoRoot:  opts.RepoRoot,
		Theme:     th,
		FileList:  components.NewFileList(),
		DiffPane:  components.NewDiffPane(th),
		StatusBar: components.NewStatusBar(),
	}
	if repo, ok := opts.Source.(source.Repo); ok {
		s.Staged = repo.Staged
	}
	s.DiffPane.SetMode(opts.Mode)
	return s
}

// InRepo reports whether the session is backed by a git repository.
func (s *State) InRepo() bool {
	return s.RepoRoot != ""
}
