// Package tui is the interactive diff viewer.
package tui

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/glog"
	"github.com/interpretive-systems/difftable/internal/prefs"
	"github.com/interpretive-systems/difftable/internal/source"
	"github.com/interpretive-systems/difftable/internal/tui/components"
)

// Program is the Bubble Tea model of the viewer.
type Program struct {
	state      *State
	layout     *Layout
	keyHandler *KeyHandler
}

// New returns a Program for opts.
func New(opts Options) Program {
	return Program{
		state:      NewState(opts),
		layout:     NewLayout(),
		keyHandler: NewKeyHandler(),
	}
}

// Run instantiates and runs the Bubble Tea program.
func Run(opts Options) error {
	if opts.Source == nil {
		return fmt.Errorf("tui: no source")
	}
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.StdinConsumed {
		// Keys come from the terminal when the diff was piped in.
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	p := tea.NewProgram(New(opts), progOpts...)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func (p Program) Init() tea.Cmd {
	cmds := []tea.Cmd{loadEntries(p.state.Source)}
	if p.state.InRepo() {
		root := p.state.RepoRoot
		cmds = append(cmds, loadPrefs(root), loadLastCommit(root), loadCurrentBranch(root), tickOnce())
	}
	return tea.Batch(cmds...)
}

func (p Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := p.state
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s.ShowHelp {
			switch msg.String() {
			case "q", "ctrl+c":
				return p, tea.Quit
			case "h", "esc":
				s.ShowHelp = false
				return p, p.recalcViewport()
			}
			return p, nil
		}
		action, count := p.keyHandler.Handle(msg)
		s.StatusBar.SetKeyBuffer(p.keyHandler.KeyBuffer())
		return p, p.handleAction(action, count)

	case tea.WindowSizeMsg:
		p.layout.SetSize(msg.Width, msg.Height)
		return p, p.recalcViewport()

	case tickMsg:
		if !s.InRepo() {
			return p, nil
		}
		return p, tea.Batch(loadEntries(s.Source), tickOnce())

	case entriesMsg:
		if msg.err != nil {
			s.StatusBar.SetMessage(fmt.Sprintf("status error: %v", msg.err))
			return p, nil
		}
		s.StatusBar.SetMessage("")
		s.FileList.SetEntries(msg.entries)
		s.LastRefresh = time.Now()
		s.StatusBar.SetLastRefresh(s.LastRefresh)
		if e := s.FileList.SelectedEntry(); e != nil {
			return p, tea.Batch(loadFile(s.Source, e.Path), p.recalcViewport())
		}
		s.DiffPane.Clear()
		return p, p.recalcViewport()

	case fileMsg:
		e := s.FileList.SelectedEntry()
		if e == nil || e.Path != msg.path {
			return p, nil
		}
		if msg.err != nil {
			s.DiffPane.SetError(msg.err)
			return p, p.recalcViewport()
		}
		// A periodic refresh of an unchanged file keeps the scroll position and the cached unified text.
		if cur := s.DiffPane.File(); cur != nil && reflect.DeepEqual(*cur, msg.file) {
			return p, nil
		}
		if err := s.DiffPane.SetFile(msg.file, e.Binary); err != nil {
			glog.Errorf("tui: %s: %v", msg.path, err)
		}
		return p, p.recalcViewport()

	case lastCommitMsg:
		if msg.err == nil {
			s.LastCommit = msg.summary
			s.StatusBar.SetLastCommit(msg.summary)
		}
		return p, nil

	case currentBranchMsg:
		if msg.err == nil {
			s.Branch = msg.name
		}
		return p, nil

	case prefsMsg:
		p.applyPrefs(msg.p)
		return p, p.recalcViewport()
	}
	return p, nil
}

func (p Program) applyPrefs(pr prefs.Prefs) {
	if pr.ModeSet {
		if m, err := components.ParseViewMode(pr.ViewMode); err == nil {
			p.state.DiffPane.SetMode(m)
		} else {
			glog.Warningf("tui: ignoring saved view mode: %v", err)
		}
	}
	if pr.WrapSet {
		p.state.DiffPane.SetWrap(pr.Wrap)
	}
	if pr.LeftSet {
		p.layout.SetLeftWidth(pr.LeftWidth)
	}
}

func (p Program) handleAction(action KeyAction, count int) tea.Cmd {
	s := p.state
	pane := s.DiffPane
	vp := pane.Viewport()
	switch action {
	case ActionQuit:
		return tea.Quit
	case ActionToggleHelp:
		s.ShowHelp = true
		return p.recalcViewport()
	case ActionRefresh:
		return loadEntries(s.Source)
	case ActionSideBySide:
		return p.setMode(components.SideBySide)
	case ActionInline:
		return p.setMode(components.Inline)
	case ActionUnified:
		return p.setMode(components.Unified)
	case ActionCycleMode:
		return p.setMode(pane.Mode().Next())
	case ActionToggleStaged:
		if _, ok := s.Source.(source.Repo); !ok {
			return nil
		}
		s.Staged = !s.Staged
		s.Source = source.Repo{Root: s.RepoRoot, Staged: s.Staged}
		pane.Clear()
		return tea.Batch(loadEntries(s.Source), p.recalcViewport())
	case ActionToggleWrap:
		pane.SetWrap(!pane.Wrap())
		return tea.Batch(p.recalcViewport(), p.save("wrap", func(root string) error { return prefs.SaveWrap(root, pane.Wrap()) }))
	case ActionMoveDown:
		return p.selectIf(s.FileList.MoveSelection(count))
	case ActionMoveUp:
		return p.selectIf(s.FileList.MoveSelection(-count))
	case ActionGoToTop:
		return p.selectIf(s.FileList.GoToTop())
	case ActionGoToBottom:
		return p.selectIf(s.FileList.GoToBottom())
	case ActionPageUpLeft:
		s.FileList.PageUp(p.layout.ContentHeight(len(p.overlay())))
	case ActionPageDownLeft:
		s.FileList.PageDown(p.layout.ContentHeight(len(p.overlay())))
	case ActionScrollLeft:
		pane.ScrollLeft(4 * count)
		return p.recalcViewport()
	case ActionScrollRight:
		pane.ScrollRight(4 * count)
		return p.recalcViewport()
	case ActionScrollHome:
		pane.ScrollHome()
		return p.recalcViewport()
	case ActionPageDown:
		vp.ViewDown()
	case ActionPageUp:
		vp.ViewUp()
	case ActionHalfPageDown:
		vp.HalfViewDown()
	case ActionHalfPageUp:
		vp.HalfViewUp()
	case ActionLineDown:
		vp.LineDown(count)
	case ActionLineUp:
		vp.LineUp(count)
	case ActionAdjustLeftNarrower, ActionAdjustLeftWider:
		delta := 2 * count
		if action == ActionAdjustLeftNarrower {
			delta = -delta
		}
		p.layout.AdjustLeftWidth(delta)
		w := p.layout.LeftWidth()
		return tea.Batch(p.recalcViewport(), p.save("left width", func(root string) error { return prefs.SaveLeftWidth(root, w) }))
	}
	return nil
}

func (p Program) setMode(m components.ViewMode) tea.Cmd {
	p.state.DiffPane.SetMode(m)
	return tea.Batch(p.recalcViewport(), p.save("view mode", func(root string) error { return prefs.SaveViewMode(root, m.String()) }))
}

// save persists a preference when the session has a repository.
func (p Program) save(name string, fn func(root string) error) tea.Cmd {
	if !p.state.InRepo() {
		return nil
	}
	root := p.state.RepoRoot
	return savePref(name, func() error { return fn(root) })
}

// selectIf loads the newly selected file when the selection moved.
func (p Program) selectIf(changed bool) tea.Cmd {
	if !changed {
		return nil
	}
	e := p.state.FileList.SelectedEntry()
	p.state.DiffPane.Clear()
	p.state.DiffPane.Viewport().GotoTop()
	return tea.Batch(loadFile(p.state.Source, e.Path), p.recalcViewport())
}

// recalcViewport resizes the diff pane and repaints it.
func (p Program) recalcViewport() tea.Cmd {
	if p.layout.Width() == 0 || p.layout.Height() == 0 {
		return nil
	}
	p.state.DiffPane.Refresh(p.layout.RightWidth(), p.layout.ContentHeight(len(p.overlay())))
	return nil
}

func (p Program) View() string {
	if p.layout.Width() == 0 || p.layout.Height() == 0 {
		return "Loading..."
	}
	s := p.state
	overlay := p.overlay()
	h := p.layout.ContentHeight(len(overlay))

	var right []string
	if s.FileList.SelectedEntry() != nil {
		right = strings.Split(s.DiffPane.View(), "\n")
	}
	return p.layout.RenderFrame(Frame{
		TopLeft:  "Changes | " + p.title(),
		TopRight: p.topRight(),
		Left:     s.FileList.Render(h),
		Right:    right,
		Overlay:  overlay,
		Bottom:   s.StatusBar.Render(p.layout.Width()),
	}, s.Theme)
}

func (p Program) title() string {
	e := p.state.FileList.SelectedEntry()
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s)", e.Path, components.StatusLabel(*e))
}

func (p Program) topRight() string {
	parts := []string{p.state.DiffPane.Mode().String()}
	if p.state.DiffPane.Wrap() {
		parts = append(parts, "wrap")
	}
	if p.state.Staged {
		parts = append(parts, "staged")
	}
	if p.state.Branch != "" {
		parts = append(parts, p.state.Branch)
	}
	return lipgloss.NewStyle().Faint(true).Render(strings.Join(parts, " · "))
}

var helpKeys = []string{
	"j/k or arrows   Move selection",
	"g / G           Top / Bottom",
	"J/K, PgDn/PgUp  Scroll diff",
	"{ / }           Scroll horizontally",
	"</> or H/L      Adjust left pane width",
	"s / i / u       Side-by-side / inline / unified",
	"v               Cycle view mode",
	"w               Toggle wrap",
	"t               Toggle staged / working tree",
	"r               Refresh now",
	"q               Quit",
}

// overlay returns the help overlay lines, or nil when help is closed.
func (p Program) overlay() []string {
	if !p.state.ShowHelp {
		return nil
	}
	lines := []string{
		components.Rule(p.layout.Width()),
		lipgloss.NewStyle().Bold(true).Render("Help (press 'h' or Esc to close)"),
	}
	return append(lines, helpKeys...)
}
