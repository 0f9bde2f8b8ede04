// Package prefs persists viewer preferences in the repository's local git config.
package prefs

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// Prefs represents persisted UI preferences. The *Set fields report whether the key was present.
type Prefs struct {
	Wrap      bool
	WrapSet   bool
	ViewMode  string
	ModeSet   bool
	LeftWidth int
	LeftSet   bool
}

const (
	keyWrap      = "difftable.wrap"
	keyViewMode  = "difftable.viewMode"
	keyLeftWidth = "difftable.leftWidth"
)

// Load reads preferences from git local config.
func Load(repoRoot string) Prefs {
	var p Prefs
	if s, ok := get(repoRoot, keyWrap); ok {
		p.WrapSet = true
		p.Wrap = parseBool(s)
	}
	if s, ok := get(repoRoot, keyViewMode); ok && s != "" {
		p.ModeSet = true
		p.ViewMode = s
	}
	if s, ok := get(repoRoot, keyLeftWidth); ok {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			p.LeftSet = true
			p.LeftWidth = n
		}
	}
	glog.V(2).Infof("prefs: %s: %+v", repoRoot, p)
	return p
}

// SaveWrap persists wrap pref.
func SaveWrap(repoRoot string, v bool) error {
	return set(repoRoot, keyWrap, strconv.FormatBool(v))
}

// SaveViewMode persists the view mode name.
func SaveViewMode(repoRoot, mode string) error {
	if mode == "" {
		return fmt.Errorf("empty view mode")
	}
	return set(repoRoot, keyViewMode, mode)
}

// SaveLeftWidth persists left column width.
func SaveLeftWidth(repoRoot string, w int) error {
	if w <= 0 {
		return fmt.Errorf("invalid left width: %d", w)
	}
	return set(repoRoot, keyLeftWidth, strconv.Itoa(w))
}

func get(repoRoot, key string) (string, bool) {
	b, err := exec.Command("git", "-C", repoRoot, "config", "--get", key).Output()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

func set(repoRoot, key, value string) error {
	cmd := exec.Command("git", "-C", repoRoot, "config", "--local", key, value)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git config %s: %w: %s", key, err, string(out))
	}
	return nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
