// Package theme holds the colours the viewer paints diffs with.
package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/golang/glog"
)

// File is the per-repository override file, relative to the repository root.
var File = filepath.Join(".difftable", "theme.json")

// Theme defines customizable colors for rendering.
type Theme struct {
	AddColor     string `json:"addColor"`
	DelColor     string `json:"delColor"`
	MetaColor    string `json:"metaColor"`
	DividerColor string `json:"dividerColor"`
	LineNumColor string `json:"lineNumColor"`
	AddBgColor   string `json:"addBgColor"`
	DelBgColor   string `json:"delBgColor"`
}

func dark() Theme {
	return Theme{
		AddColor:     "34",
		DelColor:     "196",
		MetaColor:    "63",
		DividerColor: "240",
		LineNumColor: "244",
		AddBgColor:   "235",
		DelBgColor:   "235",
	}
}

func light() Theme {
	return Theme{
		AddColor:     "22",
		DelColor:     "9",
		MetaColor:    "27",
		DividerColor: "244",
		LineNumColor: "246",
		AddBgColor:   "255",
		DelBgColor:   "255",
	}
}

// Base returns the named base theme. Anything but "light" is dark.
func Base(name string) Theme {
	if name == "light" {
		return light()
	}
	return dark()
}

// Default is the theme used when nothing is configured.
func Default() Theme {
	return dark()
}

// Load merges <repoRoot>/.difftable/theme.json over the named base theme. A missing file yields the base theme; an unreadable one is an error.
func Load(repoRoot, base string) (Theme, error) {
	t := Base(base)
	path := filepath.Join(repoRoot, File)
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return t, nil
	}
	if err != nil {
		return t, fmt.Errorf("read theme: %w", err)
	}
	var u Theme
	if err := json.Unmarshal(b, &u); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	glog.V(1).Infof("theme: loaded overrides from %s", path)
	return t.merge(u), nil
}

// FromRepo is Load that falls back to the base theme on error.
func FromRepo(repoRoot, base string) Theme {
	t, err := Load(repoRoot, base)
	if err != nil {
		glog.Warningf("theme: %v; using %q base theme", err, base)
		return Base(base)
	}
	return t
}

// merge keeps t's colours for fields u leaves empty.
func (t Theme) merge(u Theme) Theme {
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&t.AddColor, u.AddColor)
	pick(&t.DelColor, u.DelColor)
	pick(&t.MetaColor, u.MetaColor)
	pick(&t.DividerColor, u.DividerColor)
	pick(&t.LineNumColor, u.LineNumColor)
	pick(&t.AddBgColor, u.AddBgColor)
	pick(&t.DelBgColor, u.DelBgColor)
	return t
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

func (t Theme) AddText(s string) string     { return fg(t.AddColor).Render(s) }
func (t Theme) DelText(s string) string     { return fg(t.DelColor).Render(s) }
func (t Theme) MetaText(s string) string    { return fg(t.MetaColor).Render(s) }
func (t Theme) DividerText(s string) string { return fg(t.DividerColor).Render(s) }
func (t Theme) LineNumText(s string) string { return fg(t.LineNumColor).Render(s) }

// AddLine paints s with the added foreground and background.
func (t Theme) AddLine(s string) string {
	return fg(t.AddColor).Background(lipgloss.Color(t.AddBgColor)).Render(s)
}

// DelLine paints s with the removed foreground and background.
func (t Theme) DelLine(s string) string {
	return fg(t.DelColor).Background(lipgloss.Color(t.DelBgColor)).Render(s)
}
