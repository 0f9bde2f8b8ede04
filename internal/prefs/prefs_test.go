package prefs

import (
	"os/exec"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if out, err := exec.Command("git", "-C", dir, "init", "-q").CombinedOutput(); err != nil {
		t.Fatalf("git init: %v\n%s", err, out)
	}

	p := Load(dir)
	if p.WrapSet || p.ModeSet || p.LeftSet {
		t.Fatalf("fresh repo should have no prefs, got %+v", p)
	}

	if err := SaveWrap(dir, true); err != nil {
		t.Fatal(err)
	}
	if err := SaveViewMode(dir, "inline"); err != nil {
		t.Fatal(err)
	}
	if err := SaveLeftWidth(dir, 42); err != nil {
		t.Fatal(err)
	}
	p = Load(dir)
	if !p.Wrap || p.ViewMode != "inline" || p.LeftWidth != 42 {
		t.Fatalf("unexpected prefs after save: %+v", p)
	}

	if err := SaveLeftWidth(dir, 0); err == nil {
		t.Fatal("expected error for zero width")
	}
	if err := SaveViewMode(dir, ""); err == nil {
		t.Fatal("expected error for empty mode")
	}
}

func TestParseBool(t *testing.T) {
	for s, want := range map[string]bool{"true": true, "ON": true, "1": true, "false": false, "": false, "nope": false} {
		if got := parseBool(s); got != want {
			t.Errorf("parseBool(%q) = %v, want %v", s, got, want)
		}
	}
}
