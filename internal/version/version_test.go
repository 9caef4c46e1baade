package version

import (
	"testing"

	"github.com/fatih/color"
)

func withNoColor(t *testing.T, v bool) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = v
	t.Cleanup(func() { color.NoColor = prev })
}

func TestColorizePlain(t *testing.T) {
	withNoColor(t, true)
	for _, v := range []string{"0.1.0-dev", "1.2.3", "nightly", "1.2"} {
		t.Run(v, func(t *testing.T) {
			if got := Colorize(v); got != v {
				t.Errorf("Colorize(%q) = %q", v, got)
			}
		})
	}
}

func TestColorizeWithColor(t *testing.T) {
	withNoColor(t, false)
	got := Colorize("1.2.3-rc1")
	want := componentColors[0].Sprint("1") + "." + componentColors[1].Sprint("2") + "." +
		componentColors[2].Sprint("3") + "-rc1"
	if got != want {
		t.Errorf("Colorize() = %q, want %q", got, want)
	}
}

func TestCurrent(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "  "
	if got := Current().Version; got != "dev" {
		t.Fatalf("blank Version reported as %q", got)
	}
	Version = "2.0.0"
	if got := Current().Version; got != "2.0.0" {
		t.Fatalf("Version = %q", got)
	}
}
