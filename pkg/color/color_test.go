package color_test

import (
	"minilang/pkg/color"
	"testing"
)

func TestColorizeDisabled(t *testing.T) {
	prev := color.IsColorEnabled()
	defer color.EnableColor(prev)

	color.EnableColor(false)
	if got := color.RedText("boom"); got != "boom" {
		t.Errorf("expected plain text, got %q", got)
	}
	if got := color.Error("bad"); got != "Error: bad" {
		t.Errorf("expected plain error, got %q", got)
	}
}

func TestColorizeEnabled(t *testing.T) {
	prev := color.IsColorEnabled()
	defer color.EnableColor(prev)

	color.EnableColor(true)
	want := color.Yellow + "warn" + color.Reset
	if got := color.YellowText("warn"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
