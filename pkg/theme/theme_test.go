package theme

import (
	"fmt"
	"testing"

	"charm.land/lipgloss/v2"
)

// colorsEqual compares a palette entry with a color spec.
func colorsEqual(a interface{}, expected string) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", lipgloss.Color(expected))
}

func TestAllPresetsHaveRequiredColors(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("No themes found")
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			for role, c := range Colors(FromName(name)) {
				if c == nil {
					t.Errorf("%s color is nil", role)
				}
			}
		})
	}
}

func TestFromName(t *testing.T) {
	if !colorsEqual(FromName("Dracula").Accent, "#bd93f9") {
		t.Error("preset lookup should ignore case")
	}
	if !colorsEqual(FromName("no-such-theme").Accent, "13") {
		t.Error("unknown names should fall back to the default palette")
	}
	if _, ok := Get("nord"); !ok {
		t.Error("Get(nord) should exist")
	}
	if _, ok := Get(DefaultName); !ok {
		t.Error("the default palette should be a preset")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GRIDSEL_COLOR_ACCENT", "#112233")
	t.Setenv("GRIDSEL_BG_CURSOR", "42")

	p := FromEnv(Default())
	if !colorsEqual(p.Accent, "#112233") {
		t.Errorf("Accent = %v", p.Accent)
	}
	if !colorsEqual(p.SelectedBG, "#112233") {
		t.Errorf("accent override should also set SelectedBG, got %v", p.SelectedBG)
	}
	if !colorsEqual(p.CursorBG, "42") {
		t.Errorf("CursorBG = %v", p.CursorBG)
	}
	if !colorsEqual(p.Dim, "8") {
		t.Errorf("unset variables must keep the base color, Dim = %v", p.Dim)
	}
}

func TestNormalize(t *testing.T) {
	p := Normalize(Palette{Accent: lipgloss.Color("1"), Info: lipgloss.Color("2"), MutedBG: lipgloss.Color("3")})

	tests := []struct {
		name string
		got  interface{}
		want string
	}{
		{"cursor falls back to info", p.CursorBG, "2"},
		{"cursor selected falls back to cursor", p.CursorSelectedBG, "2"},
		{"border falls back to accent", p.Border, "1"},
		{"selected falls back to accent", p.SelectedBG, "1"},
		{"shade falls back to muted", p.ShadeBG, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !colorsEqual(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	p := ApplyOverrides(Default(), map[string]string{
		"Cursor": "#010203",
		"shade":  "99",
		"bogus":  "1",
		"text":   "",
	})
	if !colorsEqual(p.CursorBG, "#010203") {
		t.Errorf("CursorBG = %v", p.CursorBG)
	}
	if !colorsEqual(p.ShadeBG, "99") {
		t.Errorf("ShadeBG = %v", p.ShadeBG)
	}
	if !colorsEqual(p.Text, "15") {
		t.Errorf("empty override must keep the base color, Text = %v", p.Text)
	}
}
