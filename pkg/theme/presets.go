package theme

import (
	"image/color"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
)

// DefaultName is the preset used when no theme is configured.
const DefaultName = "default"

// Preset palettes inspired by popular themes.
var presets = map[string]Palette{
	DefaultName: Default(),
	"dracula": {
		Accent:           lipgloss.Color("#bd93f9"),
		Warning:          lipgloss.Color("#f1fa8c"),
		Dim:              lipgloss.Color("#6272a4"),
		Info:             lipgloss.Color("#8be9fd"),
		Text:             lipgloss.Color("#f8f8f2"),
		Success:          lipgloss.Color("#50fa7b"),
		Danger:           lipgloss.Color("#ff5555"),
		SelectedBG:       lipgloss.Color("#bd93f9"),
		CursorBG:         lipgloss.Color("#8be9fd"),
		CursorSelectedBG: lipgloss.Color("#ff79c6"),
		Border:           lipgloss.Color("#bd93f9"),
		MutedBG:          lipgloss.Color("#44475a"),
		ShadeBG:          lipgloss.Color("#3a3c4e"),
	},
	"nord": {
		Accent:           lipgloss.Color("#81a1c1"),
		Warning:          lipgloss.Color("#ebcb8b"),
		Dim:              lipgloss.Color("#4c566a"),
		Info:             lipgloss.Color("#88c0d0"),
		Text:             lipgloss.Color("#eceff4"),
		Success:          lipgloss.Color("#a3be8c"),
		Danger:           lipgloss.Color("#bf616a"),
		SelectedBG:       lipgloss.Color("#81a1c1"),
		CursorBG:         lipgloss.Color("#88c0d0"),
		CursorSelectedBG: lipgloss.Color("#8fbcbb"),
		Border:           lipgloss.Color("#81a1c1"),
		MutedBG:          lipgloss.Color("#3b4252"),
		ShadeBG:          lipgloss.Color("#434c5e"),
	},
	"gruvbox": {
		Accent:           lipgloss.Color("#d3869b"),
		Warning:          lipgloss.Color("#fabd2f"),
		Dim:              lipgloss.Color("#928374"),
		Info:             lipgloss.Color("#83a598"),
		Text:             lipgloss.Color("#ebdbb2"),
		Success:          lipgloss.Color("#b8bb26"),
		Danger:           lipgloss.Color("#fb4934"),
		SelectedBG:       lipgloss.Color("#d3869b"),
		CursorBG:         lipgloss.Color("#83a598"),
		CursorSelectedBG: lipgloss.Color("#8ec07c"),
		Border:           lipgloss.Color("#d3869b"),
		MutedBG:          lipgloss.Color("#3c3836"),
		ShadeBG:          lipgloss.Color("#504945"),
	},
	"catppuccin-mocha": {
		Accent:           lipgloss.Color("#cba6f7"),
		Warning:          lipgloss.Color("#f9e2af"),
		Dim:              lipgloss.Color("#7f849c"),
		Info:             lipgloss.Color("#94e2d5"),
		Text:             lipgloss.Color("#cdd6f4"),
		Success:          lipgloss.Color("#a6e3a1"),
		Danger:           lipgloss.Color("#f38ba8"),
		SelectedBG:       lipgloss.Color("#cba6f7"),
		CursorBG:         lipgloss.Color("#94e2d5"),
		CursorSelectedBG: lipgloss.Color("#89dceb"),
		Border:           lipgloss.Color("#cba6f7"),
		MutedBG:          lipgloss.Color("#313244"),
		ShadeBG:          lipgloss.Color("#45475a"),
	},
}

// Names returns sorted preset names.
func Names() []string {
	out := make([]string, 0, len(presets))
	for k := range presets {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FromName returns a preset by name, or the default palette if unknown.
func FromName(name string) Palette {
	if p, ok := presets[strings.ToLower(name)]; ok {
		return p
	}
	return Default()
}

// Get returns a preset and whether it exists.
func Get(name string) (Palette, bool) {
	p, ok := presets[strings.ToLower(name)]
	return p, ok
}

// Colors exposes palette colors by role name.
func Colors(p Palette) map[string]color.Color {
	return map[string]color.Color{
		"accent":    p.Accent,
		"warning":   p.Warning,
		"dim":       p.Dim,
		"info":      p.Info,
		"text":      p.Text,
		"success":   p.Success,
		"danger":    p.Danger,
		"selected":  p.SelectedBG,
		"cursor":    p.CursorBG,
		"cursorSel": p.CursorSelectedBG,
		"border":    p.Border,
		"muted":     p.MutedBG,
		"shade":     p.ShadeBG,
	}
}

// ApplyOverrides replaces palette entries by role name, using the names
// returned by Colors. Unknown roles are ignored.
func ApplyOverrides(p Palette, overrides map[string]string) Palette {
	for role, v := range overrides {
		if v == "" {
			continue
		}
		c := lipgloss.Color(v)
		switch strings.ToLower(role) {
		case "accent":
			p.Accent = c
		case "warning":
			p.Warning = c
		case "dim":
			p.Dim = c
		case "info":
			p.Info = c
		case "text":
			p.Text = c
		case "success":
			p.Success = c
		case "danger":
			p.Danger = c
		case "selected":
			p.SelectedBG = c
		case "cursor":
			p.CursorBG = c
		case "cursorsel":
			p.CursorSelectedBG = c
		case "border":
			p.Border = c
		case "muted":
			p.MutedBG = c
		case "shade":
			p.ShadeBG = c
		}
	}
	return p
}
