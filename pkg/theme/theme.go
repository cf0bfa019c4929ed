package theme

import (
	"image/color"
	"os"

	"charm.land/lipgloss/v2"
)

// Palette defines the colors used by the grid view. Entries may be ANSI
// indices or truecolor hex values.
type Palette struct {
	// Accents and roles
	Accent  color.Color // header text, borders
	Warning color.Color // status hints
	Dim     color.Color // separators, empty cells
	Info    color.Color // pinned rows and columns
	Text    color.Color // cell text

	// Status line
	Success color.Color // copy succeeded
	Danger  color.Color // copy failed, rejected ranges

	// Selection backgrounds
	SelectedBG       color.Color // cells inside a range or the cell set
	CursorBG         color.Color // active node
	CursorSelectedBG color.Color // active node inside the selection
	Border           color.Color

	// Neutrals/backgrounds
	MutedBG color.Color // selected rows and columns
	ShadeBG color.Color // live drag rectangle
}

// Default returns the stock ANSI palette.
func Default() Palette {
	return Palette{
		Accent:           lipgloss.Color("13"), // magentaBright
		Warning:          lipgloss.Color("11"),
		Dim:              lipgloss.Color("8"),
		Info:             lipgloss.Color("14"),
		Text:             lipgloss.Color("15"),
		Success:          lipgloss.Color("10"),
		Danger:           lipgloss.Color("9"),
		SelectedBG:       lipgloss.Color("13"),
		CursorBG:         lipgloss.Color("14"),
		CursorSelectedBG: lipgloss.Color("6"),
		Border:           lipgloss.Color("13"),
		MutedBG:          lipgloss.Color("238"),
		ShadeBG:          lipgloss.Color("240"),
	}
}

// FromEnv overlays the provided base palette with environment-provided colors.
// Hex values like "#88c0d0" or ANSI numbers like "33" are both supported.
//
// Supported variables:
//
//	GRIDSEL_COLOR_ACCENT
//	GRIDSEL_COLOR_WARNING
//	GRIDSEL_COLOR_DIM
//	GRIDSEL_COLOR_INFO
//	GRIDSEL_COLOR_TEXT
//	GRIDSEL_COLOR_SUCCESS
//	GRIDSEL_COLOR_DANGER
//	GRIDSEL_COLOR_BORDER
//	GRIDSEL_BG_SELECTED
//	GRIDSEL_BG_CURSOR
//	GRIDSEL_BG_CURSOR_SELECTED
//	GRIDSEL_BG_MUTED
//	GRIDSEL_BG_SHADE
func FromEnv(base Palette) Palette {
	set := func(env string, apply func(color.Color)) {
		if v := os.Getenv(env); v != "" {
			apply(lipgloss.Color(v))
		}
	}

	set("GRIDSEL_COLOR_ACCENT", func(c color.Color) { base.Accent = c; base.SelectedBG = c })
	set("GRIDSEL_COLOR_WARNING", func(c color.Color) { base.Warning = c })
	set("GRIDSEL_COLOR_DIM", func(c color.Color) { base.Dim = c })
	set("GRIDSEL_COLOR_INFO", func(c color.Color) { base.Info = c })
	set("GRIDSEL_COLOR_TEXT", func(c color.Color) { base.Text = c })
	set("GRIDSEL_COLOR_SUCCESS", func(c color.Color) { base.Success = c })
	set("GRIDSEL_COLOR_DANGER", func(c color.Color) { base.Danger = c })
	set("GRIDSEL_COLOR_BORDER", func(c color.Color) { base.Border = c })
	set("GRIDSEL_BG_SELECTED", func(c color.Color) { base.SelectedBG = c })
	set("GRIDSEL_BG_CURSOR", func(c color.Color) { base.CursorBG = c })
	set("GRIDSEL_BG_CURSOR_SELECTED", func(c color.Color) { base.CursorSelectedBG = c })
	set("GRIDSEL_BG_MUTED", func(c color.Color) { base.MutedBG = c })
	set("GRIDSEL_BG_SHADE", func(c color.Color) { base.ShadeBG = c })
	return base
}

// Normalize fills unset optional entries from related ones.
func Normalize(p Palette) Palette {
	if p.CursorBG == nil {
		if p.CursorSelectedBG != nil {
			p.CursorBG = p.CursorSelectedBG
		} else {
			p.CursorBG = p.Info
		}
	}
	if p.CursorSelectedBG == nil {
		p.CursorSelectedBG = p.CursorBG
	}
	if p.Border == nil {
		p.Border = p.Accent
	}
	if p.SelectedBG == nil {
		p.SelectedBG = p.Accent
	}
	if p.ShadeBG == nil {
		p.ShadeBG = p.MutedBG
	}
	return p
}
