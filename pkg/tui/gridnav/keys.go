package gridnav

import "charm.land/bubbles/v2/key"

// KeyMap defines the grid key bindings. Direction bindings are matched
// without modifiers; shift and ctrl are read from the key press and turn a
// move into a range extension or an edge jump.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	Copy           key.Binding
	Cancel         key.Binding
	SelectAll      key.Binding
	ClearSelection key.Binding
	ToggleCell     key.Binding
	ToggleRow      key.Binding
	ToggleColumn   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+c", "y"),
			key.WithHelp("y", "copy"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel drag"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "select all"),
		),
		ClearSelection: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("⌫", "clear"),
		),
		ToggleCell: key.NewBinding(
			key.WithKeys("space"),
			key.WithHelp("space", "toggle cell"),
		),
		ToggleRow: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "toggle row"),
		),
		ToggleColumn: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "toggle column"),
		),
	}
}

// ShortHelp returns the bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Copy, k.ToggleCell, k.ToggleRow, k.ToggleColumn, k.SelectAll, k.ClearSelection}
}
