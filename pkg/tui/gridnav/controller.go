package gridnav

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	cblog "github.com/charmbracelet/log"

	"github.com/darksworm/gridsel/pkg/model"
	"github.com/darksworm/gridsel/pkg/services/selection"
	"github.com/darksworm/gridsel/pkg/tui/clipboard"
)

const mouseScrollAmount = 3

// HitTester maps screen coordinates to grid locations. The renderer
// implements it since only it knows the current layout.
type HitTester interface {
	CellAt(x, y int) (model.CellCoord, bool)
	HeaderAt(x, y int) (field string, ok bool)
	RowSelectorAt(x, y int) (row int, ok bool)
}

// Controller translates key and mouse messages into selection gestures.
type Controller struct {
	svc    *selection.Service
	copier *clipboard.Copier
	nav    *Navigator
	hit    HitTester
	keys   KeyMap
	logger *cblog.Logger

	pressed bool
	entered model.CellCoord
}

// NewController wires a controller to the selection service. copier may be
// nil, in which case copy keys are not handled.
func NewController(svc *selection.Service, copier *clipboard.Copier, nav *Navigator, hit HitTester) *Controller {
	return &Controller{
		svc:    svc,
		copier: copier,
		nav:    nav,
		hit:    hit,
		keys:   DefaultKeyMap(),
		logger: cblog.With("component", "gridnav"),
	}
}

// SetKeyMap replaces the key bindings.
func (c *Controller) SetKeyMap(k KeyMap) { c.keys = k }

// KeyMap returns the active key bindings.
func (c *Controller) KeyMap() KeyMap { return c.keys }

// Navigator returns the viewport the controller scrolls.
func (c *Controller) Navigator() *Navigator { return c.nav }

// Update handles msg if it is grid input. It reports whether msg was
// consumed so callers can fall through to their own bindings.
func (c *Controller) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return c.handleKey(msg)
	case tea.MouseClickMsg:
		return c.handleClick(msg), nil
	case tea.MouseMotionMsg:
		return c.handleMotion(msg), nil
	case tea.MouseReleaseMsg:
		if !c.pressed {
			return false, nil
		}
		c.pressed = false
		c.svc.ApplyGesture(selection.PointerUp{})
		return true, nil
	case tea.MouseWheelMsg:
		return c.handleWheel(msg), nil
	}
	return false, nil
}

func (c *Controller) handleKey(msg tea.KeyPressMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, c.keys.Copy):
		if c.copier == nil {
			return false, nil
		}
		return true, clipboard.CopySelectionCmd(c.copier, c.svc)

	case key.Matches(msg, c.keys.Cancel):
		if !c.svc.Dragging() {
			return false, nil
		}
		c.pressed = false
		c.svc.ApplyGesture(selection.Cancel{})
		return true, nil

	case key.Matches(msg, c.keys.SelectAll):
		c.selectAll()
		return true, nil

	case key.Matches(msg, c.keys.ClearSelection):
		c.svc.ApplyGesture(selection.ClearAll{})
		return true, nil

	case key.Matches(msg, c.keys.ToggleCell):
		active, ok := c.svc.ActiveNode()
		if !ok {
			return true, nil
		}
		if c.svc.IsCellSelected(active.Row, active.Column) {
			c.svc.ApplyGesture(selection.RemoveCell{Cell: active})
		} else {
			c.svc.ApplyGesture(selection.AddCell{Cell: active})
		}
		return true, nil

	case key.Matches(msg, c.keys.ToggleRow):
		if active, ok := c.svc.ActiveNode(); ok {
			c.svc.ApplyGesture(selection.RowClick{Row: active.Row, Ctrl: true})
		}
		return true, nil

	case key.Matches(msg, c.keys.ToggleColumn):
		if active, ok := c.svc.ActiveNode(); ok {
			if col, ok := c.svc.Columns().At(active.Column); ok {
				c.svc.ApplyGesture(selection.ColumnClick{Field: col.Field, Ctrl: true})
			}
		}
		return true, nil

	case key.Matches(msg, c.keys.PageDown):
		c.nav.PageDown()
		return true, nil

	case key.Matches(msg, c.keys.PageUp):
		c.nav.PageUp()
		return true, nil
	}

	// Directions match on the bare key; modifiers change what the move does.
	bare := tea.KeyPressMsg{Code: msg.Code}
	var dir selection.Direction
	switch {
	case key.Matches(bare, c.keys.Up):
		dir = selection.Up
	case key.Matches(bare, c.keys.Down):
		dir = selection.Down
	case key.Matches(bare, c.keys.Left):
		dir = selection.Left
	case key.Matches(bare, c.keys.Right):
		dir = selection.Right
	default:
		return false, nil
	}

	c.svc.ApplyGesture(selection.KeyMove{
		Dir:   dir,
		Shift: msg.Mod&tea.ModShift != 0,
		Ctrl:  msg.Mod&tea.ModCtrl != 0,
	})
	c.follow()
	return true, nil
}

func (c *Controller) selectAll() {
	if c.svc.Mode(model.AxisCell) != model.ModeMultiple {
		return
	}
	rows, cols := c.svc.ViewSize()
	if rows == 0 || cols == 0 {
		return
	}
	if err := c.svc.SelectRange(model.IndexRange(0, rows-1, 0, cols-1)); err != nil {
		c.logger.Warn("select all failed", "err", err)
	}
}

func (c *Controller) handleClick(msg tea.MouseClickMsg) bool {
	if msg.Button != tea.MouseLeft || c.hit == nil {
		return false
	}
	ctrl := msg.Mod&tea.ModCtrl != 0
	shift := msg.Mod&tea.ModShift != 0

	if field, ok := c.hit.HeaderAt(msg.X, msg.Y); ok {
		c.svc.ApplyGesture(selection.ColumnClick{Field: field, Ctrl: ctrl, Shift: shift})
		return true
	}
	if row, ok := c.hit.RowSelectorAt(msg.X, msg.Y); ok {
		c.svc.ApplyGesture(selection.RowClick{Row: row, Ctrl: ctrl, Shift: shift})
		return true
	}
	cell, ok := c.hit.CellAt(msg.X, msg.Y)
	if !ok {
		return false
	}
	c.pressed = true
	c.entered = cell
	c.svc.ApplyGesture(selection.PointerDown{Cell: cell, Ctrl: ctrl, Shift: shift})
	return true
}

func (c *Controller) handleMotion(msg tea.MouseMotionMsg) bool {
	if !c.pressed || c.hit == nil {
		return false
	}
	cell, ok := c.hit.CellAt(msg.X, msg.Y)
	if !ok || cell == c.entered {
		return true
	}
	c.entered = cell
	c.svc.ApplyGesture(selection.PointerEnter{Cell: cell})
	c.nav.Follow(cell)
	return true
}

func (c *Controller) handleWheel(msg tea.MouseWheelMsg) bool {
	switch msg.Button {
	case tea.MouseWheelUp:
		c.nav.ScrollRows(-mouseScrollAmount)
	case tea.MouseWheelDown:
		c.nav.ScrollRows(mouseScrollAmount)
	case tea.MouseWheelLeft:
		c.nav.ScrollColumns(-1)
	case tea.MouseWheelRight:
		c.nav.ScrollColumns(1)
	default:
		return false
	}
	return true
}

// follow keeps the far corner of a keyboard extension, or else the active
// cell, on screen.
func (c *Controller) follow() {
	if far, ok := c.svc.Extent(); ok {
		c.nav.Follow(far)
		return
	}
	if active, ok := c.svc.ActiveNode(); ok {
		c.nav.Follow(active)
	}
}
