package selection

import (
	"github.com/darksworm/gridsel/pkg/model"
	"github.com/darksworm/gridsel/pkg/view"
)

// Direction is an arrow key direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Gesture is an interactive input applied through Service.ApplyGesture.
// Gestures are constrained by the selection mode of the axis they touch.
type Gesture interface {
	gesture()
}

// PointerDown is a press on a cell. Ctrl toggles the cell and makes a
// following drag additive; Shift extends from the active node.
type PointerDown struct {
	Cell  model.CellCoord
	Ctrl  bool
	Shift bool
}

// PointerEnter moves the pointer over a cell while the button is held.
type PointerEnter struct {
	Cell model.CellCoord
}

// PointerUp releases the button and commits the drag.
type PointerUp struct{}

// KeyMove is an arrow key press. Shift extends the range from the active
// node; Ctrl jumps to the first or last visible row or column.
type KeyMove struct {
	Dir   Direction
	Shift bool
	Ctrl  bool
}

// Cancel aborts a drag in progress (Escape).
type Cancel struct{}

// AddCell adds one cell to the discrete cell set.
type AddCell struct {
	Cell model.CellCoord
}

// RemoveCell deselects one cell. A cell inside a range is carved out: the
// ranges become discrete cells without it.
type RemoveCell struct {
	Cell model.CellCoord
}

// ClearAll empties the cell, row and column selections, raising the same
// events as the gestures that built them. Row and column clears can be
// vetoed through the changing events.
type ClearAll struct{}

// RowClick is a click on a row selector. Row is the view row.
type RowClick struct {
	Row   int
	Ctrl  bool
	Shift bool
}

// ColumnClick is a click on a column header.
type ColumnClick struct {
	Field string
	Ctrl  bool
	Shift bool
}

func (PointerDown) gesture()  {}
func (PointerEnter) gesture() {}
func (PointerUp) gesture()    {}
func (KeyMove) gesture()      {}
func (Cancel) gesture()       {}
func (AddCell) gesture()      {}
func (RemoveCell) gesture()   {}
func (ClearAll) gesture()     {}
func (RowClick) gesture()     {}
func (ColumnClick) gesture()  {}

// Handlers receive selection events. Nil handlers are skipped. Handlers run
// synchronously inside the call that raised the event.
type Handlers struct {
	RangeSelectionChanged   func(model.RangeSelectionChangedMsg)
	SelectionChanged        func(model.SelectionChangedMsg)
	RowSelectionChanging    func(*model.RowSelectionChangingMsg)
	RowSelectionChanged     func(model.RowSelectionChangedMsg)
	ColumnSelectionChanging func(*model.ColumnSelectionChangingMsg)
	ColumnSelectionChanged  func(model.ColumnSelectionChangedMsg)
}

// Modes holds the selection mode of each axis.
type Modes struct {
	Cell   model.SelectionMode
	Row    model.SelectionMode
	Column model.SelectionMode
}

// DefaultModes allows multiple selection on every axis.
func DefaultModes() Modes {
	return Modes{Cell: model.ModeMultiple, Row: model.ModeMultiple, Column: model.ModeMultiple}
}

// Notifier is a collaborator that reports structural view changes.
type Notifier interface {
	Subscribe(fn func(view.Change))
}

// drag is a pointer gesture between PointerDown and PointerUp.
type drag struct {
	anchor   model.CellCoord
	current  model.CellCoord
	additive bool
	before   snapshot
}

// snapshot is the cell axis state a cancelled drag returns to.
type snapshot struct {
	ranges []model.Range
	cells  []model.CellCoord
	active *model.CellCoord
	extent *model.CellCoord
}
