package selection

import (
	"slices"

	"github.com/darksworm/gridsel/pkg/model"
	rangesel "github.com/darksworm/gridsel/pkg/tui/selection"
)

// ApplyGesture applies one interactive gesture, constrained by the selection
// modes. Mode violations are silently narrowed, never reported.
func (s *Service) ApplyGesture(g Gesture) {
	switch g := g.(type) {
	case PointerDown:
		s.pointerDown(g)
	case PointerEnter:
		if s.drag != nil {
			s.drag.current = g.Cell
		}
	case PointerUp:
		s.pointerUp()
	case KeyMove:
		s.keyMove(g)
	case Cancel:
		s.cancelDrag()
	case AddCell:
		s.addCell(g.Cell)
	case RemoveCell:
		s.removeCell(g.Cell)
	case ClearAll:
		s.clearAll()
	case RowClick:
		s.rowClick(g)
	case ColumnClick:
		s.columnClick(g)
	}
}

func (s *Service) snapshot() snapshot {
	snap := snapshot{
		ranges: s.ranges.Ranges(),
		cells:  slices.Clone(s.cells),
	}
	if s.active != nil {
		a := *s.active
		snap.active = &a
	}
	if s.extent != nil {
		e := *s.extent
		snap.extent = &e
	}
	return snap
}

// sameAs reports whether both snapshots hold the same cell axis state.
func (snap snapshot) sameAs(o snapshot) bool {
	if !slices.Equal(snap.ranges, o.ranges) {
		return false
	}
	if !slices.EqualFunc(snap.cells, o.cells, func(a, b model.CellCoord) bool { return a.Key() == b.Key() }) {
		return false
	}
	if (snap.active == nil) != (o.active == nil) {
		return false
	}
	return snap.active == nil || snap.active.Key() == o.active.Key()
}

func (s *Service) restore(snap snapshot) {
	s.ranges.Replace(snap.ranges...)
	s.cells = snap.cells
	s.active = snap.active
	s.extent = snap.extent
}

func (s *Service) setActive(c model.CellCoord) {
	s.active = &c
}

func (s *Service) cellIndex(c model.CellCoord) int {
	key := c.Key()
	return slices.IndexFunc(s.cells, func(x model.CellCoord) bool { return x.Key() == key })
}

// selectOnly makes c the only selected cell. Returns true if the selection
// changed.
func (s *Service) selectOnly(c model.CellCoord) bool {
	changed := !s.ranges.IsEmpty() || len(s.cells) != 1 || s.cells[0].Key() != c.Key()
	s.ranges.Clear()
	s.cells = []model.CellCoord{c}
	s.extent = nil
	return changed
}

func (s *Service) toggleCell(c model.CellCoord) {
	if i := s.cellIndex(c); i >= 0 {
		s.cells = slices.Delete(s.cells, i, i+1)
		return
	}
	s.cells = append(s.cells, c)
}

func (s *Service) pointerDown(g PointerDown) {
	s.drag = nil
	switch s.modes.Cell {
	case model.ModeNone:
		s.setActive(g.Cell)

	case model.ModeSingle:
		changed := true
		if g.Ctrl && s.cellIndex(g.Cell) >= 0 {
			s.ranges.Clear()
			s.cells = nil
		} else {
			changed = s.selectOnly(g.Cell)
		}
		s.setActive(g.Cell)
		if changed {
			s.emitCells()
		}

	default:
		if g.Shift && s.active != nil && !rangesel.Span(*s.active, g.Cell).IsSingleCell() {
			s.extendTo(g.Cell, g.Ctrl)
			return
		}
		before := s.snapshot()
		changed := true
		if g.Ctrl {
			s.toggleCell(g.Cell)
		} else {
			changed = s.selectOnly(g.Cell)
		}
		s.setActive(g.Cell)
		s.extent = nil
		s.drag = &drag{anchor: g.Cell, current: g.Cell, additive: g.Ctrl, before: before}
		s.logger.Debug("Drag started", "row", g.Cell.Row, "col", g.Cell.Column, "additive", g.Ctrl)
		if changed {
			s.emitCells()
		}
	}
}

// extendTo selects the rectangle from the active node to c. The active node
// stays where it is.
func (s *Service) extendTo(c model.CellCoord, additive bool) {
	r := rangesel.Span(*s.active, c).Range()
	if additive {
		s.ranges.Add(r)
	} else {
		s.ranges.Replace(r)
		s.cells = nil
	}
	s.extent = &c
	s.emitRanges()
}

func (s *Service) pointerUp() {
	d := s.drag
	if d == nil {
		return
	}
	s.drag = nil
	b := rangesel.Span(d.anchor, d.current)
	if b.IsSingleCell() {
		return
	}
	if d.additive {
		s.ranges.Add(b.Range())
	} else {
		s.ranges.Replace(b.Range())
		s.cells = nil
	}
	cur := d.current
	s.extent = &cur
	s.logger.Debug("Drag committed", "bounds", b, "additive", d.additive, "ranges", s.ranges.Len())
	s.emitRanges()
}

func (s *Service) cancelDrag() {
	if s.drag == nil {
		return
	}
	s.logger.Debug("Drag cancelled")
	before := s.drag.before
	s.drag = nil
	changed := !before.sameAs(s.snapshot())
	s.restore(before)
	if changed {
		s.emitCells()
	}
}

func step(pos, last int, forward, toEdge bool) int {
	switch {
	case toEdge && forward:
		return last
	case toEdge:
		return 0
	case forward:
		return min(pos+1, last)
	}
	return max(pos-1, 0)
}

// moveFrom returns the cell one step (or all the way) from c in dir, clamped
// to the view.
func moveFrom(c model.CellCoord, dir Direction, toEdge bool, rows, cols int) model.CellCoord {
	row := min(max(c.Row, 0), rows-1)
	col := min(max(c.Column, 0), cols-1)
	switch dir {
	case Up:
		row = step(row, rows-1, false, toEdge)
	case Down:
		row = step(row, rows-1, true, toEdge)
	case Left:
		col = step(col, cols-1, false, toEdge)
	case Right:
		col = step(col, cols-1, true, toEdge)
	}
	return model.Cell(row, col)
}

func (s *Service) keyMove(g KeyMove) {
	rows, cols := s.grid.RowCount(), s.columnIndex().Count()
	if rows == 0 || cols == 0 {
		return
	}
	s.drag = nil
	if s.active == nil {
		s.setActive(model.Cell(0, 0))
	}

	if g.Shift && s.modes.Cell == model.ModeMultiple {
		far := *s.active
		if s.extent != nil {
			far = *s.extent
		}
		far = moveFrom(far, g.Dir, g.Ctrl, rows, cols)
		b := rangesel.Span(*s.active, far)
		if b.IsSingleCell() {
			s.selectOnly(*s.active)
			s.emitCells()
			return
		}
		s.ranges.Replace(b.Range())
		s.cells = nil
		s.extent = &far
		s.emitRanges()
		return
	}

	target := moveFrom(*s.active, g.Dir, g.Ctrl, rows, cols)
	s.setActive(target)
	s.extent = nil
	switch s.modes.Cell {
	case model.ModeSingle:
		s.selectOnly(target)
		s.emitCells()
	case model.ModeMultiple:
		s.selectOnly(target)
	}
}

func (s *Service) addCell(c model.CellCoord) {
	s.setActive(c)
	switch s.modes.Cell {
	case model.ModeSingle:
		if s.selectOnly(c) {
			s.emitCells()
		}
	case model.ModeMultiple:
		if s.cellIndex(c) >= 0 {
			return
		}
		s.cells = append(s.cells, c)
		s.emitCells()
	}
}

// removeCell drops c from the selection. A cell covered by a range is
// carved out by dissolving the ranges into discrete cells without c.
func (s *Service) removeCell(c model.CellCoord) {
	s.setActive(c)
	if s.modes.Cell == model.ModeNone {
		return
	}
	if i := s.cellIndex(c); i >= 0 {
		s.cells = slices.Delete(s.cells, i, i+1)
		s.emitCells()
		return
	}
	if s.ranges.IsEmpty() || !s.IsCellSelected(c.Row, c.Column) {
		return
	}
	key := c.Key()
	cells := slices.DeleteFunc(s.SelectedCells(), func(x model.CellCoord) bool { return x.Key() == key })
	s.logger.Debug("Carving cell out of ranges", "row", c.Row, "col", c.Column, "ranges", s.ranges.Len(), "cells", len(cells))
	s.ranges.Clear()
	s.cells = cells
	s.extent = nil
	s.emitRanges()
	s.emitCells()
}

// clearAll empties the cell, row and column selections with the same
// events the matching gestures raise. The active node stays.
func (s *Service) clearAll() {
	s.drag = nil
	hadRanges := !s.ranges.IsEmpty()
	if hadRanges || len(s.cells) > 0 {
		s.ranges.Clear()
		s.cells = nil
		s.extent = nil
		if hadRanges {
			s.emitRanges()
		}
		s.emitCells()
	}
	if len(s.rows) > 0 && s.changeRows([]any{}) {
		s.hasLast = false
	}
	if len(s.cols) > 0 && s.changeColumns([]string{}) {
		s.lastCol = ""
	}
}
