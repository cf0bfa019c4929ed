package selection

import (
	"slices"

	"github.com/darksworm/gridsel/pkg/model"
)

// Row keys are primary key values, or data indices when the grid has no
// primary key. They must be comparable.

// SelectRows adds row keys to the row selection. Keys already selected are
// ignored. The row mode is not consulted.
func (s *Service) SelectRows(keys ...any) {
	for _, k := range keys {
		if !slices.Contains(s.rows, k) {
			s.rows = append(s.rows, k)
		}
	}
}

// DeselectRows removes row keys from the row selection.
func (s *Service) DeselectRows(keys ...any) {
	s.rows = slices.DeleteFunc(s.rows, func(k any) bool { return slices.Contains(keys, k) })
}

// ClearRowSelection empties the row selection.
func (s *Service) ClearRowSelection() {
	s.rows = nil
	s.hasLast = false
}

// SelectedRows returns the selected row keys in selection order.
func (s *Service) SelectedRows() []any {
	if len(s.rows) == 0 {
		return []any{}
	}
	return slices.Clone(s.rows)
}

// IsRowSelected reports whether the record with key is selected.
func (s *Service) IsRowSelected(key any) bool {
	return slices.Contains(s.rows, key)
}

// SelectColumns adds fields to the column selection.
func (s *Service) SelectColumns(fields ...string) {
	for _, f := range fields {
		if !slices.Contains(s.cols, f) {
			s.cols = append(s.cols, f)
		}
	}
}

// DeselectColumns removes fields from the column selection.
func (s *Service) DeselectColumns(fields ...string) {
	s.cols = slices.DeleteFunc(s.cols, func(f string) bool { return slices.Contains(fields, f) })
}

// ClearColumnSelection empties the column selection.
func (s *Service) ClearColumnSelection() {
	s.cols = nil
	s.lastCol = ""
}

// SelectedColumns returns the selected fields in selection order.
func (s *Service) SelectedColumns() []string {
	if len(s.cols) == 0 {
		return []string{}
	}
	return slices.Clone(s.cols)
}

// IsColumnSelected reports whether field is selected.
func (s *Service) IsColumnSelected(field string) bool {
	return slices.Contains(s.cols, field)
}

// nextSelection computes an axis selection after a click on item. between
// lists the items from the last clicked one to item, in view order.
func nextSelection[T comparable](mode model.SelectionMode, current []T, item T, ctrl, shift bool, between []T) []T {
	selected := slices.Contains(current, item)
	switch {
	case mode == model.ModeSingle:
		if ctrl && selected {
			return []T{}
		}
		return []T{item}
	case shift && between != nil:
		out := []T{}
		if ctrl {
			out = slices.Clone(current)
		}
		for _, x := range between {
			if !slices.Contains(out, x) {
				out = append(out, x)
			}
		}
		return out
	case ctrl && selected:
		return slices.DeleteFunc(slices.Clone(current), func(x T) bool { return x == item })
	case ctrl:
		return append(slices.Clone(current), item)
	}
	return []T{item}
}

// diff returns the items of next missing from prev, and the items of prev
// missing from next.
func diff[T comparable](prev, next []T) (added, removed []T) {
	added, removed = []T{}, []T{}
	for _, x := range next {
		if !slices.Contains(prev, x) {
			added = append(added, x)
		}
	}
	for _, x := range prev {
		if !slices.Contains(next, x) {
			removed = append(removed, x)
		}
	}
	return added, removed
}

func (s *Service) rowClick(g RowClick) {
	if s.modes.Row == model.ModeNone {
		return
	}
	key, ok := s.grid.RowKey(g.Row)
	if !ok {
		return
	}

	var between []any
	if g.Shift && s.hasLast {
		if from := s.grid.IndexOfKey(s.lastRow); from >= 0 {
			lo, hi := min(from, g.Row), max(from, g.Row)
			for row := lo; row <= hi; row++ {
				if k, ok := s.grid.RowKey(row); ok {
					between = append(between, k)
				}
			}
		}
	}

	next := nextSelection(s.modes.Row, s.rows, key, g.Ctrl, g.Shift, between)
	if !s.changeRows(next) {
		return
	}
	if between == nil {
		s.lastRow, s.hasLast = key, true
	}
}

// changeRows moves the row selection to next through the cancelable
// changing event. It reports whether the selection changed.
func (s *Service) changeRows(next []any) bool {
	prev := slices.Clone(s.rows)
	added, removed := diff(prev, next)
	if len(added) == 0 && len(removed) == 0 {
		return false
	}

	if s.handlers.RowSelectionChanging != nil {
		ev := &model.RowSelectionChangingMsg{OldSelection: prev, NewSelection: slices.Clone(next), Added: added, Removed: removed}
		s.handlers.RowSelectionChanging(ev)
		if ev.Cancel {
			s.logger.Debug("Row selection vetoed", "added", len(added), "removed", len(removed))
			return false
		}
	}

	s.rows = next
	if s.handlers.RowSelectionChanged != nil {
		s.handlers.RowSelectionChanged(model.RowSelectionChangedMsg{Selection: s.SelectedRows()})
	}
	return true
}

func (s *Service) columnClick(g ColumnClick) {
	if s.modes.Column == model.ModeNone {
		return
	}
	idx := s.columnIndex()
	at, err := idx.ResolveField(g.Field)
	if err != nil {
		s.logger.Debug("Ignoring click on unresolvable column", "field", g.Field, "error", err)
		return
	}

	var between []string
	if g.Shift && s.lastCol != "" {
		if from := idx.IndexOfField(s.lastCol); from >= 0 {
			lo, hi := min(from, at.VisibleIndex), max(from, at.VisibleIndex)
			for i := lo; i <= hi; i++ {
				if c, ok := idx.At(i); ok {
					between = append(between, c.Field)
				}
			}
		}
	}

	next := nextSelection(s.modes.Column, s.cols, g.Field, g.Ctrl, g.Shift, between)
	if !s.changeColumns(next) {
		return
	}
	if between == nil {
		s.lastCol = g.Field
	}
}

func (s *Service) changeColumns(next []string) bool {
	prev := slices.Clone(s.cols)
	added, removed := diff(prev, next)
	if len(added) == 0 && len(removed) == 0 {
		return false
	}

	if s.handlers.ColumnSelectionChanging != nil {
		ev := &model.ColumnSelectionChangingMsg{OldSelection: prev, NewSelection: slices.Clone(next), Added: added, Removed: removed}
		s.handlers.ColumnSelectionChanging(ev)
		if ev.Cancel {
			s.logger.Debug("Column selection vetoed", "added", len(added), "removed", len(removed))
			return false
		}
	}

	s.cols = next
	if s.handlers.ColumnSelectionChanged != nil {
		s.handlers.ColumnSelectionChanged(model.ColumnSelectionChangedMsg{Selection: s.SelectedColumns()})
	}
	return true
}
