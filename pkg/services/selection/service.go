// Package selection owns the selection state of one grid: committed ranges,
// discrete cells, the active node, and the row and column key sets.
package selection

import (
	"slices"

	cblog "github.com/charmbracelet/log"

	"github.com/darksworm/gridsel/pkg/columns"
	"github.com/darksworm/gridsel/pkg/model"
	rangesel "github.com/darksworm/gridsel/pkg/tui/selection"
	"github.com/darksworm/gridsel/pkg/view"
)

// Service is the selection state machine of a single grid. It is not safe for
// concurrent use; callers drive it from one event loop.
//
// There are two ways in. The programmatic methods (SelectRange, SelectRows,
// ...) ignore the selection modes. ApplyGesture is the interactive path and
// constrains every change to the mode of the axis it touches.
type Service struct {
	grid     view.Grid
	handlers Handlers
	modes    Modes
	logger   *cblog.Logger

	ranges rangesel.Collection
	cells  []model.CellCoord
	active *model.CellCoord
	// extent is the far corner of a keyboard extension; the active node is
	// the near one.
	extent *model.CellCoord
	drag   *drag

	rows    []any
	lastRow any
	hasLast bool
	cols    []string
	lastCol string

	// Column index cached per grid generation.
	index    *columns.Index
	indexGen uint64

	generation uint64
}

// Option configures a Service.
type Option func(*Service)

// WithHandlers sets the event handlers.
func WithHandlers(h Handlers) Option {
	return func(s *Service) { s.handlers = h }
}

// WithModes sets the initial selection modes.
func WithModes(m Modes) Option {
	return func(s *Service) { s.modes = m }
}

// NewService creates a selection service over grid.
func NewService(grid view.Grid, opts ...Option) *Service {
	s := &Service{
		grid:       grid,
		modes:      DefaultModes(),
		logger:     cblog.With("component", "selection"),
		generation: grid.Generation(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach registers the service for change notifications from n.
func (s *Service) Attach(n Notifier) {
	n.Subscribe(s.Reconcile)
}

// SetHandlers replaces the event handlers.
func (s *Service) SetHandlers(h Handlers) {
	s.handlers = h
}

// Generation returns the last view generation the service reconciled with.
func (s *Service) Generation() uint64 {
	return s.generation
}

func (s *Service) columnIndex() *columns.Index {
	if gen := s.grid.Generation(); s.index == nil || s.indexGen != gen {
		s.index = columns.Build(s.grid.Columns())
		s.indexGen = gen
	}
	return s.index
}

// Columns returns the column index for the current column state.
func (s *Service) Columns() *columns.Index {
	return s.columnIndex()
}

// SelectRange validates every range against the current columns and appends
// them to the range collection. If any range fails column resolution nothing
// is stored, no event is raised and the resolution error is returned.
// Identical extents are stored once.
func (s *Service) SelectRange(ranges ...model.Range) error {
	if len(ranges) == 0 {
		return nil
	}
	idx := s.columnIndex()
	for _, r := range ranges {
		if _, err := rangesel.Resolve(r, idx); err != nil {
			s.logger.Debug("Rejected range", "range", r, "error", err)
			return err
		}
	}

	changed := false
	for _, r := range ranges {
		if s.ranges.Add(r) {
			changed = true
		}
	}
	if changed {
		s.logger.Debug("Ranges selected", "count", s.ranges.Len())
		s.emitRanges()
	}
	return nil
}

// ClearRanges drops every range and every discrete cell. The active node is
// kept.
func (s *Service) ClearRanges() {
	s.ranges.Clear()
	s.cells = nil
	s.extent = nil
	s.drag = nil
}

// ClearSelection resets every axis, including the active node.
func (s *Service) ClearSelection() {
	s.clearCells()
	s.rows = nil
	s.hasLast = false
	s.cols = nil
	s.lastCol = ""
}

func (s *Service) clearCells() {
	s.ClearRanges()
	s.active = nil
}

// Ranges returns the committed ranges as authored, in insertion order.
func (s *Service) Ranges() []model.Range {
	return s.ranges.Ranges()
}

func (s *Service) extractInput() rangesel.Input {
	return rangesel.Input{
		Ranges:  s.ranges.Ranges(),
		Cells:   slices.Clone(s.cells),
		Rows:    s.grid,
		Columns: s.columnIndex(),
	}
}

// SelectedData returns one partial record per selected row of the current
// view. It reflects ranges set through SelectRange whatever the cell mode.
func (s *Service) SelectedData(formatted, headers bool) []model.DataRow {
	in := s.extractInput()
	in.Formatted = formatted
	in.Headers = headers
	rows, skipped := rangesel.Extract(in)
	for _, r := range skipped {
		s.logger.Warn("Skipping range with unresolvable columns", "range", r)
	}
	return rows
}

// SelectedCells lists the selected cells of the current view, row-major.
// It is empty while the cell mode is none.
func (s *Service) SelectedCells() []model.CellCoord {
	if s.modes.Cell == model.ModeNone {
		return []model.CellCoord{}
	}
	cells := rangesel.Cells(s.extractInput())
	if cells == nil {
		return []model.CellCoord{}
	}
	return cells
}

// IsCellSelected reports whether a view cell is covered by a committed range
// or the discrete cell set.
func (s *Service) IsCellSelected(row, col int) bool {
	if s.modes.Cell == model.ModeNone {
		return false
	}
	for _, c := range s.cells {
		if c.Row == row && c.Column == col {
			return true
		}
	}
	idx := s.columnIndex()
	for _, r := range s.ranges.Ranges() {
		b, err := rangesel.Resolve(r, idx)
		if err != nil {
			continue
		}
		if b.Contains(row, col) {
			return true
		}
	}
	return false
}

// ActiveNode returns the focused cell.
func (s *Service) ActiveNode() (model.CellCoord, bool) {
	if s.active == nil {
		return model.CellCoord{}, false
	}
	return *s.active, true
}

// Extent returns the far corner of a range being extended from the keyboard.
func (s *Service) Extent() (model.CellCoord, bool) {
	if s.extent == nil {
		return model.CellCoord{}, false
	}
	return *s.extent, true
}

// ViewSize returns the row count of the view and its visible column count.
func (s *Service) ViewSize() (rows, cols int) {
	return s.grid.RowCount(), s.columnIndex().Count()
}

// Dragging reports whether a pointer drag is in progress.
func (s *Service) Dragging() bool {
	return s.drag != nil
}

// LiveRange returns the rectangle of the drag in progress.
func (s *Service) LiveRange() (rangesel.Bounds, bool) {
	if s.drag == nil {
		return rangesel.Bounds{}, false
	}
	return rangesel.Span(s.drag.anchor, s.drag.current), true
}

// Mode returns the selection mode of an axis.
func (s *Service) Mode(axis model.Axis) model.SelectionMode {
	switch axis {
	case model.AxisRow:
		return s.modes.Row
	case model.AxisColumn:
		return s.modes.Column
	}
	return s.modes.Cell
}

// Modes returns the selection modes of every axis.
func (s *Service) Modes() Modes {
	return s.modes
}

// SetMode changes the mode of one axis. Entering none clears the axis;
// entering single clears it when more than one item is selected.
func (s *Service) SetMode(axis model.Axis, mode model.SelectionMode) {
	if s.Mode(axis) == mode {
		return
	}
	s.logger.Debug("Selection mode changed", "axis", axis, "from", s.Mode(axis), "to", mode)

	switch axis {
	case model.AxisCell:
		s.modes.Cell = mode
		if mode == model.ModeNone || (mode == model.ModeSingle && (!s.ranges.IsEmpty() || len(s.cells) > 1)) {
			s.ClearRanges()
		}
	case model.AxisRow:
		s.modes.Row = mode
		if mode.Limit() >= 0 && len(s.rows) > mode.Limit() {
			s.rows = nil
			s.hasLast = false
		}
	case model.AxisColumn:
		s.modes.Column = mode
		if mode.Limit() >= 0 && len(s.cols) > mode.Limit() {
			s.cols = nil
			s.lastCol = ""
		}
	}
}

// Reconcile brings the service in line with a structural view change.
// Paging invalidates the cell axis; every other change only reinterprets
// the stored coordinates on the next read.
func (s *Service) Reconcile(ch view.Change) {
	s.generation = ch.Generation
	switch ch.Kind {
	case view.ChangePage, view.ChangePerPage:
		s.logger.Debug("Clearing cell selection after paging", "kind", ch.Kind, "ranges", s.ranges.Len(), "cells", len(s.cells))
		s.clearCells()
	default:
		s.logger.Debug("Reinterpreting selection", "kind", ch.Kind, "generation", ch.Generation)
	}
}

func (s *Service) emitRanges() {
	if s.handlers.RangeSelectionChanged == nil {
		return
	}
	s.handlers.RangeSelectionChanged(model.RangeSelectionChangedMsg{Ranges: s.ranges.Ranges()})
}

func (s *Service) emitCells() {
	if s.handlers.SelectionChanged == nil {
		return
	}
	msg := model.SelectionChangedMsg{Cells: s.SelectedCells()}
	if s.active != nil {
		a := *s.active
		msg.Active = &a
	}
	s.handlers.SelectionChanged(msg)
}
