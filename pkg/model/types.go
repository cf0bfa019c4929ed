package model

import (
	"fmt"
	"strconv"
)

// Record is one data item of the grid, keyed by column field.
type Record map[string]any

// Formatter converts a raw cell value for display or copy.
type Formatter func(value any, rec Record) any

// LayoutDescriptor addresses a child column inside a multi-row layout group.
// Coordinates are 1-based grid lines as declared on the child column.
type LayoutDescriptor struct {
	RowStart int `json:"rowStart" yaml:"rowStart"`
	ColStart int `json:"colStart" yaml:"colStart"`
	RowEnd   int `json:"rowEnd" yaml:"rowEnd"`
	ColEnd   int `json:"colEnd" yaml:"colEnd"`
}

// Column describes one column of the grid as reported by the column registry.
// The registry returns columns in display order (after moves).
type Column struct {
	Field     string
	Header    string
	Hidden    bool
	Pinned    bool
	Formatter Formatter

	// Children turns the column into a multi-row layout group. A group takes
	// one visible index and its children are addressed through Layout.
	Children []Column
	Layout   *LayoutDescriptor
}

// IsGroup reports whether the column is a multi-row layout group.
func (c Column) IsGroup() bool {
	return len(c.Children) > 0
}

// Title returns the header text, falling back to the field name.
func (c Column) Title() string {
	if c.Header != "" {
		return c.Header
	}
	return c.Field
}

type columnRefKind uint8

const (
	refByIndex columnRefKind = iota
	refByField
)

// ColumnRef identifies a column either by field name or by visible index.
// Field references are resolved again on every read, so they follow column
// moves and hides. Index references are a frozen position and go stale when
// the column structure changes.
type ColumnRef struct {
	kind  columnRefKind
	field string
	index int
}

// ByField references a column by its field name.
func ByField(name string) ColumnRef {
	return ColumnRef{kind: refByField, field: name}
}

// ByIndex references a column by its visible index.
func ByIndex(i int) ColumnRef {
	return ColumnRef{kind: refByIndex, index: i}
}

// IsField reports whether the reference is by field name.
func (r ColumnRef) IsField() bool { return r.kind == refByField }

// Field returns the referenced field name ("" for index references).
func (r ColumnRef) Field() string { return r.field }

// Index returns the referenced visible index (0 for field references).
func (r ColumnRef) Index() int { return r.index }

func (r ColumnRef) String() string {
	if r.IsField() {
		return strconv.Quote(r.field)
	}
	return strconv.Itoa(r.index)
}

// Range is a rectangle in the view's row/column space. Bounds are inclusive,
// may be given in either order and may lie outside the current view.
type Range struct {
	RowStart    int
	RowEnd      int
	ColumnStart ColumnRef
	ColumnEnd   ColumnRef
}

// IndexRange builds a range with visible-index column bounds.
func IndexRange(rowStart, rowEnd, colStart, colEnd int) Range {
	return Range{RowStart: rowStart, RowEnd: rowEnd, ColumnStart: ByIndex(colStart), ColumnEnd: ByIndex(colEnd)}
}

// FieldRange builds a range with field-name column bounds.
func FieldRange(rowStart, rowEnd int, fieldStart, fieldEnd string) Range {
	return Range{RowStart: rowStart, RowEnd: rowEnd, ColumnStart: ByField(fieldStart), ColumnEnd: ByField(fieldEnd)}
}

// SameExtent reports whether both ranges cover the same authored rectangle,
// regardless of the direction they were written in.
func (r Range) SameExtent(o Range) bool {
	if min(r.RowStart, r.RowEnd) != min(o.RowStart, o.RowEnd) ||
		max(r.RowStart, r.RowEnd) != max(o.RowStart, o.RowEnd) {
		return false
	}
	if r.ColumnStart == o.ColumnStart && r.ColumnEnd == o.ColumnEnd {
		return true
	}
	return r.ColumnStart == o.ColumnEnd && r.ColumnEnd == o.ColumnStart
}

func (r Range) String() string {
	return fmt.Sprintf("rows %d..%d cols %s..%s", r.RowStart, r.RowEnd, r.ColumnStart, r.ColumnEnd)
}

// CellKey is the identity of a selected cell.
type CellKey struct {
	Row    int
	Column int
}

// CellCoord is a cell position in view coordinates. Layout is set for cells
// inside a multi-row layout group; Column is then the group's visible index.
type CellCoord struct {
	Row    int
	Column int
	Layout *LayoutDescriptor
}

// Cell is shorthand for a plain cell coordinate.
func Cell(row, col int) CellCoord {
	return CellCoord{Row: row, Column: col}
}

// Key returns the identity used for set membership.
func (c CellCoord) Key() CellKey {
	return CellKey{Row: c.Row, Column: c.Column}
}

// Axis names one of the independent selection dimensions.
type Axis int

const (
	AxisCell Axis = iota
	AxisRow
	AxisColumn
)

func (a Axis) String() string {
	switch a {
	case AxisCell:
		return "cell"
	case AxisRow:
		return "row"
	case AxisColumn:
		return "column"
	}
	return "unknown"
}

// ParseAxis parses an axis name.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "cell", "cells":
		return AxisCell, nil
	case "row", "rows":
		return AxisRow, nil
	case "column", "columns", "col":
		return AxisColumn, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// SelectionMode is the cardinality allowed on an axis.
type SelectionMode string

const (
	ModeNone     SelectionMode = "none"
	ModeSingle   SelectionMode = "single"
	ModeMultiple SelectionMode = "multiple"
)

// ParseSelectionMode parses a mode name as used in configuration files.
func ParseSelectionMode(s string) (SelectionMode, error) {
	switch SelectionMode(s) {
	case ModeNone, ModeSingle, ModeMultiple:
		return SelectionMode(s), nil
	case "":
		return ModeMultiple, nil
	}
	return "", fmt.Errorf("unknown selection mode %q", s)
}

// Limit returns how many items the mode allows, -1 meaning unbounded.
func (m SelectionMode) Limit() int {
	switch m {
	case ModeNone:
		return 0
	case ModeSingle:
		return 1
	}
	return -1
}
