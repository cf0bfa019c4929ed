// Package view exposes the grid's current row order to the selection core.
package view

import "github.com/darksworm/gridsel/pkg/model"

// Projection is the ordered sequence of records currently shown by the grid,
// after sorting, filtering, grouping, row pinning and paging. Row indices are
// effective indices: pinned rows occupy their own band.
type Projection interface {
	RowCount() int
	// RecordAt returns false for rows outside the view; that is not an error.
	RecordAt(row int) (model.Record, bool)
	// RowKey returns the identity of the record shown at row.
	RowKey(row int) (any, bool)
	// IndexOfKey returns the row showing the record with key, or -1.
	IndexOfKey(key any) int
	// Generation changes whenever the projection changes shape.
	Generation() uint64
}

// ColumnSource is the column registry: columns in display order with their
// hidden/pinned state.
type ColumnSource interface {
	Columns() []model.Column
	Generation() uint64
}

// Grid is what the selection service needs from a grid instance.
type Grid interface {
	Projection
	ColumnSource
}

// ChangeKind names the structural change behind a notification.
type ChangeKind string

const (
	ChangeData       ChangeKind = "data"
	ChangeSort       ChangeKind = "sort"
	ChangeFilter     ChangeKind = "filter"
	ChangeGroup      ChangeKind = "group"
	ChangePage       ChangeKind = "page"
	ChangePerPage    ChangeKind = "per-page"
	ChangeColumnHide ChangeKind = "column-hide"
	ChangeColumnPin  ChangeKind = "column-pin"
	ChangeColumnMove ChangeKind = "column-move"
	ChangeRowPin     ChangeKind = "row-pin"
)

// Change is delivered to subscribers after the view has been updated.
type Change struct {
	Kind       ChangeKind
	Generation uint64
}

// Extract returns the subset of the record at row holding the given fields.
// Fields the record does not carry are left out rather than set to nil.
func Extract(p Projection, row int, fields []string) model.DataRow {
	var out model.DataRow
	rec, ok := p.RecordAt(row)
	if !ok {
		return out
	}
	for _, f := range fields {
		if v, present := rec[f]; present {
			out.Set(f, v)
		}
	}
	return out
}
