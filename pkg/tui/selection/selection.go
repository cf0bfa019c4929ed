// Package selection provides rectangular range selection over a grid view.
package selection

import (
	"github.com/darksworm/gridsel/pkg/model"
)

// Bounds is a normalized rectangle in visible row/column indices.
// Both ends are inclusive and Start <= End on both axes.
type Bounds struct {
	RowStart int
	RowEnd   int
	ColStart int
	ColEnd   int
}

// NewBounds builds normalized bounds from two corners given in any order.
func NewBounds(rowA, rowB, colA, colB int) Bounds {
	b := Bounds{RowStart: rowA, RowEnd: rowB, ColStart: colA, ColEnd: colB}
	return b.Normalize()
}

// Span builds the bounds between two cells, e.g. an anchor and the pointer.
func Span(a, b model.CellCoord) Bounds {
	return NewBounds(a.Row, b.Row, a.Column, b.Column)
}

// Normalize returns the bounds with swapped ends where they were reversed.
func (b Bounds) Normalize() Bounds {
	if b.RowEnd < b.RowStart {
		b.RowStart, b.RowEnd = b.RowEnd, b.RowStart
	}
	if b.ColEnd < b.ColStart {
		b.ColStart, b.ColEnd = b.ColEnd, b.ColStart
	}
	return b
}

// Contains checks if a given cell is within the bounds.
func (b Bounds) Contains(row, col int) bool {
	n := b.Normalize()
	return row >= n.RowStart && row <= n.RowEnd && col >= n.ColStart && col <= n.ColEnd
}

// Size returns the number of cells covered.
func (b Bounds) Size() int {
	n := b.Normalize()
	return (n.RowEnd - n.RowStart + 1) * (n.ColEnd - n.ColStart + 1)
}

// IsSingleCell reports whether the bounds cover exactly one cell.
func (b Bounds) IsSingleCell() bool {
	return b.Size() == 1
}

// Clip intersects the bounds with a rows x cols view. It returns false when
// nothing is left.
func (b Bounds) Clip(rows, cols int) (Bounds, bool) {
	n := b.Normalize()
	if rows <= 0 || cols <= 0 {
		return Bounds{}, false
	}
	n.RowStart = max(n.RowStart, 0)
	n.ColStart = max(n.ColStart, 0)
	n.RowEnd = min(n.RowEnd, rows-1)
	n.ColEnd = min(n.ColEnd, cols-1)
	if n.RowStart > n.RowEnd || n.ColStart > n.ColEnd {
		return Bounds{}, false
	}
	return n, true
}

// Range converts the bounds back into an index-addressed range.
func (b Bounds) Range() model.Range {
	n := b.Normalize()
	return model.IndexRange(n.RowStart, n.RowEnd, n.ColStart, n.ColEnd)
}

// Resolver maps a column reference to a visible index. Index references are
// returned as is; field references fail when the column cannot be resolved.
type Resolver interface {
	ResolveIndex(ref model.ColumnRef) (int, error)
}

// Resolve turns a stored range into normalized bounds against the current
// column state. Bounds outside the view are kept; Clip narrows them.
func Resolve(r model.Range, res Resolver) (Bounds, error) {
	start, err := res.ResolveIndex(r.ColumnStart)
	if err != nil {
		return Bounds{}, err
	}
	end, err := res.ResolveIndex(r.ColumnEnd)
	if err != nil {
		return Bounds{}, err
	}
	return NewBounds(r.RowStart, r.RowEnd, start, end), nil
}

// Collection is the ordered list of committed ranges. Insertion order is kept
// because extraction and copy output follow it.
type Collection struct {
	ranges []model.Range
}

// Add appends r unless a range with the same extent is already present.
// Returns true if the collection changed.
func (c *Collection) Add(r model.Range) bool {
	for _, existing := range c.ranges {
		if existing.SameExtent(r) {
			return false
		}
	}
	c.ranges = append(c.ranges, r)
	return true
}

// Replace drops every range and adds rs.
func (c *Collection) Replace(rs ...model.Range) {
	c.ranges = nil
	for _, r := range rs {
		c.Add(r)
	}
}

// Clear removes every range.
func (c *Collection) Clear() {
	c.ranges = nil
}

// Len returns the number of ranges.
func (c *Collection) Len() int {
	return len(c.ranges)
}

// IsEmpty returns true if there's no range.
func (c *Collection) IsEmpty() bool {
	return len(c.ranges) == 0
}

// Ranges returns a copy of the ranges in insertion order.
func (c *Collection) Ranges() []model.Range {
	if len(c.ranges) == 0 {
		return []model.Range{}
	}
	out := make([]model.Range, len(c.ranges))
	copy(out, c.ranges)
	return out
}
