// Package gridnav turns terminal input into selection gestures and keeps the
// visible window of the grid following the active cell.
package gridnav

import "github.com/darksworm/gridsel/pkg/model"

// Navigator holds the scroll state of a two-dimensional grid viewport.
// It does NOT render and does not own a cursor: the active cell lives in the
// selection service and the navigator only follows it.
type Navigator struct {
	rowOffset int // first visible row
	colOffset int // first visible scrollable column
	rowCount  int
	colCount  int
	frozen    int // leading columns that never scroll (pinned)
	height    int // visible rows
	width     int // visible scrollable columns
}

// New creates a Navigator with default values.
func New() *Navigator {
	return &Navigator{height: 10, width: 5}
}

// RowOffset returns the index of the first visible row.
func (n *Navigator) RowOffset() int { return n.rowOffset }

// ColOffset returns the index of the first visible scrollable column.
func (n *Navigator) ColOffset() int { return n.colOffset }

// Height returns the number of visible rows.
func (n *Navigator) Height() int { return n.height }

// Width returns the number of visible scrollable columns.
func (n *Navigator) Width() int { return n.width }

// Frozen returns the number of leading columns excluded from scrolling.
func (n *Navigator) Frozen() int { return n.frozen }

// SetSize updates the grid extent and clamps scroll.
// Call this whenever the view changes shape.
func (n *Navigator) SetSize(rows, cols, frozen int) {
	n.rowCount = max(rows, 0)
	n.colCount = max(cols, 0)
	n.frozen = min(max(frozen, 0), n.colCount)
	n.clamp()
}

// SetViewport updates the visible row and scrollable column counts.
func (n *Navigator) SetViewport(height, width int) {
	n.height = max(height, 1)
	n.width = max(width, 1)
	n.clamp()
}

// VisibleRows returns the half-open row interval on screen.
func (n *Navigator) VisibleRows() (start, end int) {
	return n.rowOffset, min(n.rowOffset+n.height, n.rowCount)
}

// VisibleColumns returns the column indices on screen: the frozen columns
// followed by the scrolled window.
func (n *Navigator) VisibleColumns() []int {
	out := make([]int, 0, n.frozen+n.width)
	for i := 0; i < n.frozen; i++ {
		out = append(out, i)
	}
	start := n.frozen + n.colOffset
	for i := start; i < min(start+n.width, n.colCount); i++ {
		out = append(out, i)
	}
	return out
}

// ScrollRows moves the window by delta rows. Returns true if state changed.
func (n *Navigator) ScrollRows(delta int) bool {
	old := n.rowOffset
	n.rowOffset += delta
	n.clamp()
	return n.rowOffset != old
}

// ScrollColumns moves the window by delta scrollable columns.
// Returns true if state changed.
func (n *Navigator) ScrollColumns(delta int) bool {
	old := n.colOffset
	n.colOffset += delta
	n.clamp()
	return n.colOffset != old
}

// PageDown scrolls one viewport down. Returns true if state changed.
func (n *Navigator) PageDown() bool { return n.ScrollRows(n.height) }

// PageUp scrolls one viewport up. Returns true if state changed.
func (n *Navigator) PageUp() bool { return n.ScrollRows(-n.height) }

// Follow scrolls the minimum amount that brings c on screen.
// Returns true if state changed.
func (n *Navigator) Follow(c model.CellCoord) bool {
	oldRow, oldCol := n.rowOffset, n.colOffset

	if c.Row < n.rowOffset {
		n.rowOffset = c.Row
	}
	if c.Row >= n.rowOffset+n.height {
		n.rowOffset = c.Row - n.height + 1
	}

	// Frozen columns are always visible.
	if c.Column >= n.frozen {
		rel := c.Column - n.frozen
		if rel < n.colOffset {
			n.colOffset = rel
		}
		if rel >= n.colOffset+n.width {
			n.colOffset = rel - n.width + 1
		}
	}

	n.clamp()
	return n.rowOffset != oldRow || n.colOffset != oldCol
}

// Reset scrolls back to the top left.
func (n *Navigator) Reset() {
	n.rowOffset = 0
	n.colOffset = 0
}

func (n *Navigator) clamp() {
	maxRow := max(0, n.rowCount-n.height)
	n.rowOffset = min(max(n.rowOffset, 0), maxRow)

	maxCol := max(0, n.colCount-n.frozen-n.width)
	n.colOffset = min(max(n.colOffset, 0), maxCol)
}
