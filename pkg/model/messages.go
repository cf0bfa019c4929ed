package model

// Selection events. The service hands these to its handlers; the terminal
// front end forwards them as tea messages.

// RangeSelectionChangedMsg reports the committed range collection after a
// rectangular selection or an explicit range API call.
type RangeSelectionChangedMsg struct {
	Ranges []Range
}

// SelectionChangedMsg reports the discrete cell selection after a single-cell
// gesture.
type SelectionChangedMsg struct {
	Cells  []CellCoord
	Active *CellCoord
}

// RowSelectionChangingMsg is raised before a row selection gesture is applied.
// Setting Cancel keeps the previous selection.
type RowSelectionChangingMsg struct {
	OldSelection []any
	NewSelection []any
	Added        []any
	Removed      []any
	Cancel       bool
}

// ColumnSelectionChangingMsg is raised before a column selection gesture is
// applied. Setting Cancel keeps the previous selection.
type ColumnSelectionChangingMsg struct {
	OldSelection []string
	NewSelection []string
	Added        []string
	Removed      []string
	Cancel       bool
}

// CopyingMsg is raised before selected data is written to the clipboard.
// Data holds what would be copied; setting Cancel suppresses the payload.
type CopyingMsg struct {
	Data   []DataRow
	Text   string
	Cancel bool
}

// RowSelectionChangedMsg reports the row selection after a row gesture was
// applied.
type RowSelectionChangedMsg struct {
	Selection []any
}

// ColumnSelectionChangedMsg reports the column selection after a column
// gesture was applied.
type ColumnSelectionChangedMsg struct {
	Selection []string
}
