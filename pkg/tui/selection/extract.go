package selection

import (
	"fmt"
	"sort"

	"github.com/darksworm/gridsel/pkg/model"
)

// Rows is the part of the view projection extraction reads.
type Rows interface {
	RowCount() int
	RecordAt(row int) (model.Record, bool)
}

// Columns is the part of the column index extraction reads.
type Columns interface {
	Resolver
	Count() int
	Leaves(visibleIndex int, layout *model.LayoutDescriptor) []model.Column
}

// Input describes one extraction over the current view.
type Input struct {
	Ranges  []model.Range
	Cells   []model.CellCoord
	Rows    Rows
	Columns Columns

	// Formatted applies column formatters to values.
	Formatted bool
	// Headers keys values by column header instead of field name.
	Headers bool
}

type cellSlot struct {
	col       int
	layout    model.LayoutDescriptor
	hasLayout bool
}

func (s cellSlot) layoutPtr() *model.LayoutDescriptor {
	if !s.hasLayout {
		return nil
	}
	l := s.layout
	return &l
}

// coverage maps each row to its cells in first-seen order.
type coverage struct {
	rows  map[int][]cellSlot
	seen  map[int]map[cellSlot]bool
	order []int
}

func newCoverage() *coverage {
	return &coverage{rows: make(map[int][]cellSlot), seen: make(map[int]map[cellSlot]bool)}
}

func (c *coverage) add(row int, slot cellSlot) {
	s, ok := c.seen[row]
	if !ok {
		s = make(map[cellSlot]bool)
		c.seen[row] = s
		c.order = append(c.order, row)
	}
	if s[slot] {
		return
	}
	s[slot] = true
	c.rows[row] = append(c.rows[row], slot)
}

// sortedRows returns covered rows ascending.
func (c *coverage) sortedRows() []int {
	out := append([]int(nil), c.order...)
	sort.Ints(out)
	return out
}

// cover walks ranges then discrete cells, clipped to the view. Ranges whose
// columns no longer resolve are returned in skipped.
func cover(in Input) (cov *coverage, skipped []model.Range) {
	cov = newCoverage()
	rowCount, colCount := in.Rows.RowCount(), in.Columns.Count()

	for _, r := range in.Ranges {
		b, err := Resolve(r, in.Columns)
		if err != nil {
			skipped = append(skipped, r)
			continue
		}
		clipped, ok := b.Clip(rowCount, colCount)
		if !ok {
			continue
		}
		for row := clipped.RowStart; row <= clipped.RowEnd; row++ {
			for col := clipped.ColStart; col <= clipped.ColEnd; col++ {
				cov.add(row, cellSlot{col: col})
			}
		}
	}

	for _, c := range in.Cells {
		if c.Row < 0 || c.Row >= rowCount || c.Column < 0 || c.Column >= colCount {
			continue
		}
		slot := cellSlot{col: c.Column}
		if c.Layout != nil {
			slot.layout, slot.hasLayout = *c.Layout, true
		}
		cov.add(c.Row, slot)
	}
	return cov, skipped
}

// headerKeys maps each visible data column to its output key when values are
// keyed by header. The first column in view order keeps a shared title; later
// ones are suffixed with their field name so no value is lost.
func headerKeys(cols Columns) map[string]string {
	keys := make(map[string]string)
	taken := make(map[string]bool)
	for i := 0; i < cols.Count(); i++ {
		for _, col := range cols.Leaves(i, nil) {
			key := col.Title()
			if taken[key] {
				key = fmt.Sprintf("%s (%s)", col.Title(), col.Field)
			}
			for n := 2; taken[key]; n++ {
				key = fmt.Sprintf("%s (%s) %d", col.Title(), col.Field, n)
			}
			taken[key] = true
			keys[col.Field] = key
		}
	}
	return keys
}

// Extract returns one partial record per covered row, rows ascending. Each
// cell contributes once; when ranges overlap, a row's fields accumulate in
// first-seen order. Fields the record lacks are omitted. Ranges that fail
// column resolution are skipped and reported. With Headers set, columns
// sharing a title are told apart by their field name.
func Extract(in Input) (rows []model.DataRow, skipped []model.Range) {
	cov, skipped := cover(in)
	rows = []model.DataRow{}
	var titles map[string]string
	if in.Headers {
		titles = headerKeys(in.Columns)
	}

	for _, row := range cov.sortedRows() {
		rec, ok := in.Rows.RecordAt(row)
		if !ok {
			continue
		}
		var out model.DataRow
		for _, slot := range cov.rows[row] {
			for _, col := range in.Columns.Leaves(slot.col, slot.layoutPtr()) {
				v, present := rec[col.Field]
				if !present {
					continue
				}
				if in.Formatted && col.Formatter != nil {
					v = col.Formatter(v, rec)
				}
				key := col.Field
				if in.Headers {
					key = titles[col.Field]
				}
				out.Set(key, v)
			}
		}
		if out.Len() > 0 {
			rows = append(rows, out)
		}
	}
	return rows, skipped
}

// Cells lists every covered cell once, row-major. Cells inside layout groups
// carry their layout when they were selected individually.
func Cells(in Input) []model.CellCoord {
	cov, _ := cover(in)
	var out []model.CellCoord
	for _, row := range cov.sortedRows() {
		slots := append([]cellSlot(nil), cov.rows[row]...)
		sort.SliceStable(slots, func(i, j int) bool { return slots[i].col < slots[j].col })
		for i, s := range slots {
			if i > 0 && slots[i-1].col == s.col {
				continue
			}
			out = append(out, model.CellCoord{Row: row, Column: s.col, Layout: s.layoutPtr()})
		}
	}
	return out
}
