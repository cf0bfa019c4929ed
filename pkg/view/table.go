package view

import (
	"fmt"
	"strings"

	cblog "github.com/charmbracelet/log"

	"github.com/darksworm/gridsel/pkg/model"
	gridsort "github.com/darksworm/gridsel/pkg/sort"
)

// PinPosition places the pinned row band.
type PinPosition string

const (
	PinTop    PinPosition = "top"
	PinBottom PinPosition = "bottom"
)

// Table is an in-memory grid state: data, column registry and the
// sort/filter/group/page/pin pipeline. It implements Grid and notifies
// subscribers synchronously after every structural change.
type Table struct {
	data       []model.Record
	primaryKey string
	columns    []model.Column

	sortExprs []model.SortExpression
	groupBy   []string
	filter    func(model.Record) bool

	page    int
	perPage int // 0 disables paging

	pinnedKeys  []any
	pinPosition PinPosition

	generation uint64
	listeners  []func(Change)

	// Derived, rebuilt on every change.
	rows       []int // effective row → index into data
	body       int   // filtered, unpinned row count before paging
	pinnedRows int
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithPrimaryKey makes row identity the value of field instead of the
// record's position in the data set.
func WithPrimaryKey(field string) TableOption {
	return func(t *Table) { t.primaryKey = field }
}

// WithPerPage enables paging.
func WithPerPage(n int) TableOption {
	return func(t *Table) { t.perPage = max(n, 0) }
}

// WithPinPosition places pinned rows at the top or the bottom.
func WithPinPosition(p PinPosition) TableOption {
	return func(t *Table) { t.pinPosition = p }
}

// NewTable creates a table over data with the given columns.
func NewTable(data []model.Record, columns []model.Column, opts ...TableOption) *Table {
	t := &Table{
		data:        data,
		columns:     append([]model.Column(nil), columns...),
		pinPosition: PinTop,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.rebuild()
	return t
}

// Subscribe registers fn to be called after each structural change.
func (t *Table) Subscribe(fn func(Change)) {
	t.listeners = append(t.listeners, fn)
}

// changed rebuilds the rows and notifies subscribers. A rebuild that clamps
// the page index (a filter or new data leaving fewer pages) is followed by
// a ChangePage notification.
func (t *Table) changed(kind ChangeKind) {
	page := t.page
	t.rebuild()
	t.notify(kind)
	if t.page != page && kind != ChangePage && kind != ChangePerPage {
		cblog.With("component", "view").Debug("Page clamped", "from", page, "to", t.page, "cause", kind)
		t.notify(ChangePage)
	}
}

func (t *Table) notify(kind ChangeKind) {
	t.generation++
	cblog.With("component", "view").Debug("View changed", "kind", kind, "generation", t.generation, "rows", len(t.rows))
	ch := Change{Kind: kind, Generation: t.generation}
	for _, fn := range t.listeners {
		fn(ch)
	}
}

// Generation implements Projection and ColumnSource.
func (t *Table) Generation() uint64 { return t.generation }

// RowCount implements Projection.
func (t *Table) RowCount() int { return len(t.rows) }

// RecordAt implements Projection.
func (t *Table) RecordAt(row int) (model.Record, bool) {
	if row < 0 || row >= len(t.rows) {
		return nil, false
	}
	return t.data[t.rows[row]], true
}

// RowKey implements Projection.
func (t *Table) RowKey(row int) (any, bool) {
	if row < 0 || row >= len(t.rows) {
		return nil, false
	}
	return t.keyOf(t.rows[row]), true
}

// IndexOfKey implements Projection.
func (t *Table) IndexOfKey(key any) int {
	for row, i := range t.rows {
		if t.keyOf(i) == key {
			return row
		}
	}
	return -1
}

func (t *Table) keyOf(dataIndex int) any {
	if t.primaryKey != "" {
		return t.data[dataIndex][t.primaryKey]
	}
	return dataIndex
}

// Columns implements ColumnSource. The slice is a copy in display order.
func (t *Table) Columns() []model.Column {
	out := make([]model.Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Data returns the underlying records.
func (t *Table) Data() []model.Record { return t.data }

// SetData replaces the records.
func (t *Table) SetData(data []model.Record) {
	t.data = data
	t.changed(ChangeData)
}

// SetColumns replaces the column registry.
func (t *Table) SetColumns(columns []model.Column) {
	t.columns = append([]model.Column(nil), columns...)
	t.changed(ChangeColumnMove)
}

// Sort orders rows by the given expressions, replacing any previous sort.
func (t *Table) Sort(exprs ...model.SortExpression) {
	t.sortExprs = append([]model.SortExpression(nil), exprs...)
	t.changed(ChangeSort)
}

// ClearSort restores data order.
func (t *Table) ClearSort() {
	t.sortExprs = nil
	t.changed(ChangeSort)
}

// Filter keeps only the records for which keep returns true.
func (t *Table) Filter(keep func(model.Record) bool) {
	t.filter = keep
	t.changed(ChangeFilter)
}

// FilterBy keeps records whose field contains substr, ignoring case.
func (t *Table) FilterBy(field, substr string) {
	needle := strings.ToLower(substr)
	t.Filter(func(r model.Record) bool {
		v, ok := r[field]
		if !ok || v == nil {
			return false
		}
		return strings.Contains(strings.ToLower(fmt.Sprint(v)), needle)
	})
}

// ClearFilter removes the filter.
func (t *Table) ClearFilter() {
	t.filter = nil
	t.changed(ChangeFilter)
}

// GroupBy orders rows by the given fields ahead of the sort expressions.
// Group header rows are a rendering concern and are not part of the view.
func (t *Table) GroupBy(fields ...string) {
	t.groupBy = append([]string(nil), fields...)
	t.changed(ChangeGroup)
}

// Page returns the current zero-based page.
func (t *Table) Page() int { return t.page }

// PerPage returns the page size (0 when paging is off).
func (t *Table) PerPage() int { return t.perPage }

// TotalPages returns the number of pages of the unpinned rows.
func (t *Table) TotalPages() int {
	if t.perPage <= 0 {
		return 1
	}
	if t.body == 0 {
		return 1
	}
	return (t.body + t.perPage - 1) / t.perPage
}

// SetPage moves to page p, clamped to the available pages.
func (t *Table) SetPage(p int) {
	p = max(0, min(p, t.TotalPages()-1))
	if p == t.page {
		return
	}
	t.page = p
	t.changed(ChangePage)
}

// SetPerPage changes the page size and returns to the first page.
func (t *Table) SetPerPage(n int) {
	n = max(n, 0)
	if n == t.perPage {
		return
	}
	t.perPage = n
	t.page = 0
	t.changed(ChangePerPage)
}

func (t *Table) columnPos(field string) int {
	for i, c := range t.columns {
		if c.Field == field {
			return i
		}
	}
	return -1
}

// HideColumn hides a column. Returns false if the field is unknown.
func (t *Table) HideColumn(field string) bool {
	return t.setHidden(field, true)
}

// ShowColumn shows a hidden column. Returns false if the field is unknown.
func (t *Table) ShowColumn(field string) bool {
	return t.setHidden(field, false)
}

func (t *Table) setHidden(field string, hidden bool) bool {
	i := t.columnPos(field)
	if i < 0 {
		return false
	}
	if t.columns[i].Hidden == hidden {
		return true
	}
	t.columns[i].Hidden = hidden
	t.changed(ChangeColumnHide)
	return true
}

// PinColumn pins a column after the already pinned ones.
func (t *Table) PinColumn(field string) bool {
	i := t.columnPos(field)
	if i < 0 {
		return false
	}
	if t.columns[i].Pinned {
		return true
	}
	col := t.columns[i]
	col.Pinned = true
	rest := append(t.columns[:i:i], t.columns[i+1:]...)

	at := 0
	for j, c := range rest {
		if c.Pinned {
			at = j + 1
		}
	}
	t.columns = append(rest[:at:at], append([]model.Column{col}, rest[at:]...)...)
	t.changed(ChangeColumnPin)
	return true
}

// UnpinColumn releases a pinned column. It keeps its display position.
func (t *Table) UnpinColumn(field string) bool {
	i := t.columnPos(field)
	if i < 0 {
		return false
	}
	if !t.columns[i].Pinned {
		return true
	}
	t.columns[i].Pinned = false
	t.changed(ChangeColumnPin)
	return true
}

// MoveColumn moves a column to position to in display order.
func (t *Table) MoveColumn(field string, to int) bool {
	i := t.columnPos(field)
	if i < 0 {
		return false
	}
	to = max(0, min(to, len(t.columns)-1))
	if to == i {
		return true
	}
	col := t.columns[i]
	rest := append(t.columns[:i:i], t.columns[i+1:]...)
	t.columns = append(rest[:to:to], append([]model.Column{col}, rest[to:]...)...)
	t.changed(ChangeColumnMove)
	return true
}

// PinRow pins the record with key into the pinned band.
func (t *Table) PinRow(key any) bool {
	if t.dataIndexOfKey(key) < 0 {
		return false
	}
	for _, k := range t.pinnedKeys {
		if k == key {
			return true
		}
	}
	t.pinnedKeys = append(t.pinnedKeys, key)
	t.changed(ChangeRowPin)
	return true
}

// UnpinRow returns a pinned record to the body.
func (t *Table) UnpinRow(key any) bool {
	for i, k := range t.pinnedKeys {
		if k == key {
			t.pinnedKeys = append(t.pinnedKeys[:i], t.pinnedKeys[i+1:]...)
			t.changed(ChangeRowPin)
			return true
		}
	}
	return false
}

// PinnedRowCount returns the size of the pinned band.
func (t *Table) PinnedRowCount() int { return t.pinnedRows }

func (t *Table) dataIndexOfKey(key any) int {
	for i := range t.data {
		if t.keyOf(i) == key {
			return i
		}
	}
	return -1
}

// rebuild recomputes the effective row order.
func (t *Table) rebuild() {
	order := make([]int, 0, len(t.data))
	for i, rec := range t.data {
		if t.filter == nil || t.filter(rec) {
			order = append(order, i)
		}
	}

	exprs := make([]model.SortExpression, 0, len(t.groupBy)+len(t.sortExprs))
	for _, g := range t.groupBy {
		exprs = append(exprs, model.SortExpression{Field: g, Direction: model.SortAsc})
	}
	exprs = append(exprs, t.sortExprs...)
	gridsort.Order(t.data, order, exprs)

	pinnedSet := make(map[any]int, len(t.pinnedKeys))
	for i, k := range t.pinnedKeys {
		pinnedSet[k] = i
	}
	pinned := make([]int, len(t.pinnedKeys))
	for i := range pinned {
		pinned[i] = -1
	}
	body := order[:0:0]
	for _, i := range order {
		if pos, ok := pinnedSet[t.keyOf(i)]; ok {
			pinned[pos] = i
			continue
		}
		body = append(body, i)
	}
	band := pinned[:0]
	for _, i := range pinned {
		if i >= 0 {
			band = append(band, i)
		}
	}

	t.body = len(body)
	if t.perPage > 0 {
		if t.page >= t.TotalPages() {
			t.page = t.TotalPages() - 1
		}
		start := min(t.page*t.perPage, len(body))
		end := min(start+t.perPage, len(body))
		body = body[start:end]
	}

	t.pinnedRows = len(band)
	t.rows = make([]int, 0, len(band)+len(body))
	if t.pinPosition == PinBottom {
		t.rows = append(t.rows, body...)
		t.rows = append(t.rows, band...)
	} else {
		t.rows = append(t.rows, band...)
		t.rows = append(t.rows, body...)
	}
}
