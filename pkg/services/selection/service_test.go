package selection

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/darksworm/gridsel/pkg/errors"
	"github.com/darksworm/gridsel/pkg/model"
	"github.com/darksworm/gridsel/pkg/view"
)

var refCmp = cmp.Comparer(func(a, b model.ColumnRef) bool { return a == b })

func employees() []model.Record {
	return []model.Record{
		{"ID": 1, "ParentID": -1, "Name": "Casey Houston", "HireDate": "2017-06-19"},
		{"ID": 2, "ParentID": 1, "Name": "Gilberto Todd", "HireDate": "2015-12-18"},
		{"ID": 3, "ParentID": 2, "Name": "Tanya Bennett", "HireDate": "2005-11-18"},
		{"ID": 4, "ParentID": 1, "Name": "Jack Simon", "HireDate": "2008-12-18"},
		{"ID": 5, "ParentID": 4, "Name": "Debra Morton", "HireDate": "2014-02-12"},
	}
}

func employeeColumns() []model.Column {
	return []model.Column{{Field: "ID"}, {Field: "ParentID"}, {Field: "Name"}, {Field: "HireDate"}}
}

// recorder counts events raised by a service.
type recorder struct {
	ranges  []model.RangeSelectionChangedMsg
	cells   []model.SelectionChangedMsg
	rows    []model.RowSelectionChangingMsg
	cols    []model.ColumnSelectionChangingMsg
	vetoRow func(*model.RowSelectionChangingMsg) bool
}

func (r *recorder) handlers() Handlers {
	return Handlers{
		RangeSelectionChanged: func(m model.RangeSelectionChangedMsg) { r.ranges = append(r.ranges, m) },
		SelectionChanged:      func(m model.SelectionChangedMsg) { r.cells = append(r.cells, m) },
		RowSelectionChanging: func(m *model.RowSelectionChangingMsg) {
			if r.vetoRow != nil && r.vetoRow(m) {
				m.Cancel = true
			}
			r.rows = append(r.rows, *m)
		},
		ColumnSelectionChanging: func(m *model.ColumnSelectionChangingMsg) { r.cols = append(r.cols, *m) },
	}
}

func newFixture(t *testing.T, opts ...view.TableOption) (*view.Table, *Service, *recorder) {
	t.Helper()
	tbl := view.NewTable(employees(), employeeColumns(), append([]view.TableOption{view.WithPrimaryKey("ID")}, opts...)...)
	rec := &recorder{}
	svc := NewService(tbl, WithHandlers(rec.handlers()))
	svc.Attach(tbl)
	return tbl, svc, rec
}

func dataMaps(rows []model.DataRow) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = r.Map()
	}
	return out
}

func TestSelectRange_ScenarioSubsetInRowOrder(t *testing.T) {
	_, svc, rec := newFixture(t)

	if err := svc.SelectRange(model.IndexRange(2, 3, 0, 1)); err != nil {
		t.Fatalf("SelectRange: %v", err)
	}

	want := []map[string]any{
		{"ID": 3, "ParentID": 2},
		{"ID": 4, "ParentID": 1},
	}
	if diff := cmp.Diff(want, dataMaps(svc.SelectedData(false, false))); diff != "" {
		t.Errorf("SelectedData() mismatch (-want +got):\n%s", diff)
	}
	if len(rec.ranges) != 1 {
		t.Errorf("expected one range event, got %d", len(rec.ranges))
	}
	if len(rec.cells) != 0 {
		t.Errorf("range API must not raise cell events, got %d", len(rec.cells))
	}
}

func TestSelectRange_StableUnderSort(t *testing.T) {
	tbl, svc, _ := newFixture(t)
	r := model.IndexRange(0, 1, 0, 0)
	if err := svc.SelectRange(r); err != nil {
		t.Fatal(err)
	}
	before := dataMaps(svc.SelectedData(false, false))

	tbl.Sort(model.SortExpression{Field: "ID", Direction: model.SortDesc})

	if diff := cmp.Diff([]model.Range{r}, svc.Ranges(), refCmp); diff != "" {
		t.Errorf("range changed after sort (-want +got):\n%s", diff)
	}
	after := dataMaps(svc.SelectedData(false, false))
	if diff := cmp.Diff([]map[string]any{{"ID": 1}, {"ID": 2}}, before); diff != "" {
		t.Errorf("before sort (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]map[string]any{{"ID": 5}, {"ID": 4}}, after); diff != "" {
		t.Errorf("after sort (-want +got):\n%s", diff)
	}
	if svc.Generation() != tbl.Generation() {
		t.Errorf("service generation %d, table %d", svc.Generation(), tbl.Generation())
	}
}

func TestSelectRange_FilteredOutRehydrates(t *testing.T) {
	tbl, svc, _ := newFixture(t)
	r := model.IndexRange(0, 0, 0, 2)
	if err := svc.SelectRange(r); err != nil {
		t.Fatal(err)
	}

	tbl.FilterBy("Name", "nobody")
	if got := svc.SelectedData(false, false); len(got) != 0 {
		t.Errorf("expected empty extraction, got %v", dataMaps(got))
	}
	if len(svc.Ranges()) != 1 {
		t.Fatal("range must survive a total filter-out")
	}

	tbl.ClearFilter()
	if got := svc.SelectedData(false, false); len(got) != 1 {
		t.Errorf("expected range to rehydrate, got %d rows", len(got))
	}
}

func TestSelectRange_ClearsOnPageChange(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*view.Table)
		change func(*view.Table)
	}{
		{"page index", nil, func(tbl *view.Table) { tbl.SetPage(1) }},
		{"per page", nil, func(tbl *view.Table) { tbl.SetPerPage(3) }},
		// Four names contain "a", so the third page no longer exists.
		{"filter clamps page", func(tbl *view.Table) { tbl.SetPage(2) }, func(tbl *view.Table) { tbl.FilterBy("Name", "a") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, svc, rec := newFixture(t, view.WithPerPage(2))
			if tt.setup != nil {
				tt.setup(tbl)
			}
			if err := svc.SelectRange(model.IndexRange(0, 1, 0, 1)); err != nil {
				t.Fatal(err)
			}
			svc.ApplyGesture(AddCell{Cell: model.Cell(1, 2)})
			svc.SelectRows(1)
			events := len(rec.ranges)

			tt.change(tbl)

			if got := svc.Ranges(); len(got) != 0 {
				t.Errorf("Ranges() = %v, want empty", got)
			}
			if got := svc.SelectedData(false, false); len(got) != 0 {
				t.Errorf("SelectedData() = %v, want empty", dataMaps(got))
			}
			if _, ok := svc.ActiveNode(); ok {
				t.Error("active node should be cleared")
			}
			if len(rec.ranges) != events {
				t.Error("paging must not raise range events")
			}
			if diff := cmp.Diff([]any{1}, svc.SelectedRows()); diff != "" {
				t.Errorf("row selection should survive paging (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectRange_OverlappingCellsOnce(t *testing.T) {
	_, svc, _ := newFixture(t)
	err := svc.SelectRange(
		model.IndexRange(0, 1, 0, 1),
		model.IndexRange(1, 2, 1, 2),
	)
	if err != nil {
		t.Fatal(err)
	}

	got := svc.SelectedData(false, false)
	wantKeys := [][]string{
		{"ID", "ParentID"},
		{"ID", "ParentID", "Name"},
		{"ParentID", "Name"},
	}
	var gotKeys [][]string
	for _, r := range got {
		gotKeys = append(gotKeys, r.Keys())
	}
	if diff := cmp.Diff(wantKeys, gotKeys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if n := len(svc.SelectedCells()); n != 7 {
		t.Errorf("SelectedCells() has %d cells, want 7", n)
	}
}

func TestSelectRange_Idempotent(t *testing.T) {
	_, svc, rec := newFixture(t)
	r := model.IndexRange(0, 2, 1, 3)

	for i := 0; i < 2; i++ {
		if err := svc.SelectRange(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := svc.SelectRange(model.IndexRange(2, 0, 3, 1)); err != nil {
		t.Fatal(err)
	}

	if n := len(svc.Ranges()); n != 1 {
		t.Errorf("Ranges() has %d entries, want 1", n)
	}
	if len(rec.ranges) != 1 {
		t.Errorf("expected one range event, got %d", len(rec.ranges))
	}
}

func TestSelectRange_HiddenColumnOmitted(t *testing.T) {
	tbl, svc, _ := newFixture(t)
	r := model.IndexRange(0, 1, 1, 3)
	if err := svc.SelectRange(r); err != nil {
		t.Fatal(err)
	}

	tbl.HideColumn("Name")

	want := []map[string]any{
		{"ParentID": -1, "HireDate": "2017-06-19"},
		{"ParentID": 1, "HireDate": "2015-12-18"},
	}
	if diff := cmp.Diff(want, dataMaps(svc.SelectedData(false, false))); diff != "" {
		t.Errorf("SelectedData() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]model.Range{r}, svc.Ranges(), refCmp); diff != "" {
		t.Errorf("stored range changed (-want +got):\n%s", diff)
	}
}

func TestSelectRange_FieldRangeFollowsColumnMove(t *testing.T) {
	tbl, svc, _ := newFixture(t)
	if err := svc.SelectRange(model.FieldRange(0, 0, "Name", "HireDate")); err != nil {
		t.Fatal(err)
	}

	tbl.MoveColumn("Name", 0)

	// Name is now first, so the field range spans every column.
	got := svc.SelectedData(false, false)
	if diff := cmp.Diff([]string{"Name", "ID", "ParentID", "HireDate"}, got[0].Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	tbl.HideColumn("HireDate")
	if got := svc.SelectedData(false, false); len(got) != 0 {
		t.Errorf("range with a hidden bound should be skipped on read, got %v", dataMaps(got))
	}
	if len(svc.Ranges()) != 1 {
		t.Error("unresolvable range must stay stored")
	}
}

func TestSelectRange_ColumnResolutionFailureIsAtomic(t *testing.T) {
	tests := []struct {
		name     string
		bad      model.Range
		wantCode string
	}{
		{"unknown field", model.FieldRange(0, 1, "Salary", "Name"), apperrors.CodeColumnNotFound},
		{"hidden field", model.FieldRange(0, 1, "ID", "HireDate"), apperrors.CodeColumnHidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, svc, rec := newFixture(t)
			tbl.HideColumn("HireDate")
			existing := model.IndexRange(0, 0, 0, 0)
			if err := svc.SelectRange(existing); err != nil {
				t.Fatal(err)
			}

			err := svc.SelectRange(model.IndexRange(3, 4, 0, 1), tt.bad)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !apperrors.IsColumnResolution(err) {
				t.Errorf("expected a column resolution error, got %v", err)
			}
			var gerr *apperrors.GridError
			if !apperrors.As(err, &gerr) || !gerr.IsCode(tt.wantCode) {
				t.Errorf("expected code %s, got %v", tt.wantCode, err)
			}
			if diff := cmp.Diff([]model.Range{existing}, svc.Ranges(), refCmp); diff != "" {
				t.Errorf("ranges changed (-want +got):\n%s", diff)
			}
			if len(rec.ranges) != 1 {
				t.Errorf("failed call must not raise events, got %d total", len(rec.ranges))
			}
		})
	}
}

func TestSelectRange_OutOfBoundsIsNotAnError(t *testing.T) {
	_, svc, _ := newFixture(t)
	if err := svc.SelectRange(model.IndexRange(10, 20, 7, 9)); err != nil {
		t.Fatalf("out of bounds range should be accepted: %v", err)
	}
	if got := svc.SelectedData(false, false); len(got) != 0 {
		t.Errorf("expected empty extraction, got %v", dataMaps(got))
	}
	if n := len(svc.Ranges()); n != 1 {
		t.Errorf("stored ranges = %d, want 1", n)
	}
}

func TestSelectRange_IgnoresCellMode(t *testing.T) {
	tbl := view.NewTable(employees(), employeeColumns())
	svc := NewService(tbl, WithModes(Modes{Cell: model.ModeNone, Row: model.ModeMultiple, Column: model.ModeMultiple}))

	if err := svc.SelectRange(model.IndexRange(0, 0, 0, 1)); err != nil {
		t.Fatal(err)
	}
	if got := svc.SelectedData(false, false); len(got) != 1 {
		t.Errorf("SelectedData() rows = %d, want 1", len(got))
	}
	if got := svc.SelectedCells(); len(got) != 0 {
		t.Errorf("SelectedCells() under none = %v, want empty", got)
	}
	if svc.IsCellSelected(0, 0) {
		t.Error("no cell is selectable under none")
	}
}

func TestClearRanges(t *testing.T) {
	_, svc, rec := newFixture(t)
	_ = svc.SelectRange(model.IndexRange(0, 1, 0, 1), model.IndexRange(3, 3, 2, 3))
	svc.ApplyGesture(AddCell{Cell: model.Cell(4, 0)})

	svc.ClearRanges()

	if len(svc.Ranges()) != 0 || len(svc.SelectedCells()) != 0 {
		t.Errorf("selection left after ClearRanges: %v %v", svc.Ranges(), svc.SelectedCells())
	}
	if len(rec.ranges) != 1 {
		t.Errorf("ClearRanges must not raise range events, got %d total", len(rec.ranges))
	}
	if a, ok := svc.ActiveNode(); !ok || a.Key() != model.Cell(4, 0).Key() {
		t.Errorf("active node should be kept, got %v %v", a, ok)
	}
}

func TestSetMode_ClearsOnCardinality(t *testing.T) {
	tests := []struct {
		name      string
		mode      model.SelectionMode
		cells     []model.CellCoord
		wantCells int
	}{
		{"multiple to single with three cells", model.ModeSingle, []model.CellCoord{model.Cell(0, 0), model.Cell(1, 1), model.Cell(2, 2)}, 0},
		{"multiple to single with one cell", model.ModeSingle, []model.CellCoord{model.Cell(0, 0)}, 1},
		{"multiple to none", model.ModeNone, []model.CellCoord{model.Cell(0, 0)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, svc, _ := newFixture(t)
			for _, c := range tt.cells {
				svc.ApplyGesture(AddCell{Cell: c})
			}
			svc.SetMode(model.AxisCell, tt.mode)
			if got := len(svc.SelectedCells()); got != tt.wantCells {
				t.Errorf("SelectedCells() = %d, want %d", got, tt.wantCells)
			}
			if svc.Mode(model.AxisCell) != tt.mode {
				t.Errorf("Mode() = %s, want %s", svc.Mode(model.AxisCell), tt.mode)
			}
		})
	}

	t.Run("rows to single", func(t *testing.T) {
		_, svc, _ := newFixture(t)
		svc.SelectRows(1, 3)
		svc.SetMode(model.AxisRow, model.ModeSingle)
		if got := svc.SelectedRows(); len(got) != 0 {
			t.Errorf("SelectedRows() = %v, want empty", got)
		}
	})

	t.Run("axes are independent", func(t *testing.T) {
		_, svc, _ := newFixture(t)
		svc.SelectColumns("ID", "Name")
		_ = svc.SelectRange(model.IndexRange(0, 1, 0, 1))
		svc.SetMode(model.AxisCell, model.ModeNone)
		if diff := cmp.Diff([]string{"ID", "Name"}, svc.SelectedColumns()); diff != "" {
			t.Errorf("column selection changed (-want +got):\n%s", diff)
		}
	})
}

func TestReconcile_RowPinningRemapsRows(t *testing.T) {
	tbl, svc, _ := newFixture(t)
	_ = svc.SelectRange(model.IndexRange(0, 0, 0, 0))

	tbl.PinRow(4)

	want := []map[string]any{{"ID": 4}}
	if diff := cmp.Diff(want, dataMaps(svc.SelectedData(false, false))); diff != "" {
		t.Errorf("pinned row should occupy row 0 (-want +got):\n%s", diff)
	}
	if len(svc.Ranges()) != 1 {
		t.Error("row pinning must keep ranges")
	}
}

func TestSelectedData_FormattedWithHeaders(t *testing.T) {
	cols := employeeColumns()
	cols[2].Header = "Full Name"
	cols[2].Formatter = func(v any, _ model.Record) any { return "Mx. " + v.(string) }
	tbl := view.NewTable(employees(), cols)
	svc := NewService(tbl)
	_ = svc.SelectRange(model.IndexRange(1, 1, 1, 2))

	got := svc.SelectedData(true, true)
	want := []map[string]any{{"ParentID": 1, "Full Name": "Mx. Gilberto Todd"}}
	if diff := cmp.Diff(want, dataMaps(got)); diff != "" {
		t.Errorf("SelectedData() mismatch (-want +got):\n%s", diff)
	}
}

func TestIsCellSelected(t *testing.T) {
	_, svc, _ := newFixture(t)
	_ = svc.SelectRange(model.FieldRange(3, 1, "Name", "ParentID"))
	svc.ApplyGesture(AddCell{Cell: model.Cell(4, 3)})

	tests := []struct {
		row, col int
		want     bool
	}{
		{1, 1, true},
		{3, 2, true},
		{2, 0, false},
		{4, 3, true},
		{0, 1, false},
	}
	for _, tt := range tests {
		if got := svc.IsCellSelected(tt.row, tt.col); got != tt.want {
			t.Errorf("IsCellSelected(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
		}
	}
}
