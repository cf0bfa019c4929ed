package selection

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/darksworm/gridsel/pkg/columns"
	"github.com/darksworm/gridsel/pkg/model"
	"github.com/darksworm/gridsel/pkg/view"
)

func employeeTable() *view.Table {
	data := []model.Record{
		{"ID": 1, "ParentID": -1, "Name": "Casey Houston", "HireDate": "2017-06-19"},
		{"ID": 2, "ParentID": 1, "Name": "Gilberto Todd", "HireDate": "2015-12-18"},
		{"ID": 3, "ParentID": 2, "Name": "Tanya Bennett", "HireDate": "2005-11-18"},
		{"ID": 4, "ParentID": 1, "Name": "Jack Simon", "HireDate": "2008-12-18"},
	}
	cols := []model.Column{
		{Field: "ID"},
		{Field: "ParentID"},
		{Field: "Name", Header: "Full Name", Formatter: func(v any, _ model.Record) any {
			return strings.ToUpper(v.(string))
		}},
		{Field: "HireDate"},
	}
	return view.NewTable(data, cols, view.WithPrimaryKey("ID"))
}

func input(tbl *view.Table, ranges ...model.Range) Input {
	return Input{Ranges: ranges, Rows: tbl, Columns: columns.Build(tbl.Columns())}
}

func toMaps(rows []model.DataRow) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = r.Map()
	}
	return out
}

func keysOf(rows []model.DataRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.Keys()
	}
	return out
}

func TestExtract_SingleRange(t *testing.T) {
	tbl := employeeTable()
	rows, skipped := Extract(input(tbl, model.IndexRange(2, 3, 0, 1)))
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped ranges: %v", skipped)
	}
	want := []map[string]any{
		{"ID": 3, "ParentID": 2},
		{"ID": 4, "ParentID": 1},
	}
	if diff := cmp.Diff(want, toMaps(rows)); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_ReversedRangeMatchesForward(t *testing.T) {
	tbl := employeeTable()
	fwd, _ := Extract(input(tbl, model.IndexRange(0, 1, 1, 2)))
	rev, _ := Extract(input(tbl, model.IndexRange(1, 0, 2, 1)))
	if diff := cmp.Diff(toMaps(fwd), toMaps(rev)); diff != "" {
		t.Errorf("reversed range differs (-fwd +rev):\n%s", diff)
	}
}

func TestExtract_OverlappingRangesAccumulateFields(t *testing.T) {
	tbl := employeeTable()
	rows, _ := Extract(input(tbl,
		model.IndexRange(1, 2, 2, 3), // Name, HireDate
		model.IndexRange(0, 1, 0, 2), // ID, ParentID, Name
	))

	wantKeys := [][]string{
		{"ID", "ParentID", "Name"},
		{"Name", "HireDate", "ID", "ParentID"},
		{"Name", "HireDate"},
	}
	if diff := cmp.Diff(wantKeys, keysOf(rows)); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_SameCellsTwice(t *testing.T) {
	tbl := employeeTable()
	rows, _ := Extract(input(tbl, model.IndexRange(0, 1, 0, 1), model.FieldRange(0, 1, "ID", "ParentID")))
	if len(rows) != 2 {
		t.Fatalf("expected each row once, got %d rows", len(rows))
	}
	if rows[0].Len() != 2 {
		t.Errorf("expected each cell once, got keys %v", rows[0].Keys())
	}
}

func TestExtract_OutOfBoundsClips(t *testing.T) {
	tbl := employeeTable()
	rows, _ := Extract(input(tbl, model.IndexRange(-5, 100, 3, 10)))
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if diff := cmp.Diff([]string{"HireDate"}, r.Keys()); diff != "" {
			t.Errorf("keys mismatch (-want +got):\n%s", diff)
		}
	}

	none, _ := Extract(input(tbl, model.IndexRange(10, 20, 0, 1)))
	if none == nil || len(none) != 0 {
		t.Errorf("range outside the view should extract an empty slice, got %#v", none)
	}
}

func TestExtract_FormattedWithHeaders(t *testing.T) {
	tbl := employeeTable()
	in := input(tbl, model.FieldRange(0, 0, "ID", "Name"))
	in.Formatted = true
	in.Headers = true
	rows, _ := Extract(in)

	want := []map[string]any{{"ID": 1, "ParentID": -1, "Full Name": "CASEY HOUSTON"}}
	if diff := cmp.Diff(want, toMaps(rows)); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_DuplicateHeaders(t *testing.T) {
	data := []model.Record{{"A": 1, "B": 2, "C": 3, "Name": "x"}}
	cols := []model.Column{
		{Field: "A", Header: "Value"},
		{Field: "B", Header: "Value"},
		{Field: "C", Header: "Name"},
		{Field: "Name"},
	}
	tbl := view.NewTable(data, cols)
	in := input(tbl, model.IndexRange(0, 0, 0, 3))
	in.Headers = true
	rows, _ := Extract(in)

	want := [][]string{{"Value", "Value (B)", "Name", "Name (Name)"}}
	if diff := cmp.Diff(want, keysOf(rows)); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if v, _ := rows[0].Get("Value (B)"); v != 2 {
		t.Errorf("second Value column = %v, want 2", v)
	}
	if v, _ := rows[0].Get("Name (Name)"); v != "x" {
		t.Errorf("Name column = %v, want x", v)
	}
}

func TestExtract_SkipsUnresolvableRanges(t *testing.T) {
	tbl := employeeTable()
	in := input(tbl, model.FieldRange(0, 0, "ID", "Name"), model.FieldRange(1, 1, "ID", "Salary"))
	rows, skipped := Extract(in)
	if len(skipped) != 1 || skipped[0].ColumnEnd.Field() != "Salary" {
		t.Errorf("skipped = %v", skipped)
	}
	if len(rows) != 1 {
		t.Errorf("expected the valid range to still extract, got %d rows", len(rows))
	}
}

func TestExtract_FollowsViewOrder(t *testing.T) {
	tbl := employeeTable()
	r := model.IndexRange(0, 1, 0, 0)
	before, _ := Extract(input(tbl, r))

	tbl.Sort(model.SortExpression{Field: "ID", Direction: model.SortDesc})
	after, _ := Extract(input(tbl, r))

	if diff := cmp.Diff([]map[string]any{{"ID": 1}, {"ID": 2}}, toMaps(before)); diff != "" {
		t.Errorf("before sort (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]map[string]any{{"ID": 4}, {"ID": 3}}, toMaps(after)); diff != "" {
		t.Errorf("after sort (-want +got):\n%s", diff)
	}
}

func TestExtract_DiscreteCells(t *testing.T) {
	tbl := employeeTable()
	in := input(tbl, model.IndexRange(0, 0, 0, 0))
	in.Cells = []model.CellCoord{model.Cell(2, 2), model.Cell(0, 3), model.Cell(9, 0)}
	rows, _ := Extract(in)

	want := []map[string]any{
		{"ID": 1, "HireDate": "2017-06-19"},
		{"Name": "Tanya Bennett"},
	}
	if diff := cmp.Diff(want, toMaps(rows)); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_LayoutGroup(t *testing.T) {
	street := &model.LayoutDescriptor{RowStart: 1, ColStart: 1, RowEnd: 2, ColEnd: 2}
	city := &model.LayoutDescriptor{RowStart: 2, ColStart: 1, RowEnd: 3, ColEnd: 2}
	cols := []model.Column{
		{Field: "ID"},
		{Field: "Address", Children: []model.Column{
			{Field: "Street", Layout: street},
			{Field: "City", Layout: city},
		}},
	}
	tbl := view.NewTable([]model.Record{{"ID": 1, "Street": "Main St", "City": "Sofia"}}, cols)
	idx := columns.Build(tbl.Columns())

	whole, _ := Extract(Input{Ranges: []model.Range{model.IndexRange(0, 0, 0, 1)}, Rows: tbl, Columns: idx})
	if diff := cmp.Diff([]string{"ID", "Street", "City"}, whole[0].Keys()); diff != "" {
		t.Errorf("group range keys (-want +got):\n%s", diff)
	}

	one, _ := Extract(Input{Cells: []model.CellCoord{{Row: 0, Column: 1, Layout: city}}, Rows: tbl, Columns: idx})
	if diff := cmp.Diff([]string{"City"}, one[0].Keys()); diff != "" {
		t.Errorf("layout cell keys (-want +got):\n%s", diff)
	}
}

func TestCells(t *testing.T) {
	tbl := employeeTable()
	in := input(tbl, model.IndexRange(1, 0, 1, 0))
	in.Cells = []model.CellCoord{model.Cell(0, 0), model.Cell(3, 3)}

	want := []model.CellCoord{
		model.Cell(0, 0), model.Cell(0, 1),
		model.Cell(1, 0), model.Cell(1, 1),
		model.Cell(3, 3),
	}
	if diff := cmp.Diff(want, Cells(in)); diff != "" {
		t.Errorf("Cells() mismatch (-want +got):\n%s", diff)
	}
}
