package sort

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/darksworm/gridsel/pkg/model"
)

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestOrder(t *testing.T) {
	records := []model.Record{
		{"Name": "carol", "Age": 41},
		{"Name": "Alice", "Age": 29},
		{"Name": "bob", "Age": 41},
		{"Name": "dave"},
	}

	tests := []struct {
		name  string
		exprs []model.SortExpression
		want  []int
	}{
		{
			name:  "no expressions keeps order",
			exprs: nil,
			want:  []int{0, 1, 2, 3},
		},
		{
			name:  "numeric ascending, missing first, stable ties",
			exprs: []model.SortExpression{{Field: "Age", Direction: model.SortAsc}},
			want:  []int{3, 1, 0, 2},
		},
		{
			name:  "numeric descending",
			exprs: []model.SortExpression{{Field: "Age", Direction: model.SortDesc}},
			want:  []int{0, 2, 1, 3},
		},
		{
			name:  "case sensitive text",
			exprs: []model.SortExpression{{Field: "Name", Direction: model.SortAsc}},
			want:  []int{1, 2, 0, 3},
		},
		{
			name:  "ignore case text",
			exprs: []model.SortExpression{{Field: "Name", Direction: model.SortAsc, IgnoreCase: true}},
			want:  []int{1, 2, 0, 3},
		},
		{
			name: "secondary expression breaks ties",
			exprs: []model.SortExpression{
				{Field: "Age", Direction: model.SortDesc},
				{Field: "Name", Direction: model.SortAsc},
			},
			want: []int{2, 0, 1, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := identity(len(records))
			Order(records, order, tt.exprs)
			if diff := cmp.Diff(tt.want, order); diff != "" {
				t.Errorf("Order() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompareValues(t *testing.T) {
	early := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"ints", 1, 2, -1},
		{"mixed numbers", int64(3), 2.5, 1},
		{"times", late, early, 1},
		{"bools", false, true, -1},
		{"nil first", nil, "x", -1},
		{"both nil", nil, nil, 0},
		{"strings", "b", "a", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareValues(tt.a, tt.b, false); got != tt.want {
				t.Errorf("CompareValues(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
