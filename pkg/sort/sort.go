// Package sort orders grid records. It stands in for the grid's sorting and
// grouping engines: the selection core only consumes the resulting order.
package sort

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/darksworm/gridsel/pkg/model"
)

// Order sorts indices into records by the given expressions. The sort is
// stable, so records that compare equal keep their incoming order.
func Order(records []model.Record, order []int, exprs []model.SortExpression) {
	if len(order) <= 1 || len(exprs) == 0 {
		return
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return compareRecords(records[a], records[b], exprs)
	})
}

// compareRecords applies the expressions in turn until one differs.
func compareRecords(a, b model.Record, exprs []model.SortExpression) int {
	for _, e := range exprs {
		c := CompareValues(a[e.Field], b[e.Field], e.IgnoreCase)
		if c == 0 {
			continue
		}
		if e.Direction == model.SortDesc {
			return -c
		}
		return c
	}
	return 0
}

// CompareValues compares two cell values. Missing values sort first; numbers
// compare numerically, times chronologically, everything else as text.
func CompareValues(a, b any, ignoreCase bool) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return cmp.Compare(fa, fb)
		}
	}

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}

	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ba == bb:
				return 0
			case !ba:
				return -1
			default:
				return 1
			}
		}
	}

	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	if ignoreCase {
		sa, sb = strings.ToLower(sa), strings.ToLower(sb)
	}
	return strings.Compare(sa, sb)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
