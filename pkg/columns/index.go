// Package columns maps column identifiers to the grid's visible column space.
package columns

import (
	apperrors "github.com/darksworm/gridsel/pkg/errors"
	"github.com/darksworm/gridsel/pkg/model"
)

// Resolved is the outcome of a column lookup.
type Resolved struct {
	Column       model.Column
	VisibleIndex int
	// Layout is set when the reference named a child of a layout group.
	Layout *model.LayoutDescriptor
}

// Index holds the visible column order for one column state.
// Rebuilt every time the column registry reports a structural change.
type Index struct {
	// Visible columns: pinned first in pinned order, then unpinned in display order.
	visible []model.Column

	// Field → visible index. Children of layout groups map to their group.
	byField map[string]Resolved

	// Fields that exist but are hidden (directly or through a hidden group).
	hidden map[string]bool
}

// Build constructs an Index from the registry's columns in display order.
func Build(cols []model.Column) *Index {
	idx := &Index{
		byField: make(map[string]Resolved),
		hidden:  make(map[string]bool),
	}

	var pinned, unpinned []model.Column
	for _, c := range cols {
		if c.Hidden {
			idx.markHidden(c)
			continue
		}
		if c.Pinned {
			pinned = append(pinned, c)
		} else {
			unpinned = append(unpinned, c)
		}
	}
	idx.visible = append(pinned, unpinned...)

	for i, c := range idx.visible {
		idx.byField[c.Field] = Resolved{Column: c, VisibleIndex: i}
		for _, child := range c.Children {
			if child.Hidden {
				idx.hidden[child.Field] = true
				continue
			}
			idx.byField[child.Field] = Resolved{Column: child, VisibleIndex: i, Layout: child.Layout}
		}
	}

	return idx
}

func (idx *Index) markHidden(c model.Column) {
	idx.hidden[c.Field] = true
	for _, child := range c.Children {
		idx.hidden[child.Field] = true
	}
}

// Resolve maps a column reference to its descriptor and visible index.
// Field references fail with a column resolution error when the field is
// unknown or hidden. Index references are a direct lookup and fail only when
// out of bounds; callers that clip ranges use ResolveIndex instead.
func (idx *Index) Resolve(ref model.ColumnRef) (Resolved, error) {
	if ref.IsField() {
		return idx.ResolveField(ref.Field())
	}
	c, ok := idx.At(ref.Index())
	if !ok {
		return Resolved{}, apperrors.New(apperrors.ErrorColumn, apperrors.CodeColumnNotFound, "column index out of range").
			WithContext("index", ref.Index())
	}
	return Resolved{Column: c, VisibleIndex: ref.Index()}, nil
}

// ResolveField looks up a column by field name.
func (idx *Index) ResolveField(field string) (Resolved, error) {
	if r, ok := idx.byField[field]; ok {
		return r, nil
	}
	if idx.hidden[field] {
		return Resolved{}, apperrors.ColumnHidden(field)
	}
	return Resolved{}, apperrors.ColumnNotFound(field)
}

// ResolveIndex returns the visible index a reference points at without
// validating bounds. Field references still fail when unresolvable.
func (idx *Index) ResolveIndex(ref model.ColumnRef) (int, error) {
	if !ref.IsField() {
		return ref.Index(), nil
	}
	r, err := idx.ResolveField(ref.Field())
	if err != nil {
		return 0, err
	}
	return r.VisibleIndex, nil
}

// At returns the top-level column at a visible index.
func (idx *Index) At(i int) (model.Column, bool) {
	if idx == nil || i < 0 || i >= len(idx.visible) {
		return model.Column{}, false
	}
	return idx.visible[i], true
}

// Count returns the number of visible columns.
func (idx *Index) Count() int {
	if idx == nil {
		return 0
	}
	return len(idx.visible)
}

// Visible returns the visible columns in index order.
func (idx *Index) Visible() []model.Column {
	if idx == nil {
		return nil
	}
	out := make([]model.Column, len(idx.visible))
	copy(out, idx.visible)
	return out
}

// Leaves returns the data columns behind a visible index: the column itself,
// or the visible children of a layout group. When layout is non-nil only the
// child at that layout position is returned.
func (idx *Index) Leaves(i int, layout *model.LayoutDescriptor) []model.Column {
	c, ok := idx.At(i)
	if !ok {
		return nil
	}
	if !c.IsGroup() {
		return []model.Column{c}
	}
	var out []model.Column
	for _, child := range c.Children {
		if child.Hidden {
			continue
		}
		if layout != nil && (child.Layout == nil || *child.Layout != *layout) {
			continue
		}
		out = append(out, child)
	}
	return out
}

// IndexOfField returns the visible index of a field, or -1.
func (idx *Index) IndexOfField(field string) int {
	if r, ok := idx.byField[field]; ok {
		return r.VisibleIndex
	}
	return -1
}
