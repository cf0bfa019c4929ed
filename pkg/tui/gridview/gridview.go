// Package gridview draws the grid with its selection state and maps screen
// coordinates back to cells for mouse input.
package gridview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/darksworm/gridsel/pkg/columns"
	"github.com/darksworm/gridsel/pkg/model"
	"github.com/darksworm/gridsel/pkg/services/selection"
	"github.com/darksworm/gridsel/pkg/theme"
	"github.com/darksworm/gridsel/pkg/tui/gridnav"
	"github.com/darksworm/gridsel/pkg/view"
)

const (
	selectorWidth   = 2
	headerHeight    = 1
	defaultColWidth = 16
)

// pinnedRows is implemented by grids with a pinned row band at the top.
type pinnedRows interface {
	PinnedRowCount() int
}

// Renderer draws the visible window of a grid. Screen coordinates passed to
// the hit-test methods are relative to the top-left corner of the output.
type Renderer struct {
	svc      *selection.Service
	grid     view.Projection
	nav      *gridnav.Navigator
	styles   styles
	colWidth int
}

type styles struct {
	header         lipgloss.Style
	headerSelected lipgloss.Style
	cell           lipgloss.Style
	pinned         lipgloss.Style
	selected       lipgloss.Style
	cursor         lipgloss.Style
	cursorSelected lipgloss.Style
	live           lipgloss.Style
	axis           lipgloss.Style
	selector       lipgloss.Style
	empty          lipgloss.Style
}

func newStyles(p theme.Palette) styles {
	base := lipgloss.NewStyle().Foreground(p.Text)
	return styles{
		header:         lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		headerSelected: lipgloss.NewStyle().Foreground(p.Accent).Background(p.MutedBG).Bold(true),
		cell:           base,
		pinned:         lipgloss.NewStyle().Foreground(p.Info),
		selected:       base.Background(p.SelectedBG),
		cursor:         base.Background(p.CursorBG),
		cursorSelected: base.Background(p.CursorSelectedBG).Bold(true),
		live:           base.Background(p.ShadeBG),
		axis:           base.Background(p.MutedBG),
		selector:       lipgloss.NewStyle().Foreground(p.Accent),
		empty:          lipgloss.NewStyle().Foreground(p.Dim),
	}
}

// New creates a renderer for grid using the selection state of svc.
func New(svc *selection.Service, grid view.Projection, nav *gridnav.Navigator, p theme.Palette) *Renderer {
	return &Renderer{
		svc:      svc,
		grid:     grid,
		nav:      nav,
		styles:   newStyles(theme.Normalize(p)),
		colWidth: defaultColWidth,
	}
}

// SetPalette switches colors.
func (r *Renderer) SetPalette(p theme.Palette) {
	r.styles = newStyles(theme.Normalize(p))
}

// SetColumnWidth sets the width of every column, separator included.
func (r *Renderer) SetColumnWidth(w int) {
	r.colWidth = max(w, 3)
}

// Layout sizes the navigator for a width by height area. Call it on resize
// and after every structural change of the grid.
func (r *Renderer) Layout(width, height int) {
	idx := r.svc.Columns()
	frozen := frozenCount(idx)
	r.nav.SetSize(r.grid.RowCount(), idx.Count(), frozen)

	avail := width - selectorWidth - frozen*r.colWidth
	r.nav.SetViewport(height-headerHeight, avail/r.colWidth)
}

func frozenCount(idx *columns.Index) int {
	n := 0
	for _, c := range idx.Visible() {
		if !c.Pinned {
			break
		}
		n++
	}
	return n
}

// Render draws the header line and the visible rows.
func (r *Renderer) Render() string {
	idx := r.svc.Columns()
	visible := r.nav.VisibleColumns()

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", selectorWidth))
	for _, i := range visible {
		col, _ := idx.At(i)
		st := r.styles.header
		if r.svc.IsColumnSelected(col.Field) {
			st = r.styles.headerSelected
		}
		b.WriteString(st.Width(r.colWidth).Render(r.fit(col.Title())))
	}

	live, dragging := r.svc.LiveRange()
	active, hasActive := r.svc.ActiveNode()
	pinned := 0
	if p, ok := r.grid.(pinnedRows); ok {
		pinned = p.PinnedRowCount()
	}

	start, end := r.nav.VisibleRows()
	for row := start; row < end; row++ {
		b.WriteByte('\n')
		rec, _ := r.grid.RecordAt(row)
		key, _ := r.grid.RowKey(row)
		rowSelected := r.svc.IsRowSelected(key)

		if rowSelected {
			b.WriteString(r.styles.selector.Render("▌ "))
		} else {
			b.WriteString(strings.Repeat(" ", selectorWidth))
		}

		for _, i := range visible {
			col, _ := idx.At(i)
			text := r.fit(cellText(col, rec))

			var st lipgloss.Style
			isActive := hasActive && active.Row == row && active.Column == i
			selected := r.svc.IsCellSelected(row, i)
			switch {
			case isActive && selected:
				st = r.styles.cursorSelected
			case isActive:
				st = r.styles.cursor
			case dragging && live.Contains(row, i):
				st = r.styles.live
			case selected:
				st = r.styles.selected
			case rowSelected || r.svc.IsColumnSelected(col.Field):
				st = r.styles.axis
			case row < pinned:
				st = r.styles.pinned
			case text == "":
				st = r.styles.empty
			default:
				st = r.styles.cell
			}
			b.WriteString(st.Width(r.colWidth).Render(text))
		}
	}
	return b.String()
}

func (r *Renderer) fit(s string) string {
	return ansi.Truncate(s, r.colWidth-1, "…")
}

func cellText(col model.Column, rec model.Record) string {
	if col.IsGroup() {
		parts := make([]string, 0, len(col.Children))
		for _, child := range col.Children {
			parts = append(parts, cellText(child, rec))
		}
		return strings.Join(parts, " ")
	}
	v, ok := rec[col.Field]
	if !ok || v == nil {
		return ""
	}
	if col.Formatter != nil {
		v = col.Formatter(v, rec)
	}
	return fmt.Sprint(v)
}

// columnAt maps an x offset to a visible column index.
func (r *Renderer) columnAt(x int) (int, bool) {
	if x < selectorWidth {
		return 0, false
	}
	slot := (x - selectorWidth) / r.colWidth
	visible := r.nav.VisibleColumns()
	if slot >= len(visible) {
		return 0, false
	}
	return visible[slot], true
}

// rowAt maps a y offset to a view row.
func (r *Renderer) rowAt(y int) (int, bool) {
	if y < headerHeight {
		return 0, false
	}
	start, end := r.nav.VisibleRows()
	row := start + y - headerHeight
	if row >= end {
		return 0, false
	}
	return row, true
}

// CellAt returns the cell drawn at x, y.
func (r *Renderer) CellAt(x, y int) (model.CellCoord, bool) {
	row, ok := r.rowAt(y)
	if !ok {
		return model.CellCoord{}, false
	}
	col, ok := r.columnAt(x)
	if !ok {
		return model.CellCoord{}, false
	}
	return model.Cell(row, col), true
}

// HeaderAt returns the field of the header drawn at x, y.
func (r *Renderer) HeaderAt(x, y int) (string, bool) {
	if y >= headerHeight {
		return "", false
	}
	i, ok := r.columnAt(x)
	if !ok {
		return "", false
	}
	col, ok := r.svc.Columns().At(i)
	if !ok {
		return "", false
	}
	return col.Field, true
}

// RowSelectorAt returns the row whose selector is drawn at x, y.
func (r *Renderer) RowSelectorAt(x, y int) (int, bool) {
	if x >= selectorWidth {
		return 0, false
	}
	return r.rowAt(y)
}

var _ gridnav.HitTester = (*Renderer)(nil)
