package main

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// renderStatusLine shows the message on the left and the grid position on
// the right.
func (m *Model) renderStatusLine() string {
	base := lipgloss.NewStyle().Foreground(m.palette.Dim)
	msgStyle := base
	switch m.status.kind {
	case statusSuccess:
		msgStyle = lipgloss.NewStyle().Foreground(m.palette.Success)
	case statusError:
		msgStyle = lipgloss.NewStyle().Foreground(m.palette.Danger)
	}

	leftText := m.status.text
	if leftText == "" {
		leftText = "Ready"
	}

	position := "-"
	if active, ok := m.svc.ActiveNode(); ok {
		position = fmt.Sprintf("R%dC%d", active.Row+1, active.Column+1)
	}
	rightText := fmt.Sprintf("%s • %d rows", position, m.table.RowCount())
	if m.table.PerPage() > 0 {
		rightText += fmt.Sprintf(" • page %d/%d", m.table.Page()+1, m.table.TotalPages())
	}
	if m.svc.Dragging() {
		rightText = "DRAG • " + rightText
	}

	available := max(0, m.width)
	gap := max(1, available-lipgloss.Width(leftText)-lipgloss.Width(rightText))
	line := lipgloss.JoinHorizontal(
		lipgloss.Center,
		msgStyle.Render(leftText),
		strings.Repeat(" ", gap),
		base.Render(rightText),
	)
	if lipgloss.Width(line) > available {
		line = ansi.Truncate(line, available, "…")
	}
	return line
}
