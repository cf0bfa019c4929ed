package main

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	apperrors "github.com/darksworm/gridsel/pkg/errors"
	"github.com/darksworm/gridsel/pkg/model"
	"github.com/darksworm/gridsel/pkg/theme"
	"github.com/darksworm/gridsel/pkg/tui/clipboard"
)

// runCommand executes a ":" command line and reports the outcome on the
// status line.
func (m *Model) runCommand(input string) tea.Cmd {
	parts := strings.Fields(strings.TrimPrefix(strings.TrimSpace(input), ":"))
	if len(parts) == 0 {
		return nil
	}
	cmd, err := m.execCommand(m.engine.ResolveAlias(parts[0]), parts[1:])
	if err != nil {
		m.logger.Warn("Command failed", "input", input, "err", err)
		m.setStatus(statusError, errorText(err))
		return nil
	}
	return cmd
}

// errorText drops the category and code prefix of grid errors.
func errorText(err error) string {
	var ge *apperrors.GridError
	if !apperrors.As(err, &ge) {
		return err.Error()
	}
	if ge.Details != "" {
		return ge.Message + ": " + ge.Details
	}
	return ge.Message
}

func invalidArg(msg string, args ...any) error {
	return apperrors.ValidationError(apperrors.CodeInvalidArg, fmt.Sprintf(msg, args...))
}

func (m *Model) requireColumn(field string) error {
	for _, c := range m.table.Columns() {
		if c.Field == field {
			return nil
		}
	}
	return apperrors.ColumnNotFound(field)
}

func (m *Model) execCommand(canonical string, args []string) (tea.Cmd, error) {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}
	number := func(i int) (int, error) {
		n, err := strconv.Atoi(arg(i))
		if err != nil {
			return 0, invalidArg("expected a number, got %q", arg(i))
		}
		return n, nil
	}
	column := func(i int) (string, error) {
		if arg(i) == "" {
			return "", invalidArg("%s needs a column", canonical)
		}
		return arg(i), m.requireColumn(arg(i))
	}

	switch canonical {
	case "sort":
		field, err := column(0)
		if err != nil {
			return nil, err
		}
		dir := model.SortAsc
		switch strings.ToLower(arg(1)) {
		case "", string(model.SortAsc):
		case string(model.SortDesc):
			dir = model.SortDesc
		default:
			return nil, invalidArg("unknown sort direction %q", arg(1))
		}
		m.table.Sort(model.SortExpression{Field: field, Direction: dir, IgnoreCase: true})
		m.setStatus(statusInfo, fmt.Sprintf("Sorted by %s %s", field, dir))

	case "unsort":
		m.table.ClearSort()
		m.setStatus(statusInfo, "Sort cleared")

	case "filter":
		field, err := column(0)
		if err != nil {
			return nil, err
		}
		text := strings.Join(args[1:], " ")
		m.table.FilterBy(field, text)
		m.setStatus(statusInfo, fmt.Sprintf("%s contains %q: %d row(s)", field, text, m.table.RowCount()))

	case "unfilter":
		m.table.ClearFilter()
		m.setStatus(statusInfo, "Filter cleared")

	case "group":
		for i := range args {
			if _, err := column(i); err != nil {
				return nil, err
			}
		}
		m.table.GroupBy(args...)
		if len(args) == 0 {
			m.setStatus(statusInfo, "Grouping cleared")
		} else {
			m.setStatus(statusInfo, "Grouped by "+strings.Join(args, ", "))
		}

	case "hide", "show", "pin", "unpin":
		field, err := column(0)
		if err != nil {
			return nil, err
		}
		switch canonical {
		case "hide":
			m.table.HideColumn(field)
		case "show":
			m.table.ShowColumn(field)
		case "pin":
			m.table.PinColumn(field)
		case "unpin":
			m.table.UnpinColumn(field)
		}
		m.setStatus(statusInfo, fmt.Sprintf("%s %s", canonical, field))

	case "move":
		field, err := column(0)
		if err != nil {
			return nil, err
		}
		pos, err := number(1)
		if err != nil {
			return nil, err
		}
		// Positions are one-based for the user.
		m.table.MoveColumn(field, pos-1)
		m.setStatus(statusInfo, fmt.Sprintf("Moved %s to %d", field, pos))

	case "pinrow", "unpinrow":
		active, ok := m.svc.ActiveNode()
		if !ok {
			return nil, invalidArg("no active row")
		}
		key, ok := m.table.RowKey(active.Row)
		if !ok {
			return nil, invalidArg("no row at %d", active.Row)
		}
		if canonical == "pinrow" {
			m.table.PinRow(key)
		} else {
			m.table.UnpinRow(key)
		}
		m.setStatus(statusInfo, fmt.Sprintf("%s %v", canonical, key))

	case "page":
		n, err := number(0)
		if err != nil {
			return nil, err
		}
		m.table.SetPage(n - 1)
		m.setStatus(statusInfo, fmt.Sprintf("Page %d/%d", m.table.Page()+1, m.table.TotalPages()))

	case "perpage":
		n, err := number(0)
		if err != nil {
			return nil, err
		}
		m.table.SetPerPage(n)
		m.setStatus(statusInfo, fmt.Sprintf("%d row(s) per page", m.table.PerPage()))

	case "mode":
		axis, err := model.ParseAxis(strings.ToLower(arg(0)))
		if err != nil {
			return nil, invalidArg("%v", err)
		}
		if arg(1) == "" {
			m.setStatus(statusInfo, fmt.Sprintf("%s mode: %s", axis, m.svc.Mode(axis)))
			break
		}
		mode, err := model.ParseSelectionMode(strings.ToLower(arg(1)))
		if err != nil {
			return nil, apperrors.ValidationError(apperrors.CodeInvalidMode, err.Error()).WithContext("axis", axis.String())
		}
		m.svc.SetMode(axis, mode)
		m.setStatus(statusInfo, fmt.Sprintf("%s mode: %s", axis, mode))

	case "theme":
		p, ok := theme.Get(arg(0))
		if !ok {
			return nil, invalidArg("unknown theme %q", arg(0))
		}
		m.palette = theme.Normalize(theme.ApplyOverrides(p, m.cfg.Appearance.Overrides))
		m.cfg.Appearance.Theme = arg(0)
		m.renderer.SetPalette(m.palette)
		m.setStatus(statusInfo, "Theme "+arg(0))

	case "copy":
		if arg(0) == "" {
			return clipboard.CopySelectionCmd(m.copier, m.svc), nil
		}
		format, err := clipboard.ParseFormat(arg(0))
		if err != nil {
			return nil, invalidArg("unknown copy format %q", arg(0))
		}
		once := *m.copier
		once.Options.Format = format
		return clipboard.CopySelectionCmd(&once, m.svc), nil

	case "clear":
		m.svc.ClearSelection()
		m.setStatus(statusInfo, "Selection cleared")

	case "quit":
		return tea.Quit, nil

	default:
		return nil, apperrors.ValidationError(apperrors.CodeUnknownCommand, "unknown command: "+canonical)
	}
	return nil, nil
}
