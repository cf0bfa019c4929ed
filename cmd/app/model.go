package main

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	cblog "github.com/charmbracelet/log"

	"github.com/darksworm/gridsel/pkg/autocomplete"
	"github.com/darksworm/gridsel/pkg/config"
	"github.com/darksworm/gridsel/pkg/model"
	"github.com/darksworm/gridsel/pkg/services/selection"
	"github.com/darksworm/gridsel/pkg/theme"
	"github.com/darksworm/gridsel/pkg/tui/clipboard"
	"github.com/darksworm/gridsel/pkg/tui/gridnav"
	"github.com/darksworm/gridsel/pkg/tui/gridview"
	"github.com/darksworm/gridsel/pkg/view"
)

// inputMode is what keyboard input currently drives.
type inputMode int

const (
	modeGrid inputMode = iota
	modeCommand
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

type status struct {
	kind statusKind
	text string
}

// Model is the Bubble Tea model of the grid browser.
type Model struct {
	cfg        *config.Config
	table      *view.Table
	svc        *selection.Service
	copier     *clipboard.Copier
	nav        *gridnav.Navigator
	renderer   *gridview.Renderer
	controller *gridnav.Controller
	engine     *autocomplete.Engine

	commandInput textinput.Model
	mode         inputMode

	palette theme.Palette
	width   int
	height  int
	status  status
	logger  *cblog.Logger
}

// NewModel builds the grid, its selection service and the terminal front end.
func NewModel(cfg *config.Config, records []model.Record, cols []model.Column) (*Model, error) {
	modes, err := cfg.Modes()
	if err != nil {
		return nil, err
	}

	opts := []view.TableOption{view.WithPerPage(cfg.Grid.PerPage)}
	if cfg.Grid.PrimaryKey != "" {
		opts = append(opts, view.WithPrimaryKey(cfg.Grid.PrimaryKey))
	}
	if cfg.Grid.PinPosition == string(view.PinBottom) {
		opts = append(opts, view.WithPinPosition(view.PinBottom))
	}
	tbl := view.NewTable(records, cols, opts...)

	m := &Model{
		cfg:     cfg,
		table:   tbl,
		engine:  autocomplete.NewEngine(),
		palette: cfg.Palette(),
		width:   80,
		height:  24,
		logger:  cblog.With("component", "app"),
	}

	m.svc = selection.NewService(tbl, selection.WithModes(modes), selection.WithHandlers(selection.Handlers{
		RangeSelectionChanged: func(msg model.RangeSelectionChangedMsg) {
			m.setStatus(statusInfo, fmt.Sprintf("%d range(s), %d cell(s)", len(msg.Ranges), len(m.svc.SelectedCells())))
		},
		SelectionChanged: func(msg model.SelectionChangedMsg) {
			m.setStatus(statusInfo, fmt.Sprintf("%d cell(s)", len(msg.Cells)))
		},
		RowSelectionChanged: func(msg model.RowSelectionChangedMsg) {
			m.setStatus(statusInfo, fmt.Sprintf("%d row(s) selected", len(msg.Selection)))
		},
		ColumnSelectionChanged: func(msg model.ColumnSelectionChangedMsg) {
			m.setStatus(statusInfo, fmt.Sprintf("%d column(s) selected", len(msg.Selection)))
		},
	}))
	// The service must see a change before anything that renders it.
	m.svc.Attach(tbl)
	tbl.Subscribe(m.onViewChange)

	clipboard.SetCopyCommand(cfg.GetCopyCommand())
	m.copier = clipboard.NewCopier(cfg.ClipboardOptions())
	m.copier.OnCopying = func(ev *model.CopyingMsg) {
		m.logger.Debug("Copying selection", "rows", len(ev.Data), "cancel", ev.Cancel)
	}

	m.nav = gridnav.New()
	m.renderer = gridview.New(m.svc, tbl, m.nav, m.palette)
	m.controller = gridnav.NewController(m.svc, m.copier, m.nav, m.renderer)

	ti := textinput.New()
	ti.Prompt = ":"
	ti.Placeholder = "Enter command..."
	ti.CharLimit = 200
	ti.SetWidth(50)
	m.commandInput = ti

	if f := cfg.Grid.Sort.Field; f != "" {
		dir := model.SortAsc
		if strings.EqualFold(cfg.Grid.Sort.Direction, string(model.SortDesc)) {
			dir = model.SortDesc
		}
		tbl.Sort(model.SortExpression{Field: f, Direction: dir})
	}

	m.layout()
	return m, nil
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.status = status{kind: kind, text: text}
}

// onViewChange keeps the viewport in line with the table.
func (m *Model) onViewChange(ch view.Change) {
	m.layout()
	switch ch.Kind {
	case view.ChangePage, view.ChangePerPage, view.ChangeFilter, view.ChangeGroup:
		m.nav.Reset()
	}
}

// layout sizes the grid to the window minus the status and command lines.
func (m *Model) layout() {
	m.renderer.Layout(m.width, max(2, m.height-2))
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case clipboard.CopyMsg:
		if !msg.Success {
			m.setStatus(statusError, "Nothing to copy")
			return m, nil
		}
		lines := strings.Count(msg.Text, "\n")
		m.setStatus(statusSuccess, fmt.Sprintf("Copied %d line(s) via %s", lines, msg.Method))
		return m, nil

	case clipboard.CopyCancelledMsg:
		m.setStatus(statusError, "Copy cancelled")
		return m, nil

	case tea.KeyPressMsg:
		if m.mode == modeCommand {
			return m.handleCommandKey(msg)
		}
		switch msg.String() {
		case ":":
			return m, m.enterCommandMode()
		case "q":
			return m, tea.Quit
		case "[":
			m.table.SetPage(m.table.Page() - 1)
			return m, nil
		case "]":
			m.table.SetPage(m.table.Page() + 1)
			return m, nil
		}
	}

	if m.mode == modeCommand {
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		return m, cmd
	}
	_, cmd := m.controller.Update(msg)
	return m, cmd
}

func (m *Model) enterCommandMode() tea.Cmd {
	m.mode = modeCommand
	m.commandInput.SetValue("")
	return m.commandInput.Focus()
}

func (m *Model) exitCommandMode() {
	m.mode = modeGrid
	m.commandInput.Blur()
	m.commandInput.SetValue("")
}

func (m *Model) handleCommandKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.exitCommandMode()
		return m, nil
	case "enter":
		input := m.commandInput.Value()
		m.exitCommandMode()
		return m, m.runCommand(input)
	case "tab":
		if s := m.engine.Complete(":"+m.commandInput.Value(), m.table); len(s) > 0 {
			m.commandInput.SetValue(strings.TrimPrefix(s[0], ":"))
			m.commandInput.CursorEnd()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// render draws the grid, the status line and the command line when open.
func (m *Model) render() string {
	var b strings.Builder
	b.WriteString(m.renderer.Render())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	if m.mode == modeCommand {
		b.WriteString("\n")
		b.WriteString(m.commandInput.View())
	}
	return b.String()
}
