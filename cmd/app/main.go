package main

import (
	_ "embed"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	cblog "github.com/charmbracelet/log"

	"github.com/darksworm/gridsel/pkg/config"
	"github.com/darksworm/gridsel/pkg/logging"
	"github.com/darksworm/gridsel/pkg/model"
	"github.com/darksworm/gridsel/pkg/theme"
	"github.com/darksworm/gridsel/pkg/view"
)

// appVersion is shown by -version.
// Override at build time: go build -ldflags "-X main.appVersion=1.0.0"
var appVersion = "dev"

//go:embed sample.json
var sampleData []byte

// Color definitions for help output
var (
	helpTitleColor     = lipgloss.Color("14")
	helpSectionColor   = lipgloss.Color("11")
	helpHighlightColor = lipgloss.Color("10")
	helpTextColor      = lipgloss.Color("15")
	helpDimColor       = lipgloss.Color("8")
)

// renderColorfulHelp creates the styled -help output
func renderColorfulHelp(fs *flag.FlagSet) string {
	var help strings.Builder

	titleStyle := lipgloss.NewStyle().Foreground(helpTitleColor).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(helpSectionColor).Bold(true)
	highlight := lipgloss.NewStyle().Foreground(helpHighlightColor)
	text := lipgloss.NewStyle().Foreground(helpTextColor)
	dim := lipgloss.NewStyle().Foreground(helpDimColor)

	help.WriteString(titleStyle.Render("gridsel"))
	help.WriteString(" - Select, inspect and copy ranges of tabular data\n\n")

	help.WriteString(sectionStyle.Render("USAGE"))
	help.WriteString("\n  ")
	help.WriteString(text.Render("gridsel"))
	help.WriteString(dim.Render(" [options] [file.json|file.yaml]"))
	help.WriteString("\n\n")

	help.WriteString(sectionStyle.Render("OPTIONS"))
	help.WriteString("\n")

	var flagBuf strings.Builder
	fs.SetOutput(&flagBuf)
	fs.PrintDefaults()
	for _, line := range strings.Split(flagBuf.String(), "\n") {
		switch {
		case strings.HasPrefix(line, "  -"):
			parts := strings.Fields(line)
			help.WriteString("  ")
			help.WriteString(highlight.Render(parts[0]))
			if len(parts) > 1 {
				help.WriteString(" " + text.Render(strings.Join(parts[1:], " ")))
			}
			help.WriteString("\n")
		case strings.HasPrefix(line, "    \t"):
			help.WriteString(dim.Render(line))
			help.WriteString("\n")
		}
	}

	help.WriteString("\n")
	help.WriteString(sectionStyle.Render("SELECTING"))
	help.WriteString("\n")
	for _, l := range [][2]string{
		{"drag, shift+click", "select a range; ctrl adds another"},
		{"shift+arrows", "extend from the active cell"},
		{"header, gutter", "select columns and rows"},
		{"y, ctrl+c", "copy the selection"},
		{":", "command mode (sort, hide, pin, page, mode, theme...)"},
	} {
		help.WriteString("  " + highlight.Render(fmt.Sprintf("%-18s", l[0])) + text.Render(l[1]) + "\n")
	}
	return help.String()
}

func main() {
	var (
		cfgPathFlag string
		themeFlag   string
		perPageFlag int
		showVersion bool
		showHelp    bool
	)
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&showVersion, "version", false, "Show version information and exit")
	fs.BoolVar(&showHelp, "help", false, "Show help information and exit")
	fs.StringVar(&cfgPathFlag, "config", "", "Path to the gridsel config file")
	fs.StringVar(&themeFlag, "theme", "", fmt.Sprintf("UI theme preset (%s)", strings.Join(theme.Names(), ", ")))
	fs.IntVar(&perPageFlag, "per-page", -1, "Rows per page, 0 disables paging")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			showHelp = true
		} else {
			fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
			os.Exit(1)
		}
	}
	if showVersion {
		fmt.Println(appVersion)
		return
	}
	if showHelp {
		fmt.Print(renderColorfulHelp(fs))
		return
	}

	// Set up logging to file
	if logFile, err := logging.Setup(""); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
	} else {
		defer logFile.Close()
	}
	logger := cblog.With("component", "app")

	if cfgPathFlag != "" {
		_ = os.Setenv("GRIDSEL_CONFIG", cfgPathFlag)
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("Could not load config, using defaults", "err", err)
		cfg = config.GetDefaultConfig()
	}
	if themeFlag != "" {
		cfg.Appearance.Theme = themeFlag
	}
	if perPageFlag >= 0 {
		cfg.Grid.PerPage = perPageFlag
	}

	records, cols, err := loadData(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("Data loaded", "records", len(records), "columns", len(cols))

	m, err := NewModel(cfg, records, cols)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// loadData reads records from a JSON or YAML file, or the bundled sample
// when path is empty.
func loadData(path string) ([]model.Record, []model.Column, error) {
	if path == "" {
		return view.LoadJSON(sampleData)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return view.LoadYAML(data)
	default:
		return view.LoadJSON(data)
	}
}
