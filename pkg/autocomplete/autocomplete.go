package autocomplete

import (
	"sort"
	"strings"

	"github.com/darksworm/gridsel/pkg/model"
	th "github.com/darksworm/gridsel/pkg/theme"
	"github.com/darksworm/gridsel/pkg/tui/clipboard"
)

// Argument kinds a command can take.
const (
	ArgNone      = ""
	ArgColumn    = "column"
	ArgHidden    = "hidden-column"
	ArgAxis      = "axis"
	ArgMode      = "mode"
	ArgTheme     = "theme"
	ArgNumber    = "number"
	ArgDirection = "direction"
	ArgFormat    = "format"
)

// Command describes a grid command with its aliases and metadata.
type Command struct {
	Name        string   // canonical name
	Aliases     []string // every accepted spelling, canonical included
	Description string
	ArgType     string // kind of the first argument
	NextArgType string // kind of the second argument, if any
}

// TakesArg reports whether the command accepts an argument.
func (c Command) TakesArg() bool { return c.ArgType != ArgNone }

// ColumnSource lists the grid's columns for argument completion.
type ColumnSource interface {
	Columns() []model.Column
}

// Engine resolves aliases and completes ":" command input.
type Engine struct {
	commands []Command
	aliases  map[string]string
}

// NewEngine creates an engine with the grid command set.
func NewEngine() *Engine {
	commands := []Command{
		{Name: "sort", Aliases: []string{"sort", "s"}, Description: "Sort by a column", ArgType: ArgColumn, NextArgType: ArgDirection},
		{Name: "unsort", Aliases: []string{"unsort", "nosort"}, Description: "Restore data order"},
		{Name: "filter", Aliases: []string{"filter", "f"}, Description: "Keep rows whose column contains text", ArgType: ArgColumn},
		{Name: "unfilter", Aliases: []string{"unfilter", "nofilter"}, Description: "Clear the row filter"},
		{Name: "group", Aliases: []string{"group", "g"}, Description: "Group rows by columns", ArgType: ArgColumn},
		{Name: "hide", Aliases: []string{"hide"}, Description: "Hide a column", ArgType: ArgColumn},
		{Name: "show", Aliases: []string{"show", "unhide"}, Description: "Show a hidden column", ArgType: ArgHidden},
		{Name: "pin", Aliases: []string{"pin"}, Description: "Pin a column to the left", ArgType: ArgColumn},
		{Name: "unpin", Aliases: []string{"unpin"}, Description: "Unpin a column", ArgType: ArgColumn},
		{Name: "move", Aliases: []string{"move", "mv"}, Description: "Move a column to a position", ArgType: ArgColumn, NextArgType: ArgNumber},
		{Name: "pinrow", Aliases: []string{"pinrow"}, Description: "Pin the active row"},
		{Name: "unpinrow", Aliases: []string{"unpinrow"}, Description: "Unpin the active row"},
		{Name: "page", Aliases: []string{"page", "p"}, Description: "Go to a page", ArgType: ArgNumber},
		{Name: "perpage", Aliases: []string{"perpage", "pp"}, Description: "Rows per page (0 disables paging)", ArgType: ArgNumber},
		{Name: "mode", Aliases: []string{"mode", "m"}, Description: "Selection mode of an axis", ArgType: ArgAxis, NextArgType: ArgMode},
		{Name: "theme", Aliases: []string{"theme"}, Description: "Switch UI theme (built-in names)", ArgType: ArgTheme},
		{Name: "copy", Aliases: []string{"copy", "yank", "y"}, Description: "Copy the selected cells (text, json or yaml)", ArgType: ArgFormat},
		{Name: "clear", Aliases: []string{"clear", "all", "reset"}, Description: "Clear every selection"},
		{Name: "quit", Aliases: []string{"quit", "q", "q!", "exit"}, Description: "Exit the application"},
	}

	aliases := make(map[string]string)
	for _, cmd := range commands {
		for _, alias := range cmd.Aliases {
			aliases[alias] = cmd.Name
		}
	}
	return &Engine{commands: commands, aliases: aliases}
}

// ResolveAlias converts any command alias to its canonical form.
func (e *Engine) ResolveAlias(input string) string {
	if canonical, ok := e.aliases[strings.ToLower(input)]; ok {
		return canonical
	}
	return input
}

// CommandInfo returns the command for a name or alias.
func (e *Engine) CommandInfo(input string) *Command {
	canonical := e.ResolveAlias(input)
	for _, cmd := range e.commands {
		if cmd.Name == canonical {
			return &cmd
		}
	}
	return nil
}

// Commands returns every command for help output.
func (e *Engine) Commands() []Command {
	return e.commands
}

// Complete returns suggestions for ":" command input.
func (e *Engine) Complete(input string, src ColumnSource) []string {
	// A trailing space means the current word is finished.
	hasTrailingSpace := strings.HasSuffix(input, " ")
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, ":") {
		return nil
	}

	parts := strings.Fields(input[1:])
	switch {
	case len(parts) == 0:
		return e.commandSuggestions("")
	case len(parts) == 1 && !hasTrailingSpace:
		return e.commandSuggestions(parts[0])
	}

	cmd := e.CommandInfo(parts[0])
	if cmd == nil || !cmd.TakesArg() {
		return nil
	}

	// Position of the word being completed, counting the command as 0.
	pos := len(parts)
	prefix := ""
	if !hasTrailingSpace {
		pos--
		prefix = parts[pos]
	}

	var kind string
	switch pos {
	case 1:
		kind = cmd.ArgType
	case 2:
		kind = cmd.NextArgType
	}
	if cmd.Name == "group" && pos > 1 {
		kind = ArgColumn
	}
	if kind == ArgNone {
		return nil
	}

	head := ":" + strings.Join(append([]string{parts[0]}, parts[1:pos]...), " ") + " "
	var out []string
	for _, s := range argumentSuggestions(kind, strings.ToLower(prefix), src) {
		out = append(out, head+s)
	}
	return out
}

func (e *Engine) commandSuggestions(prefix string) []string {
	prefix = strings.ToLower(prefix)
	var suggestions []string
	seen := make(map[string]bool)
	for _, cmd := range e.commands {
		for _, alias := range cmd.Aliases {
			if strings.HasPrefix(alias, prefix) && !seen[alias] {
				suggestions = append(suggestions, ":"+alias)
				seen[alias] = true
			}
		}
	}
	sort.Strings(suggestions)
	return suggestions
}

func argumentSuggestions(kind, prefix string, src ColumnSource) []string {
	var candidates []string
	switch kind {
	case ArgColumn, ArgHidden:
		if src == nil {
			return nil
		}
		for _, c := range src.Columns() {
			if (kind == ArgHidden) == c.Hidden {
				candidates = append(candidates, c.Field)
			}
		}
	case ArgAxis:
		candidates = []string{model.AxisCell.String(), model.AxisRow.String(), model.AxisColumn.String()}
	case ArgMode:
		candidates = []string{string(model.ModeNone), string(model.ModeSingle), string(model.ModeMultiple)}
	case ArgDirection:
		candidates = []string{string(model.SortAsc), string(model.SortDesc)}
	case ArgTheme:
		candidates = th.Names()
	case ArgFormat:
		candidates = []string{string(clipboard.FormatText), string(clipboard.FormatJSON), string(clipboard.FormatYAML)}
	}

	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), prefix) {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
