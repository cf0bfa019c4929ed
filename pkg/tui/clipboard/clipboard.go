// Package clipboard serializes grid selections and delivers them to the
// system clipboard.
package clipboard

import (
	"context"
	"encoding/base64"
	"os/exec"
	"strings"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	cblog "github.com/charmbracelet/log"

	"github.com/darksworm/gridsel/pkg/model"
)

// CommandTimeout bounds a custom copy command. Tools like xclip can block
// until the selection is taken over.
var CommandTimeout = 2 * time.Second

var (
	// customCopyCmd is the configured clipboard copy command (set from config)
	customCopyCmd string
	customCopyMu  sync.RWMutex
)

// SetCopyCommand configures a custom clipboard copy command.
// The command receives text via stdin, e.g. "wl-copy" or "xclip -selection clipboard".
// Pass an empty string to use the platform clipboard.
func SetCopyCommand(cmd string) {
	customCopyMu.Lock()
	defer customCopyMu.Unlock()
	customCopyCmd = cmd
}

// GetCopyCommand returns the custom copy command, or "" for the platform clipboard.
func GetCopyCommand() string {
	customCopyMu.RLock()
	defer customCopyMu.RUnlock()
	return customCopyCmd
}

// Method names how text reached the clipboard.
type Method string

const (
	MethodNative Method = "native"
	MethodOSC52  Method = "osc52"
)

// CopyMsg is sent after a clipboard copy completes.
type CopyMsg struct {
	Success bool
	Text    string
	// For MethodOSC52 Success is optimistic: the terminal never acknowledges
	// the sequence.
	Method Method
}

// CopyCancelledMsg is sent when a copy was disabled or vetoed.
type CopyCancelledMsg struct {
	Event model.CopyingMsg
}

// osc52 wraps text in an OSC 52 "set system clipboard" sequence.
func osc52(text string) string {
	return "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\x07"
}

// CopyCmd returns a tea.Cmd that puts text on the clipboard, natively first
// and through OSC 52 when that fails.
func CopyCmd(text string) tea.Cmd {
	if text == "" {
		return func() tea.Msg {
			return CopyMsg{Success: false}
		}
	}

	logger := cblog.With("component", "clipboard")
	err := writeNative(text)
	if err == nil {
		logger.Info("Copied to clipboard via native method", "len", len(text))
		return func() tea.Msg {
			return CopyMsg{Success: true, Text: text, Method: MethodNative}
		}
	}
	logger.Info("Native clipboard failed, trying OSC 52", "error", err)

	return tea.Batch(
		tea.Printf("%s", osc52(text)),
		func() tea.Msg {
			return CopyMsg{Success: true, Text: text, Method: MethodOSC52}
		},
	)
}

// CopySelectionCmd copies the selection of src through c. A cancelled copy
// reports CopyCancelledMsg instead of touching the clipboard.
func CopySelectionCmd(c *Copier, src Source) tea.Cmd {
	text, ev := c.Copy(src)
	if ev.Cancel {
		return func() tea.Msg { return CopyCancelledMsg{Event: ev} }
	}
	return CopyCmd(text)
}

// writeNative uses the custom copy command when configured, the platform
// clipboard otherwise.
func writeNative(text string) error {
	if customCmd := GetCopyCommand(); customCmd != "" {
		parts := strings.Fields(customCmd)
		if len(parts) == 0 {
			return exec.ErrNotFound
		}
		ctx, cancel := context.WithTimeout(context.Background(), CommandTimeout)
		defer cancel()
		cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
		cmd.Stdin = strings.NewReader(text)
		return cmd.Run()
	}
	if clipboard.Unsupported {
		return exec.ErrNotFound
	}
	return clipboard.WriteAll(text)
}
