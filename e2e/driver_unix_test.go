//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/creack/pty"
)

const ringSize = 1 << 20 // 1 MiB scrollback

// TUITestFramework drives the gridsel binary through a PTY.
type TUITestFramework struct {
	t   *testing.T
	pty *os.File
	cmd *exec.Cmd

	workspace string

	mu   sync.Mutex
	buf  []byte
	head int
	full bool
}

func NewTUITest(t *testing.T) *TUITestFramework {
	t.Helper()
	tf := &TUITestFramework{t: t, buf: make([]byte, ringSize), workspace: t.TempDir()}
	t.Cleanup(tf.Cleanup)
	return tf
}

// Workspace is the isolated HOME of the app under test.
func (tf *TUITestFramework) Workspace() string { return tf.workspace }

// ClipboardFile is where the app's copy command writes.
func (tf *TUITestFramework) ClipboardFile() string {
	return filepath.Join(tf.workspace, "clipboard.txt")
}

// StartApp runs the binary under a 40x120 PTY with a file-backed clipboard.
func (tf *TUITestFramework) StartApp(args []string, extraEnv ...string) error {
	tf.t.Helper()
	tf.cmd = exec.Command(binPath, args...)
	tf.cmd.Dir = tf.workspace
	env := append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.workspace,
		"XDG_CONFIG_HOME="+filepath.Join(tf.workspace, ".config"),
		"GRIDSEL_COPY_COMMAND=tee "+tf.ClipboardFile(),
	)
	tf.cmd.Env = append(env, extraEnv...)

	p, err := pty.StartWithSize(tf.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		return err
	}
	tf.pty = p
	go tf.readLoop()
	return nil
}

func (tf *TUITestFramework) readLoop() {
	buf := make([]byte, 8192)
	for {
		n, err := tf.pty.Read(buf)
		if n > 0 {
			tf.mu.Lock()
			for i := 0; i < n; i++ {
				tf.buf[tf.head] = buf[i]
				tf.head = (tf.head + 1) % ringSize
				if tf.head == 0 {
					tf.full = true
				}
			}
			tf.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

func (tf *TUITestFramework) Send(keys string) error { _, err := tf.pty.Write([]byte(keys)); return err }
func (tf *TUITestFramework) Enter() error           { return tf.Send("\r") }
func (tf *TUITestFramework) Escape() error          { return tf.Send("\x1b") }

func (tf *TUITestFramework) Snapshot() string {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	if !tf.full {
		return string(tf.buf[:tf.head])
	}
	out := make([]byte, ringSize)
	copy(out, tf.buf[tf.head:])
	copy(out[ringSize-tf.head:], tf.buf[:tf.head])
	return string(out)
}

// Screen is the output so far with escape sequences removed.
func (tf *TUITestFramework) Screen() string {
	return strings.ReplaceAll(ansi.Strip(tf.Snapshot()), "\r", "")
}

func (tf *TUITestFramework) WaitForPlain(substr string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(tf.Screen(), substr) {
			return true
		}
		time.Sleep(25 * time.Millisecond)
	}
	return false
}

// WaitForFile polls until path exists with content containing substr.
func WaitForFile(path, substr string, timeout time.Duration) (string, bool) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if b, err := os.ReadFile(path); err == nil && strings.Contains(string(b), substr) {
			return string(b), true
		}
		time.Sleep(25 * time.Millisecond)
	}
	b, _ := os.ReadFile(path)
	return string(b), false
}

// OpenCommand enters command mode and waits for the prompt.
func (tf *TUITestFramework) OpenCommand() error {
	if err := tf.Send(":"); err != nil {
		return err
	}
	if !tf.WaitForPlain("Enter command...", 2*time.Second) {
		return fmt.Errorf("command bar not ready")
	}
	return nil
}

// Mouse input uses SGR encoding with zero-based cell coordinates.

func (tf *TUITestFramework) MouseClick(x, y int) error {
	return tf.Send(fmt.Sprintf("\x1b[<0;%d;%dM", x+1, y+1))
}

func (tf *TUITestFramework) MouseMotion(x, y int) error {
	return tf.Send(fmt.Sprintf("\x1b[<32;%d;%dM", x+1, y+1))
}

func (tf *TUITestFramework) MouseRelease(x, y int) error {
	return tf.Send(fmt.Sprintf("\x1b[<0;%d;%dm", x+1, y+1))
}

func (tf *TUITestFramework) MouseDrag(x1, y1, x2, y2 int) error {
	steps := []func() error{
		func() error { return tf.MouseClick(x1, y1) },
		func() error { return tf.MouseMotion(x2, y2) },
		func() error { return tf.MouseRelease(x2, y2) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
		time.Sleep(50 * time.Millisecond)
	}
	return nil
}

func (tf *TUITestFramework) Cleanup() {
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
	}
}
