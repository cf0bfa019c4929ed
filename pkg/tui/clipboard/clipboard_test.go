package clipboard

import (
	"os/exec"
	"runtime"
	"testing"
	"time"
)

func requireTool(t *testing.T, name string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell tools not available on windows")
	}
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not found", name)
	}
}

func withCopyCommand(t *testing.T, cmd string) {
	t.Helper()
	prev := GetCopyCommand()
	SetCopyCommand(cmd)
	t.Cleanup(func() { SetCopyCommand(prev) })
}

func TestWriteNative_CustomCommand(t *testing.T) {
	requireTool(t, "cat")
	withCopyCommand(t, "cat")

	if err := writeNative("a\tb\r\n"); err != nil {
		t.Fatalf("writeNative() error = %v", err)
	}
}

func TestWriteNative_CommandTimeout(t *testing.T) {
	requireTool(t, "sleep")
	withCopyCommand(t, "sleep 5")
	prev := CommandTimeout
	CommandTimeout = 50 * time.Millisecond
	t.Cleanup(func() { CommandTimeout = prev })

	start := time.Now()
	if err := writeNative("x"); err == nil {
		t.Fatal("expected the command to be killed")
	}
	if d := time.Since(start); d > 2*time.Second {
		t.Errorf("writeNative took %v, timeout not applied", d)
	}
}

func TestCopyCmd_CustomCommandIsNative(t *testing.T) {
	requireTool(t, "cat")
	withCopyCommand(t, "cat")

	msg := CopyCmd("hello")()
	m, ok := msg.(CopyMsg)
	if !ok || !m.Success || m.Method != MethodNative || m.Text != "hello" {
		t.Errorf("CopyCmd() = %#v", msg)
	}
}

func TestSetCopyCommand(t *testing.T) {
	withCopyCommand(t, "wl-copy")
	if got := GetCopyCommand(); got != "wl-copy" {
		t.Errorf("GetCopyCommand() = %q", got)
	}
	SetCopyCommand("   ")
	if err := writeNative("x"); err != exec.ErrNotFound {
		t.Errorf("blank command should fail with ErrNotFound, got %v", err)
	}
}
