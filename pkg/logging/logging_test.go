package logging

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	cblog "github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want cblog.Level
	}{
		{"debug", cblog.DebugLevel},
		{" WARN ", cblog.WarnLevel},
		{"warning", cblog.WarnLevel},
		{"ERROR", cblog.ErrorLevel},
		{"fatal", cblog.FatalLevel},
		{"", cblog.InfoLevel},
		{"verbose", cblog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "WARN")

	logger.Info("quiet")
	logger.Warn("loud", "ranges", 2)

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "loud") || !strings.Contains(out, "ranges=2") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestSetup(t *testing.T) {
	prev := cblog.Default()
	t.Cleanup(func() {
		cblog.SetDefault(prev)
		log.SetOutput(os.Stderr)
	})
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvLogFile, "")

	f, err := Setup(t.TempDir())
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	defer f.Close()

	if os.Getenv(EnvLogFile) != f.Name() {
		t.Errorf("%s = %q, want %q", EnvLogFile, os.Getenv(EnvLogFile), f.Name())
	}
	cblog.With("component", "test").Debug("selection changed")

	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "gridsel started") || !strings.Contains(string(data), "selection changed") {
		t.Errorf("log file content = %q", data)
	}
}
