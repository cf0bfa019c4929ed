package errors

import (
	"fmt"
	"testing"
)

func TestGridError_Error(t *testing.T) {
	err := ColumnNotFound("Name")
	want := `[column:COLUMN_NOT_FOUND] column not found: Name`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := New(ErrorInternal, "X", "boom")
	if got := plain.Error(); got != "[internal:X] boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestGridError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"not found matches category sentinel", ColumnNotFound("a"), ErrColumnResolution, true},
		{"hidden matches category sentinel", ColumnHidden("a"), ErrColumnResolution, true},
		{"same code", ColumnHidden("a"), ColumnHidden("b"), true},
		{"different code", ColumnHidden("a"), ColumnNotFound("a"), false},
		{"wrapped", fmt.Errorf("select: %w", ColumnNotFound("a")), ErrColumnResolution, true},
		{"other category", ConfigError(CodeConfigParse, "bad"), ErrColumnResolution, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.target); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsColumnResolution(t *testing.T) {
	if !IsColumnResolution(fmt.Errorf("wrap: %w", ColumnHidden("Name"))) {
		t.Error("expected wrapped hidden-column error to be a resolution error")
	}
	if IsColumnResolution(fmt.Errorf("plain")) {
		t.Error("plain error must not be a resolution error")
	}
	if IsColumnResolution(nil) {
		t.Error("nil must not be a resolution error")
	}
}

func TestGridError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(cause, ErrorConfig, CodeConfigParse, "could not read config")
	if !Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
	if err.Context != nil {
		t.Errorf("expected no context, got %v", err.Context)
	}
	if got := ColumnNotFound("ID").Context["field"]; got != "ID" {
		t.Errorf("context field = %v, want ID", got)
	}
}
