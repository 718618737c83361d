package output

import (
	"bytes"
	"testing"

	"github.com/aryankumar/taskpool/internal/pool"
)

func TestNewColorScheme_NoColor(t *testing.T) {
	var buf bytes.Buffer

	scheme := NewColorScheme(&buf, true)
	if !scheme.Disabled {
		t.Error("expected colors disabled when noColor is true")
	}

	// No-op functions still format text correctly.
	if got := scheme.Success("done %d", 1); got != "done 1" {
		t.Errorf("expected plain text, got %q", got)
	}
}

func TestNewColorScheme_NonTTY(t *testing.T) {
	var buf bytes.Buffer

	// A bytes.Buffer is never a TTY, so colors disable themselves.
	scheme := NewColorScheme(&buf, false)
	if !scheme.Disabled {
		t.Error("expected colors disabled for non-TTY writer")
	}
}

func TestColorScheme_StateColor(t *testing.T) {
	var buf bytes.Buffer
	scheme := NewColorScheme(&buf, true)

	tests := []struct {
		name   string
		state  pool.State
		failed bool
	}{
		{"finished", pool.StateFinished, false},
		{"working", pool.StateWorking, false},
		{"queued", pool.StateQueued, false},
		{"failed", pool.StateFinished, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := scheme.StateColor(tt.state, tt.failed)
			if fn == nil {
				t.Fatal("StateColor returned nil")
			}
			if got := fn("%s", tt.name); got != tt.name {
				t.Errorf("disabled scheme should passthrough, got %q", got)
			}
		})
	}
}
