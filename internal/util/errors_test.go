package util

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		contains []string
	}{
		{
			name:     "with value",
			err:      NewValidationError("workers", 0, "must be at least 1"),
			contains: []string{"workers", "0", "must be at least 1"},
		},
		{
			name:     "without value",
			err:      NewValidationError("mode", nil, "unknown shutdown mode"),
			contains: []string{"mode", "unknown shutdown mode"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(msg, substr) {
					t.Errorf("error message missing %q: %s", substr, msg)
				}
			}
		})
	}
}

func TestWrapErrorf(t *testing.T) {
	base := errors.New("boom")

	wrapped := WrapErrorf(base, "loading config %q", "x.yaml")
	if wrapped == nil {
		t.Fatal("expected wrapped error")
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to the base error")
	}
	if !strings.Contains(wrapped.Error(), "x.yaml") {
		t.Errorf("wrapped error missing context: %s", wrapped.Error())
	}

	if WrapErrorf(nil, "no error") != nil {
		t.Error("wrapping nil should return nil")
	}
}
