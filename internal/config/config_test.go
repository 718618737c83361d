package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestManager_Load_Defaults(t *testing.T) {
	// Point at a config file that does not exist; defaults must apply.
	m := NewManager(filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Workers != 4 {
		t.Errorf("expected default 4 workers, got %d", cfg.Workers)
	}
	if cfg.Output != "table" {
		t.Errorf("expected default output table, got %q", cfg.Output)
	}
	if cfg.Run.Tasks != 10 {
		t.Errorf("expected default 10 tasks, got %d", cfg.Run.Tasks)
	}
	if cfg.Run.MinDuration != 5*time.Second {
		t.Errorf("expected default min duration 5s, got %v", cfg.Run.MinDuration)
	}
	if cfg.Run.MaxDuration != 10*time.Second {
		t.Errorf("expected default max duration 10s, got %v", cfg.Run.MaxDuration)
	}
	if cfg.Run.ShutdownAfter != 8*time.Second {
		t.Errorf("expected default shutdown-after 8s, got %v", cfg.Run.ShutdownAfter)
	}
	if cfg.Debug {
		t.Error("expected debug disabled by default")
	}
}

func TestManager_Load_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `workers: 8
debug: true
output: json
run:
  tasks: 3
  minDuration: 100ms
  maxDuration: 200ms
  shutdownAfter: 1s
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	m := NewManager(path)
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Workers)
	}
	if !cfg.Debug {
		t.Error("expected debug enabled")
	}
	if cfg.Output != "json" {
		t.Errorf("expected output json, got %q", cfg.Output)
	}
	if cfg.Run.Tasks != 3 {
		t.Errorf("expected 3 tasks, got %d", cfg.Run.Tasks)
	}
	if cfg.Run.MinDuration != 100*time.Millisecond {
		t.Errorf("expected min duration 100ms, got %v", cfg.Run.MinDuration)
	}
	if cfg.Run.MaxDuration != 200*time.Millisecond {
		t.Errorf("expected max duration 200ms, got %v", cfg.Run.MaxDuration)
	}
	if cfg.Run.ShutdownAfter != time.Second {
		t.Errorf("expected shutdown-after 1s, got %v", cfg.Run.ShutdownAfter)
	}
}

func TestManager_Load_PartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	// Unset fields fall back to defaults.
	if err := os.WriteFile(path, []byte("workers: 2\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	m := NewManager(path)
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.Workers)
	}
	if cfg.Run.Tasks != 10 {
		t.Errorf("expected default 10 tasks, got %d", cfg.Run.Tasks)
	}
}

func TestManager_Load_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("workers: [not a number\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	m := NewManager(path)
	if _, err := m.Load(); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestManager_GetConfig(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := m.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.GetConfig() == nil {
		t.Fatal("GetConfig returned nil after Load")
	}
	if m.GetConfig().Workers != 4 {
		t.Errorf("expected 4 workers from GetConfig, got %d", m.GetConfig().Workers)
	}
}
