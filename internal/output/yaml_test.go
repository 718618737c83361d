package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/aryankumar/taskpool/internal/pool"
	"gopkg.in/yaml.v3"
)

func TestYAMLFormatter_Format(t *testing.T) {
	formatter := NewYAMLFormatter(nil)
	var buf bytes.Buffer

	data := map[string]interface{}{"workers": 4}
	if err := formatter.Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded["workers"] != 4 {
		t.Errorf("expected workers=4, got %v", decoded["workers"])
	}
}

func TestYAMLFormatter_FormatTasks(t *testing.T) {
	formatter := NewYAMLFormatter(nil)
	var buf bytes.Buffer

	tasks := []pool.TaskInfo{
		{
			ID:     0,
			State:  pool.StateFinished,
			Result: uint64(99),
			Wait:   time.Millisecond,
			Run:    99 * time.Millisecond,
		},
		{ID: 1, State: pool.StateWorking, Wait: 2 * time.Millisecond},
	}

	if err := formatter.FormatTasks(&buf, tasks); err != nil {
		t.Fatalf("FormatTasks() error = %v", err)
	}

	var rows []map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0]["state"] != "finished" {
		t.Errorf("row 0: expected state finished, got %v", rows[0]["state"])
	}
	if rows[1]["state"] != "working" {
		t.Errorf("row 1: expected state working, got %v", rows[1]["state"])
	}
	if _, ok := rows[1]["run"]; ok {
		t.Error("row 1: working task must not carry a run duration")
	}
}
