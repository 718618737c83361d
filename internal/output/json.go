package output

import (
	"encoding/json"
	"io"

	"github.com/aryankumar/taskpool/internal/pool"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	options *Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(opts *Options) *JSONFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &JSONFormatter{
		options: opts,
	}
}

// Format outputs a single data item as JSON
func (f *JSONFormatter) Format(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// FormatTasks outputs a per-task report as JSON
func (f *JSONFormatter) FormatTasks(w io.Writer, tasks []pool.TaskInfo) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(taskRows(tasks))
}

// taskRows converts tasks to a serialization-friendly structure shared by
// the JSON and YAML formatters.
func taskRows(tasks []pool.TaskInfo) []map[string]interface{} {
	rows := make([]map[string]interface{}, len(tasks))

	for i, task := range tasks {
		row := map[string]interface{}{
			"id":    uint64(task.ID),
			"state": task.State.String(),
		}

		if task.Err != nil {
			row["state"] = "failed"
			row["error"] = task.Err.Error()
		} else if task.State == pool.StateFinished {
			row["result"] = task.Result
		}

		if task.State != pool.StateQueued {
			row["wait"] = task.Wait.String()
		}
		if task.State == pool.StateFinished {
			row["run"] = task.Run.String()
		}

		rows[i] = row
	}

	return rows
}
