// Package output provides formatters for displaying taskpool command results.
//
// The package supports multiple output formats (table, JSON, YAML) and
// provides a unified interface for rendering per-task reports.
//
// # Features
//
//   - Multiple output formats: table (kubectl-style), JSON, and YAML
//   - Color support with automatic TTY detection
//   - Configurable options (no-color, no-headers)
//   - Per-task lifecycle report with wait and run durations
//
// # Basic Usage
//
//	// Create a table formatter
//	formatter := output.NewFormatter(output.FormatTable)
//
//	// Format a single data item
//	data := map[string]interface{}{"key": "value"}
//	formatter.Format(os.Stdout, data)
//
//	// Format a task report
//	tasks := p.Tasks()
//	formatter.FormatTasks(os.Stdout, tasks)
//
// # Options
//
// Formatters can be configured with functional options:
//
//	formatter := output.NewFormatter(
//	    output.FormatTable,
//	    output.WithNoColor(true),
//	)
package output
