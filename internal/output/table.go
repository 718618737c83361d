package output

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/aryankumar/taskpool/internal/pool"
	"github.com/olekukonko/tablewriter"
)

// TableFormatter formats output as a table (kubectl-style)
type TableFormatter struct {
	options *Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(opts *Options) *TableFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &TableFormatter{
		options: opts,
	}
}

// Format outputs a single data item as a table
func (f *TableFormatter) Format(w io.Writer, data interface{}) error {
	table := f.createTable(w)

	switch v := data.(type) {
	case map[string]interface{}:
		return f.formatMap(table, v)
	case string:
		fmt.Fprintln(w, v)
		return nil
	default:
		fmt.Fprintln(w, v)
		return nil
	}
}

// FormatTasks outputs a per-task report as a table
func (f *TableFormatter) FormatTasks(w io.Writer, tasks []pool.TaskInfo) error {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks")
		return nil
	}

	colors := NewColorScheme(w, f.options.NoColor)
	table := f.createTable(w)

	headers := []string{"ID", "STATE", "RESULT", "WAIT", "RUN"}
	if !f.options.NoHeaders {
		if colors.Disabled {
			table.SetHeader(headers)
		} else {
			coloredHeaders := make([]string, len(headers))
			for i, h := range headers {
				coloredHeaders[i] = colors.Header(h)
			}
			table.SetHeader(coloredHeaders)
		}
	}

	for _, task := range tasks {
		table.Append(f.formatTaskRow(task, colors))
	}

	table.Render()

	f.printSummary(w, tasks, colors)

	return nil
}

// formatTaskRow formats a single task as a table row
func (f *TableFormatter) formatTaskRow(task pool.TaskInfo, colors *ColorScheme) []string {
	id := strconv.FormatUint(uint64(task.ID), 10)
	if !colors.Disabled {
		id = colors.TaskID(id)
	}

	state := task.State.String()
	if task.Err != nil {
		state = "failed"
	}
	if !colors.Disabled {
		state = colors.StateColor(task.State, task.Err != nil)(state)
	}

	result := ""
	if task.Err != nil {
		result = task.Err.Error()
	} else if task.Result != nil {
		result = fmt.Sprintf("%v", task.Result)
	}

	wait, run := "", ""
	if task.State != pool.StateQueued {
		wait = task.Wait.Round(time.Millisecond).String()
	}
	if task.State == pool.StateFinished {
		run = task.Run.Round(time.Millisecond).String()
	}
	if !colors.Disabled {
		wait = colors.Duration(wait)
		run = colors.Duration(run)
	}

	return []string{id, state, result, wait, run}
}

// formatMap formats a map as a two-column table (key-value pairs)
func (f *TableFormatter) formatMap(table *tablewriter.Table, data map[string]interface{}) error {
	if !f.options.NoHeaders {
		table.SetHeader([]string{"KEY", "VALUE"})
	}

	for k, v := range data {
		table.Append([]string{k, fmt.Sprintf("%v", v)})
	}

	table.Render()
	return nil
}

// createTable creates a new table with kubectl-style configuration
func (f *TableFormatter) createTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t") // Tab-separated like kubectl
	table.SetNoWhiteSpace(true)

	return table
}

// printSummary prints a summary of the task report
func (f *TableFormatter) printSummary(w io.Writer, tasks []pool.TaskInfo, colors *ColorScheme) {
	var finished, failed, queued, working int
	for _, task := range tasks {
		switch {
		case task.Err != nil:
			failed++
		case task.State == pool.StateFinished:
			finished++
		case task.State == pool.StateWorking:
			working++
		default:
			queued++
		}
	}

	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Summary: ")

	finishedText := fmt.Sprintf("%d finished", finished)
	if !colors.Disabled {
		finishedText = colors.Success(finishedText)
	}

	parts := finishedText
	if failed > 0 {
		failedText := fmt.Sprintf("%d failed", failed)
		if !colors.Disabled {
			failedText = colors.Error(failedText)
		}
		parts += ", " + failedText
	}
	if working > 0 {
		parts += fmt.Sprintf(", %d working", working)
	}
	if queued > 0 {
		queuedText := fmt.Sprintf("%d still queued", queued)
		if !colors.Disabled {
			queuedText = colors.Warning(queuedText)
		}
		parts += ", " + queuedText
	}

	fmt.Fprintf(w, "%s\n", parts)
}
