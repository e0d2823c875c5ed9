package report

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/wfstat-cloud/wfstat/internal/resolve"
)

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Rows(rows...)

	if len(headers) > 0 {
		t = t.Headers(headers...)
	}

	return t.Render()
}

var summaryHeaders = []string{
	"runnum", "tasknum", "task_id", "function", "status", "lastUpdate",
	"fails", "try_id", "hostname", "launched", "start", "waitTime",
	"ended", "runTime",
}

var summaryHeadersExt = append(append([]string{}, summaryHeaders...), "depends", "stdout")

func summaryRows(rows []resolve.SummaryRow, ext bool) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			itoa(r.RunNum), itoa(r.TaskNum), itoa(r.TaskID), r.Function,
			r.Status, r.LastUpdate, itoa(r.Fails), itoa(r.TryID),
			r.Hostname, r.Launched, r.Start, r.WaitTime, r.Ended, r.RunTime,
		}
		if ext {
			out[i] = append(out[i], r.Depends, r.Stdout)
		}
	}
	return out
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
