package app

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/wfstat-cloud/wfstat/cmd/console/api"
)

var (
	runColumnTitles     = []string{"Run", "Run ID", "Began", "Completed", "Elapsed"}
	runColumnWeights    = []int{1, 4, 3, 3, 2}
	taskColumnTitles    = []string{"Run", "Task", "Function", "Status", "Updated", "Fails"}
	taskColumnWeights   = []int{1, 1, 4, 2, 3, 1}
	recentColumnTitles  = []string{"Task", "Function", "Status", "Updated", "Try", "Host"}
	recentColumnWeights = []int{1, 3, 2, 3, 1, 3}
)

func runsToRows(runs []api.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, run := range runs {
		completed := run.Completed
		if completed == "" {
			completed = "-"
		}
		rows[i] = table.Row{
			strconv.Itoa(run.RunNum),
			run.RunID,
			run.Began,
			completed,
			orDash(run.Elapsed),
		}
	}
	return rows
}

func tasksToRows(tasks []api.TaskSummary) []table.Row {
	rows := make([]table.Row, len(tasks))
	for i, task := range tasks {
		rows[i] = table.Row{
			strconv.Itoa(task.RunNum),
			strconv.Itoa(task.TaskNum),
			task.Function,
			orDash(task.Status),
			orDash(task.LastUpdate),
			strconv.Itoa(task.Fails),
		}
	}
	return rows
}

func recentToRows(tasks []api.TaskSummary) []table.Row {
	rows := make([]table.Row, len(tasks))
	for i, task := range tasks {
		rows[i] = table.Row{
			strconv.Itoa(task.TaskNum),
			task.Function,
			orDash(task.Status),
			orDash(task.LastUpdate),
			strconv.Itoa(task.TryID),
			orDash(task.Hostname),
		}
	}
	return rows
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func createTable(titles []string, weights []int, focused bool) table.Model {
	columns := buildColumns(titles, distributeWidths(0, weights))
	tbl := table.New(
		table.WithColumns(columns),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true)

	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63")).
		Bold(false)

	tbl.SetStyles(styles)
	if focused {
		tbl.Focus()
	}
	return tbl
}

func buildColumns(titles []string, widths []int) []table.Column {
	columns := make([]table.Column, len(titles))
	for i, title := range titles {
		width := 12
		if i < len(widths) && widths[i] > 0 {
			width = widths[i]
		}
		columns[i] = table.Column{Title: title, Width: width}
	}

	return columns
}

func distributeWidths(total int, weights []int) []int {
	if len(weights) == 0 {
		return nil
	}

	if total <= 0 {
		total = len(weights) * 12
	}

	// One character gap between columns counts against the inner width.
	contentTotal := total - (len(weights) - 1)
	if contentTotal < len(weights)*6 {
		contentTotal = len(weights) * 6
	}

	sum := 0
	for _, w := range weights {
		sum += w
	}

	minWidth := 6
	widths := make([]int, len(weights))
	remaining := contentTotal

	for i, weight := range weights {
		if i == len(weights)-1 {
			widths[i] = max(remaining, minWidth)
			break
		}

		portion := max(weight*contentTotal/sum, minWidth)
		minRemaining := minWidth * (len(weights) - i - 1)
		if remaining-portion < minRemaining {
			portion = max(remaining-minRemaining, minWidth)
		}

		widths[i] = portion
		remaining -= portion
	}

	return widths
}
