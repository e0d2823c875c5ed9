package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wfstat-cloud/wfstat/cmd/console/api"
)

var (
	paneTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func renderStatsView(stats *api.StatsResponse, width int) string {
	if stats == nil {
		return placeholder.Render("No statistics available. Press r to reload.")
	}

	contentWidth := max(width-8, 40)
	sections := []string{
		renderStatsOverview(stats),
	}

	if len(stats.Matrix) > 0 {
		sections = append(sections, renderStatusMatrix(stats, contentWidth))
	}

	body := strings.Join(sections, "\n\n")
	border := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2).
		Width(max(width-2, 40))

	return border.Render(body)
}

func renderStatsOverview(stats *api.StatsResponse) string {
	lines := []string{
		paneTitle.Render("Overview"),
		"",
		fmt.Sprintf("  Runs:             %d", stats.Runs),
		fmt.Sprintf("  Tasks:            %d", stats.Tasks),
		fmt.Sprintf("  Avg Run Duration: %s", formatSeconds(stats.AvgRunSeconds)),
	}
	return strings.Join(lines, "\n")
}

// renderStatusMatrix tabulates tasks per function and status. Only
// statuses that actually occur get a column.
func renderStatusMatrix(stats *api.StatsResponse, width int) string {
	labels := make([]string, 0, len(stats.Totals.Counts))
	for label := range stats.Totals.Counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	lines := []string{paneTitle.Render("Tasks by Function and Status"), ""}

	header := fmt.Sprintf("  %-24s", "Function")
	for _, label := range labels {
		header += fmt.Sprintf(" %12s", label)
	}
	header += fmt.Sprintf(" %8s", "TOTAL")
	lines = append(lines, placeholder.Render(header))

	rows := append([]api.MatrixRow{}, stats.Matrix...)
	rows = append(rows, stats.Totals)
	for _, row := range rows {
		name := row.Function
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		line := fmt.Sprintf("  %-24s", name)
		for _, label := range labels {
			line += fmt.Sprintf(" %12d", row.Counts[label])
		}
		line += fmt.Sprintf(" %8d", row.Total)
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func formatSeconds(secs float64) string {
	if secs <= 0 {
		return "-"
	}
	s := int(secs)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}
