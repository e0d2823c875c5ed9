package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	tabActive    = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("57")).Bold(true)
	tabInactive  = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("240"))
	sectionNames = map[section]string{
		sectionRuns:   "Runs",
		sectionTasks:  "Tasks",
		sectionRecent: "Recent",
		sectionStats:  "Stats",
	}
)

// View renders the interface.
func (m Model) View() string {
	tabs := renderTabs(m.active)
	footer := barStyle.Render("[1/2/3/4] switch  [tab] cycle  [r] reload  [q] quit")

	var body string

	switch m.state {
	case statusLoading:
		body = boxStyle.Render(fmt.Sprintf("%s Loading data…", m.spinner.View()))
	case statusError:
		body = boxStyle.Render("Failed to load data: " + m.err.Error())
	case statusReady:
		switch m.active {
		case sectionTasks:
			body = m.renderTablePane(&m.tasks)
		case sectionRecent:
			body = m.renderTablePane(&m.recent)
		case sectionStats:
			width := m.viewportWidth
			if width <= 0 {
				width = 80
			}
			body = renderStatsView(m.stats, width)
		default:
			body = m.renderTablePane(&m.runs)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabs, body, footer)
}

func (m Model) renderTablePane(tbl *table.Model) string {
	available := m.viewportWidth
	if available <= 0 {
		available = 80
	}
	available = max(20, available-2)

	border := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63"))

	frame := border.GetHorizontalFrameSize()
	innerWidth := max(available-frame, 20)

	m.resizeColumnsToWidth(innerWidth, tbl)
	tbl.SetWidth(innerWidth)

	content := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Render(tbl.View())

	return border.Width(available).Render(content)
}

func (m Model) resizeColumnsToWidth(width int, tbl *table.Model) {
	if width <= 0 || tbl == nil {
		return
	}
	switch m.active {
	case sectionTasks:
		tbl.SetColumns(buildColumns(taskColumnTitles, distributeWidths(width, taskColumnWeights)))
	case sectionRecent:
		tbl.SetColumns(buildColumns(recentColumnTitles, distributeWidths(width, recentColumnWeights)))
	default:
		tbl.SetColumns(buildColumns(runColumnTitles, distributeWidths(width, runColumnWeights)))
	}
}

func renderTabs(active section) string {
	sections := []section{sectionRuns, sectionTasks, sectionRecent, sectionStats}
	tabs := make([]string, len(sections))
	for i, sec := range sections {
		label := fmt.Sprintf("%d %s", i+1, sectionNames[sec])
		if sec == active {
			tabs[i] = tabActive.Render(label)
		} else {
			tabs[i] = tabInactive.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
