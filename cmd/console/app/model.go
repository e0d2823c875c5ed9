package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wfstat-cloud/wfstat/cmd/console/api"
)

type status int

type section int

const (
	statusLoading status = iota
	statusReady
	statusError
)

const (
	sectionRuns section = iota
	sectionTasks
	sectionRecent
	sectionStats
)

const (
	fetchTimeout    = 10 * time.Second
	refreshInterval = 15 * time.Second
)

func (s section) next() section {
	return section((int(s) + 1) % 4)
}

func (s section) prev() section {
	return section((int(s) + 3) % 4)
}

// Model represents the Bubble Tea program state.
type Model struct {
	client        *api.Client
	spinner       spinner.Model
	state         status
	err           error
	active        section
	runs          table.Model
	tasks         table.Model
	recent        table.Model
	stats         *api.StatsResponse
	viewportWidth int
}

// New creates the root model with dependency references.
func New(client *api.Client) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		client:  client,
		spinner: sp,
		state:   statusLoading,
		active:  sectionRuns,
		runs:    createTable(runColumnTitles, runColumnWeights, true),
		tasks:   createTable(taskColumnTitles, taskColumnWeights, false),
		recent:  createTable(recentColumnTitles, recentColumnWeights, false),
	}
}

type dataMsg struct {
	runs   []api.Run
	tasks  []api.TaskSummary
	recent []api.TaskSummary
	stats  *api.StatsResponse
}

type errMsg struct{ err error }

type refreshMsg time.Time

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func fetchData(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		runs, err := client.Runs(ctx)
		if err != nil {
			return errMsg{err}
		}

		tasks, err := client.Tasks(ctx, 0)
		if err != nil {
			return errMsg{err}
		}

		recent, err := client.Recent(ctx, 50)
		if err != nil {
			return errMsg{err}
		}

		stats, err := client.Stats(ctx)
		if err != nil {
			return errMsg{err}
		}

		return dataMsg{runs: runs, tasks: tasks, recent: recent, stats: stats}
	}
}

// Init bootstraps async fetch, the refresh timer and spinner tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchData(m.client), scheduleRefresh())
}

// Update handles Bubble Tea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.state = statusLoading
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, fetchData(m.client))
		case "1":
			m = m.activate(sectionRuns)
		case "2":
			m = m.activate(sectionTasks)
		case "3":
			m = m.activate(sectionRecent)
		case "4":
			m = m.activate(sectionStats)
		case "tab":
			m = m.activate(m.active.next())
		case "shift+tab":
			m = m.activate(m.active.prev())
		}

	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width

	case dataMsg:
		m.state = statusReady
		m.runs.SetRows(runsToRows(msg.runs))
		m.tasks.SetRows(tasksToRows(msg.tasks))
		m.recent.SetRows(recentToRows(msg.recent))
		m.stats = msg.stats

	case refreshMsg:
		return m, tea.Batch(fetchData(m.client), scheduleRefresh())

	case errMsg:
		m.state = statusError
		m.err = msg.err

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.state == statusLoading {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	active := m.activeTable()
	*active, cmd = active.Update(msg)
	return m, cmd
}

func (m Model) activate(s section) Model {
	m.activeTable().Blur()
	m.active = s
	m.activeTable().Focus()
	return m
}

func (m *Model) activeTable() *table.Model {
	switch m.active {
	case sectionTasks:
		return &m.tasks
	case sectionRecent:
		return &m.recent
	default:
		return &m.runs
	}
}
