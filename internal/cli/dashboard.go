package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/clockwork/internal/aggregate"
	"github.com/alexanderramin/clockwork/internal/cli/formatter"
	"github.com/alexanderramin/clockwork/internal/daterange"
	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/alexanderramin/clockwork/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── keys ─────────────────────────────────────────────────────────────────────

type dashboardKeys struct {
	Day     key.Binding
	Week    key.Binding
	Month   key.Binding
	Year    key.Binding
	Refresh key.Binding
	Up      key.Binding
	Down    key.Binding
	Quit    key.Binding
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		Day:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "today")),
		Week:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week")),
		Month:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month")),
		Year:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "year")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k dashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Day, k.Week, k.Month, k.Year, k.Refresh, k.Quit}
}

func (k dashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Up, k.Down}}
}

// ── messages ─────────────────────────────────────────────────────────────────

// dashboardLoadedMsg carries a finished insights query.
type dashboardLoadedMsg struct {
	spec     daterange.Spec
	rng      domain.TimeRange
	insights *aggregate.Insights
	open     []*domain.Session
	err      error
}

// storeChangedMsg signals that the database files changed on disk.
type storeChangedMsg struct{}

// ── model ────────────────────────────────────────────────────────────────────

// dashboardModel shows insights for one range and reloads them on key
// presses or when the store changes underneath it.
type dashboardModel struct {
	clock    service.ClockService
	reports  service.ReportService
	now      func() time.Time
	category string
	chart    int
	changes  <-chan struct{}

	spec     daterange.Spec
	rng      domain.TimeRange
	insights *aggregate.Insights
	open     []*domain.Session
	loading  bool
	err      error

	keys     dashboardKeys
	help     help.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

func newDashboardModel(app *App, spec daterange.Spec, category string, changes <-chan struct{}) *dashboardModel {
	width := app.Config.Visualization.ChartWidth
	if width <= 0 {
		width = 40
	}
	return &dashboardModel{
		clock:    app.Clock,
		reports:  app.Reports,
		now:      app.now,
		category: category,
		chart:    width,
		changes:  changes,
		spec:     spec,
		loading:  true,
		keys:     newDashboardKeys(),
		help:     help.New(),
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.load(m.spec), m.waitForChange())
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.viewport = viewport.New(msg.Width, m.bodyHeight())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = m.bodyHeight()
		}
		m.viewport.SetContent(m.body())
		return m, nil

	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.spec, m.rng = msg.spec, msg.rng
			m.insights, m.open = msg.insights, msg.open
		}
		if m.ready {
			m.viewport.SetContent(m.body())
		}
		return m, nil

	case storeChangedMsg:
		return m, tea.Batch(m.load(m.spec), m.waitForChange())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Day):
			return m, m.load(daterange.FromCode(daterange.Day))
		case key.Matches(msg, m.keys.Week):
			return m, m.load(daterange.FromCode(daterange.Week))
		case key.Matches(msg, m.keys.Month):
			return m, m.load(daterange.FromCode(daterange.Month))
		case key.Matches(msg, m.keys.Year):
			return m, m.load(daterange.FromCode(daterange.Year))
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load(m.spec)
		}
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *dashboardModel) View() string {
	title := formatter.StyleHeader.Render("clockwork") + formatter.Dim("  "+m.spec.Label())
	if !m.rng.Start.IsZero() {
		title += "  " + formatter.StylePurple.Render(formatter.FormatRange(m.rng))
	}
	if m.category != "" {
		title += formatter.Dim("  " + m.category)
	}
	if m.loading {
		title += formatter.Dim("  loading…")
	}

	body := m.body()
	if m.ready {
		body = m.viewport.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, m.help.View(m.keys))
}

// bodyHeight leaves room for the title, a blank line and the help bar.
func (m *dashboardModel) bodyHeight() int {
	if h := m.height - 3; h > 1 {
		return h
	}
	return 1
}

func (m *dashboardModel) body() string {
	if m.err != nil {
		return formatter.StyleRed.Render("Error: " + m.err.Error())
	}
	if m.insights == nil {
		return ""
	}

	var b strings.Builder
	if len(m.open) > 0 {
		for _, s := range m.open {
			fmt.Fprintf(&b, "%s %s/%s/%s %s\n",
				formatter.SessionIndicator(true), s.Category, s.Activity, s.Task,
				formatter.Dim(formatter.FormatDuration(m.now().Sub(s.StartTime))))
		}
		b.WriteString("\n")
	}
	if m.insights.Sessions == 0 {
		b.WriteString(formatter.NoActivities + "\n")
		return b.String()
	}
	b.WriteString(formatter.FormatInsights(*m.insights, m.chart))
	return b.String()
}

// load resolves the range against the clock and queries insights and running
// sessions.
func (m *dashboardModel) load(spec daterange.Spec) tea.Cmd {
	m.loading = true
	reports, clock, now, category := m.reports, m.clock, m.now(), m.category
	return func() tea.Msg {
		ctx := context.Background()
		rng, err := spec.Resolve(now)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		in, err := reports.Insights(ctx, service.ReportRequest{Range: rng, Category: category})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		open, err := clock.Open(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		return dashboardLoadedMsg{spec: spec, rng: rng, insights: in, open: open}
	}
}

// waitForChange blocks until the watcher reports a change. A nil channel
// means live reload is off.
func (m *dashboardModel) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}
