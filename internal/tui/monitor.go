// Package tui renders the live dashboard monitor.
//
// The model is guard-driven: while session hydration is pending it shows
// a neutral spinner, once allowed it polls the dashboard aggregate, and
// when the guard answers redirect (session died mid-view) it surfaces
// the login notice and quits instead of navigating on its own.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grandcallpro/callctl/internal/pbx"
	"github.com/grandcallpro/callctl/internal/route"
	"github.com/grandcallpro/callctl/internal/session"
)

const (
	monitorLocation = "/dashboard"
	pollInterval    = 5 * time.Second
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			MarginRight(1)
	cardTitleStyle = lipgloss.NewStyle().Faint(true)
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type stateMsg session.State

type dataMsg struct {
	dash *pbx.Dashboard
}

type fetchErrMsg struct {
	err error
}

type tickMsg time.Time

// Monitor is the live dashboard model
type Monitor struct {
	ctx       context.Context
	mgr       *session.Manager
	guard     *route.Guard
	dashboard *pbx.DashboardService

	spin        spinner.Model
	calls       table.Model
	cards       []pbx.Card
	state       session.State
	fetchErr    string
	redirect    *route.Decision
	quitting    bool
	updates     chan session.State
	cancelWatch func()
}

// NewMonitor creates the dashboard monitor
func NewMonitor(ctx context.Context, mgr *session.Manager, dashboard *pbx.DashboardService) *Monitor {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	calls := table.New(
		table.WithColumns([]table.Column{
			{Title: "Origin", Width: 16},
			{Title: "Destiny", Width: 16},
			{Title: "Status", Width: 14},
			{Title: "When", Width: 20},
			{Title: "Duration", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	updates := make(chan session.State, 8)
	cancelWatch := mgr.Watch(func(st session.State) {
		select {
		case updates <- st:
		default:
		}
	})

	return &Monitor{
		ctx:         ctx,
		mgr:         mgr,
		guard:       route.NewGuard(),
		dashboard:   dashboard,
		spin:        spin,
		calls:       calls,
		state:       mgr.State(),
		updates:     updates,
		cancelWatch: cancelWatch,
	}
}

// Init implements tea.Model
func (m *Monitor) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.watchSession(), m.fetch())
}

// watchSession waits for the next session transition. The subscription
// itself is made once at construction; this only re-arms the read.
func (m *Monitor) watchSession() tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-m.updates)
	}
}

func (m *Monitor) fetch() tea.Cmd {
	return func() tea.Msg {
		dash, err := m.dashboard.Get(m.ctx)
		if err != nil {
			return fetchErrMsg{err: err}
		}
		return dataMsg{dash: dash}
	}
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model
func (m *Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			m.cancelWatch()
			return m, tea.Quit
		}

	case stateMsg:
		m.state = session.State(msg)
		if d := m.guard.Decide(m.state, monitorLocation); d.Action == route.ActionRedirect {
			m.redirect = &d
			m.quitting = true
			m.cancelWatch()
			return m, tea.Quit
		}
		return m, m.watchSession()

	case dataMsg:
		m.fetchErr = ""
		m.cards = msg.dash.Cards
		m.calls.SetRows(callRows(msg.dash.Calls))
		return m, tick()

	case fetchErrMsg:
		// The guard handles a dead session via the state watcher; other
		// failures just surface on the next poll.
		m.fetchErr = msg.err.Error()
		return m, tick()

	case tickMsg:
		return m, m.fetch()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.calls, cmd = m.calls.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m *Monitor) View() string {
	if m.quitting {
		if m.redirect != nil {
			return noticeStyle.Render(
				fmt.Sprintf("Session ended. Run 'callctl auth login' and return to %s.\n", m.redirect.From))
		}
		return ""
	}

	switch m.guard.Decide(m.state, monitorLocation).Action {
	case route.ActionPending:
		return fmt.Sprintf("\n  %s Checking session...\n", m.spin.View())
	case route.ActionRedirect:
		return noticeStyle.Render("Not logged in.\n")
	}

	var b []string
	b = append(b, titleStyle.Render("GrandCall Pro — Live Dashboard"))

	if len(m.cards) > 0 {
		cards := make([]string, 0, len(m.cards))
		for _, c := range m.cards {
			cards = append(cards, cardStyle.Render(
				cardTitleStyle.Render(c.Title)+"\n"+c.Content+"  "+c.PercentualDifference))
		}
		b = append(b, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	b = append(b, m.calls.View())

	if m.fetchErr != "" {
		b = append(b, errStyle.Render("fetch failed: "+m.fetchErr))
	}
	b = append(b, cardTitleStyle.Render("q to quit, refreshes every 5s"))

	return lipgloss.JoinVertical(lipgloss.Left, b...) + "\n"
}

func callRows(calls []pbx.Call) []table.Row {
	rows := make([]table.Row, 0, len(calls))
	for _, c := range calls {
		rows = append(rows, table.Row{
			c.Origin.Value,
			c.Destiny.Value,
			c.Status.Value,
			c.Timestamp.Local().Format("2006-01-02 15:04:05"),
			c.Duration,
		})
	}
	return rows
}
