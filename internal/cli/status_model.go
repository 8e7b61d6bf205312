package cli

import (
	"context"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/cli/formatter"
	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// statsMsg carries one refreshed snapshot of the workday.
type statsMsg struct {
	stats domain.DayStats
	err   error
}

type tickMsg time.Time

// statusModel polls the workday stats once per second and renders them with
// a live session clock while a start punch is open.
type statusModel struct {
	app    *App
	day    string
	spin   spinner.Model
	stats  domain.DayStats
	loaded bool
	err    error
}

func newStatusModel(app *App, day string) statusModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(formatter.ColorBlue)
	return statusModel{app: app, day: day, spin: s}
}

func (m statusModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetch, tick())
}

func (m statusModel) fetch() tea.Msg {
	_, stats, err := m.app.Entries.ListDay(context.Background(), m.app.Config.UserID, m.day)
	return statsMsg{stats: stats, err: err}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case statsMsg:
		m.loaded = true
		m.stats = msg.stats
		m.err = msg.err
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.fetch, tick())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m statusModel) View() string {
	if !m.loaded {
		return "\n  " + m.spin.View() + formatter.Dim("Loading workday...") + "\n"
	}
	if m.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n"
	}

	view := "\n" + formatter.FormatDayStats(m.day, m.stats)

	if m.openSession() {
		view += "\n  " + formatter.StyleGreen.Render("● clocked in") +
			formatter.Dim("  "+time.Now().In(m.app.Location).Format("15:04:05"))
	} else {
		view += "\n  " + formatter.Dim("not clocked in")
	}

	return view + "\n\n" + formatter.Dim("  q quit") + "\n"
}

// openSession reports whether the day has a start without a matching stop.
func (m statusModel) openSession() bool {
	return m.stats.StartCount > m.stats.StopCount
}
