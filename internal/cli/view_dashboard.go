package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/white3332/ai-planner/internal/cli/formatter"
	"github.com/white3332/ai-planner/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// dashboardLoadedMsg signals that dashboard data has been loaded.
type dashboardLoadedMsg struct {
	user  *domain.UserProfile
	stats *domain.StudyStats
	err   error
}

// dashboardView is the home screen of the TUI. It shows the signed-in
// user and the aggregate study metrics served by the backend.
type dashboardView struct {
	state   *SharedState
	stats   *domain.StudyStats
	loading bool
	err     error
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		state:   state,
		loading: true,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "planner")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

func (v *dashboardView) loadData() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx := context.Background()

		s, err := app.Sessions.Current()
		if err != nil || s == nil {
			return dashboardLoadedMsg{}
		}

		stats, err := app.Stats.Stats(ctx)
		if err != nil {
			return dashboardLoadedMsg{user: &s.User, err: err}
		}
		return dashboardLoadedMsg{user: &s.User, stats: stats}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		v.state.User = msg.user
		v.err = msg.err
		v.stats = msg.stats
		return v, nil

	case refreshViewMsg:
		v.loading = true
		v.err = nil
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "p":
			return v, pushView(newPlannerView(v.state))
		case "r":
			v.loading = true
			v.err = nil
			return v, v.loadData()
		}
	}

	return v, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

func (v *dashboardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.state.User == nil {
		return "\n  " + formatter.Dim("Not signed in. Run `planner login` first.")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render(userErrorMessage(v.err))
	}
	if v.stats == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.Bold("Welcome back, "+v.state.User.Name) + "\n\n")

	cards := []string{
		statCard("TODAY", fmt.Sprintf("%.1fh", v.stats.TodayHours), formatter.StyleBlue),
		statCard("WEEKLY", fmt.Sprintf("%d%%", v.stats.WeeklyProgress), formatter.StyleGreen),
		statCard("STREAK", fmt.Sprintf("%dd", v.stats.StreakDays), formatter.StyleYellow),
		statCard("POINTS", fmt.Sprintf("%d", v.stats.TotalPoints), formatter.StylePurple),
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	b.WriteString(lipgloss.NewStyle().MarginLeft(2).Render(row))
	b.WriteString("\n\n  " + formatter.Dim("Press enter to open the planner."))

	return b.String()
}

func statCard(label, value string, style lipgloss.Style) string {
	body := formatter.Dim(label) + "\n" + style.Bold(true).Render(value)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(formatter.ColorDim).
		Padding(0, 2).
		MarginRight(1).
		Render(body)
}
