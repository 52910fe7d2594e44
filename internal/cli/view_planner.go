package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/white3332/ai-planner/internal/api"
	"github.com/white3332/ai-planner/internal/cli/formatter"
	"github.com/white3332/ai-planner/internal/domain"
	"github.com/white3332/ai-planner/internal/logger"
	"github.com/white3332/ai-planner/internal/planner"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// plansLoadedMsg carries the result of an asynchronous plan fetch.
// The sequence number lets the controller drop out-of-order loads.
type plansLoadedMsg struct {
	seq     uint64
	records []api.PlanRecord
	err     error
}

// plannerView renders the month grid with the selected day's items
// below it. The detail modal is drawn in place of the item list.
type plannerView struct {
	state   *SharedState
	loading bool
	err     error

	// Index into the selected day's items.
	itemIdx int

	// Armed by 'd' in the detail modal; 'y' confirms, anything else cancels.
	confirmingDelete bool
}

func newPlannerView(state *SharedState) *plannerView {
	return &plannerView{state: state}
}

func (v *plannerView) ID() ViewID    { return ViewPlanner }
func (v *plannerView) Title() string { return "Planner" }

func (v *plannerView) ShortHelp() []key.Binding {
	if v.state.Ctl.Modal() == planner.ModalDetail {
		return []key.Binding{
			key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle done")),
			key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
			key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("←→↑↓"), key.WithHelp("arrows", "select day")),
		key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "month")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "suggest")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

func (v *plannerView) Init() tea.Cmd {
	ctl := v.state.Ctl
	if ctl.SelectedDate() == "" {
		ctl.SelectDate(domain.FormatDate(ctl.Month()))
	}
	return v.loadPlans()
}

// hasModal reports whether a modal or pending confirmation should keep
// Esc from popping the view stack.
func (v *plannerView) hasModal() bool {
	return v.state.Ctl.Modal() != planner.ModalNone || v.confirmingDelete
}

// ── data loading ─────────────────────────────────────────────────────────────

func (v *plannerView) loadPlans() tea.Cmd {
	seq, err := v.state.Ctl.BeginLoad()
	if err != nil {
		v.loading = false
		v.err = err
		return nil
	}
	v.loading = true
	app := v.state.App
	return func() tea.Msg {
		records, err := app.Plans.ListPlans(context.Background())
		return plansLoadedMsg{seq: seq, records: records, err: err}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *plannerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case plansLoadedMsg:
		v.loading = false
		err := v.state.Ctl.ApplyLoad(msg.seq, msg.records, msg.err)
		if errors.Is(err, planner.ErrStaleLoad) {
			return v, nil
		}
		v.err = err
		v.clampItemIdx()
		return v, nil

	case refreshViewMsg:
		v.err = nil
		return v, v.loadPlans()

	case tea.KeyMsg:
		if v.state.Ctl.Modal() == planner.ModalDetail {
			return v.updateDetail(msg)
		}
		return v.updateGrid(msg)
	}

	return v, nil
}

func (v *plannerView) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctl := v.state.Ctl

	switch msg.String() {
	case "left":
		v.moveSelection(-1)
	case "right":
		v.moveSelection(1)
	case "up":
		v.moveSelection(-7)
	case "down":
		v.moveSelection(7)
	case "[", "h":
		ctl.PreviousMonth()
		ctl.SelectDate(domain.FormatDate(ctl.Month()))
		v.itemIdx = 0
	case "]", "l":
		ctl.NextMonth()
		ctl.SelectDate(domain.FormatDate(ctl.Month()))
		v.itemIdx = 0
	case "j":
		items := ctl.ItemsOn(ctl.SelectedDate())
		if v.itemIdx < len(items)-1 {
			v.itemIdx++
		}
	case "k":
		if v.itemIdx > 0 {
			v.itemIdx--
		}
	case "enter":
		items := ctl.ItemsOn(ctl.SelectedDate())
		if v.itemIdx < len(items) {
			ctl.OpenDetail(items[v.itemIdx], ctl.SelectedDate())
		}
	case "a":
		ctl.OpenAddForm()
		return v, pushView(newTaskWizard(v.state))
	case "t":
		items := ctl.ItemsOn(ctl.SelectedDate())
		if v.itemIdx < len(items) {
			return v, v.toggle(items[v.itemIdx])
		}
	case "g":
		n := len(ctl.GenerateAISuggestions())
		return v, status(formatter.StyleGreen.Render(fmt.Sprintf("Added %d AI suggestions (not saved).", n)))
	case "r":
		v.err = nil
		return v, v.loadPlans()
	}

	return v, nil
}

func (v *plannerView) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctl := v.state.Ctl
	item := ctl.Detail()
	if item == nil {
		ctl.CloseDetail()
		return v, nil
	}

	if v.confirmingDelete {
		v.confirmingDelete = false
		if msg.String() == "y" {
			return v, v.delete(*item)
		}
		return v, nil
	}

	switch msg.String() {
	case "t":
		return v, v.toggle(*item)
	case "e":
		ctl.OpenEditForm(*item)
		return v, pushView(newTaskWizard(v.state))
	case "d":
		if item.Persisted() {
			v.confirmingDelete = true
		}
	case "esc":
		ctl.CloseDetail()
	}

	return v, nil
}

// ── mutations ────────────────────────────────────────────────────────────────

// Mutations run synchronously: the controller is single-threaded and the
// calls are bounded by the client's per-request timeout.

func (v *plannerView) toggle(item domain.StudyItem) tea.Cmd {
	if err := v.state.Ctl.ToggleCompletion(context.Background(), item); err != nil {
		logger.Error("toggling completion", "id", item.ID, "err", err)
		return status(formatter.StyleRed.Render(userErrorMessage(err)))
	}
	v.clampItemIdx()
	return nil
}

func (v *plannerView) delete(item domain.StudyItem) tea.Cmd {
	if err := v.state.Ctl.Delete(context.Background(), item); err != nil {
		logger.Error("deleting plan", "id", item.ID, "err", err)
		return status(formatter.StyleRed.Render(userErrorMessage(err)))
	}
	v.clampItemIdx()
	return status(formatter.Dim("Deleted."))
}

// ── selection ────────────────────────────────────────────────────────────────

// moveSelection shifts the selected date by days, flipping the displayed
// month when the selection crosses its boundary.
func (v *plannerView) moveSelection(days int) {
	ctl := v.state.Ctl
	d, err := domain.ParseDate(ctl.SelectedDate())
	if err != nil {
		d = ctl.Month()
	}
	d = d.AddDate(0, 0, days)

	first := ctl.Month()
	last := first.AddDate(0, 1, -1)
	if d.Before(first) {
		ctl.PreviousMonth()
	} else if d.After(last) {
		ctl.NextMonth()
	}

	ctl.SelectDate(domain.FormatDate(d))
	v.itemIdx = 0
}

func (v *plannerView) clampItemIdx() {
	items := v.state.Ctl.ItemsOn(v.state.Ctl.SelectedDate())
	if v.itemIdx >= len(items) {
		v.itemIdx = max(0, len(items)-1)
	}
}

// ── view rendering ───────────────────────────────────────────────────────────

var weekdayHeader = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func (v *plannerView) View() string {
	if v.err != nil {
		if errors.Is(v.err, planner.ErrNoSession) {
			return "\n  " + formatter.Dim("Not signed in. Run `planner login` first.")
		}
		return "\n  " + formatter.StyleRed.Render(userErrorMessage(v.err))
	}
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}

	var b strings.Builder
	b.WriteString("\n" + v.renderGrid())

	if v.state.Ctl.Modal() == planner.ModalDetail {
		b.WriteString("\n" + v.renderDetail())
	} else {
		b.WriteString("\n" + v.renderDayItems())
	}

	return b.String()
}

func (v *plannerView) renderGrid() string {
	ctl := v.state.Ctl
	var b strings.Builder

	b.WriteString("  " + formatter.StyleHeader.Render(ctl.Month().Format("January 2006")) + "\n\n")

	b.WriteString("  ")
	for _, wd := range weekdayHeader {
		b.WriteString(formatter.Dim(fmt.Sprintf("%4s", wd)))
	}
	b.WriteString("\n")

	today := ctl.Today()
	cells := ctl.Grid()
	for row := 0; row < planner.GridCells/7; row++ {
		b.WriteString("  ")
		for col := 0; col < 7; col++ {
			cell := cells[row*7+col]
			b.WriteString(v.renderCell(cell, today))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (v *plannerView) renderCell(cell planner.DayCell, today string) string {
	label := fmt.Sprintf("%3d", cell.Date.Day())
	marker := " "
	if len(cell.Items) > 0 {
		marker = "•"
	}

	style := formatter.StyleFg
	switch {
	case cell.DateString == v.state.Ctl.SelectedDate():
		style = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Bold(true)
	case cell.DateString == today:
		style = formatter.StyleGreen.Bold(true)
	case !cell.InCurrentMonth:
		style = formatter.StyleDim
	}

	return style.Render(label) + formatter.StyleYellow.Render(marker)
}

func (v *plannerView) renderDayItems() string {
	ctl := v.state.Ctl
	items := ctl.ItemsOn(ctl.SelectedDate())

	var b strings.Builder
	b.WriteString("  " + formatter.Bold(ctl.SelectedDate()) + "\n")

	if len(items) == 0 {
		b.WriteString("  " + formatter.Dim("No plans. Press 'a' to add one.") + "\n")
		return b.String()
	}

	for i, item := range items {
		cursor := "  "
		if i == v.itemIdx {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		b.WriteString(fmt.Sprintf("  %s%s %s %s %s\n",
			cursor,
			formatter.CompletionGlyph(item.Completed),
			formatter.PlanTypeStyle(item.Type).Render(padRight(string(item.Type), 7)),
			formatter.Dim(item.Time),
			item.Title,
		))
	}

	return b.String()
}

func (v *plannerView) renderDetail() string {
	item := v.state.Ctl.Detail()
	if item == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.Bold(item.Title) + "\n\n")
	b.WriteString(formatter.Dim("Type      ") + formatter.PlanTypeStyle(item.Type).Render(string(item.Type)) + "\n")
	b.WriteString(formatter.Dim("Date      ") + item.Date + "\n")
	b.WriteString(formatter.Dim("Time      ") + item.Time + "\n")
	b.WriteString(formatter.Dim("Done      ") + formatter.CompletionGlyph(item.Completed) + "\n")
	if item.Description != "" {
		b.WriteString(formatter.Dim("Notes     ") + item.Description + "\n")
	}
	if !item.Persisted() {
		b.WriteString("\n" + formatter.Dim("AI suggestion, not saved to the backend.") + "\n")
	}
	if v.confirmingDelete {
		b.WriteString("\n" + formatter.StyleRed.Render("Delete this plan? (y/n)") + "\n")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(formatter.ColorHeader).
		Padding(0, 2).
		MarginLeft(2).
		Render(b.String())

	return box
}

func padRight(s string, width int) string {
	if len(s) > width {
		return s[:width-1] + "…"
	}
	return s + strings.Repeat(" ", width-len(s))
}
