package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/white3332/ai-planner/internal/cli/formatter"
	"github.com/white3332/ai-planner/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// wizardView wraps a huh.Form bound to the controller's task form.
// On completion it submits through the controller; a failed submit keeps
// the wizard open with the entered values intact.
type wizardView struct {
	state    *SharedState
	form     *huh.Form
	titleStr string
	errLine  string
}

func newTaskWizard(state *SharedState) *wizardView {
	title := "New Plan"
	if state.Ctl.Form().Editing() {
		title = "Edit Plan"
	}
	return &wizardView{
		state:    state,
		form:     buildTaskForm(state),
		titleStr: title,
	}
}

func (v *wizardView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *wizardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Escape cancels the wizard.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		v.state.Ctl.CloseForm()
		return v, func() tea.Msg {
			return wizardCompleteMsg{nextCmd: status(formatter.Dim("Cancelled."))}
		}
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		if err := v.state.Ctl.SubmitForm(context.Background()); err != nil {
			// The controller keeps the form populated; rebuild the huh
			// form over the same values and stay on this view.
			v.errLine = err.Error()
			v.form = buildTaskForm(v.state)
			return v, tea.Batch(cmd, v.form.Init())
		}
		return v, func() tea.Msg {
			return wizardCompleteMsg{nextCmd: status(formatter.StyleGreen.Render("Saved."))}
		}
	}

	return v, cmd
}

func (v *wizardView) View() string {
	out := v.form.View()
	if v.errLine != "" {
		out = formatter.StyleRed.Render("Error: "+v.errLine) + "\n\n" + out
	}
	return lipgloss.NewStyle().MarginLeft(2).Render(out)
}

func (v *wizardView) ID() ViewID    { return ViewForm }
func (v *wizardView) Title() string { return v.titleStr }
func (v *wizardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// buildTaskForm binds a themed huh.Form to the controller's task form.
func buildTaskForm(state *SharedState) *huh.Form {
	f := state.Ctl.Form()
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("React Hooks 정리").
				Value(&f.Title).
				Validate(validateRequired("title")),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("study", string(domain.PlanStudy)),
					huh.NewOption("quiz", string(domain.PlanQuiz)),
					huh.NewOption("project", string(domain.PlanProject)),
					huh.NewOption("review", string(domain.PlanReview)),
				).
				Value(&f.Type),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Placeholder("2025-06-30").
				Value(&f.Date).
				Validate(validateDate),
			huh.NewInput().
				Title("Start Time (HH:MM, blank for none)").
				Placeholder("14:00").
				Value(&f.StartTime).
				Validate(validateOptionalClock),
			huh.NewInput().
				Title("End Time (HH:MM, blank for none)").
				Placeholder("16:00").
				Value(&f.EndTime).
				Validate(validateOptionalClock),
			huh.NewText().
				Title("Description").
				Value(&f.Description).
				Lines(3),
		),
	).WithTheme(plannerHuhTheme()).WithShowHelp(false)
}

// plannerHuhTheme matches the formatter palette.
func plannerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// ── validators ───────────────────────────────────────────────────────────────

func validateRequired(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse(domain.DateFormat, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func validateOptionalClock(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("use HH:MM format")
	}
	return nil
}
