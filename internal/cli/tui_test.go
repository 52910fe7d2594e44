package cli

import (
	"testing"
	"time"

	"github.com/white3332/ai-planner/internal/api"
	"github.com/white3332/ai-planner/internal/domain"
	"github.com/white3332/ai-planner/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstOfMonth is the date the planner selects when it opens.
func firstOfMonth() string {
	now := time.Now()
	return domain.FormatDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local))
}

func TestTUI_DashboardShowsStats(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	view := d.View()
	assert.Contains(t, view, "Tester")
	assert.Contains(t, view, "2.5h")
	assert.Contains(t, view, "80%")
	assert.Contains(t, view, "1250")
}

func TestTUI_DashboardSignedOut(t *testing.T) {
	app, _ := signedOutApp(t)
	d := NewTestDriver(t, app)

	assert.Contains(t, d.View(), "Not signed in")
}

func TestTUI_QuitWithQ(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('q')

	assert.True(t, d.IsQuitting())
}

func TestTUI_QuitWithCtrlC(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.PressCtrlC()

	assert.True(t, d.IsQuitting())
}

func TestTUI_EnterOpensPlannerAndEscReturns(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.PressEnter()

	assert.Equal(t, ViewPlanner, d.ActiveViewID())
	assert.Equal(t, []ViewID{ViewDashboard, ViewPlanner}, d.ViewStackIDs())

	d.PressEsc()

	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())
}

func TestTUI_PlannerShowsSeededPlan(t *testing.T) {
	app, backend := testApp(t)
	backend.Seed(api.PlanRecord{
		Title: "React Hooks", Type: "study", Date: firstOfMonth(),
		StartTime: "14:00", EndTime: "16:00",
	})

	d := NewTestDriver(t, app)
	d.PressEnter()

	view := d.View()
	assert.Contains(t, view, "React Hooks")
	assert.Contains(t, view, "14:00-16:00")
	assert.Contains(t, view, time.Now().Format("January 2006"))
}

func TestTUI_ArrowMovesSelection(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)
	d.PressEnter()

	ctl := d.State().Ctl
	require.Equal(t, firstOfMonth(), ctl.SelectedDate())

	d.PressRight()
	want, err := domain.ParseDate(firstOfMonth())
	require.NoError(t, err)
	assert.Equal(t, domain.FormatDate(want.AddDate(0, 0, 1)), ctl.SelectedDate())

	d.PressDown()
	assert.Equal(t, domain.FormatDate(want.AddDate(0, 0, 8)), ctl.SelectedDate())
}

func TestTUI_SelectionCrossingMonthFlipsGrid(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)
	d.PressEnter()

	ctl := d.State().Ctl
	before := ctl.Month()

	// Day 1 is selected; moving left lands in the previous month.
	d.PressLeft()

	assert.Equal(t, before.AddDate(0, -1, 0), ctl.Month())
}

func TestTUI_MonthNavigation(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)
	d.PressEnter()

	ctl := d.State().Ctl
	before := ctl.Month()

	d.PressKey(']')
	assert.Equal(t, before.AddDate(0, 1, 0), ctl.Month())
	assert.Equal(t, domain.FormatDate(ctl.Month()), ctl.SelectedDate())

	d.PressKey('[')
	assert.Equal(t, before, ctl.Month())
}

func TestTUI_DetailToggleAndDelete(t *testing.T) {
	app, backend := testApp(t)
	backend.Seed(api.PlanRecord{Title: "Algebra", Type: "study", Date: firstOfMonth()})

	d := NewTestDriver(t, app)
	d.PressEnter()

	ctl := d.State().Ctl
	d.PressEnter() // open detail
	require.Equal(t, planner.ModalDetail, ctl.Modal())
	assert.Contains(t, d.View(), "Algebra")

	d.PressKey('t')
	require.Len(t, backend.Plans(), 1)
	assert.True(t, backend.Plans()[0].Completed)
	assert.Equal(t, planner.ModalDetail, ctl.Modal())

	d.PressKey('d')
	assert.Contains(t, d.View(), "Delete this plan?")
	d.PressKey('y')

	assert.Empty(t, backend.Plans())
	assert.Equal(t, planner.ModalNone, ctl.Modal())
}

func TestTUI_DeleteConfirmationCancels(t *testing.T) {
	app, backend := testApp(t)
	backend.Seed(api.PlanRecord{Title: "Algebra", Type: "study", Date: firstOfMonth()})

	d := NewTestDriver(t, app)
	d.PressEnter()
	d.PressEnter() // open detail

	d.PressKey('d')
	d.PressKey('n')

	assert.Len(t, backend.Plans(), 1)
	assert.Equal(t, planner.ModalDetail, d.State().Ctl.Modal())
}

func TestTUI_EscClosesDetailBeforePopping(t *testing.T) {
	app, backend := testApp(t)
	backend.Seed(api.PlanRecord{Title: "Algebra", Type: "study", Date: firstOfMonth()})

	d := NewTestDriver(t, app)
	d.PressEnter()
	d.PressEnter() // open detail
	require.Equal(t, planner.ModalDetail, d.State().Ctl.Modal())

	d.PressEsc()

	assert.Equal(t, planner.ModalNone, d.State().Ctl.Modal())
	assert.Equal(t, ViewPlanner, d.ActiveViewID())
}

func TestTUI_AddOpensWizardAndEscCancels(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)
	d.PressEnter()

	d.PressKey('a')

	assert.Equal(t, ViewForm, d.ActiveViewID())
	assert.Equal(t, planner.ModalForm, d.State().Ctl.Modal())
	// The form pre-fills the selected date.
	assert.Equal(t, firstOfMonth(), d.State().Ctl.Form().Date)

	d.PressEsc()

	assert.Equal(t, ViewPlanner, d.ActiveViewID())
	assert.Equal(t, planner.ModalNone, d.State().Ctl.Modal())
}

func TestTUI_EditFromDetailOpensWizard(t *testing.T) {
	app, backend := testApp(t)
	backend.Seed(api.PlanRecord{Title: "Algebra", Type: "study", Date: firstOfMonth()})

	d := NewTestDriver(t, app)
	d.PressEnter()
	d.PressEnter() // open detail

	d.PressKey('e')

	assert.Equal(t, ViewForm, d.ActiveViewID())
	f := d.State().Ctl.Form()
	assert.True(t, f.Editing())
	assert.Equal(t, "Algebra", f.Title)
}

func TestTUI_SuggestionsStayLocal(t *testing.T) {
	app, backend := testApp(t)
	d := NewTestDriver(t, app)
	d.PressEnter()

	d.PressKey('g')

	ctl := d.State().Ctl
	tomorrow := domain.FormatDate(time.Now().AddDate(0, 0, 1))
	assert.NotEmpty(t, ctl.ItemsOn(tomorrow))
	assert.Empty(t, backend.Plans())
	assert.Contains(t, d.StatusLine(), "AI suggestions")
}

func TestTUI_PlannerSignedOut(t *testing.T) {
	app, _ := signedOutApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('p')

	assert.Equal(t, ViewPlanner, d.ActiveViewID())
	assert.Contains(t, d.View(), "Not signed in")
}
