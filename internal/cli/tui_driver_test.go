package cli

import (
	"testing"

	"github.com/white3332/ai-planner/internal/api"
	"github.com/white3332/ai-planner/internal/domain"
	"github.com/white3332/ai-planner/internal/session"
	"github.com/white3332/ai-planner/internal/teatest"
	"github.com/white3332/ai-planner/internal/testutil"
)

// testApp wires an App against a fake backend with a signed-in session.
func testApp(t *testing.T) (*App, *testutil.FakeBackend) {
	t.Helper()

	backend := testutil.NewFakeBackend(t)
	sessions := session.NewMemory(session.Session{
		Token: "test-token",
		User:  domain.UserProfile{Name: "Tester", Email: "tester@example.com"},
	})
	client := api.NewClient(backend.URL(), 2000, sessions, api.NoopObserver{})

	return &App{
		Plans:    client,
		Auth:     client,
		Stats:    client,
		Sessions: sessions,
	}, backend
}

// signedOutApp wires an App with an empty session store.
func signedOutApp(t *testing.T) (*App, *testutil.FakeBackend) {
	t.Helper()

	backend := testutil.NewFakeBackend(t)
	sessions := session.NewMemory()
	client := api.NewClient(backend.URL(), 2000, sessions, api.NoopObserver{})

	return &App{Plans: client, Auth: client, Stats: client, Sessions: sessions}, backend
}

// TestDriver wraps teatest.Driver with planner-specific inspection methods.
// It provides access to appModel internals (view stack, shared state)
// that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, and drains Init()
// (which loads dashboard data from the fake backend).
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// StatusLine returns the transient status bar text.
func (d *TestDriver) StatusLine() string {
	return d.appModel().statusLine
}
