package planner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/white3332/ai-planner/internal/api"
	"github.com/white3332/ai-planner/internal/domain"
	"github.com/white3332/ai-planner/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("backend down")

// fakePlanService is an in-memory PlanService with per-verb failure toggles.
type fakePlanService struct {
	records []api.PlanRecord
	nextID  int
	calls   int

	failList   bool
	failCreate bool
	failUpdate bool
	failDelete bool
}

func (f *fakePlanService) ListPlans(ctx context.Context) ([]api.PlanRecord, error) {
	f.calls++
	if f.failList {
		return nil, errBoom
	}
	out := make([]api.PlanRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakePlanService) CreatePlan(ctx context.Context, req api.CreatePlanRequest) (*api.PlanRecord, error) {
	f.calls++
	if f.failCreate {
		return nil, errBoom
	}
	f.nextID++
	rec := api.PlanRecord{
		ID: fmt.Sprintf("plan-%d", f.nextID), Title: req.Title, Type: req.Type, Date: req.Date,
		StartTime: req.StartTime, EndTime: req.EndTime, Description: req.Description, Completed: req.Completed,
	}
	f.records = append(f.records, rec)
	return &rec, nil
}

func (f *fakePlanService) UpdatePlan(ctx context.Context, id string, req api.UpdatePlanRequest) (*api.PlanRecord, error) {
	f.calls++
	if f.failUpdate {
		return nil, errBoom
	}
	for i := range f.records {
		if f.records[i].ID != id {
			continue
		}
		r := &f.records[i]
		if req.Title != nil {
			r.Title = *req.Title
		}
		if req.Type != nil {
			r.Type = *req.Type
		}
		if req.Date != nil {
			r.Date = *req.Date
		}
		if req.StartTime != nil {
			r.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			r.EndTime = *req.EndTime
		}
		if req.Description != nil {
			r.Description = *req.Description
		}
		if req.Completed != nil {
			r.Completed = *req.Completed
		}
		return r, nil
	}
	return nil, fmt.Errorf("%w: status 404: plan not found", api.ErrRemote)
}

func (f *fakePlanService) DeletePlan(ctx context.Context, id string) error {
	f.calls++
	if f.failDelete {
		return errBoom
	}
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: status 404: plan not found", api.ErrRemote)
}

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.Local)

func testController(svc *fakePlanService) *Controller {
	sessions := session.NewMemory(session.Session{Token: "tok", User: domain.UserProfile{Email: "kim@example.com"}})
	return NewController(svc, sessions, WithClock(func() time.Time { return testNow }))
}

func TestLoadPlans_RequiresSession(t *testing.T) {
	svc := &fakePlanService{}
	c := NewController(svc, session.NewMemory(), WithClock(func() time.Time { return testNow }))

	err := c.LoadPlans(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Zero(t, svc.calls, "no network call while signed out")
}

func TestLoadPlans_GroupsRecords(t *testing.T) {
	svc := &fakePlanService{records: []api.PlanRecord{
		{ID: "a", Title: "one", Type: "study", Date: "2025-03-10", StartTime: "14:00", EndTime: "16:00"},
		{ID: "b", Title: "two", Type: "quiz", Date: "2025-03-10"},
	}}
	c := testController(svc)

	require.NoError(t, c.LoadPlans(context.Background()))

	items := c.ItemsOn("2025-03-10")
	require.Len(t, items, 2)
	assert.Equal(t, "14:00-16:00", items[0].Time)
	assert.Equal(t, domain.TimeUnset, items[1].Time)
}

func TestLoadPlans_FailureLeavesStoreStale(t *testing.T) {
	svc := &fakePlanService{records: []api.PlanRecord{{ID: "a", Title: "keep", Type: "study", Date: "2025-03-10"}}}
	c := testController(svc)
	require.NoError(t, c.LoadPlans(context.Background()))

	svc.failList = true
	err := c.LoadPlans(context.Background())
	require.Error(t, err)

	assert.Len(t, c.ItemsOn("2025-03-10"), 1, "previous store survives a failed load")
}

func TestApplyLoad_DropsStaleCompletion(t *testing.T) {
	c := testController(&fakePlanService{})

	seq1, err := c.BeginLoad()
	require.NoError(t, err)
	seq2, err := c.BeginLoad()
	require.NoError(t, err)

	newer := []api.PlanRecord{{ID: "n", Title: "newer", Type: "study", Date: "2025-03-10"}}
	older := []api.PlanRecord{{ID: "o", Title: "older", Type: "study", Date: "2025-03-10"}}

	require.NoError(t, c.ApplyLoad(seq2, newer, nil))
	err = c.ApplyLoad(seq1, older, nil)
	assert.ErrorIs(t, err, ErrStaleLoad)

	items := c.ItemsOn("2025-03-10")
	require.Len(t, items, 1)
	assert.Equal(t, "newer", items[0].Title)
}

func TestMonthNavigation_DayPinnedToFirst(t *testing.T) {
	c := testController(&fakePlanService{})
	assert.Equal(t, "2025-03-01", domain.FormatDate(c.Month()))

	c.NextMonth()
	assert.Equal(t, "2025-04-01", domain.FormatDate(c.Month()))

	c.PreviousMonth()
	c.PreviousMonth()
	assert.Equal(t, "2025-02-01", domain.FormatDate(c.Month()))
}

func TestMonthNavigation_YearWrap(t *testing.T) {
	svc := &fakePlanService{}
	sessions := session.NewMemory(session.Session{Token: "tok"})
	dec := time.Date(2025, 12, 20, 0, 0, 0, 0, time.Local)
	c := NewController(svc, sessions, WithClock(func() time.Time { return dec }))

	c.NextMonth()
	assert.Equal(t, "2026-01-01", domain.FormatDate(c.Month()))
}

func TestOpenAddForm_PrefillsSelectedDate(t *testing.T) {
	c := testController(&fakePlanService{})
	c.SelectDate("2025-03-10")
	c.OpenAddForm()

	assert.Equal(t, ModalForm, c.Modal())
	assert.Equal(t, "2025-03-10", c.Form().Date)
	assert.False(t, c.Form().Editing())
}

func TestOpenEditForm_ClosesDetail(t *testing.T) {
	c := testController(&fakePlanService{})
	item := domain.StudyItem{ID: "p1", Title: "t", Type: domain.PlanStudy, Date: "2025-03-10", Time: "14:00-16:00"}

	c.OpenDetail(item, "2025-03-10")
	assert.Equal(t, ModalDetail, c.Modal())

	c.OpenEditForm(item)
	assert.Equal(t, ModalForm, c.Modal())
	assert.Nil(t, c.Detail())
	assert.Equal(t, "p1", c.Form().EditingID)
}

func TestSubmitForm_CreateThenReload(t *testing.T) {
	svc := &fakePlanService{}
	c := testController(svc)

	c.OpenAddForm()
	*c.Form() = TaskForm{Title: "React Hooks", Type: "study", Date: "2025-03-10", StartTime: "14:00", EndTime: "16:00"}

	require.NoError(t, c.SubmitForm(context.Background()))

	items := c.ItemsOn("2025-03-10")
	require.Len(t, items, 1)
	assert.Equal(t, "14:00-16:00", items[0].Time)
	assert.False(t, items[0].Completed)
	assert.Equal(t, ModalNone, c.Modal())
	assert.Empty(t, c.Form().Title, "form resets after submit")
}

func TestSubmitForm_ValidationFailureSkipsNetwork(t *testing.T) {
	svc := &fakePlanService{}
	c := testController(svc)

	c.OpenAddForm()
	c.Form().Title = "no type or date"

	err := c.SubmitForm(context.Background())
	require.Error(t, err)
	assert.Zero(t, svc.calls)
	assert.Equal(t, ModalForm, c.Modal())
}

func TestSubmitForm_RemoteFailureKeepsModalOpen(t *testing.T) {
	svc := &fakePlanService{failCreate: true}
	c := testController(svc)

	c.OpenAddForm()
	*c.Form() = TaskForm{Title: "t", Type: "study", Date: "2025-03-10"}

	err := c.SubmitForm(context.Background())
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, ModalForm, c.Modal())
	assert.Equal(t, "t", c.Form().Title, "form keeps its values for retry")
	assert.Empty(t, c.ItemsOn("2025-03-10"), "no optimistic mutation")
}

func TestSubmitForm_EditUpdatesExisting(t *testing.T) {
	svc := &fakePlanService{records: []api.PlanRecord{
		{ID: "p1", Title: "old", Type: "study", Date: "2025-03-10", StartTime: "14:00", EndTime: "16:00"},
	}}
	c := testController(svc)
	require.NoError(t, c.LoadPlans(context.Background()))

	c.OpenEditForm(c.ItemsOn("2025-03-10")[0])
	c.Form().Title = "new"

	require.NoError(t, c.SubmitForm(context.Background()))

	items := c.ItemsOn("2025-03-10")
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].Title)
	assert.Equal(t, "p1", items[0].ID, "edit never creates a second record")
}

func TestToggleCompletion_TwiceRestoresOriginal(t *testing.T) {
	svc := &fakePlanService{records: []api.PlanRecord{
		{ID: "p1", Title: "t", Type: "study", Date: "2025-03-10"},
	}}
	c := testController(svc)
	require.NoError(t, c.LoadPlans(context.Background()))

	item := c.ItemsOn("2025-03-10")[0]
	require.NoError(t, c.ToggleCompletion(context.Background(), item))
	assert.True(t, c.ItemsOn("2025-03-10")[0].Completed)

	item = c.ItemsOn("2025-03-10")[0]
	require.NoError(t, c.ToggleCompletion(context.Background(), item))
	assert.False(t, c.ItemsOn("2025-03-10")[0].Completed)
}

func TestToggleCompletion_UnpersistedIsSilentNoop(t *testing.T) {
	svc := &fakePlanService{}
	c := testController(svc)

	err := c.ToggleCompletion(context.Background(), domain.StudyItem{Title: "AI 추천: React 심화"})
	assert.NoError(t, err)
	assert.Zero(t, svc.calls)
}

func TestDelete_MissingRemoteRecordSurfacesError(t *testing.T) {
	svc := &fakePlanService{records: []api.PlanRecord{
		{ID: "p1", Title: "keep", Type: "study", Date: "2025-03-10"},
	}}
	c := testController(svc)
	require.NoError(t, c.LoadPlans(context.Background()))

	err := c.Delete(context.Background(), domain.StudyItem{ID: "already-gone"})
	require.ErrorIs(t, err, api.ErrRemote)
	assert.Len(t, c.ItemsOn("2025-03-10"), 1, "store unchanged on failed delete")
}

func TestDelete_UnpersistedIsSilentNoop(t *testing.T) {
	svc := &fakePlanService{}
	c := testController(svc)

	err := c.Delete(context.Background(), domain.StudyItem{Title: "local-only"})
	assert.NoError(t, err)
	assert.Zero(t, svc.calls)
}

func TestDelete_ClosesDetailAndReloads(t *testing.T) {
	svc := &fakePlanService{records: []api.PlanRecord{
		{ID: "p1", Title: "t", Type: "study", Date: "2025-03-10"},
	}}
	c := testController(svc)
	require.NoError(t, c.LoadPlans(context.Background()))

	item := c.ItemsOn("2025-03-10")[0]
	c.OpenDetail(item, "2025-03-10")

	require.NoError(t, c.Delete(context.Background(), item))
	assert.Equal(t, ModalNone, c.Modal())
	assert.Empty(t, c.ItemsOn("2025-03-10"))
}

func TestGenerateAISuggestions_LocalOnly(t *testing.T) {
	svc := &fakePlanService{}
	c := testController(svc)

	suggestions := c.GenerateAISuggestions()
	require.Len(t, suggestions, 3)
	assert.Zero(t, svc.calls, "suggestions never touch the network")

	tomorrow := c.ItemsOn("2025-03-16")
	dayAfter := c.ItemsOn("2025-03-17")
	assert.Len(t, tomorrow, 2)
	assert.Len(t, dayAfter, 1)
	for _, item := range append(tomorrow, dayAfter...) {
		assert.Empty(t, item.ID)
		assert.False(t, item.Completed)
	}
}

func TestGenerateAISuggestions_LostOnReload(t *testing.T) {
	svc := &fakePlanService{}
	c := testController(svc)

	c.GenerateAISuggestions()
	require.NoError(t, c.LoadPlans(context.Background()))

	assert.Empty(t, c.ItemsOn("2025-03-16"))
	assert.Empty(t, c.ItemsOn("2025-03-17"))
}
