package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/white3332/ai-planner/internal/api"
	"github.com/white3332/ai-planner/internal/session"
	"github.com/white3332/ai-planner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, backend *testutil.FakeBackend) *api.Client {
	t.Helper()
	sessions := session.NewMemory(session.Session{Token: "test-token"})
	return api.NewClient(backend.URL(), 5000, sessions, api.NoopObserver{})
}

func TestListPlans_DecodesEnvelope(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.Seed(
		api.PlanRecord{Title: "React Hooks", Type: "study", Date: "2025-03-10", StartTime: "14:00", EndTime: "16:00"},
		api.PlanRecord{Title: "Quiz", Type: "quiz", Date: "2025-03-10"},
	)

	c := testClient(t, backend)
	plans, err := c.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "plan-1", plans[0].ID)
	assert.Equal(t, "React Hooks", plans[0].Title)
}

func TestCreatePlan_RoundTrip(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	c := testClient(t, backend)

	rec, err := c.CreatePlan(context.Background(), api.CreatePlanRequest{
		Title: "React Hooks", Type: "study", Date: "2025-03-10",
		StartTime: "14:00", EndTime: "16:00",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.Completed)

	stored := backend.Plans()
	require.Len(t, stored, 1)
	assert.Equal(t, "2025-03-10", stored[0].Date)
}

func TestUpdatePlan_PartialPatch(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.Seed(api.PlanRecord{Title: "Quiz", Type: "quiz", Date: "2025-03-11"})

	c := testClient(t, backend)
	rec, err := c.UpdatePlan(context.Background(), "plan-1", api.UpdatePlanRequest{
		Completed: api.Ptr(true),
	})
	require.NoError(t, err)
	assert.True(t, rec.Completed)
	assert.Equal(t, "Quiz", rec.Title, "untouched fields survive a partial update")
}

func TestDeletePlan_MissingIDIsRemoteError(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	c := testClient(t, backend)

	err := c.DeletePlan(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrRemote)
}

func TestClient_SendsBearerToken(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	c := testClient(t, backend)

	_, err := c.ListPlans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", backend.LastAuthHeader)
}

func TestClient_NoSessionMeansNoAuthHeader(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	c := api.NewClient(backend.URL(), 5000, session.NewMemory(), api.NoopObserver{})

	_, err := c.ListPlans(context.Background())
	require.NoError(t, err)
	assert.Empty(t, backend.LastAuthHeader)
}

func TestClient_ServerErrorIsUniformFailure(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.FailAll(true)

	c := testClient(t, backend)
	_, err := c.ListPlans(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrRemote)
}

func TestClient_TimeoutEnforced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(10 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL, 200, session.NewMemory(), api.NoopObserver{})

	start := time.Now()
	_, err := c.ListPlans(context.Background())
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrTimeout)
	assert.Less(t, elapsed, 5*time.Second, "deadline must cut the call short")
}

func TestClient_UnreachableBackend(t *testing.T) {
	c := api.NewClient("http://127.0.0.1:1", 1000, session.NewMemory(), api.NoopObserver{})

	_, err := c.ListPlans(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrBackendUnavailable)
}
