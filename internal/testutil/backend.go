// Package testutil provides a fake study-plan backend and session
// fixtures for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/white3332/ai-planner/internal/api"
	"github.com/white3332/ai-planner/internal/domain"
)

// FakeBackend is an in-memory stand-in for the remote study-plan service.
// It implements the plan CRUD routes, login/signup, and the stats route.
type FakeBackend struct {
	srv *httptest.Server

	mu      sync.Mutex
	plans   []api.PlanRecord
	nextID  int
	failAll bool

	// LastAuthHeader records the Authorization header of the most
	// recent request, for asserting the bearer scheme.
	LastAuthHeader string

	// Stats is returned verbatim from GET /api/stats.
	Stats domain.StudyStats

	// LoginToken is returned from POST /api/login.
	LoginToken string
}

// NewFakeBackend starts a fake backend. It is closed via t.Cleanup.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	b := &FakeBackend{
		nextID:     1,
		LoginToken: "test-token",
		Stats:      domain.StudyStats{TodayHours: 2.5, WeeklyProgress: 80, StreakDays: 7, TotalPoints: 1250},
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("skipping HTTP test: local listener unavailable (%v)", r)
			}
		}()
		b.srv = httptest.NewServer(http.HandlerFunc(b.handle))
	}()
	t.Cleanup(b.srv.Close)

	return b
}

// URL returns the backend's base origin.
func (b *FakeBackend) URL() string { return b.srv.URL }

// Seed inserts records directly, assigning IDs where empty.
func (b *FakeBackend) Seed(records ...api.PlanRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range records {
		if r.ID == "" {
			r.ID = b.allocID()
		}
		b.plans = append(b.plans, r)
	}
}

// Plans returns a copy of the stored records.
func (b *FakeBackend) Plans() []api.PlanRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]api.PlanRecord, len(b.plans))
	copy(out, b.plans)
	return out
}

// FailAll makes every subsequent request answer 500.
func (b *FakeBackend) FailAll(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failAll = fail
}

func (b *FakeBackend) allocID() string {
	id := fmt.Sprintf("plan-%d", b.nextID)
	b.nextID++
	return id
}

func (b *FakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.LastAuthHeader = r.Header.Get("Authorization")

	if b.failAll {
		http.Error(w, `{"detail":"internal error"}`, http.StatusInternalServerError)
		return
	}

	switch {
	case r.URL.Path == "/api/study-plans" && r.Method == http.MethodGet:
		writeJSON(w, map[string]any{"plans": b.plans})

	case r.URL.Path == "/api/study-plans" && r.Method == http.MethodPost:
		var rec api.PlanRecord
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, `{"detail":"bad request"}`, http.StatusBadRequest)
			return
		}
		rec.ID = b.allocID()
		b.plans = append(b.plans, rec)
		writeJSON(w, rec)

	case strings.HasPrefix(r.URL.Path, "/api/study-plans/") && r.Method == http.MethodPut:
		id := strings.TrimPrefix(r.URL.Path, "/api/study-plans/")
		i := b.indexOf(id)
		if i < 0 {
			http.Error(w, `{"detail":"plan not found"}`, http.StatusNotFound)
			return
		}
		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, `{"detail":"bad request"}`, http.StatusBadRequest)
			return
		}
		b.applyPatch(&b.plans[i], patch)
		writeJSON(w, b.plans[i])

	case strings.HasPrefix(r.URL.Path, "/api/study-plans/") && r.Method == http.MethodDelete:
		id := strings.TrimPrefix(r.URL.Path, "/api/study-plans/")
		i := b.indexOf(id)
		if i < 0 {
			http.Error(w, `{"detail":"plan not found"}`, http.StatusNotFound)
			return
		}
		b.plans = append(b.plans[:i], b.plans[i+1:]...)
		writeJSON(w, map[string]string{"message": "deleted"})

	case r.URL.Path == "/api/login" && r.Method == http.MethodPost:
		var req struct {
			Email string `json:"email"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, map[string]any{
			"message": "welcome",
			"token":   b.LoginToken,
			"user":    map[string]string{"email": req.Email, "provider": ""},
		})

	case r.URL.Path == "/api/signup" && r.Method == http.MethodPost:
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]string{"message": "created"})

	case r.URL.Path == "/api/stats" && r.Method == http.MethodGet:
		writeJSON(w, b.Stats)

	default:
		http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
	}
}

func (b *FakeBackend) indexOf(id string) int {
	for i, p := range b.plans {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (b *FakeBackend) applyPatch(rec *api.PlanRecord, patch map[string]any) {
	if v, ok := patch["title"].(string); ok {
		rec.Title = v
	}
	if v, ok := patch["type"].(string); ok {
		rec.Type = v
	}
	if v, ok := patch["date"].(string); ok {
		rec.Date = v
	}
	if v, ok := patch["start_time"].(string); ok {
		rec.StartTime = v
	}
	if v, ok := patch["end_time"].(string); ok {
		rec.EndTime = v
	}
	if v, ok := patch["description"].(string); ok {
		rec.Description = v
	}
	if v, ok := patch["completed"].(bool); ok {
		rec.Completed = v
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
