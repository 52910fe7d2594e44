package api

import (
	"context"
	"net/http"
)

// PlanRecord is the wire shape of one study plan as the backend stores it.
type PlanRecord struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
}

// CreatePlanRequest is the body for POST /api/study-plans.
// Completed is always sent, and always false on creation.
type CreatePlanRequest struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
}

// UpdatePlanRequest is the body for PUT /api/study-plans/{id}.
// Nil fields are omitted, making the update partial.
type UpdatePlanRequest struct {
	Title       *string `json:"title,omitempty"`
	Type        *string `json:"type,omitempty"`
	Date        *string `json:"date,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// PlanService is the CRUD surface of the study-plan backend.
type PlanService interface {
	ListPlans(ctx context.Context) ([]PlanRecord, error)
	CreatePlan(ctx context.Context, req CreatePlanRequest) (*PlanRecord, error)
	UpdatePlan(ctx context.Context, id string, req UpdatePlanRequest) (*PlanRecord, error)
	DeletePlan(ctx context.Context, id string) error
}

// listPlansResponse is the envelope around GET /api/study-plans.
type listPlansResponse struct {
	Plans []PlanRecord `json:"plans"`
}

func (c *Client) ListPlans(ctx context.Context) ([]PlanRecord, error) {
	var resp listPlansResponse
	if err := c.do(ctx, "plan.list", http.MethodGet, "/api/study-plans", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Plans, nil
}

func (c *Client) CreatePlan(ctx context.Context, req CreatePlanRequest) (*PlanRecord, error) {
	var rec PlanRecord
	if err := c.do(ctx, "plan.create", http.MethodPost, "/api/study-plans", req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) UpdatePlan(ctx context.Context, id string, req UpdatePlanRequest) (*PlanRecord, error) {
	var rec PlanRecord
	if err := c.do(ctx, "plan.update", http.MethodPut, "/api/study-plans/"+id, req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) DeletePlan(ctx context.Context, id string) error {
	return c.do(ctx, "plan.delete", http.MethodDelete, "/api/study-plans/"+id, nil, nil)
}

// Ptr returns a pointer to v, for building partial UpdatePlanRequests.
func Ptr[T any](v T) *T { return &v }
