package planner

import (
	"errors"
	"fmt"

	"github.com/white3332/ai-planner/internal/api"
	"github.com/white3332/ai-planner/internal/domain"
)

// TaskForm is the transient editable record behind the add/edit modal.
// EditingID empty means create mode; non-empty means update mode.
type TaskForm struct {
	Title       string
	Type        string
	Date        string
	StartTime   string
	EndTime     string
	Description string

	EditingID string
}

// Reset clears all fields, returning the form to create mode.
func (f *TaskForm) Reset() {
	*f = TaskForm{}
}

// FromItem pre-populates the form for editing an existing item,
// splitting its display time back into start and end.
func (f *TaskForm) FromItem(item domain.StudyItem) {
	start, end := domain.SplitTimeRange(item.Time)
	*f = TaskForm{
		Title:       item.Title,
		Type:        string(item.Type),
		Date:        item.Date,
		StartTime:   start,
		EndTime:     end,
		Description: item.Description,
		EditingID:   item.ID,
	}
}

// Editing reports whether the form targets an existing item.
func (f *TaskForm) Editing() bool { return f.EditingID != "" }

// Validate enforces what the original UI enforced with required fields.
func (f *TaskForm) Validate() error {
	if f.Title == "" {
		return errors.New("title is required")
	}
	if !domain.ValidPlanTypes[f.Type] {
		return fmt.Errorf("invalid plan type %q", f.Type)
	}
	if f.Date == "" {
		return errors.New("date is required")
	}
	if _, err := domain.ParseDate(f.Date); err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", f.Date)
	}
	return nil
}

// CreateRequest shapes the form for POST /api/study-plans.
func (f *TaskForm) CreateRequest() api.CreatePlanRequest {
	return api.CreatePlanRequest{
		Title:       f.Title,
		Type:        f.Type,
		Date:        f.Date,
		StartTime:   f.StartTime,
		EndTime:     f.EndTime,
		Description: f.Description,
		Completed:   false,
	}
}

// UpdateRequest shapes the form for PUT /api/study-plans/{id}.
// All editable fields are sent; completion is left alone.
func (f *TaskForm) UpdateRequest() api.UpdatePlanRequest {
	return api.UpdatePlanRequest{
		Title:       api.Ptr(f.Title),
		Type:        api.Ptr(f.Type),
		Date:        api.Ptr(f.Date),
		StartTime:   api.Ptr(f.StartTime),
		EndTime:     api.Ptr(f.EndTime),
		Description: api.Ptr(f.Description),
	}
}
