// Package planner holds the calendar state behind the study planner:
// the month grid, the date-grouped plan store, the task form, and the
// controller that orchestrates them against the remote backend.
package planner

import (
	"context"
	"errors"
	"time"

	"github.com/white3332/ai-planner/internal/api"
	"github.com/white3332/ai-planner/internal/domain"
	"github.com/white3332/ai-planner/internal/logger"
	"github.com/white3332/ai-planner/internal/session"
)

var (
	// ErrNoSession means an operation that needs an authenticated user
	// ran while signed out. No network call is made in that case.
	ErrNoSession = errors.New("no authenticated user")

	// ErrStaleLoad means a load completed after a newer one was issued
	// and was discarded. The latest load is authoritative.
	ErrStaleLoad = errors.New("stale load discarded")
)

// Modal identifies which overlay, if any, is open. The detail and
// add/edit modals are mutually exclusive: opening one closes the other.
type Modal int

const (
	ModalNone Modal = iota
	ModalDetail
	ModalForm
)

// Controller owns the planner's mutable state. It is single-threaded by
// design: callers must run its methods from one goroutine (the TUI's
// update loop, or a CLI command body).
type Controller struct {
	plans    api.PlanService
	sessions session.Store
	now      func() time.Time

	month    time.Time // first day of the displayed month
	selected string

	store  Store
	form   TaskForm
	modal  Modal
	detail *domain.StudyItem

	loadSeq    uint64 // last issued load
	appliedSeq uint64 // last applied load
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock injects the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController creates a Controller showing the current month.
func NewController(plans api.PlanService, sessions session.Store, opts ...Option) *Controller {
	c := &Controller{
		plans:    plans,
		sessions: sessions,
		now:      time.Now,
		store:    make(Store),
	}
	for _, opt := range opts {
		opt(c)
	}
	n := c.now()
	c.month = time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, time.Local)
	return c
}

// ── month navigation and selection ───────────────────────────────────────────

// Month returns the first day of the displayed month.
func (c *Controller) Month() time.Time { return c.month }

func (c *Controller) PreviousMonth() {
	c.month = time.Date(c.month.Year(), c.month.Month()-1, 1, 0, 0, 0, 0, time.Local)
}

func (c *Controller) NextMonth() {
	c.month = time.Date(c.month.Year(), c.month.Month()+1, 1, 0, 0, 0, 0, time.Local)
}

func (c *Controller) SelectDate(dateString string) { c.selected = dateString }
func (c *Controller) SelectedDate() string         { return c.selected }

// Today returns the clock's current date string.
func (c *Controller) Today() string { return domain.FormatDate(c.now()) }

// Grid returns the 42 cells for the displayed month.
func (c *Controller) Grid() []DayCell {
	return MonthGrid(c.month.Year(), c.month.Month(), c.store)
}

// ItemsOn returns the stored items for one date.
func (c *Controller) ItemsOn(dateString string) []domain.StudyItem {
	return c.store[dateString]
}

// ── loading ──────────────────────────────────────────────────────────────────

// BeginLoad checks the session and issues a load sequence number.
// Callers fetch the records themselves (possibly off-thread) and hand
// them back through ApplyLoad.
func (c *Controller) BeginLoad() (uint64, error) {
	if err := c.requireSession(); err != nil {
		return 0, err
	}
	c.loadSeq++
	return c.loadSeq, nil
}

// ApplyLoad swaps in a freshly grouped store. A failed or out-of-order
// load leaves the previous store untouched.
func (c *Controller) ApplyLoad(seq uint64, records []api.PlanRecord, err error) error {
	if err != nil {
		return err
	}
	if seq <= c.appliedSeq {
		logger.Debug("dropping stale plan load", "seq", seq, "applied", c.appliedSeq)
		return ErrStaleLoad
	}
	c.store = GroupByDate(records)
	c.appliedSeq = seq
	return nil
}

// LoadPlans fetches all plans and replaces the store wholesale.
func (c *Controller) LoadPlans(ctx context.Context) error {
	seq, err := c.BeginLoad()
	if err != nil {
		return err
	}
	records, err := c.plans.ListPlans(ctx)
	return c.ApplyLoad(seq, records, err)
}

// ── modal state ──────────────────────────────────────────────────────────────

func (c *Controller) Modal() Modal { return c.modal }

// Form exposes the task form for the UI to bind inputs against.
func (c *Controller) Form() *TaskForm { return &c.form }

// Detail returns the item shown in the detail modal, or nil.
func (c *Controller) Detail() *domain.StudyItem { return c.detail }

// OpenAddForm opens the create modal, pre-filling the date from the
// current selection when there is one.
func (c *Controller) OpenAddForm() {
	c.detail = nil
	c.form.Reset()
	if c.selected != "" {
		c.form.Date = c.selected
	}
	c.modal = ModalForm
}

// OpenEditForm switches to edit mode for an existing item.
func (c *Controller) OpenEditForm(item domain.StudyItem) {
	c.detail = nil
	c.form.FromItem(item)
	c.modal = ModalForm
}

// CloseForm dismisses the add/edit modal and clears the form.
func (c *Controller) CloseForm() {
	c.form.Reset()
	c.modal = ModalNone
}

// OpenDetail shows the detail modal for an item on a given date.
func (c *Controller) OpenDetail(item domain.StudyItem, dateString string) {
	c.form.Reset()
	item.Date = dateString
	c.detail = &item
	c.modal = ModalDetail
}

// CloseDetail dismisses the detail modal.
func (c *Controller) CloseDetail() {
	c.detail = nil
	c.modal = ModalNone
}

// ── mutations ────────────────────────────────────────────────────────────────

// SubmitForm validates and persists the form: update when EditingID is
// set, create otherwise, then a full reload. On a failed mutation the
// form stays populated and the modal open; nothing local is mutated.
func (c *Controller) SubmitForm(ctx context.Context) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	if err := c.form.Validate(); err != nil {
		return err
	}

	var err error
	if c.form.Editing() {
		_, err = c.plans.UpdatePlan(ctx, c.form.EditingID, c.form.UpdateRequest())
	} else {
		_, err = c.plans.CreatePlan(ctx, c.form.CreateRequest())
	}
	if err != nil {
		return err
	}

	// The mutation is durable; the modal closes even if the reload
	// afterwards fails, in which case the grid is stale until the next
	// successful load.
	reloadErr := c.LoadPlans(ctx)
	c.CloseForm()
	return reloadErr
}

// ToggleCompletion flips an item's completed flag via partial update and
// reloads. Items without a persisted ID are silently ignored.
func (c *Controller) ToggleCompletion(ctx context.Context, item domain.StudyItem) error {
	if !item.Persisted() {
		return nil
	}
	if err := c.requireSession(); err != nil {
		return err
	}

	_, err := c.plans.UpdatePlan(ctx, item.ID, api.UpdatePlanRequest{Completed: api.Ptr(!item.Completed)})
	if err != nil {
		return err
	}

	if c.detail != nil && c.detail.ID == item.ID {
		c.detail.Completed = !item.Completed
	}
	return c.LoadPlans(ctx)
}

// Delete removes a persisted item remotely and reloads. The UI is
// responsible for asking the user first. Items without an ID are
// silently ignored; a remote failure leaves the store unchanged.
func (c *Controller) Delete(ctx context.Context, item domain.StudyItem) error {
	if !item.Persisted() {
		return nil
	}
	if err := c.requireSession(); err != nil {
		return err
	}

	if err := c.plans.DeletePlan(ctx, item.ID); err != nil {
		return err
	}

	c.CloseDetail()
	return c.LoadPlans(ctx)
}

func (c *Controller) requireSession() error {
	if c.sessions == nil {
		return ErrNoSession
	}
	s, err := c.sessions.Current()
	if err != nil || s == nil {
		return ErrNoSession
	}
	return nil
}
