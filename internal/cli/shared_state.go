package cli

import (
	"github.com/white3332/ai-planner/internal/domain"
	"github.com/white3332/ai-planner/internal/planner"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Calendar state shared by the planner view and the task wizard.
	Ctl *planner.Controller

	// Signed-in profile, refreshed by the dashboard on load.
	User *domain.UserProfile

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight returns the available height for view content,
// accounting for the header and the status bar.
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
