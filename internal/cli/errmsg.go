package cli

import (
	"errors"

	"github.com/white3332/ai-planner/internal/api"
	"github.com/white3332/ai-planner/internal/planner"
)

// userErrorMessage maps a remote failure to one generic user-facing
// line. The full error goes to the file logger at the call site.
func userErrorMessage(err error) string {
	switch {
	case errors.Is(err, planner.ErrNoSession):
		return "Not signed in. Run `planner login` first."
	case errors.Is(err, api.ErrTimeout):
		return "The backend took too long to respond. Try again."
	case errors.Is(err, api.ErrBackendUnavailable):
		return "Cannot reach the backend. Is it running?"
	case errors.Is(err, api.ErrRemote):
		return "The backend rejected the request."
	default:
		return err.Error()
	}
}
