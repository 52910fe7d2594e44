package cli

import (
	"github.com/white3332/ai-planner/internal/api"
	"github.com/white3332/ai-planner/internal/session"
	"github.com/spf13/cobra"
)

// App holds references to the backend service interfaces and the local
// session store used by CLI commands and the TUI.
type App struct {
	Plans    api.PlanService
	Auth     api.AuthService
	Stats    api.StatsService
	Sessions session.Store

	// IsInteractive reports whether stdin is a terminal. Interactive
	// commands fall back to flags-only mode when it returns false.
	IsInteractive func() bool
}

// interactive is nil-safe: a missing detector means non-interactive.
func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "planner" command and registers all
// subcommands against the provided App. Running it bare opens the TUI.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "planner",
		Short: "Calendar-based study planner",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runTUI(app)
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newSignupCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newPlanCmd(app),
		newStatsCmd(app),
		newTUICmd(app),
	)

	return root
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive planner",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}
}
