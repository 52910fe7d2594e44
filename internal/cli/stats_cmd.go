package cli

import (
	"context"
	"fmt"

	"github.com/white3332/ai-planner/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show study statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.Stats.Stats(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatStats(stats))
			return nil
		},
	}
}
