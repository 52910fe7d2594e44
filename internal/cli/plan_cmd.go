package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/white3332/ai-planner/internal/cli/formatter"
	"github.com/white3332/ai-planner/internal/domain"
	"github.com/white3332/ai-planner/internal/planner"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// resolvePlan finds a study item by exact ID or unique ID prefix.
func resolvePlan(ctx context.Context, app *App, input string) (domain.StudyItem, error) {
	if input == "" {
		return domain.StudyItem{}, fmt.Errorf("plan ID is required")
	}

	records, err := app.Plans.ListPlans(ctx)
	if err != nil {
		return domain.StudyItem{}, err
	}
	store := planner.GroupByDate(records)

	var matches []domain.StudyItem
	for _, items := range store {
		for _, item := range items {
			if item.ID == input {
				return item, nil
			}
			if strings.HasPrefix(item.ID, input) {
				matches = append(matches, item)
			}
		}
	}

	switch len(matches) {
	case 0:
		return domain.StudyItem{}, fmt.Errorf("plan not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return domain.StudyItem{}, fmt.Errorf("plan ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage study plans",
	}

	cmd.AddCommand(
		newPlanListCmd(app),
		newPlanAddCmd(app),
		newPlanEditCmd(app),
		newPlanToggleCmd(app),
		newPlanDeleteCmd(app),
		newPlanSuggestCmd(app),
	)

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	var month, date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List study plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if s, err := app.Sessions.Current(); err != nil || s == nil {
				return planner.ErrNoSession
			}

			records, err := app.Plans.ListPlans(ctx)
			if err != nil {
				return err
			}
			store := planner.GroupByDate(records)

			if month != "" {
				for d := range store {
					if !strings.HasPrefix(d, month) {
						delete(store, d)
					}
				}
			}
			if date != "" {
				for d := range store {
					if d != date {
						delete(store, d)
					}
				}
			}

			if len(store) == 0 {
				fmt.Println("No plans found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatPlanList(store))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Only show plans in this month (YYYY-MM)")
	cmd.Flags().StringVar(&date, "date", "", "Only show plans on this date (YYYY-MM-DD)")

	return cmd
}

func newPlanAddCmd(app *App) *cobra.Command {
	var title, planType, date, start, end, desc string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a study plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl := planner.NewController(app.Plans, app.Sessions)
			ctl.OpenAddForm()
			f := ctl.Form()
			f.Title = title
			f.Type = planType
			f.Date = date
			f.StartTime = start
			f.EndTime = end
			f.Description = desc

			if err := ctl.SubmitForm(context.Background()); err != nil {
				return err
			}

			fmt.Printf("Created plan %q on %s\n", title, date)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Plan title")
	cmd.Flags().StringVar(&planType, "type", "study", "Plan type (study|quiz|project|review)")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newPlanEditCmd(app *App) *cobra.Command {
	var title, planType, date, start, end, desc string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a study plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			item, err := resolvePlan(ctx, app, args[0])
			if err != nil {
				return err
			}

			ctl := planner.NewController(app.Plans, app.Sessions)
			ctl.OpenEditForm(item)
			f := ctl.Form()

			if cmd.Flags().Changed("title") {
				f.Title = title
			}
			if cmd.Flags().Changed("type") {
				f.Type = planType
			}
			if cmd.Flags().Changed("date") {
				f.Date = date
			}
			if cmd.Flags().Changed("start") {
				f.StartTime = start
			}
			if cmd.Flags().Changed("end") {
				f.EndTime = end
			}
			if cmd.Flags().Changed("desc") {
				f.Description = desc
			}

			if err := ctl.SubmitForm(ctx); err != nil {
				return err
			}

			fmt.Printf("Updated plan %s\n", item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Plan title")
	cmd.Flags().StringVar(&planType, "type", "", "Plan type (study|quiz|project|review)")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")

	return cmd
}

func newPlanToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Toggle a plan's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			item, err := resolvePlan(ctx, app, args[0])
			if err != nil {
				return err
			}

			ctl := planner.NewController(app.Plans, app.Sessions)
			if err := ctl.ToggleCompletion(ctx, item); err != nil {
				return err
			}

			state := "done"
			if item.Completed {
				state = "not done"
			}
			fmt.Printf("Marked %q as %s\n", item.Title, state)
			return nil
		},
	}
}

func newPlanDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a study plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			item, err := resolvePlan(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete without --yes in non-interactive mode")
				}
				confirmed := false
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewConfirm().
							Title(fmt.Sprintf("Delete %q (%s)?", item.Title, item.Date)).
							Affirmative("Yes").
							Negative("No").
							Value(&confirmed),
					),
				).WithTheme(plannerHuhTheme()).WithShowHelp(false)
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			ctl := planner.NewController(app.Plans, app.Sessions)
			if err := ctl.Delete(ctx, item); err != nil {
				return err
			}

			fmt.Printf("Deleted plan %s\n", item.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func newPlanSuggestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Generate AI study suggestions (local only, not saved)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl := planner.NewController(app.Plans, app.Sessions)
			suggestions := ctl.GenerateAISuggestions()

			byDate := make(map[string][]domain.StudyItem)
			for _, s := range suggestions {
				byDate[s.Date] = append(byDate[s.Date], s)
			}

			fmt.Printf("%s\n", formatter.FormatPlanList(byDate))
			fmt.Println("Suggestions are not saved. Add the ones you want with `planner plan add`.")
			return nil
		},
	}
}
