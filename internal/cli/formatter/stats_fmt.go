package formatter

import (
	"fmt"

	"github.com/white3332/ai-planner/internal/domain"
)

// FormatStats renders the dashboard metrics as a labelled card.
func FormatStats(stats *domain.StudyStats) string {
	var b string
	b += fmt.Sprintf("%s  %s\n", StyleDim.Render("TODAY  "), StyleBlue.Render(fmt.Sprintf("%.1fh", stats.TodayHours)))
	b += fmt.Sprintf("%s  %s\n", StyleDim.Render("WEEKLY "), StyleGreen.Render(fmt.Sprintf("%d%%", stats.WeeklyProgress)))
	b += fmt.Sprintf("%s  %s\n", StyleDim.Render("STREAK "), StyleYellow.Render(fmt.Sprintf("%d days", stats.StreakDays)))
	b += fmt.Sprintf("%s  %s\n", StyleDim.Render("POINTS "), StylePurple.Render(fmt.Sprintf("%d", stats.TotalPoints)))
	return RenderBox("Study Stats", b)
}
