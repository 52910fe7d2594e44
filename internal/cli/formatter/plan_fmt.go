package formatter

import (
	"fmt"
	"sort"

	"github.com/white3332/ai-planner/internal/domain"
)

// FormatPlanList renders study items grouped by date, dates ascending,
// items in arrival order within each date.
func FormatPlanList(byDate map[string][]domain.StudyItem) string {
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	headers := []string{"", "ID", "TYPE", "DATE", "TIME", "TITLE"}
	var rows [][]string
	for _, d := range dates {
		for _, item := range byDate[d] {
			rows = append(rows, planRow(item))
		}
	}

	return RenderBox("Study Plans", RenderTable(headers, rows))
}

func planRow(item domain.StudyItem) []string {
	id := item.ID
	if id == "" {
		id = Dim("--")
	}
	return []string{
		CompletionGlyph(item.Completed),
		id,
		PlanTypeStyle(item.Type).Render(string(item.Type)),
		item.Date,
		Dim(item.Time),
		Bold(item.Title),
	}
}

// FormatPlanDetail renders one item as a labelled card.
func FormatPlanDetail(item domain.StudyItem) string {
	var b string
	b += StyleBold.Render(item.Title) + "\n\n"
	b += fmt.Sprintf("%s  %s\n", StyleDim.Render("TYPE "), PlanTypeStyle(item.Type).Render(string(item.Type)))
	b += fmt.Sprintf("%s  %s\n", StyleDim.Render("DATE "), item.Date)
	b += fmt.Sprintf("%s  %s\n", StyleDim.Render("TIME "), item.Time)
	b += fmt.Sprintf("%s  %s\n", StyleDim.Render("DONE "), CompletionGlyph(item.Completed))
	if item.Description != "" {
		b += fmt.Sprintf("%s  %s\n", StyleDim.Render("NOTES"), item.Description)
	}
	return RenderBox("", b)
}
