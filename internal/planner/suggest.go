package planner

import (
	"github.com/white3332/ai-planner/internal/domain"
)

// GenerateAISuggestions fabricates a fixed set of local-only items on
// the next two calendar days and merges them into the store. They carry
// no ID, never touch the network, and vanish on the next load.
func (c *Controller) GenerateAISuggestions() []domain.StudyItem {
	today := c.now()
	tomorrow := domain.FormatDate(today.AddDate(0, 0, 1))
	dayAfter := domain.FormatDate(today.AddDate(0, 0, 2))

	suggestions := []domain.StudyItem{
		{Title: "AI 추천: React 심화", Type: domain.PlanStudy, Date: tomorrow, Time: "15:00-17:00"},
		{Title: "AI 추천: 복습 퀴즈", Type: domain.PlanQuiz, Date: tomorrow, Time: "17:15-17:45"},
		{Title: "AI 추천: Node.js 실습", Type: domain.PlanProject, Date: dayAfter, Time: "10:00-12:00"},
	}

	for _, s := range suggestions {
		c.store[s.Date] = append(c.store[s.Date], s)
	}
	return suggestions
}
