package planner

import (
	"time"

	"github.com/white3332/ai-planner/internal/domain"
)

// GridCells is the fixed size of the month grid: 6 rows of 7 days.
const GridCells = 42

// DayCell is one cell of the month grid, regenerated every render.
type DayCell struct {
	Date           time.Time
	DateString     string
	InCurrentMonth bool
	Items          []domain.StudyItem
}

// MonthGrid computes the 42-cell Sunday-aligned grid for the given month.
// The first cell is the Sunday on or before the 1st; cells run in
// ascending date order, each tagged with whether it belongs to the
// reference month and carrying that day's items from the store.
func MonthGrid(year int, month time.Month, store Store) []DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]DayCell, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		d := start.AddDate(0, 0, i)
		ds := domain.FormatDate(d)
		cells = append(cells, DayCell{
			Date:           d,
			DateString:     ds,
			InCurrentMonth: d.Month() == month,
			Items:          store[ds],
		})
	}
	return cells
}
