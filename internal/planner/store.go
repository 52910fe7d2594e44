package planner

import (
	"github.com/white3332/ai-planner/internal/api"
	"github.com/white3332/ai-planner/internal/domain"
)

// Store maps a YYYY-MM-DD date string to that day's study items.
// It is rebuilt wholesale on every load; mutations become visible
// through a full reload, never by patching in place.
type Store map[string][]domain.StudyItem

// GroupByDate shapes backend records into a Store. Items are appended
// in arrival order; no dedup, no sort. The remote `_id` becomes the
// local ID and the start/end times collapse into the display string.
func GroupByDate(records []api.PlanRecord) Store {
	grouped := make(Store)
	for _, rec := range records {
		grouped[rec.Date] = append(grouped[rec.Date], itemFromRecord(rec))
	}
	return grouped
}

func itemFromRecord(rec api.PlanRecord) domain.StudyItem {
	return domain.StudyItem{
		ID:          rec.ID,
		Title:       rec.Title,
		Type:        domain.PlanType(rec.Type),
		Date:        rec.Date,
		Time:        domain.TimeRange(rec.StartTime, rec.EndTime),
		Completed:   rec.Completed,
		Description: rec.Description,
	}
}
