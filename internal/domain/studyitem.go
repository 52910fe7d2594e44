package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimeUnset is the display value for an item without a start/end time.
// Kept in Korean to match what the backend's other clients render.
const TimeUnset = "시간 미정"

// DateFormat is the calendar date layout used everywhere: local YYYY-MM-DD.
const DateFormat = "2006-01-02"

// StudyItem is one scheduled task on the planner.
//
// An item with a non-empty ID corresponds 1:1 to a record in the remote
// store. Items without an ID are local-only (AI suggestions) and disappear
// on the next reload.
type StudyItem struct {
	ID          string
	Title       string
	Type        PlanType
	Date        string // YYYY-MM-DD
	Time        string // "HH:MM-HH:MM" or TimeUnset
	Completed   bool
	Description string
}

// Persisted reports whether the item is backed by a remote record.
func (s *StudyItem) Persisted() bool {
	return s.ID != ""
}

// TimeRange combines a start and end time into the display string.
// If either side is missing the result is the TimeUnset sentinel.
func TimeRange(start, end string) string {
	if start == "" || end == "" {
		return TimeUnset
	}
	return start + "-" + end
}

// SplitTimeRange inverts TimeRange. The sentinel (or any string without
// a separator) yields two empty values.
func SplitTimeRange(s string) (start, end string) {
	if !strings.Contains(s, "-") {
		return "", ""
	}
	parts := strings.SplitN(s, "-", 2)
	return parts[0], parts[1]
}

// FormatDate renders t's local year/month/day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string into a local-time date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.Local)
}
