package domain

// UserProfile is the locally cached identity of the signed-in user.
type UserProfile struct {
	Name     string       `json:"name,omitempty"`
	Email    string       `json:"email"`
	Provider AuthProvider `json:"provider,omitempty"`
}

// StudyStats holds the aggregate numbers shown on the dashboard.
// All values are computed by the statistics backend.
type StudyStats struct {
	TodayHours     float64 `json:"today_hours"`
	WeeklyProgress int     `json:"weekly_progress"`
	StreakDays     int     `json:"streak_days"`
	TotalPoints    int     `json:"total_points"`
}
