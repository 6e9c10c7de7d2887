package domain

import (
	"context"
	"time"
)

// PassScoreThreshold is the fixed business rule for a "passed" interview:
// overall score at or above this percentage.
const PassScoreThreshold = 75

// TimeWindow selects the period a stats reduction covers, measured in
// whole days back from now.
type TimeWindow string

const (
	WindowToday TimeWindow = "today"
	WindowWeek  TimeWindow = "week"
	WindowMonth TimeWindow = "month"
	WindowAll   TimeWindow = "all"
)

// ParseTimeWindow maps a query value onto a TimeWindow, defaulting to all.
func ParseTimeWindow(s string) TimeWindow {
	switch TimeWindow(s) {
	case WindowToday, WindowWeek, WindowMonth:
		return TimeWindow(s)
	default:
		return WindowAll
	}
}

// RoleStats is the per-role grouping used for skill breakdown display.
type RoleStats struct {
	Role          string `json:"role"`
	Count         int    `json:"count"`
	AverageScore  int    `json:"average_score"`
	TotalDuration int    `json:"total_duration"`
}

// RecentInterview is a compact history entry for the dashboard.
type RecentInterview struct {
	ID          string     `json:"id"`
	Role        string     `json:"role"`
	Score       int        `json:"score"`
	CompletedAt *time.Time `json:"completed_at"`
	Duration    int        `json:"duration"`
}

// ScorePoint is one completed interview on a performance timeline.
type ScorePoint struct {
	Score       int        `json:"score"`
	CompletedAt *time.Time `json:"completed_at"`
}

// WindowStats are the reductions over completed interviews inside one
// time window.
type WindowStats struct {
	Window         TimeWindow `json:"window"`
	TotalCompleted int        `json:"total_completed"`
	AverageScore   int        `json:"average_score"`
	TotalDuration  int        `json:"total_duration"`
	HighestScore   int        `json:"highest_score"`
	LowestScore    int        `json:"lowest_score"`
	PassRate       int        `json:"pass_rate"` // percent
}

// UserStats is the full dashboard payload.
type UserStats struct {
	TotalInterviews   int               `json:"total_interviews"`
	CompletedToday    int               `json:"completed_today"`
	AverageScore      int               `json:"average_score"`
	TotalPracticeTime int               `json:"total_practice_time"`
	PassRate          int               `json:"pass_rate"`
	HighestScore      int               `json:"highest_score"`
	LowestScore       int               `json:"lowest_score"`
	RecentInterviews  []RecentInterview `json:"recent_interviews"`
	InterviewsByRole  []RoleStats       `json:"interviews_by_role"`
	WeeklyPerformance []ScorePoint      `json:"weekly_performance"`
}

// StatsUsecase is the aggregation engine: pure reductions over completed
// interviews, never stored except as the user counters.
type StatsUsecase interface {
	UserStats(ctx context.Context, ownerID string) (*UserStats, error)
	TimeWindowed(ctx context.Context, ownerID string, window TimeWindow) (*WindowStats, error)
	ByRole(ctx context.Context, ownerID string) ([]RoleStats, error)
}
