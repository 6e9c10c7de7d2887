package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
)

type statsUsecase struct {
	interviewRepo domain.InterviewRepository
	cache         *goredis.Client // nil disables caching
	cacheTTL      time.Duration
	log           *slog.Logger
	now           func() time.Time
}

// NewStatsUsecase creates the aggregation engine. Stats are always
// derived by reduction over completed interviews; the optional Redis
// cache only trades freshness for dashboard latency (the data is
// informational, so a short lag is acceptable).
func NewStatsUsecase(interviewRepo domain.InterviewRepository, cache *goredis.Client, cacheTTL time.Duration, log *slog.Logger) domain.StatsUsecase {
	return &statsUsecase{
		interviewRepo: interviewRepo,
		cache:         cache,
		cacheTTL:      cacheTTL,
		log:           log,
		now:           time.Now,
	}
}

// UserStats computes the full dashboard payload for one owner.
func (uc *statsUsecase) UserStats(ctx context.Context, ownerID string) (*domain.UserStats, error) {
	cacheKey := fmt.Sprintf("stats:user:%s", ownerID)
	if cached := uc.fromCache(ctx, cacheKey); cached != nil {
		var stats domain.UserStats
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
	}

	completed, err := uc.listCompleted(ctx, ownerID, time.Time{})
	if err != nil {
		return nil, err
	}

	window := reduceScores(completed)
	now := uc.now()
	startOfToday := startOfDay(now)
	weekAgo := now.AddDate(0, 0, -7)

	completedToday := 0
	var weekly []domain.ScorePoint
	for _, iv := range completed {
		if iv.CompletedAt == nil {
			continue
		}
		if !iv.CompletedAt.Before(startOfToday) {
			completedToday++
		}
		if !iv.CompletedAt.Before(weekAgo) {
			weekly = append(weekly, domain.ScorePoint{
				Score:       overallScore(&iv),
				CompletedAt: iv.CompletedAt,
			})
		}
	}
	sort.Slice(weekly, func(i, j int) bool {
		return weekly[i].CompletedAt.Before(*weekly[j].CompletedAt)
	})

	recent := make([]domain.RecentInterview, 0, 5)
	for _, iv := range completed {
		if len(recent) == 5 {
			break
		}
		recent = append(recent, domain.RecentInterview{
			ID:          iv.ID,
			Role:        iv.Role,
			Score:       overallScore(&iv),
			CompletedAt: iv.CompletedAt,
			Duration:    iv.Duration,
		})
	}

	stats := &domain.UserStats{
		TotalInterviews:   window.TotalCompleted,
		CompletedToday:    completedToday,
		AverageScore:      window.AverageScore,
		TotalPracticeTime: window.TotalDuration,
		PassRate:          window.PassRate,
		HighestScore:      window.HighestScore,
		LowestScore:       window.LowestScore,
		RecentInterviews:  recent,
		InterviewsByRole:  reduceByRole(completed),
		WeeklyPerformance: weekly,
	}

	uc.toCache(ctx, cacheKey, stats)
	return stats, nil
}

// TimeWindowed restricts the reductions to interviews completed inside
// the window, measured in whole days back from the start of today.
func (uc *statsUsecase) TimeWindowed(ctx context.Context, ownerID string, window domain.TimeWindow) (*domain.WindowStats, error) {
	since := uc.windowStart(window)

	completed, err := uc.listCompleted(ctx, ownerID, since)
	if err != nil {
		return nil, err
	}

	stats := reduceScores(completed)
	stats.Window = window
	return &stats, nil
}

// ByRole groups completed interviews by role for skill-breakdown display.
func (uc *statsUsecase) ByRole(ctx context.Context, ownerID string) ([]domain.RoleStats, error) {
	completed, err := uc.listCompleted(ctx, ownerID, time.Time{})
	if err != nil {
		return nil, err
	}
	return reduceByRole(completed), nil
}

func (uc *statsUsecase) listCompleted(ctx context.Context, ownerID string, since time.Time) ([]domain.Interview, error) {
	completed, err := uc.interviewRepo.ListCompletedByOwner(ctx, ownerID, since)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	// Newest first, independent of store ordering.
	sort.Slice(completed, func(i, j int) bool {
		if completed[i].CompletedAt == nil || completed[j].CompletedAt == nil {
			return completed[j].CompletedAt == nil
		}
		return completed[i].CompletedAt.After(*completed[j].CompletedAt)
	})
	return completed, nil
}

func (uc *statsUsecase) windowStart(window domain.TimeWindow) time.Time {
	days := 0
	switch window {
	case domain.WindowToday:
		days = 1
	case domain.WindowWeek:
		days = 7
	case domain.WindowMonth:
		days = 30
	default:
		return time.Time{}
	}
	return startOfDay(uc.now()).AddDate(0, 0, -(days - 1))
}

func (uc *statsUsecase) fromCache(ctx context.Context, key string) []byte {
	if uc.cache == nil {
		return nil
	}
	data, err := uc.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return data
}

func (uc *statsUsecase) toCache(ctx context.Context, key string, value any) {
	if uc.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, key, data, uc.cacheTTL).Err(); err != nil {
		uc.log.Warn("failed to cache stats", "key", key, "error", err)
	}
}

// reduceScores folds completed interviews into score statistics.
func reduceScores(completed []domain.Interview) domain.WindowStats {
	stats := domain.WindowStats{}
	if len(completed) == 0 {
		return stats
	}

	totalScore := 0
	passed := 0
	stats.LowestScore = 100
	for _, iv := range completed {
		score := overallScore(&iv)
		totalScore += score
		stats.TotalDuration += iv.Duration
		if score > stats.HighestScore {
			stats.HighestScore = score
		}
		if score < stats.LowestScore {
			stats.LowestScore = score
		}
		if score >= domain.PassScoreThreshold {
			passed++
		}
	}

	stats.TotalCompleted = len(completed)
	stats.AverageScore = int(math.Round(float64(totalScore) / float64(len(completed))))
	stats.PassRate = int(math.Round(float64(passed) / float64(len(completed)) * 100))
	return stats
}

// reduceByRole groups completed interviews per role with mean score.
func reduceByRole(completed []domain.Interview) []domain.RoleStats {
	type acc struct {
		count    int
		total    int
		duration int
	}
	byRole := map[string]*acc{}
	for _, iv := range completed {
		a := byRole[iv.Role]
		if a == nil {
			a = &acc{}
			byRole[iv.Role] = a
		}
		a.count++
		a.total += overallScore(&iv)
		a.duration += iv.Duration
	}

	result := make([]domain.RoleStats, 0, len(byRole))
	for role, a := range byRole {
		result = append(result, domain.RoleStats{
			Role:          role,
			Count:         a.count,
			AverageScore:  int(math.Round(float64(a.total) / float64(a.count))),
			TotalDuration: a.duration,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Role < result[j].Role })
	return result
}

func overallScore(iv *domain.Interview) int {
	if iv.Results == nil {
		return 0
	}
	return iv.Results.OverallScore
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
