package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-interview-backend/internal/domain"
	"go-interview-backend/internal/usecase"
)

func newStats(repo *MockInterviewRepo) domain.StatsUsecase {
	return usecase.NewStatsUsecase(repo, nil, time.Minute, testLogger())
}

func completedInterview(id, role string, score, duration int, completedAt time.Time) domain.Interview {
	return domain.Interview{
		ID:          id,
		OwnerID:     "user1",
		Role:        role,
		Status:      domain.StatusCompleted,
		Duration:    duration,
		CompletedAt: &completedAt,
		Results:     &domain.Results{OverallScore: score},
	}
}

func TestUserStats(t *testing.T) {
	now := time.Now()

	t.Run("reduces the full dashboard payload", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := newStats(repo)

		rows := []domain.Interview{
			completedInterview("iv1", "backend", 80, 600, now.Add(-time.Hour)),
			completedInterview("iv2", "backend", 90, 900, now.AddDate(0, 0, -3)),
			completedInterview("iv3", "frontend", 60, 300, now.AddDate(0, 0, -20)),
		}
		repo.On("ListCompletedByOwner", mock.Anything, "user1", time.Time{}).Return(rows, nil)

		stats, err := uc.UserStats(context.Background(), "user1")
		require.NoError(t, err)

		assert.Equal(t, 3, stats.TotalInterviews)
		assert.Equal(t, 1, stats.CompletedToday)
		assert.Equal(t, 77, stats.AverageScore) // round(230/3)
		assert.Equal(t, 1800, stats.TotalPracticeTime)
		assert.Equal(t, 67, stats.PassRate) // 2 of 3 at or above 75
		assert.Equal(t, 90, stats.HighestScore)
		assert.Equal(t, 60, stats.LowestScore)

		require.Len(t, stats.RecentInterviews, 3)
		assert.Equal(t, "iv1", stats.RecentInterviews[0].ID)

		require.Len(t, stats.WeeklyPerformance, 2)
		// Ascending by completion time for charting
		assert.Equal(t, 90, stats.WeeklyPerformance[0].Score)
		assert.Equal(t, 80, stats.WeeklyPerformance[1].Score)

		require.Len(t, stats.InterviewsByRole, 2)
		assert.Equal(t, "backend", stats.InterviewsByRole[0].Role)
		assert.Equal(t, 2, stats.InterviewsByRole[0].Count)
		assert.Equal(t, 85, stats.InterviewsByRole[0].AverageScore)
		assert.Equal(t, "frontend", stats.InterviewsByRole[1].Role)
	})

	t.Run("empty history yields zeroed stats", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := newStats(repo)

		repo.On("ListCompletedByOwner", mock.Anything, "user1", time.Time{}).Return([]domain.Interview{}, nil)

		stats, err := uc.UserStats(context.Background(), "user1")
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalInterviews)
		assert.Equal(t, 0, stats.AverageScore)
		assert.Equal(t, 0, stats.PassRate)
		assert.Equal(t, 0, stats.LowestScore)
		assert.Empty(t, stats.RecentInterviews)
	})

	t.Run("dashboard shows at most five recent interviews", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := newStats(repo)

		rows := make([]domain.Interview, 0, 8)
		for i := 0; i < 8; i++ {
			rows = append(rows, completedInterview("iv", "backend", 80, 60, now.Add(-time.Duration(i)*time.Hour)))
		}
		repo.On("ListCompletedByOwner", mock.Anything, "user1", time.Time{}).Return(rows, nil)

		stats, err := uc.UserStats(context.Background(), "user1")
		require.NoError(t, err)
		assert.Len(t, stats.RecentInterviews, 5)
	})
}

func TestTimeWindowed(t *testing.T) {
	t.Run("window all lists everything", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := newStats(repo)

		repo.On("ListCompletedByOwner", mock.Anything, "user1", time.Time{}).Return([]domain.Interview{}, nil)

		stats, err := uc.TimeWindowed(context.Background(), "user1", domain.WindowAll)
		require.NoError(t, err)
		assert.Equal(t, domain.WindowAll, stats.Window)
		repo.AssertExpectations(t)
	})

	t.Run("window today starts at midnight", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := newStats(repo)

		repo.On("ListCompletedByOwner", mock.Anything, "user1", mock.MatchedBy(func(since time.Time) bool {
			return !since.IsZero() && since.Hour() == 0 && time.Since(since) < 24*time.Hour
		})).Return([]domain.Interview{}, nil)

		_, err := uc.TimeWindowed(context.Background(), "user1", domain.WindowToday)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("window week spans seven whole days", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := newStats(repo)

		repo.On("ListCompletedByOwner", mock.Anything, "user1", mock.MatchedBy(func(since time.Time) bool {
			age := time.Since(since)
			return since.Hour() == 0 && age >= 6*24*time.Hour && age < 7*24*time.Hour+time.Hour
		})).Return([]domain.Interview{}, nil)

		_, err := uc.TimeWindowed(context.Background(), "user1", domain.WindowWeek)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("reduces scores inside the window", func(t *testing.T) {
		repo := new(MockInterviewRepo)
		uc := newStats(repo)

		now := time.Now()
		rows := []domain.Interview{
			completedInterview("iv1", "backend", 80, 600, now.Add(-time.Hour)),
			completedInterview("iv2", "backend", 70, 300, now.Add(-2*time.Hour)),
		}
		repo.On("ListCompletedByOwner", mock.Anything, "user1", mock.AnythingOfType("time.Time")).Return(rows, nil)

		stats, err := uc.TimeWindowed(context.Background(), "user1", domain.WindowWeek)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.TotalCompleted)
		assert.Equal(t, 75, stats.AverageScore)
		assert.Equal(t, 50, stats.PassRate)
		assert.Equal(t, 80, stats.HighestScore)
		assert.Equal(t, 70, stats.LowestScore)
		assert.Equal(t, 900, stats.TotalDuration)
	})
}

// The denormalized user counters are updated once per completion and must
// report exactly what a fresh reduction over the store reports. The score
// sequence includes {1, 0, 0}, where a counter rebuilt from its own
// rounded average would drift to 1 while the true mean rounds to 0.
func TestCountersMatchReduction(t *testing.T) {
	now := time.Now()
	scores := []int{1, 0, 0, 80, 73, 91}

	user := &domain.User{ID: "user1"}
	rows := make([]domain.Interview, 0, len(scores))
	for i, score := range scores {
		user.ApplyCompletedInterview(score, 60)
		rows = append(rows, completedInterview("iv", "backend", score, 60, now.Add(-time.Duration(i)*time.Hour)))
	}

	repo := new(MockInterviewRepo)
	repo.On("ListCompletedByOwner", mock.Anything, "user1", time.Time{}).Return(rows, nil)

	stats, err := newStats(repo).UserStats(context.Background(), "user1")
	require.NoError(t, err)
	assert.Equal(t, stats.TotalInterviews, user.TotalInterviews)
	assert.Equal(t, stats.AverageScore, user.AverageScore)
	assert.Equal(t, stats.TotalPracticeTime, user.TotalPracticeTime)
}

func TestByRole(t *testing.T) {
	repo := new(MockInterviewRepo)
	uc := newStats(repo)

	now := time.Now()
	rows := []domain.Interview{
		completedInterview("iv1", "devops", 90, 600, now),
		completedInterview("iv2", "backend", 70, 300, now),
		completedInterview("iv3", "backend", 80, 300, now),
	}
	repo.On("ListCompletedByOwner", mock.Anything, "user1", time.Time{}).Return(rows, nil)

	byRole, err := uc.ByRole(context.Background(), "user1")
	require.NoError(t, err)
	require.Len(t, byRole, 2)
	assert.Equal(t, "backend", byRole[0].Role)
	assert.Equal(t, 75, byRole[0].AverageScore)
	assert.Equal(t, 600, byRole[0].TotalDuration)
	assert.Equal(t, "devops", byRole[1].Role)
	assert.Equal(t, 1, byRole[1].Count)
}
