package domain

import (
	"context"
	"math"
	"time"
)

// User holds profile preferences plus denormalized interview counters.
// The counters are updated exactly once per interview completion and must
// stay consistent with a fresh reduction over completed interviews.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Avatar          *string   `json:"avatar,omitempty"`
	PreferredRole   *string   `json:"preferred_role,omitempty"`
	ExperienceLevel int       `json:"experience_level"`
	// Denormalized statistics for fast profile display
	TotalInterviews   int       `json:"total_interviews"`
	TotalScore        int       `json:"-"` // exact sum of overall scores, keeps the mean drift-free
	AverageScore      int       `json:"average_score"` // mean overall percent, rounded
	TotalPracticeTime int       `json:"total_practice_time"` // seconds
	LastLogin         time.Time `json:"last_login"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ApplyCompletedInterview folds one newly completed interview into the
// denormalized counters. The exact score sum is carried alongside the
// rounded average; rebuilding the sum from the rounded value would let
// rounding error compound, diverging from a fresh reduction over the
// store.
func (u *User) ApplyCompletedInterview(overallScore, durationSeconds int) {
	u.TotalScore += overallScore
	u.TotalInterviews++
	u.AverageScore = int(math.Round(float64(u.TotalScore) / float64(u.TotalInterviews)))
	u.TotalPracticeTime += durationSeconds
}

// UserRepository defines data access methods for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// UpdateProfileInput carries the mutable profile fields. Nil means
// "leave unchanged".
type UpdateProfileInput struct {
	Name            *string
	PreferredRole   *string
	ExperienceLevel *int
}

// UserUsecase defines business logic for user profiles.
type UserUsecase interface {
	GetProfile(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*User, error)
}
