package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-interview-backend/internal/domain"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, email, name, avatar, preferred_role, experience_level, total_interviews, total_score, average_score, total_practice_time, last_login, created_at, updated_at
	          FROM users WHERE id = $1`
	var user domain.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.Avatar, &user.PreferredRole,
		&user.ExperienceLevel, &user.TotalInterviews, &user.TotalScore, &user.AverageScore,
		&user.TotalPracticeTime, &user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET
		name = $2,
		preferred_role = $3,
		experience_level = $4,
		total_interviews = $5,
		total_score = $6,
		average_score = $7,
		total_practice_time = $8,
		updated_at = $9
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		user.ID, user.Name, user.PreferredRole, user.ExperienceLevel,
		user.TotalInterviews, user.TotalScore, user.AverageScore, user.TotalPracticeTime,
		time.Now(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
