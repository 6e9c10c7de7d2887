package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-interview-backend/internal/domain"
)

// interviewRepo stores interview documents in a single row per interview:
// scalar lifecycle columns for querying, JSONB columns for the embedded
// question/answer/result sequences, and a version column for optimistic
// concurrency.
type interviewRepo struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

const interviewColumns = `id, owner_id, role, experience_level, status, total_questions, estimated_minutes, questions, answers, results, duration_seconds, started_at, completed_at, version`

func (r *interviewRepo) Create(ctx context.Context, interview *domain.Interview) error {
	questions, answers, results, err := marshalDocs(interview)
	if err != nil {
		return err
	}

	query := `INSERT INTO interviews (id, owner_id, role, experience_level, status, total_questions, estimated_minutes, questions, answers, results, duration_seconds, started_at, completed_at, version)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 1)`
	_, err = r.db.Exec(ctx, query,
		interview.ID, interview.OwnerID, interview.Role, interview.ExperienceLevel,
		interview.Status, interview.TotalQuestions, interview.EstimatedMinutes,
		questions, answers, results,
		interview.Duration, interview.StartedAt, interview.CompletedAt,
	)
	if err != nil {
		return err
	}
	interview.Version = 1
	return nil
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`
	interview, err := scanInterview(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return interview, nil
}

// Update persists the mutated document only if the stored version still
// matches. Zero rows affected means a concurrent writer won; the record's
// existence was already established by the preceding read.
func (r *interviewRepo) Update(ctx context.Context, interview *domain.Interview) error {
	questions, answers, results, err := marshalDocs(interview)
	if err != nil {
		return err
	}

	query := `UPDATE interviews SET
		status = $2,
		questions = $3,
		answers = $4,
		results = $5,
		duration_seconds = $6,
		completed_at = $7,
		version = version + 1
	WHERE id = $1 AND version = $8`
	result, err := r.db.Exec(ctx, query,
		interview.ID, interview.Status,
		questions, answers, results,
		interview.Duration, interview.CompletedAt,
		interview.Version,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}
	interview.Version++
	return nil
}

func (r *interviewRepo) FetchByOwner(ctx context.Context, ownerID, status string, limit, offset int) ([]domain.Interview, int64, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
	          WHERE owner_id = $1 AND ($2 = '' OR status = $2)
	          ORDER BY completed_at DESC NULLS FIRST, started_at DESC
	          LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, ownerID, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var interviews []domain.Interview
	for rows.Next() {
		interview, err := scanInterview(rows)
		if err != nil {
			return nil, 0, err
		}
		interviews = append(interviews, *interview)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM interviews WHERE owner_id = $1 AND ($2 = '' OR status = $2)`
	if err := r.db.QueryRow(ctx, countQuery, ownerID, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	return interviews, total, nil
}

func (r *interviewRepo) ListCompletedByOwner(ctx context.Context, ownerID string, since time.Time) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
	          WHERE owner_id = $1 AND status = $2 AND completed_at >= $3
	          ORDER BY completed_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID, domain.StatusCompleted, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []domain.Interview
	for rows.Next() {
		interview, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, *interview)
	}
	return interviews, rows.Err()
}

func marshalDocs(interview *domain.Interview) (questions, answers, results []byte, err error) {
	questions, err = json.Marshal(interview.Questions)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal questions: %w", err)
	}
	answers, err = json.Marshal(interview.Answers)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal answers: %w", err)
	}
	if interview.Results != nil {
		results, err = json.Marshal(interview.Results)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("marshal results: %w", err)
		}
	}
	return questions, answers, results, nil
}

func scanInterview(row pgx.Row) (*domain.Interview, error) {
	var interview domain.Interview
	var questions, answers, results []byte

	err := row.Scan(
		&interview.ID, &interview.OwnerID, &interview.Role, &interview.ExperienceLevel,
		&interview.Status, &interview.TotalQuestions, &interview.EstimatedMinutes,
		&questions, &answers, &results,
		&interview.Duration, &interview.StartedAt, &interview.CompletedAt,
		&interview.Version,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(questions, &interview.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	if err := json.Unmarshal(answers, &interview.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	if results != nil {
		interview.Results = &domain.Results{}
		if err := json.Unmarshal(results, interview.Results); err != nil {
			return nil, fmt.Errorf("unmarshal results: %w", err)
		}
	}

	return &interview, nil
}
