package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
)

// conflictRetries bounds how many times a read-modify-write cycle is
// re-run after an optimistic-concurrency collision before surfacing
// Conflict to the caller. Collisions are expected under duplicate
// submissions from flaky clients, so they are retried, not failed fast.
const conflictRetries = 3

type interviewUsecase struct {
	interviewRepo domain.InterviewRepository
	userRepo      domain.UserRepository
	gateway       domain.EvaluatorGateway
	log           *slog.Logger
	now           func() time.Time
}

// NewInterviewUsecase creates the interview session engine. The gateway
// and repositories are injected so tests can substitute fakes.
func NewInterviewUsecase(
	interviewRepo domain.InterviewRepository,
	userRepo domain.UserRepository,
	gateway domain.EvaluatorGateway,
	log *slog.Logger,
) domain.InterviewUsecase {
	return &interviewUsecase{
		interviewRepo: interviewRepo,
		userRepo:      userRepo,
		gateway:       gateway,
		log:           log,
		now:           time.Now,
	}
}

// Start validates the request, generates the first question, and creates
// the interview record atomically. A generation failure creates nothing.
func (uc *interviewUsecase) Start(ctx context.Context, ownerID, role string, experienceLevel int) (*domain.StartResult, error) {
	if ownerID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if !domain.IsValidRole(role) {
		return nil, apperror.InvalidArgument("Invalid role. Must be one of: frontend, backend, hr, aiml, fullstack, devops")
	}
	if !domain.IsValidExperienceLevel(experienceLevel) {
		return nil, apperror.InvalidArgument("Experience level must be between 0 and 4")
	}

	cfg := domain.ConfigForLevel(experienceLevel)

	question, err := uc.gateway.GenerateQuestion(ctx, role, experienceLevel, nil)
	if err != nil {
		return nil, err
	}

	interview := &domain.Interview{
		ID:               uuid.NewString(),
		OwnerID:          ownerID,
		Role:             role,
		ExperienceLevel:  experienceLevel,
		Status:           domain.StatusInProgress,
		TotalQuestions:   cfg.QuestionCount,
		EstimatedMinutes: cfg.TotalMinutes,
		Questions:        []domain.Question{*question},
		Answers:          []domain.Answer{},
		StartedAt:        uc.now(),
	}

	if err := uc.interviewRepo.Create(ctx, interview); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.log.Info("interview started",
		"interview_id", interview.ID,
		"role", role,
		"experience_level", experienceLevel,
		"total_questions", cfg.QuestionCount,
	)

	return &domain.StartResult{
		InterviewID:      interview.ID,
		Question:         *question,
		QuestionNumber:   1,
		TotalQuestions:   cfg.QuestionCount,
		EstimatedMinutes: cfg.TotalMinutes,
	}, nil
}

// GetNextQuestion appends and returns the next question. When every
// question has already been generated it returns the exhaustion signal
// without contacting the gateway. A retried call after a lost response is
// detected by an unanswered tail question and returns that question again
// instead of generating a duplicate.
func (uc *interviewUsecase) GetNextQuestion(ctx context.Context, interviewID, callerID string) (*domain.NextQuestionResult, error) {
	for attempt := 0; attempt < conflictRetries; attempt++ {
		interview, err := uc.loadOwned(ctx, interviewID, callerID)
		if err != nil {
			return nil, err
		}
		if interview.Status != domain.StatusInProgress {
			return nil, apperror.InvalidState("Interview is not in progress")
		}

		if len(interview.Questions) >= interview.TotalQuestions {
			return &domain.NextQuestionResult{
				TotalQuestions: interview.TotalQuestions,
				IsComplete:     true,
			}, nil
		}

		// Unanswered tail question: the previous generation succeeded but
		// the response was lost. Return it rather than generating again.
		if len(interview.Questions) > len(interview.Answers) {
			tail := interview.Questions[len(interview.Questions)-1]
			return &domain.NextQuestionResult{
				Question:       &tail,
				QuestionNumber: len(interview.Questions),
				TotalQuestions: interview.TotalQuestions,
			}, nil
		}

		previous := make([]string, len(interview.Questions))
		for i, q := range interview.Questions {
			previous[i] = q.Text
		}

		question, err := uc.gateway.GenerateQuestion(ctx, interview.Role, interview.ExperienceLevel, previous)
		if err != nil {
			return nil, err
		}

		interview.Questions = append(interview.Questions, *question)
		switch err := uc.interviewRepo.Update(ctx, interview); {
		case err == nil:
			return &domain.NextQuestionResult{
				Question:       question,
				QuestionNumber: len(interview.Questions),
				TotalQuestions: interview.TotalQuestions,
			}, nil
		case errors.Is(err, domain.ErrVersionConflict):
			continue
		default:
			return nil, apperror.Internal(err)
		}
	}

	return nil, apperror.Conflict("Interview was modified concurrently, please retry")
}

// SubmitAnswer evaluates and stores the answer for one question. A
// duplicate submission returns the stored evaluation instead of erroring,
// so clients can safely retry after a lost response.
func (uc *interviewUsecase) SubmitAnswer(ctx context.Context, interviewID, callerID, questionID, answerText string, timeSpent int) (*domain.SubmitAnswerResult, error) {
	if questionID == "" {
		return nil, apperror.InvalidArgument("Question ID is required")
	}
	if timeSpent < 0 {
		return nil, apperror.InvalidArgument("Time spent cannot be negative")
	}

	// The evaluation is computed at most once; conflict retries reuse it.
	var evaluation *domain.Evaluation
	var questionText string

	for attempt := 0; attempt < conflictRetries; attempt++ {
		interview, err := uc.loadOwned(ctx, interviewID, callerID)
		if err != nil {
			return nil, err
		}
		if interview.Status != domain.StatusInProgress {
			return nil, apperror.InvalidState("Interview is not in progress")
		}

		question := interview.FindQuestion(questionID)
		if question == nil {
			return nil, apperror.InvalidArgument("Question not found in this interview")
		}

		// Idempotency guard: exactly one answer per question. The losing
		// side of a double submit observes the stored evaluation.
		if existing := interview.FindAnswer(questionID); existing != nil {
			return &domain.SubmitAnswerResult{
				Evaluation:       existing.Evaluation,
				AnswersCount:     len(interview.Answers),
				TotalQuestions:   interview.TotalQuestions,
				AlreadySubmitted: true,
			}, nil
		}

		if evaluation == nil {
			questionText = question.Text
			evaluation, err = uc.gateway.EvaluateAnswer(ctx, questionText, answerText, interview.Role, interview.ExperienceLevel)
			if err != nil {
				return nil, err
			}
		}

		interview.Answers = append(interview.Answers, domain.Answer{
			QuestionID:  questionID,
			Question:    questionText,
			Answer:      answerText,
			TimeSpent:   timeSpent,
			Evaluation:  *evaluation,
			SubmittedAt: uc.now(),
		})

		switch err := uc.interviewRepo.Update(ctx, interview); {
		case err == nil:
			return &domain.SubmitAnswerResult{
				Evaluation:     *evaluation,
				AnswersCount:   len(interview.Answers),
				TotalQuestions: interview.TotalQuestions,
			}, nil
		case errors.Is(err, domain.ErrVersionConflict):
			continue
		default:
			return nil, apperror.Internal(err)
		}
	}

	return nil, apperror.Conflict("Interview was modified concurrently, please retry")
}

// Complete finalizes the interview: synthesizes feedback over all
// answers, freezes the record, and folds the result into the owner's
// denormalized counters. Completing an already-completed interview
// returns the stored results without re-synthesis.
func (uc *interviewUsecase) Complete(ctx context.Context, interviewID, callerID string) (*domain.InterviewResults, error) {
	var feedback *domain.FinalFeedback

	for attempt := 0; attempt < conflictRetries; attempt++ {
		interview, err := uc.loadOwned(ctx, interviewID, callerID)
		if err != nil {
			return nil, err
		}

		if interview.Status == domain.StatusCompleted {
			return buildResults(interview), nil
		}
		if interview.Status != domain.StatusInProgress {
			return nil, apperror.InvalidState("Interview is not in progress")
		}
		if len(interview.Answers) == 0 {
			return nil, apperror.InvalidState("Cannot complete interview without any answers")
		}

		if feedback == nil {
			feedback, err = uc.gateway.SynthesizeFinalFeedback(ctx, interview.Role, interview.ExperienceLevel, interview.Answers)
			if err != nil {
				return nil, err
			}
		}

		completedAt := uc.now()
		interview.Status = domain.StatusCompleted
		interview.CompletedAt = &completedAt
		interview.Duration = int(completedAt.Sub(interview.StartedAt).Seconds())
		interview.Results = &domain.Results{
			OverallScore: feedback.OverallScore,
			AverageScore: feedback.AverageScore,
			Strengths:    feedback.Strengths,
			WeakAreas:    feedback.WeakAreas,
			Improvements: feedback.Improvements,
			Summary:      feedback.Summary,
		}

		switch err := uc.interviewRepo.Update(ctx, interview); {
		case err == nil:
			uc.updateOwnerCounters(ctx, interview)
			return buildResults(interview), nil
		case errors.Is(err, domain.ErrVersionConflict):
			// A concurrent call may have completed the interview; the
			// reload at the top of the loop returns its results.
			continue
		default:
			return nil, apperror.Internal(err)
		}
	}

	return nil, apperror.Conflict("Interview was modified concurrently, please retry")
}

// updateOwnerCounters folds a completed interview into the owner's
// denormalized stats. Counter drift is recoverable from the store, so a
// failure here is logged rather than failing an already-completed
// interview.
func (uc *interviewUsecase) updateOwnerCounters(ctx context.Context, interview *domain.Interview) {
	user, err := uc.userRepo.GetByID(ctx, interview.OwnerID)
	if err != nil {
		uc.log.Warn("failed to load user for stats update", "user_id", interview.OwnerID, "error", err)
		return
	}
	user.ApplyCompletedInterview(interview.Results.OverallScore, interview.Duration)
	if err := uc.userRepo.Update(ctx, user); err != nil {
		uc.log.Warn("failed to update user stats", "user_id", interview.OwnerID, "error", err)
	}
}

// GetResults returns the stored results of a completed interview.
func (uc *interviewUsecase) GetResults(ctx context.Context, interviewID, callerID string) (*domain.InterviewResults, error) {
	interview, err := uc.loadOwned(ctx, interviewID, callerID)
	if err != nil {
		return nil, err
	}
	if interview.Status != domain.StatusCompleted {
		return nil, apperror.InvalidState("Interview is not yet completed")
	}
	return buildResults(interview), nil
}

// GetByID returns the full interview record for its owner.
func (uc *interviewUsecase) GetByID(ctx context.Context, interviewID, callerID string) (*domain.Interview, error) {
	return uc.loadOwned(ctx, interviewID, callerID)
}

// GetHistory returns a page of the owner's interviews, newest first.
func (uc *interviewUsecase) GetHistory(ctx context.Context, ownerID, status string, page, limit int) (*domain.HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if status != "" && status != "all" &&
		status != domain.StatusInProgress && status != domain.StatusCompleted && status != domain.StatusAbandoned {
		return nil, apperror.InvalidArgument("Invalid status filter")
	}
	if status == "all" {
		status = ""
	}

	interviews, total, err := uc.interviewRepo.FetchByOwner(ctx, ownerID, status, limit, (page-1)*limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	items := make([]domain.HistoryItem, 0, len(interviews))
	for _, iv := range interviews {
		score := 0
		if iv.Results != nil {
			score = iv.Results.OverallScore
		}
		items = append(items, domain.HistoryItem{
			ID:                iv.ID,
			Role:              iv.Role,
			ExperienceLevel:   iv.ExperienceLevel,
			Status:            iv.Status,
			Score:             score,
			CompletedAt:       iv.CompletedAt,
			Duration:          iv.Duration,
			QuestionsAnswered: len(iv.Answers),
		})
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &domain.HistoryPage{
		Interviews: items,
		Pagination: domain.Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: pages,
		},
	}, nil
}

// loadOwned fetches an interview and enforces ownership.
func (uc *interviewUsecase) loadOwned(ctx context.Context, interviewID, callerID string) (*domain.Interview, error) {
	interview, err := uc.interviewRepo.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Interview not found")
		}
		return nil, apperror.Internal(err)
	}
	if interview.OwnerID != callerID {
		return nil, apperror.Forbidden("Unauthorized access to this interview")
	}
	return interview, nil
}

func buildResults(interview *domain.Interview) *domain.InterviewResults {
	breakdown := make([]domain.AnswerBreakdown, 0, len(interview.Answers))
	for _, a := range interview.Answers {
		breakdown = append(breakdown, domain.AnswerBreakdown{
			Question:     a.Question,
			Answer:       a.Answer,
			Score:        a.Evaluation.Score,
			Feedback:     a.Evaluation.Feedback,
			Strengths:    a.Evaluation.Strengths,
			Improvements: a.Evaluation.Improvements,
			TimeSpent:    a.TimeSpent,
		})
	}

	return &domain.InterviewResults{
		InterviewID:     interview.ID,
		Role:            interview.Role,
		ExperienceLevel: interview.ExperienceLevel,
		OverallScore:    interview.Results.OverallScore,
		AverageScore:    interview.Results.AverageScore,
		Strengths:       interview.Results.Strengths,
		WeakAreas:       interview.Results.WeakAreas,
		Improvements:    interview.Results.Improvements,
		Summary:         interview.Results.Summary,
		Answers:         breakdown,
		Duration:        interview.Duration,
		CompletedAt:     interview.CompletedAt,
	}
}
