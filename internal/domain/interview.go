package domain

import (
	"context"
	"time"
)

// Interview status constants
const (
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusAbandoned  = "abandoned"
)

// Question difficulty constants
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidRoles is the closed set of interview roles.
var ValidRoles = []string{"frontend", "backend", "hr", "aiml", "fullstack", "devops"}

// IsValidRole reports whether role is one of the supported interview roles.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Question is a single generated interview question, embedded in the
// interview document.
type Question struct {
	ID               string `json:"id"`
	Text             string `json:"text"`
	Category         string `json:"category"`
	Difficulty       string `json:"difficulty"` // easy | medium | hard
	ExpectedDuration int    `json:"expected_duration"` // seconds
}

// Evaluation is the scored feedback for one answer. Score is always
// within [0,10] by the time it reaches storage.
type Evaluation struct {
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// Answer records one submitted answer with its evaluation. The question
// text is denormalized so results remain self-contained.
type Answer struct {
	QuestionID  string     `json:"question_id"`
	Question    string     `json:"question"`
	Answer      string     `json:"answer"`
	TimeSpent   int        `json:"time_spent"` // seconds
	Evaluation  Evaluation `json:"evaluation"`
	SubmittedAt time.Time  `json:"submitted_at"`
}

// Results holds the final synthesized feedback. Present only on
// completed interviews, written exactly once.
type Results struct {
	OverallScore int      `json:"overall_score"` // percent, 0-100
	AverageScore float64  `json:"average_score"` // mean of per-answer scores, 0-10
	Strengths    []string `json:"strengths"`
	WeakAreas    []string `json:"weak_areas"`
	Improvements []string `json:"improvements"`
	Summary      string   `json:"summary"`
}

// Interview is the aggregate root for one mock-interview attempt.
//
// Invariants maintained by the session engine:
//   - len(Answers) <= len(Questions) <= TotalQuestions
//   - at most one answer per question id
//   - Results set iff Status == completed
//   - questions/answers/results frozen once completed
type Interview struct {
	ID               string     `json:"id"`
	OwnerID          string     `json:"owner_id"`
	Role             string     `json:"role"`
	ExperienceLevel  int        `json:"experience_level"`
	Status           string     `json:"status"`
	TotalQuestions   int        `json:"total_questions"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	Questions        []Question `json:"questions"`
	Answers          []Answer   `json:"answers"`
	Results          *Results   `json:"results,omitempty"`
	Duration         int        `json:"duration"` // seconds, frozen at completion
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`

	// Version guards read-modify-write cycles against concurrent
	// mutation. Incremented by the repository on every update.
	Version int64 `json:"-"`
}

// FindQuestion returns the question with the given id, or nil.
func (i *Interview) FindQuestion(questionID string) *Question {
	for idx := range i.Questions {
		if i.Questions[idx].ID == questionID {
			return &i.Questions[idx]
		}
	}
	return nil
}

// FindAnswer returns the answer for the given question id, or nil.
func (i *Interview) FindAnswer(questionID string) *Answer {
	for idx := range i.Answers {
		if i.Answers[idx].QuestionID == questionID {
			return &i.Answers[idx]
		}
	}
	return nil
}

// StartResult is returned when a new interview session is created.
type StartResult struct {
	InterviewID      string   `json:"interview_id"`
	Question         Question `json:"question"`
	QuestionNumber   int      `json:"question_number"`
	TotalQuestions   int      `json:"total_questions"`
	EstimatedMinutes int      `json:"estimated_minutes"`
}

// NextQuestionResult carries either the next question or the exhaustion
// signal. When IsComplete is true no question is present and the caller
// is expected to complete the interview.
type NextQuestionResult struct {
	Question       *Question `json:"question,omitempty"`
	QuestionNumber int       `json:"question_number,omitempty"`
	TotalQuestions int       `json:"total_questions"`
	IsComplete     bool      `json:"is_complete"`
}

// SubmitAnswerResult is returned after an answer is evaluated and stored.
// A duplicate submission for an already-answered question returns the
// stored evaluation with AlreadySubmitted set.
type SubmitAnswerResult struct {
	Evaluation       Evaluation `json:"evaluation"`
	AnswersCount     int        `json:"answers_count"`
	TotalQuestions   int        `json:"total_questions"`
	AlreadySubmitted bool       `json:"already_submitted,omitempty"`
}

// AnswerBreakdown is one row of the per-question results breakdown.
type AnswerBreakdown struct {
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	TimeSpent    int      `json:"time_spent"`
}

// InterviewResults is the results view of a completed interview.
type InterviewResults struct {
	InterviewID     string            `json:"interview_id"`
	Role            string            `json:"role"`
	ExperienceLevel int               `json:"experience_level"`
	OverallScore    int               `json:"overall_score"`
	AverageScore    float64           `json:"average_score"`
	Strengths       []string          `json:"strengths"`
	WeakAreas       []string          `json:"weak_areas"`
	Improvements    []string          `json:"improvements"`
	Summary         string            `json:"summary"`
	Answers         []AnswerBreakdown `json:"answers"`
	Duration        int               `json:"duration"`
	CompletedAt     *time.Time        `json:"completed_at"`
}

// HistoryItem is one row of the paginated interview history.
type HistoryItem struct {
	ID                string     `json:"id"`
	Role              string     `json:"role"`
	ExperienceLevel   int        `json:"experience_level"`
	Status            string     `json:"status"`
	Score             int        `json:"score"`
	CompletedAt       *time.Time `json:"completed_at"`
	Duration          int        `json:"duration"`
	QuestionsAnswered int        `json:"questions_answered"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// HistoryPage is the paginated history response.
type HistoryPage struct {
	Interviews []HistoryItem `json:"interviews"`
	Pagination Pagination    `json:"pagination"`
}

// FinalFeedback is the synthesized end-of-interview feedback produced by
// the evaluator gateway.
type FinalFeedback struct {
	OverallScore int
	AverageScore float64
	Strengths    []string
	WeakAreas    []string
	Improvements []string
	Summary      string
}

// EvaluatorGateway wraps the external generative service. Implementations
// retry transient failures internally; errors surfaced from these methods
// are terminal for the current operation.
type EvaluatorGateway interface {
	// GenerateQuestion produces one question for the given role and level.
	// previousQuestions is the full prior question-text history, passed so
	// the model avoids near-duplicates.
	GenerateQuestion(ctx context.Context, role string, experienceLevel int, previousQuestions []string) (*Question, error)

	// EvaluateAnswer scores a free-text answer. Short answers are scored
	// deterministically without an external call; scores are clamped to [0,10].
	EvaluateAnswer(ctx context.Context, questionText, answerText, role string, experienceLevel int) (*Evaluation, error)

	// SynthesizeFinalFeedback produces the overall results from the full
	// answer transcript. Requires at least one answer.
	SynthesizeFinalFeedback(ctx context.Context, role string, experienceLevel int, answers []Answer) (*FinalFeedback, error)
}

// InterviewRepository is the durable keyed store for interview documents.
type InterviewRepository interface {
	Create(ctx context.Context, interview *Interview) error
	GetByID(ctx context.Context, id string) (*Interview, error)

	// Update persists a mutated interview if and only if the stored
	// version still matches interview.Version. Returns ErrVersionConflict
	// otherwise. On success the in-memory Version is incremented.
	Update(ctx context.Context, interview *Interview) error

	// FetchByOwner lists interviews for history, newest first. An empty
	// status fetches all statuses.
	FetchByOwner(ctx context.Context, ownerID, status string, limit, offset int) ([]Interview, int64, error)

	// ListCompletedByOwner returns completed interviews with CompletedAt
	// at or after since, used by the aggregation engine. A zero since
	// returns everything.
	ListCompletedByOwner(ctx context.Context, ownerID string, since time.Time) ([]Interview, error)
}

// InterviewUsecase is the interview session engine.
type InterviewUsecase interface {
	Start(ctx context.Context, ownerID, role string, experienceLevel int) (*StartResult, error)
	GetNextQuestion(ctx context.Context, interviewID, callerID string) (*NextQuestionResult, error)
	SubmitAnswer(ctx context.Context, interviewID, callerID, questionID, answerText string, timeSpent int) (*SubmitAnswerResult, error)
	Complete(ctx context.Context, interviewID, callerID string) (*InterviewResults, error)
	GetResults(ctx context.Context, interviewID, callerID string) (*InterviewResults, error)
	GetByID(ctx context.Context, interviewID, callerID string) (*Interview, error)
	GetHistory(ctx context.Context, ownerID, status string, page, limit int) (*HistoryPage, error)
}
