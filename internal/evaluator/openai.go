package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
)

// chatClient is the slice of the OpenAI SDK the gateway uses. Tests
// substitute a fake to assert call counts and inject malformed output.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config tunes the gateway's model selection and failure policy.
type Config struct {
	Model           string
	MaxRetries      int           // retries after the first attempt
	Timeout         time.Duration // per-attempt budget
	MinAnswerLength int           // below this, evaluation short-circuits to zero
}

// Gateway implements domain.EvaluatorGateway against the OpenAI
// chat-completions API.
type Gateway struct {
	client chatClient
	cfg    Config
}

// New builds a Gateway around an OpenAI-compatible chat client.
func New(client chatClient, cfg Config) *Gateway {
	if cfg.Model == "" {
		cfg.Model = "gpt-4"
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MinAnswerLength <= 0 {
		cfg.MinAnswerLength = 10
	}
	return &Gateway{client: client, cfg: cfg}
}

// NewOpenAIClient builds the SDK client, honoring an alternate base URL
// for OpenAI-compatible endpoints.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}

type questionPayload struct {
	Question         string `json:"question"`
	Category         string `json:"category"`
	Difficulty       string `json:"difficulty"`
	ExpectedDuration int    `json:"expectedDuration"`
}

type evaluationPayload struct {
	Score        float64  `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

type synthesisPayload struct {
	Strengths    []string `json:"strengths"`
	WeakAreas    []string `json:"weakAreas"`
	Improvements []string `json:"improvements"`
	Summary      string   `json:"summary"`
}

// GenerateQuestion produces one question for the session position implied
// by len(previousQuestions). The full history rides along in the prompt so
// the model avoids near-duplicates; an empty question text from the model
// counts as a failed attempt and is retried.
func (g *Gateway) GenerateQuestion(ctx context.Context, role string, experienceLevel int, previousQuestions []string) (*domain.Question, error) {
	cfg := domain.ConfigForLevel(experienceLevel)
	system, user, difficulty := buildQuestionPrompt(role, experienceLevel, previousQuestions, cfg)

	var payload questionPayload
	err := g.callWithRetry(ctx, func(ctx context.Context) error {
		content, err := g.chat(ctx, system, user, 0.9, 600)
		if err != nil {
			return err
		}
		payload = questionPayload{}
		if err := json.Unmarshal([]byte(content), &payload); err != nil {
			return fmt.Errorf("%w: %v", errInvalidPayload, err)
		}
		if strings.TrimSpace(payload.Question) == "" {
			return fmt.Errorf("%w: empty question text", errInvalidPayload)
		}
		return nil
	})
	if err != nil {
		return nil, apperror.GenerationFailure(err)
	}

	category := payload.Category
	if category == "" {
		category = "General"
	}

	return &domain.Question{
		ID:               newQuestionID(),
		Text:             payload.Question,
		Category:         category,
		Difficulty:       difficulty,
		ExpectedDuration: cfg.SecondsPerQuestion,
	}, nil
}

// EvaluateAnswer scores a free-text answer. Answers below the minimum
// length never reach the external service: they get a deterministic
// zero-score evaluation, which is both cheaper and safer than letting the
// model invent feedback for an empty submission.
func (g *Gateway) EvaluateAnswer(ctx context.Context, questionText, answerText, role string, experienceLevel int) (*domain.Evaluation, error) {
	trimmed := strings.TrimSpace(answerText)
	if len(trimmed) < g.cfg.MinAnswerLength {
		return &domain.Evaluation{
			Score:        0,
			Feedback:     "No substantial answer provided. Please provide a detailed response to demonstrate your understanding.",
			Strengths:    []string{},
			Improvements: []string{"Provide a complete answer", "Explain your reasoning", "Give specific examples"},
		}, nil
	}

	system, user := buildEvaluationPrompt(questionText, trimmed, role, experienceLevel)

	var payload evaluationPayload
	err := g.callWithRetry(ctx, func(ctx context.Context) error {
		content, err := g.chat(ctx, system, user, 0.7, 600)
		if err != nil {
			return err
		}
		payload = evaluationPayload{}
		if err := json.Unmarshal([]byte(content), &payload); err != nil {
			return fmt.Errorf("%w: %v", errInvalidPayload, err)
		}
		return nil
	})
	if err != nil {
		return nil, apperror.EvaluationFailure(err)
	}

	feedback := payload.Feedback
	if feedback == "" {
		feedback = "No feedback available"
	}

	return &domain.Evaluation{
		Score:        clampScore(payload.Score),
		Feedback:     feedback,
		Strengths:    emptyIfNil(payload.Strengths),
		Improvements: emptyIfNil(payload.Improvements),
	}, nil
}

// SynthesizeFinalFeedback derives the numeric results locally and asks
// the model only for the narrative parts. Missing narrative fields fall
// back to defaults; only a failed call after retries surfaces an error.
func (g *Gateway) SynthesizeFinalFeedback(ctx context.Context, role string, experienceLevel int, answers []domain.Answer) (*domain.FinalFeedback, error) {
	if len(answers) == 0 {
		return nil, apperror.InvalidArgument("Cannot synthesize feedback without answers")
	}

	totalScore := 0
	for _, a := range answers {
		totalScore += a.Evaluation.Score
	}
	averageScore := float64(totalScore) / float64(len(answers))
	overallScore := int(math.Round(averageScore / 10 * 100))

	system, user := buildSynthesisPrompt(role, experienceLevel, answers, averageScore, overallScore)

	var payload synthesisPayload
	err := g.callWithRetry(ctx, func(ctx context.Context) error {
		content, err := g.chat(ctx, system, user, 0.7, 1500)
		if err != nil {
			return err
		}
		payload = synthesisPayload{}
		if err := json.Unmarshal([]byte(content), &payload); err != nil {
			return fmt.Errorf("%w: %v", errInvalidPayload, err)
		}
		return nil
	})
	if err != nil {
		return nil, apperror.SynthesisFailure(err)
	}

	summary := payload.Summary
	if summary == "" {
		summary = "Interview completed successfully."
	}

	return &domain.FinalFeedback{
		OverallScore: overallScore,
		AverageScore: averageScore,
		Strengths:    emptyIfNil(payload.Strengths),
		WeakAreas:    emptyIfNil(payload.WeakAreas),
		Improvements: emptyIfNil(payload.Improvements),
		Summary:      summary,
	}, nil
}

// chat performs one chat-completion round trip and returns the content
// with any markdown code fences stripped.
func (g *Gateway) chat(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", errInvalidPayload)
	}
	return stripJSONFences(resp.Choices[0].Message.Content), nil
}

// stripJSONFences removes markdown code fences some models wrap around
// JSON output.
func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// clampScore forces a model-reported score into [0,10].
func clampScore(score float64) int {
	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 10 {
		return 10
	}
	return rounded
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// newQuestionID combines a millisecond timestamp with random bytes so ids
// never collide within one session.
func newQuestionID() string {
	return fmt.Sprintf("q_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
