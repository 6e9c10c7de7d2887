package evaluator

import (
	"context"
	"errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
)

// fakeChat returns canned responses in order, then repeats the last one.
type fakeChat struct {
	responses []string
	err       error
	calls     int
}

func (f *fakeChat) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	idx := f.calls - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.responses[idx]}},
		},
	}, nil
}

func newTestGateway(client chatClient, maxRetries int) *Gateway {
	return New(client, Config{
		Model:      "gpt-4",
		MaxRetries: maxRetries,
		Timeout:    time.Second,
	})
}

func TestGenerateQuestion(t *testing.T) {
	t.Run("parses a fenced JSON response", func(t *testing.T) {
		fake := &fakeChat{responses: []string{
			"```json\n{\"question\": \"Explain goroutines.\", \"category\": \"Concurrency\", \"difficulty\": \"easy\", \"expectedDuration\": 180}\n```",
		}}
		gw := newTestGateway(fake, 0)

		q, err := gw.GenerateQuestion(context.Background(), "backend", 1, nil)
		require.NoError(t, err)
		assert.Equal(t, "Explain goroutines.", q.Text)
		assert.Equal(t, "Concurrency", q.Category)
		assert.Equal(t, domain.DifficultyEasy, q.Difficulty)
		assert.NotEmpty(t, q.ID)
		assert.Equal(t, 180, q.ExpectedDuration)
	})

	t.Run("defaults missing category", func(t *testing.T) {
		fake := &fakeChat{responses: []string{`{"question": "What is REST?"}`}}
		gw := newTestGateway(fake, 0)

		q, err := gw.GenerateQuestion(context.Background(), "backend", 1, nil)
		require.NoError(t, err)
		assert.Equal(t, "General", q.Category)
	})

	t.Run("retries a malformed response then succeeds", func(t *testing.T) {
		fake := &fakeChat{responses: []string{
			"not json at all",
			`{"question": "Second try."}`,
		}}
		gw := newTestGateway(fake, 1)

		q, err := gw.GenerateQuestion(context.Background(), "frontend", 2, nil)
		require.NoError(t, err)
		assert.Equal(t, "Second try.", q.Text)
		assert.Equal(t, 2, fake.calls)
	})

	t.Run("empty question text exhausts retries", func(t *testing.T) {
		fake := &fakeChat{responses: []string{`{"question": "  "}`}}
		gw := newTestGateway(fake, 0)

		_, err := gw.GenerateQuestion(context.Background(), "backend", 1, nil)
		require.Error(t, err)
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindGenerationFailure, appErr.Kind)
		assert.Equal(t, 1, fake.calls)
	})

	t.Run("transport failure surfaces as generation failure", func(t *testing.T) {
		fake := &fakeChat{err: errors.New("connection refused")}
		gw := newTestGateway(fake, 0)

		_, err := gw.GenerateQuestion(context.Background(), "backend", 1, nil)
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindGenerationFailure, appErr.Kind)
	})
}

func TestEvaluateAnswer(t *testing.T) {
	t.Run("short answer never reaches the model", func(t *testing.T) {
		fake := &fakeChat{}
		gw := newTestGateway(fake, 0)

		eval, err := gw.EvaluateAnswer(context.Background(), "Explain goroutines.", "   idk  ", "backend", 1)
		require.NoError(t, err)
		assert.Equal(t, 0, eval.Score)
		assert.Contains(t, eval.Feedback, "No substantial answer provided")
		assert.NotEmpty(t, eval.Improvements)
		assert.Equal(t, 0, fake.calls)
	})

	t.Run("clamps scores above ten", func(t *testing.T) {
		fake := &fakeChat{responses: []string{`{"score": 15, "feedback": "great"}`}}
		gw := newTestGateway(fake, 0)

		eval, err := gw.EvaluateAnswer(context.Background(), "Q", "a perfectly reasonable answer", "backend", 1)
		require.NoError(t, err)
		assert.Equal(t, 10, eval.Score)
	})

	t.Run("clamps negative scores to zero", func(t *testing.T) {
		fake := &fakeChat{responses: []string{`{"score": -3, "feedback": "bad"}`}}
		gw := newTestGateway(fake, 0)

		eval, err := gw.EvaluateAnswer(context.Background(), "Q", "a perfectly reasonable answer", "backend", 1)
		require.NoError(t, err)
		assert.Equal(t, 0, eval.Score)
	})

	t.Run("nil slices come back empty, not null", func(t *testing.T) {
		fake := &fakeChat{responses: []string{`{"score": 7, "feedback": "solid"}`}}
		gw := newTestGateway(fake, 0)

		eval, err := gw.EvaluateAnswer(context.Background(), "Q", "a perfectly reasonable answer", "backend", 1)
		require.NoError(t, err)
		assert.NotNil(t, eval.Strengths)
		assert.NotNil(t, eval.Improvements)
	})
}

func TestSynthesizeFinalFeedback(t *testing.T) {
	answers := []domain.Answer{
		{Question: "Q1", Answer: "A1", Evaluation: domain.Evaluation{Score: 8}},
		{Question: "Q2", Answer: "A2", Evaluation: domain.Evaluation{Score: 6}},
	}

	t.Run("computes scores locally", func(t *testing.T) {
		fake := &fakeChat{responses: []string{`{"summary": "Decent showing.", "strengths": ["communication"]}`}}
		gw := newTestGateway(fake, 0)

		fb, err := gw.SynthesizeFinalFeedback(context.Background(), "backend", 1, answers)
		require.NoError(t, err)
		assert.Equal(t, 70, fb.OverallScore)
		assert.InDelta(t, 7.0, fb.AverageScore, 0.001)
		assert.Equal(t, "Decent showing.", fb.Summary)
	})

	t.Run("missing narrative fields fall back to defaults", func(t *testing.T) {
		fake := &fakeChat{responses: []string{`{}`}}
		gw := newTestGateway(fake, 0)

		fb, err := gw.SynthesizeFinalFeedback(context.Background(), "backend", 1, answers)
		require.NoError(t, err)
		assert.Equal(t, "Interview completed successfully.", fb.Summary)
		assert.NotNil(t, fb.Strengths)
		assert.NotNil(t, fb.WeakAreas)
	})

	t.Run("rejects empty transcript", func(t *testing.T) {
		gw := newTestGateway(&fakeChat{}, 0)

		_, err := gw.SynthesizeFinalFeedback(context.Background(), "backend", 1, nil)
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindInvalidArgument, appErr.Kind)
	})

	t.Run("failed call surfaces as synthesis failure", func(t *testing.T) {
		fake := &fakeChat{err: errors.New("rate limited")}
		gw := newTestGateway(fake, 0)

		_, err := gw.SynthesizeFinalFeedback(context.Background(), "backend", 1, answers)
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindSynthesisFailure, appErr.Kind)
	})
}

func TestDifficultyForPosition(t *testing.T) {
	cases := []struct {
		position int
		total    int
		want     string
	}{
		{1, 10, domain.DifficultyEasy},
		{2, 10, domain.DifficultyEasy},
		{3, 10, domain.DifficultyMedium},
		{8, 10, domain.DifficultyMedium},
		{9, 10, domain.DifficultyHard},
		{10, 10, domain.DifficultyHard},
		{7, 8, domain.DifficultyHard},
		{8, 8, domain.DifficultyHard},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DifficultyForPosition(c.position, c.total), "position %d of %d", c.position, c.total)
	}
}

func TestStripJSONFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripJSONFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripJSONFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripJSONFences(`{"a":1}`))
}
