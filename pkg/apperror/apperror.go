package apperror

import "net/http"

// Kind is a stable, transport-independent error category. The HTTP layer
// maps kinds to status codes; callers can branch on Kind without parsing
// messages.
type Kind string

const (
	KindInvalidArgument   Kind = "invalid_argument"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindNotFound          Kind = "not_found"
	KindInvalidState      Kind = "invalid_state"
	KindConflict          Kind = "conflict"
	KindGenerationFailure Kind = "generation_failure"
	KindEvaluationFailure Kind = "evaluation_failure"
	KindSynthesisFailure  Kind = "synthesis_failure"
	KindInternal          Kind = "internal"
)

type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func InvalidArgument(message string) *AppError {
	return New(KindInvalidArgument, http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(KindForbidden, http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

// InvalidState marks an operation attempted against the wrong lifecycle
// state (e.g. submitting an answer to a completed interview).
func InvalidState(message string) *AppError {
	return New(KindInvalidState, http.StatusConflict, message, nil)
}

// Conflict marks an optimistic-concurrency collision that survived the
// engine's internal retries.
func Conflict(message string) *AppError {
	return New(KindConflict, http.StatusConflict, message, nil)
}

func GenerationFailure(err error) *AppError {
	return New(KindGenerationFailure, http.StatusBadGateway, "Failed to generate interview question", err)
}

func EvaluationFailure(err error) *AppError {
	return New(KindEvaluationFailure, http.StatusBadGateway, "Failed to evaluate answer", err)
}

func SynthesisFailure(err error) *AppError {
	return New(KindSynthesisFailure, http.StatusBadGateway, "Failed to generate final feedback", err)
}

func Internal(err error) *AppError {
	return New(KindInternal, http.StatusInternalServerError, "Internal Server Error", err)
}
