package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mtlprog/ccsfeed/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Initialization precondition errors: non-retryable without a state
	// change (reset, or adding problems/participants first).
	case errors.Is(err, domain.ErrAlreadyInitialized):
		return http.StatusConflict, "ALREADY_INITIALIZED", message
	case errors.Is(err, domain.ErrNoProblems):
		return http.StatusConflict, "NO_PROBLEMS", message
	case errors.Is(err, domain.ErrNoParticipants):
		return http.StatusConflict, "NO_PARTICIPANTS", message
	case errors.Is(err, domain.ErrNotInitialized):
		return http.StatusForbidden, "NOT_INITIALIZED", message

	// Lookup errors
	case errors.Is(err, domain.ErrContestNotFound):
		return http.StatusNotFound, "CONTEST_NOT_FOUND", message
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound, "RECORD_NOT_FOUND", message
	case errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound, "EVENT_NOT_FOUND", message
	case errors.Is(err, domain.ErrEntityNotFound):
		return http.StatusNotFound, "ENTITY_NOT_FOUND", message

	// Auth errors
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", message

	// Default: internal server error
	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
