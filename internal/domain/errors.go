package domain

import "errors"

// Domain-specific errors for feed operations.
var (
	// Initialization precondition errors
	ErrAlreadyInitialized = errors.New("contest already initialized")
	ErrNoProblems         = errors.New("contest has no problems")
	ErrNoParticipants     = errors.New("contest has no participants")
	ErrNotInitialized     = errors.New("contest not initialized")

	// Lookup errors
	ErrContestNotFound = errors.New("contest not found")
	ErrRecordNotFound  = errors.New("record not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrEntityNotFound  = errors.New("entity not found")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
)
