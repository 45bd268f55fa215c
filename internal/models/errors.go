package models

import "errors"

// Engine errors. Handlers map these to HTTP statuses, so every expected
// outcome is a sentinel the caller can branch on with errors.Is.
var (
	ErrNotFound = errors.New("resource not found") // General not found

	// Quota / generation errors
	ErrQuotaExceeded         = errors.New("daily ai generation quota exceeded")
	ErrGenerationUnavailable = errors.New("ai generation is not configured")
	ErrGenerationFailed      = errors.New("ai script generation failed")

	// Session errors
	ErrScoreRequired    = errors.New("current phase requires a score before advancing")
	ErrSessionCompleted = errors.New("tasting session is already completed")
	ErrSessionNotAtEnd  = errors.New("session has not reached the summary phase")
	ErrInvalidMode      = errors.New("invalid tasting mode")
	ErrInvalidPhase     = errors.New("unknown or non-scoring phase")
	ErrInvalidScore     = errors.New("score value out of range")
	ErrConflict         = errors.New("session was modified concurrently")

	// Auth errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// Common errors
	ErrInternalServer = errors.New("internal server error")
)
