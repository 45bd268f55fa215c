package models

// Machine-readable error codes returned alongside HTTP statuses.
const (
	ErrCodeQuotaExceeded         = "QUOTA_EXCEEDED"
	ErrCodeGenerationUnavailable = "GENERATION_UNAVAILABLE"
	ErrCodeGenerationFailed      = "GENERATION_FAILED"
	ErrCodeScoreRequired         = "SCORE_REQUIRED"
	ErrCodeSessionCompleted      = "SESSION_COMPLETED"
	ErrCodeSessionNotAtEnd       = "SESSION_NOT_AT_END"
	ErrCodeNotFound              = "NOT_FOUND"
	ErrCodeConflict              = "CONFLICT"
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeBadRequest            = "BAD_REQUEST"
	ErrCodeTokenInvalid          = "TOKEN_INVALID"
	ErrCodeTokenExpired          = "TOKEN_EXPIRED"
	ErrCodeInternal              = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
