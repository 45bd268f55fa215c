package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rickhouse-server/internal/models"
)

func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrQuotaExceeded):
		statusCode = http.StatusTooManyRequests
		errResp = models.ErrorResponse{Code: models.ErrCodeQuotaExceeded, Message: "Daily AI generation limit reached, try again tomorrow"}
	case errors.Is(err, models.ErrGenerationUnavailable):
		statusCode = http.StatusServiceUnavailable
		errResp = models.ErrorResponse{Code: models.ErrCodeGenerationUnavailable, Message: "AI script generation is not available"}
	case errors.Is(err, models.ErrGenerationFailed):
		statusCode = http.StatusBadGateway
		errResp = models.ErrorResponse{Code: models.ErrCodeGenerationFailed, Message: "AI script generation failed"}
	case errors.Is(err, models.ErrScoreRequired):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Code: models.ErrCodeScoreRequired, Message: err.Error()}
	case errors.Is(err, models.ErrSessionCompleted):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Code: models.ErrCodeSessionCompleted, Message: "Tasting session is already completed"}
	case errors.Is(err, models.ErrSessionNotAtEnd):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Code: models.ErrCodeSessionNotAtEnd, Message: "Session must be at the summary phase to complete"}
	case errors.Is(err, models.ErrConflict):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Code: models.ErrCodeConflict, Message: "Session was modified concurrently, retry with fresh state"}
	case errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Code: models.ErrCodeNotFound, Message: "Resource not found"}
	case errors.Is(err, models.ErrInvalidMode), errors.Is(err, models.ErrInvalidPhase), errors.Is(err, models.ErrInvalidScore):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeValidation, Message: err.Error()}
	case errors.Is(err, models.ErrTokenExpired):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeTokenExpired, Message: "Token has expired"}
	case errors.Is(err, models.ErrTokenInvalid), errors.Is(err, models.ErrTokenMalformed):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Message: "Token is invalid or malformed"}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Code: models.ErrCodeInternal, Message: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}
