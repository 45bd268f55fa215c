package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"rickhouse-server/internal/middleware"
	"rickhouse-server/internal/models"
	"rickhouse-server/internal/service"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// TastingHandler exposes the tasting session engine over HTTP. All routes
// require an authenticated user.
type TastingHandler struct {
	sessions service.SessionService
	quota    service.QuotaService
	logger   *zap.Logger
}

func NewTastingHandler(sessions service.SessionService, quota service.QuotaService, logger *zap.Logger) *TastingHandler {
	return &TastingHandler{
		sessions: sessions,
		quota:    quota,
		logger:   logger.Named("TastingHandler"),
	}
}

func (h *TastingHandler) RegisterRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	tastings := router.Group("/tastings")
	tastings.Use(authMiddleware)
	{
		tastings.POST("", h.start)
		tastings.GET("", h.list)
		tastings.GET("/:session_id", h.get)
		tastings.POST("/:session_id/advance", h.advance)
		tastings.POST("/:session_id/retreat", h.retreat)
		tastings.POST("/:session_id/score", h.score)
		tastings.POST("/:session_id/complete", h.complete)
	}

	ai := router.Group("/ai")
	ai.Use(authMiddleware)
	{
		ai.GET("/status", h.aiStatus)
	}
}

func (h *TastingHandler) start(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var req startTastingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	session, script, err := h.sessions.Start(c.Request.Context(), userID, req.BottleID, models.TastingMode(req.Mode))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, startTastingResponse{
		Session: toSessionResponse(session),
		Script:  script,
	})
}

func (h *TastingHandler) get(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	sessionID, ok := sessionIDFromPath(c)
	if !ok {
		return
	}

	session, err := h.sessions.Get(c.Request.Context(), userID, sessionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (h *TastingHandler) list(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	limit := parseQueryInt(c, "limit", defaultListLimit)
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	offset := parseQueryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	sessions, err := h.sessions.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	responses := make([]sessionResponse, 0, len(sessions))
	for i := range sessions {
		responses = append(responses, toSessionResponse(&sessions[i]))
	}
	c.JSON(http.StatusOK, gin.H{"sessions": responses})
}

func (h *TastingHandler) advance(c *gin.Context) {
	h.movePhase(c, h.sessions.Advance)
}

func (h *TastingHandler) retreat(c *gin.Context) {
	h.movePhase(c, h.sessions.Retreat)
}

func (h *TastingHandler) score(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	sessionID, ok := sessionIDFromPath(c)
	if !ok {
		return
	}

	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.sessions.SetScore(c.Request.Context(), userID, sessionID, req.Phase, req.Value); err != nil {
		handleServiceError(c, err)
		return
	}

	session, err := h.sessions.Get(c.Request.Context(), userID, sessionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (h *TastingHandler) complete(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	sessionID, ok := sessionIDFromPath(c)
	if !ok {
		return
	}

	rating, err := h.sessions.Complete(c.Request.Context(), userID, sessionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, completeTastingResponse{
		SessionID:     sessionID,
		OverallRating: rating,
	})
}

func (h *TastingHandler) aiStatus(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	status, err := h.quota.Status(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// movePhase factors the shared load-and-respond flow of advance and retreat.
func (h *TastingHandler) movePhase(c *gin.Context, move func(ctx context.Context, userID, sessionID uuid.UUID) (*models.TastingSession, error)) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	sessionID, ok := sessionIDFromPath(c)
	if !ok {
		return
	}

	session, err := move(c.Request.Context(), userID, sessionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Message: "Authentication required"})
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Code: models.ErrCodeTokenInvalid, Message: "Authentication required"})
		return uuid.Nil, false
	}
	return userID, true
}

func sessionIDFromPath(c *gin.Context) (uuid.UUID, bool) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid session ID"})
		return uuid.Nil, false
	}
	return sessionID, true
}

func parseQueryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
