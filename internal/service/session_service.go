package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rickhouse-server/internal/messaging"
	"rickhouse-server/internal/models"
	"rickhouse-server/internal/repository"
)

// SessionService drives a user through the ordered phases of a tasting.
// Scoring phases gate advancement; the summary phase is terminal and its
// successful exit (Complete) freezes the session.
type SessionService interface {
	Start(ctx context.Context, userID, bottleID uuid.UUID, mode models.TastingMode) (*models.TastingSession, *models.TastingScript, error)
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*models.TastingSession, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.TastingSession, error)
	Advance(ctx context.Context, userID, sessionID uuid.UUID) (*models.TastingSession, error)
	Retreat(ctx context.Context, userID, sessionID uuid.UUID) (*models.TastingSession, error)
	SetScore(ctx context.Context, userID, sessionID uuid.UUID, phaseKey string, value int) error
	// Complete re-validates every scoring gate (SetScore allows
	// out-of-order edits) and returns the aggregated overall rating.
	Complete(ctx context.Context, userID, sessionID uuid.UUID) (float64, error)
}

type sessionServiceImpl struct {
	sessions  repository.SessionRepository
	bottles   repository.BottleRepository
	scripts   ScriptService
	telemetry messaging.TelemetryPublisher
	logger    *zap.Logger
}

// NewSessionService creates a SessionService.
func NewSessionService(
	sessions repository.SessionRepository,
	bottles repository.BottleRepository,
	scripts ScriptService,
	telemetry messaging.TelemetryPublisher,
	logger *zap.Logger,
) SessionService {
	return &sessionServiceImpl{
		sessions:  sessions,
		bottles:   bottles,
		scripts:   scripts,
		telemetry: telemetry,
		logger:    logger.Named("SessionService"),
	}
}

func (s *sessionServiceImpl) Start(ctx context.Context, userID, bottleID uuid.UUID, mode models.TastingMode) (*models.TastingSession, *models.TastingScript, error) {
	if !mode.Valid() {
		return nil, nil, models.ErrInvalidMode
	}

	bottle, err := s.bottles.GetByID(ctx, bottleID)
	if err != nil {
		return nil, nil, err
	}

	// Script first: a failed or quota-blocked generation must not leave a
	// session row behind.
	script, err := s.scripts.GetOrGenerate(ctx, bottle, userID)
	if err != nil {
		return nil, nil, err
	}

	session := &models.TastingSession{
		ID:           uuid.New(),
		UserID:       userID,
		BottleID:     bottleID,
		Mode:         mode,
		CurrentPhase: 0,
		Scores:       map[string]int{},
		StartedAt:    time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, err
	}

	s.publishEvent(ctx, messaging.TastingEvent{
		Type:       messaging.EventTastingStarted,
		SessionID:  session.ID,
		UserID:     userID,
		BottleID:   bottleID,
		Mode:       string(mode),
		OccurredAt: session.StartedAt,
	})

	return session, script, nil
}

func (s *sessionServiceImpl) Get(ctx context.Context, userID, sessionID uuid.UUID) (*models.TastingSession, error) {
	return s.sessions.GetByID(ctx, sessionID, userID)
}

func (s *sessionServiceImpl) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.TastingSession, error) {
	return s.sessions.ListByUser(ctx, userID, limit, offset)
}

func (s *sessionServiceImpl) Advance(ctx context.Context, userID, sessionID uuid.UUID) (*models.TastingSession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted() {
		return nil, models.ErrSessionCompleted
	}

	currentKey := session.CurrentPhaseKey()
	if models.IsScoringPhase(currentKey) {
		if _, scored := session.Scores[currentKey]; !scored {
			return nil, fmt.Errorf("%w: %s", models.ErrScoreRequired, currentKey)
		}
	}

	// The cursor saturates at the summary phase; leaving it goes through
	// Complete, never Advance.
	if session.CurrentPhase >= session.TerminalPhase() {
		return session, nil
	}

	if err := s.sessions.UpdatePhase(ctx, sessionID, userID, session.CurrentPhase, session.CurrentPhase+1); err != nil {
		return nil, err
	}
	session.CurrentPhase++
	return session, nil
}

func (s *sessionServiceImpl) Retreat(ctx context.Context, userID, sessionID uuid.UUID) (*models.TastingSession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted() {
		return nil, models.ErrSessionCompleted
	}

	// Saturates at the first phase. Previously entered scores stay put so
	// the user can revisit and revise.
	if session.CurrentPhase == 0 {
		return session, nil
	}

	if err := s.sessions.UpdatePhase(ctx, sessionID, userID, session.CurrentPhase, session.CurrentPhase-1); err != nil {
		return nil, err
	}
	session.CurrentPhase--
	return session, nil
}

func (s *sessionServiceImpl) SetScore(ctx context.Context, userID, sessionID uuid.UUID, phaseKey string, value int) error {
	if value < models.MinPhaseScore || value > models.MaxPhaseScore {
		return models.ErrInvalidScore
	}

	session, err := s.sessions.GetByID(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if session.IsCompleted() {
		return models.ErrSessionCompleted
	}

	if !s.isScoringPhaseOfMode(session.Mode, phaseKey) {
		return fmt.Errorf("%w: %s", models.ErrInvalidPhase, phaseKey)
	}

	// Any scoring phase may be (re)scored at any time before completion,
	// not just the current one.
	return s.sessions.SetScore(ctx, sessionID, userID, phaseKey, value)
}

func (s *sessionServiceImpl) Complete(ctx context.Context, userID, sessionID uuid.UUID) (float64, error) {
	session, err := s.sessions.GetByID(ctx, sessionID, userID)
	if err != nil {
		return 0, err
	}
	if session.IsCompleted() {
		return 0, models.ErrSessionCompleted
	}
	if session.CurrentPhase != session.TerminalPhase() {
		return 0, models.ErrSessionNotAtEnd
	}

	if missing := session.MissingScores(); len(missing) > 0 {
		return 0, fmt.Errorf("%w: %s", models.ErrScoreRequired, strings.Join(missing, ", "))
	}

	completedAt := time.Now().UTC()
	if err := s.sessions.Complete(ctx, sessionID, userID, session.TerminalPhase(), completedAt); err != nil {
		return 0, err
	}

	rating := AggregateScores(session.Scores)

	s.publishEvent(ctx, messaging.TastingEvent{
		Type:          messaging.EventTastingCompleted,
		SessionID:     session.ID,
		UserID:        userID,
		BottleID:      session.BottleID,
		Mode:          string(session.Mode),
		OverallRating: rating,
		DurationSec:   completedAt.Sub(session.StartedAt).Seconds(),
		OccurredAt:    completedAt,
	})

	s.logger.Info("Tasting completed",
		zap.String("sessionID", session.ID.String()),
		zap.Float64("overallRating", rating),
	)
	return rating, nil
}

func (s *sessionServiceImpl) isScoringPhaseOfMode(mode models.TastingMode, phaseKey string) bool {
	if !models.IsScoringPhase(phaseKey) {
		return false
	}
	for _, key := range models.PhasesForMode(mode) {
		if key == phaseKey {
			return true
		}
	}
	return false
}

// publishEvent forwards telemetry best-effort; analytics must never fail a
// user request.
func (s *sessionServiceImpl) publishEvent(ctx context.Context, event messaging.TastingEvent) {
	if err := s.telemetry.PublishTastingEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish tasting event",
			zap.String("type", event.Type),
			zap.String("sessionID", event.SessionID.String()),
			zap.Error(err),
		)
	}
}
