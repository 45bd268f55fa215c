package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"rickhouse-server/internal/models"
)

// Compile-time check
var _ SessionRepository = (*pgSessionRepository)(nil)

type pgSessionRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgSessionRepository creates a PostgreSQL-backed SessionRepository.
func NewPgSessionRepository(db DBTX, logger *zap.Logger) SessionRepository {
	return &pgSessionRepository{
		db:     db,
		logger: logger.Named("PgSessionRepo"),
	}
}

func (r *pgSessionRepository) Create(ctx context.Context, session *models.TastingSession) error {
	query := `
        INSERT INTO tasting_sessions
            (id, user_id, bottle_id, mode, current_phase, scores, started_at, completed_at)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	logFields := []zap.Field{
		zap.String("sessionID", session.ID.String()),
		zap.String("userID", session.UserID.String()),
	}
	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.BottleID,
		session.Mode,
		session.CurrentPhase,
		session.Scores,
		session.StartedAt,
		session.CompletedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create session", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create tasting session: %w", err)
	}
	r.logger.Info("Tasting session created", logFields...)
	return nil
}

func (r *pgSessionRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.TastingSession, error) {
	query := `
        SELECT id, user_id, bottle_id, mode, current_phase, scores, started_at, completed_at
        FROM tasting_sessions
        WHERE id = $1 AND user_id = $2
    `
	session := &models.TastingSession{}
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&session.ID, &session.UserID, &session.BottleID, &session.Mode,
		&session.CurrentPhase, &session.Scores, &session.StartedAt, &session.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get session", zap.String("sessionID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get tasting session %s: %w", id, err)
	}
	return session, nil
}

func (r *pgSessionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.TastingSession, error) {
	query := `
        SELECT id, user_id, bottle_id, mode, current_phase, scores, started_at, completed_at
        FROM tasting_sessions
        WHERE user_id = $1
        ORDER BY started_at DESC
        LIMIT $2 OFFSET $3
    `
	var sessions []models.TastingSession
	if err := pgxscan.Select(ctx, r.db, &sessions, query, userID, limit, offset); err != nil {
		r.logger.Error("Failed to list sessions", zap.String("userID", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list tasting sessions: %w", err)
	}
	return sessions, nil
}

// UpdatePhase performs a compare-and-set on the phase cursor. A lost race or
// a concurrently completed session both surface as models.ErrConflict.
func (r *pgSessionRepository) UpdatePhase(ctx context.Context, id, userID uuid.UUID, fromPhase, toPhase int) error {
	query := `
        UPDATE tasting_sessions
        SET current_phase = $4
        WHERE id = $1 AND user_id = $2 AND current_phase = $3 AND completed_at IS NULL
    `
	tag, err := r.db.Exec(ctx, query, id, userID, fromPhase, toPhase)
	if err != nil {
		r.logger.Error("Failed to update session phase", zap.String("sessionID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to update phase for session %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrConflict
	}
	return nil
}

func (r *pgSessionRepository) SetScore(ctx context.Context, id, userID uuid.UUID, phaseKey string, value int) error {
	query := `
        UPDATE tasting_sessions
        SET scores = scores || jsonb_build_object($3::text, $4::int)
        WHERE id = $1 AND user_id = $2 AND completed_at IS NULL
    `
	tag, err := r.db.Exec(ctx, query, id, userID, phaseKey, value)
	if err != nil {
		r.logger.Error("Failed to set score", zap.String("sessionID", id.String()), zap.String("phase", phaseKey), zap.Error(err))
		return fmt.Errorf("failed to set score for session %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrConflict
	}
	return nil
}

func (r *pgSessionRepository) Complete(ctx context.Context, id, userID uuid.UUID, terminalPhase int, completedAt time.Time) error {
	query := `
        UPDATE tasting_sessions
        SET completed_at = $4
        WHERE id = $1 AND user_id = $2 AND current_phase = $3 AND completed_at IS NULL
    `
	tag, err := r.db.Exec(ctx, query, id, userID, terminalPhase, completedAt)
	if err != nil {
		r.logger.Error("Failed to complete session", zap.String("sessionID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to complete session %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrConflict
	}
	r.logger.Info("Tasting session completed", zap.String("sessionID", id.String()))
	return nil
}
