package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"rickhouse-server/internal/models"
)

// Compile-time check
var _ ScriptCacheRepository = (*pgScriptCacheRepository)(nil)

type pgScriptCacheRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgScriptCacheRepository creates a PostgreSQL-backed ScriptCacheRepository.
func NewPgScriptCacheRepository(db DBTX, logger *zap.Logger) ScriptCacheRepository {
	return &pgScriptCacheRepository{
		db:     db,
		logger: logger.Named("PgScriptCacheRepo"),
	}
}

func (r *pgScriptCacheRepository) GetByBottle(ctx context.Context, bottleID uuid.UUID) (*models.TastingScript, error) {
	query := `
        SELECT bottle_id, phases, closing, review_count_at_generation, generated_at, expires_at
        FROM tasting_scripts
        WHERE bottle_id = $1
    `
	script := &models.TastingScript{}
	err := r.db.QueryRow(ctx, query, bottleID).Scan(
		&script.BottleID, &script.Phases, &script.Closing,
		&script.ReviewCountAtGeneration, &script.GeneratedAt, &script.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get cached script", zap.String("bottleID", bottleID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get cached script for bottle %s: %w", bottleID, err)
	}
	return script, nil
}

func (r *pgScriptCacheRepository) Upsert(ctx context.Context, script *models.TastingScript) error {
	query := `
        INSERT INTO tasting_scripts
            (bottle_id, phases, closing, review_count_at_generation, generated_at, expires_at)
        VALUES
            ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (bottle_id) DO UPDATE SET
            phases = EXCLUDED.phases,
            closing = EXCLUDED.closing,
            review_count_at_generation = EXCLUDED.review_count_at_generation,
            generated_at = EXCLUDED.generated_at,
            expires_at = EXCLUDED.expires_at
    `
	logFields := []zap.Field{zap.String("bottleID", script.BottleID.String())}
	_, err := r.db.Exec(ctx, query,
		script.BottleID,
		script.Phases,
		script.Closing,
		script.ReviewCountAtGeneration,
		script.GeneratedAt,
		script.ExpiresAt,
	)
	if err != nil {
		r.logger.Error("Failed to upsert script", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to upsert script for bottle %s: %w", script.BottleID, err)
	}
	r.logger.Debug("Script cached", logFields...)
	return nil
}

func (r *pgScriptCacheRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM tasting_scripts WHERE expires_at IS NOT NULL AND expires_at <= $1`
	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		r.logger.Error("Failed to delete expired scripts", zap.Error(err))
		return 0, fmt.Errorf("failed to delete expired scripts: %w", err)
	}
	return tag.RowsAffected(), nil
}
