package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"rickhouse-server/internal/models"
)

// Compile-time check
var _ BottleRepository = (*pgBottleRepository)(nil)

type pgBottleRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgBottleRepository creates a PostgreSQL-backed BottleRepository.
func NewPgBottleRepository(db DBTX, logger *zap.Logger) BottleRepository {
	return &pgBottleRepository{
		db:     db,
		logger: logger.Named("PgBottleRepo"),
	}
}

func (r *pgBottleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Bottle, error) {
	query := `
        SELECT id, name, distillery, whiskey_type, age_years, abv, review_count, created_at
        FROM bottles
        WHERE id = $1
    `
	bottle := &models.Bottle{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&bottle.ID, &bottle.Name, &bottle.Distillery, &bottle.WhiskeyType,
		&bottle.AgeYears, &bottle.ABV, &bottle.ReviewCount, &bottle.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Bottle not found", zap.String("bottleID", id.String()))
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get bottle", zap.String("bottleID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get bottle %s: %w", id, err)
	}
	return bottle, nil
}
