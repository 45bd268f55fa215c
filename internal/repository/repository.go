package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"rickhouse-server/internal/models"
)

// DBTX is the subset of pgxpool.Pool / pgx.Tx the repositories need, so the
// same code runs inside and outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BottleRepository reads tasting subjects. Bottles are owned by the
// collection side of the application; the engine never writes them.
type BottleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bottle, error)
}

// ScriptCacheRepository stores at most one generated script per bottle.
// GetByBottle returns the stored script regardless of freshness; staleness is
// evaluated by the caller through models.IsFresh.
type ScriptCacheRepository interface {
	GetByBottle(ctx context.Context, bottleID uuid.UUID) (*models.TastingScript, error)
	Upsert(ctx context.Context, script *models.TastingScript) error
	// DeleteExpired removes scripts past their time expiry. Housekeeping
	// only; freshness is re-checked on every read regardless.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionRepository persists tasting sessions. Phase moves go through a
// compare-and-set on current_phase so two concurrent advances cannot both
// succeed and skip a gate.
type SessionRepository interface {
	Create(ctx context.Context, session *models.TastingSession) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*models.TastingSession, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.TastingSession, error)
	// UpdatePhase moves the cursor from fromPhase to toPhase. Returns
	// models.ErrConflict when the session moved concurrently or was
	// completed in the meantime.
	UpdatePhase(ctx context.Context, id, userID uuid.UUID, fromPhase, toPhase int) error
	// SetScore records one phase score on a not-yet-completed session.
	SetScore(ctx context.Context, id, userID uuid.UUID, phaseKey string, value int) error
	// Complete sets completed_at exactly once, only while the cursor is at
	// terminalPhase.
	Complete(ctx context.Context, id, userID uuid.UUID, terminalPhase int, completedAt time.Time) error
}

// QuotaRepository tracks per-user, per-day AI generation counts.
// CheckAndReserve must be atomic per (user, day): with one slot left, two
// concurrent callers must not both be admitted.
type QuotaRepository interface {
	CheckAndReserve(ctx context.Context, userID uuid.UUID, day string, limit int) (allowed bool, remaining int, err error)
	Count(ctx context.Context, userID uuid.UUID, day string) (int, error)
}
