package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time check
var _ QuotaRepository = (*memoryQuotaRepository)(nil)

type memoryQuotaRepository struct {
	mu     sync.Mutex
	counts map[string]int
	logger *zap.Logger
}

// NewMemoryQuotaRepository creates an in-process QuotaRepository. Counters
// are keyed by (user, day) so no explicit day-boundary reset is needed. Only
// correct for a single server instance; multi-instance deployments must use
// the Redis implementation.
func NewMemoryQuotaRepository(logger *zap.Logger) QuotaRepository {
	return &memoryQuotaRepository{
		counts: make(map[string]int),
		logger: logger.Named("MemoryQuotaRepo"),
	}
}

func (r *memoryQuotaRepository) key(userID uuid.UUID, day string) string {
	return fmt.Sprintf("%s:%s", userID, day)
}

func (r *memoryQuotaRepository) CheckAndReserve(_ context.Context, userID uuid.UUID, day string, limit int) (bool, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.key(userID, day)
	count := r.counts[key]
	if count >= limit {
		return false, 0, nil
	}
	r.counts[key] = count + 1
	return true, limit - count - 1, nil
}

func (r *memoryQuotaRepository) Count(_ context.Context, userID uuid.UUID, day string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[r.key(userID, day)], nil
}
