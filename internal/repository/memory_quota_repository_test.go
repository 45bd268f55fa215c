package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryQuotaCheckAndReserve(t *testing.T) {
	repo := NewMemoryQuotaRepository(zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()
	day := "2026-08-30"

	allowed, remaining, err := repo.CheckAndReserve(ctx, userID, day, 3)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 2, remaining)

	allowed, remaining, err = repo.CheckAndReserve(ctx, userID, day, 3)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)

	allowed, remaining, err = repo.CheckAndReserve(ctx, userID, day, 3)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 0, remaining)

	// Fourth attempt is denied and makes no mutation.
	allowed, _, err = repo.CheckAndReserve(ctx, userID, day, 3)
	require.NoError(t, err)
	assert.False(t, allowed)

	count, err := repo.Count(ctx, userID, day)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMemoryQuotaIsolation(t *testing.T) {
	repo := NewMemoryQuotaRepository(zap.NewNop())
	ctx := context.Background()
	userA := uuid.New()
	userB := uuid.New()

	allowed, _, err := repo.CheckAndReserve(ctx, userA, "2026-08-30", 1)
	require.NoError(t, err)
	require.True(t, allowed)

	// Another user is unaffected.
	allowed, _, err = repo.CheckAndReserve(ctx, userB, "2026-08-30", 1)
	require.NoError(t, err)
	assert.True(t, allowed)

	// Same user, next day: counter starts over.
	allowed, _, err = repo.CheckAndReserve(ctx, userA, "2026-08-31", 1)
	require.NoError(t, err)
	assert.True(t, allowed)

	// Same user, same day: exhausted.
	allowed, _, err = repo.CheckAndReserve(ctx, userA, "2026-08-30", 1)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestMemoryQuotaConcurrentReservations(t *testing.T) {
	repo := NewMemoryQuotaRepository(zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()
	day := "2026-08-30"
	const limit = 3
	const attempts = 50

	var admitted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _, err := repo.CheckAndReserve(ctx, userID, day, limit)
			assert.NoError(t, err)
			if allowed {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	// Exactly limit reservations win, no matter how many race.
	assert.Equal(t, int32(limit), admitted.Load())

	count, err := repo.Count(ctx, userID, day)
	require.NoError(t, err)
	assert.Equal(t, limit, count)
}
