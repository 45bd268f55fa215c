package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testScript(reviewCount int, expiresAt *time.Time) *TastingScript {
	return &TastingScript{
		BottleID:                uuid.New(),
		Phases:                  []ScriptPhase{{Key: PhaseIntro, Title: "Welcome", Guidance: "Pour a dram."}},
		ReviewCountAtGeneration: reviewCount,
		GeneratedAt:             time.Now().UTC().Add(-time.Hour),
		ExpiresAt:               expiresAt,
	}
}

func TestIsFresh(t *testing.T) {
	now := time.Now().UTC()
	future := now.Add(24 * time.Hour)
	past := now.Add(-time.Minute)

	t.Run("nil script is never fresh", func(t *testing.T) {
		assert.False(t, IsFresh(nil, 10, now))
	})

	t.Run("fresh when unexpired and review count unchanged", func(t *testing.T) {
		assert.True(t, IsFresh(testScript(10, &future), 10, now))
	})

	t.Run("stale when TTL elapsed even if review count unchanged", func(t *testing.T) {
		assert.False(t, IsFresh(testScript(10, &past), 10, now))
	})

	t.Run("stale exactly at expiry instant", func(t *testing.T) {
		assert.False(t, IsFresh(testScript(10, &now), 10, now))
	})

	t.Run("stale when review count moved", func(t *testing.T) {
		assert.False(t, IsFresh(testScript(10, &future), 11, now))
		// A decreased count (review deletions) also invalidates.
		assert.False(t, IsFresh(testScript(10, &future), 9, now))
	})

	t.Run("stale when both conditions violated", func(t *testing.T) {
		assert.False(t, IsFresh(testScript(10, &past), 11, now))
	})

	t.Run("no expiry means only the review count gates freshness", func(t *testing.T) {
		assert.True(t, IsFresh(testScript(3, nil), 3, now))
		assert.False(t, IsFresh(testScript(3, nil), 4, now))
	})
}

func TestIsFreshRandomized(t *testing.T) {
	// Freshness must equal the conjunction of the two conditions for any
	// combination of inputs.
	now := time.Now().UTC()
	offsets := []time.Duration{-time.Hour, -time.Nanosecond, time.Nanosecond, time.Hour}
	counts := []int{0, 1, 5, 100}

	for _, offset := range offsets {
		for _, genCount := range counts {
			for _, curCount := range counts {
				expiresAt := now.Add(offset)
				script := testScript(genCount, &expiresAt)
				want := now.Before(expiresAt) && genCount == curCount
				assert.Equal(t, want, IsFresh(script, curCount, now),
					"offset=%v genCount=%d curCount=%d", offset, genCount, curCount)
			}
		}
	}
}
