package models

import (
	"time"

	"github.com/google/uuid"
)

// ScriptPhase is one step of the generated tasting guidance.
type ScriptPhase struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Guidance string `json:"guidance"`
}

// TastingScript is the AI-generated walkthrough for a bottle. A bottle has at
// most one cached script at a time; regeneration overwrites it, the script
// itself is never mutated in place.
type TastingScript struct {
	BottleID                uuid.UUID     `json:"bottleId" db:"bottle_id"`
	Phases                  []ScriptPhase `json:"phases" db:"phases"`
	Closing                 string        `json:"closing" db:"closing"`
	ReviewCountAtGeneration int           `json:"reviewCountAtGeneration" db:"review_count_at_generation"`
	GeneratedAt             time.Time     `json:"generatedAt" db:"generated_at"`
	ExpiresAt               *time.Time    `json:"expiresAt,omitempty" db:"expires_at"` // nil = no time expiry
}

// PhaseGuidance returns the guidance text for a phase key, or "" if the
// script has no such phase.
func (s *TastingScript) PhaseGuidance(key string) string {
	for _, p := range s.Phases {
		if p.Key == key {
			return p.Guidance
		}
	}
	return ""
}

// IsFresh reports whether a cached script is still valid: it must not have
// passed its time expiry AND the bottle's review count must be unchanged
// since generation (new community reviews invalidate the guidance).
func IsFresh(s *TastingScript, currentReviewCount int, now time.Time) bool {
	if s == nil {
		return false
	}
	if s.ExpiresAt != nil && !now.Before(*s.ExpiresAt) {
		return false
	}
	return currentReviewCount == s.ReviewCountAtGeneration
}
