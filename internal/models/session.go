package models

import (
	"time"

	"github.com/google/uuid"
)

// TastingMode selects which phases a session walks through.
type TastingMode string

const (
	ModeGuided TastingMode = "guided" // full walkthrough incl. intro and summary
	ModeNotes  TastingMode = "notes"  // reduced list for quick note taking
)

// Valid reports whether the mode is one of the known tasting modes.
func (m TastingMode) Valid() bool {
	return m == ModeGuided || m == ModeNotes
}

// Phase keys. The order inside PhasesForMode is the order the session
// presents them in; Summary is always the terminal, non-scoring phase.
const (
	PhaseIntro     = "intro"
	PhaseNose      = "nose"
	PhaseMouthfeel = "mouthfeel"
	PhaseTaste     = "taste"
	PhaseFinish    = "finish"
	PhaseValue     = "value"
	PhaseSummary   = "summary"
)

// Score bounds for a single phase.
const (
	MinPhaseScore = 1
	MaxPhaseScore = 5
)

var (
	guidedPhases = []string{PhaseIntro, PhaseNose, PhaseMouthfeel, PhaseTaste, PhaseFinish, PhaseValue, PhaseSummary}
	notesPhases  = []string{PhaseNose, PhaseTaste, PhaseFinish, PhaseSummary}

	scoringPhases = map[string]bool{
		PhaseNose:      true,
		PhaseMouthfeel: true,
		PhaseTaste:     true,
		PhaseFinish:    true,
		PhaseValue:     true,
	}
)

// PhasesForMode returns the ordered phase list for a mode. The returned slice
// must not be modified by callers.
func PhasesForMode(mode TastingMode) []string {
	if mode == ModeNotes {
		return notesPhases
	}
	return guidedPhases
}

// ScoringPhasesForMode returns the phases of the mode that require a score
// before the session can advance past them, in presentation order.
func ScoringPhasesForMode(mode TastingMode) []string {
	var keys []string
	for _, key := range PhasesForMode(mode) {
		if scoringPhases[key] {
			keys = append(keys, key)
		}
	}
	return keys
}

// IsScoringPhase reports whether the phase key requires a score.
func IsScoringPhase(key string) bool {
	return scoringPhases[key]
}

// TastingSession is one user's walk through a bottle's script. CurrentPhase
// is a cursor into PhasesForMode(Mode); Scores is a sparse map that may be
// filled out of order, gates are re-validated on completion.
type TastingSession struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	UserID       uuid.UUID      `json:"userId" db:"user_id"`
	BottleID     uuid.UUID      `json:"bottleId" db:"bottle_id"`
	Mode         TastingMode    `json:"mode" db:"mode"`
	CurrentPhase int            `json:"currentPhase" db:"current_phase"`
	Scores       map[string]int `json:"scores" db:"scores"`
	StartedAt    time.Time      `json:"startedAt" db:"started_at"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty" db:"completed_at"`
}

// Phases returns the ordered phase keys for the session's mode.
func (s *TastingSession) Phases() []string {
	return PhasesForMode(s.Mode)
}

// CurrentPhaseKey returns the key of the phase the cursor points at.
func (s *TastingSession) CurrentPhaseKey() string {
	phases := s.Phases()
	if s.CurrentPhase < 0 || s.CurrentPhase >= len(phases) {
		return ""
	}
	return phases[s.CurrentPhase]
}

// TerminalPhase returns the index of the last phase (the summary).
func (s *TastingSession) TerminalPhase() int {
	return len(s.Phases()) - 1
}

// IsCompleted reports whether the session reached its terminal state.
func (s *TastingSession) IsCompleted() bool {
	return s.CompletedAt != nil
}

// MissingScores returns the scoring phases of the session's mode that have no
// recorded score yet, in presentation order.
func (s *TastingSession) MissingScores() []string {
	var missing []string
	for _, key := range ScoringPhasesForMode(s.Mode) {
		if _, ok := s.Scores[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
