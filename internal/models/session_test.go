package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhasesForMode(t *testing.T) {
	assert.Equal(t,
		[]string{PhaseIntro, PhaseNose, PhaseMouthfeel, PhaseTaste, PhaseFinish, PhaseValue, PhaseSummary},
		PhasesForMode(ModeGuided))
	assert.Equal(t,
		[]string{PhaseNose, PhaseTaste, PhaseFinish, PhaseSummary},
		PhasesForMode(ModeNotes))
}

func TestScoringPhasesForMode(t *testing.T) {
	assert.Equal(t,
		[]string{PhaseNose, PhaseMouthfeel, PhaseTaste, PhaseFinish, PhaseValue},
		ScoringPhasesForMode(ModeGuided))
	assert.Equal(t,
		[]string{PhaseNose, PhaseTaste, PhaseFinish},
		ScoringPhasesForMode(ModeNotes))
}

func TestIsScoringPhase(t *testing.T) {
	assert.False(t, IsScoringPhase(PhaseIntro))
	assert.False(t, IsScoringPhase(PhaseSummary))
	assert.True(t, IsScoringPhase(PhaseNose))
	assert.True(t, IsScoringPhase(PhaseValue))
	assert.False(t, IsScoringPhase("legs"))
}

func TestTastingModeValid(t *testing.T) {
	assert.True(t, ModeGuided.Valid())
	assert.True(t, ModeNotes.Valid())
	assert.False(t, TastingMode("speedrun").Valid())
	assert.False(t, TastingMode("").Valid())
}

func TestSessionCursorHelpers(t *testing.T) {
	session := &TastingSession{Mode: ModeGuided, CurrentPhase: 0}
	assert.Equal(t, PhaseIntro, session.CurrentPhaseKey())
	assert.Equal(t, 6, session.TerminalPhase())
	assert.False(t, session.IsCompleted())

	session.CurrentPhase = session.TerminalPhase()
	assert.Equal(t, PhaseSummary, session.CurrentPhaseKey())

	session.CurrentPhase = 99
	assert.Equal(t, "", session.CurrentPhaseKey())

	notes := &TastingSession{Mode: ModeNotes}
	assert.Equal(t, 3, notes.TerminalPhase())
}

func TestMissingScores(t *testing.T) {
	session := &TastingSession{Mode: ModeGuided, Scores: map[string]int{}}
	assert.Equal(t,
		[]string{PhaseNose, PhaseMouthfeel, PhaseTaste, PhaseFinish, PhaseValue},
		session.MissingScores())

	session.Scores[PhaseMouthfeel] = 4
	session.Scores[PhaseValue] = 3
	assert.Equal(t, []string{PhaseNose, PhaseTaste, PhaseFinish}, session.MissingScores())

	for _, key := range ScoringPhasesForMode(ModeGuided) {
		session.Scores[key] = 5
	}
	assert.Empty(t, session.MissingScores())

	// Notes mode never requires mouthfeel or value.
	notes := &TastingSession{Mode: ModeNotes, Scores: map[string]int{PhaseNose: 3}}
	assert.Equal(t, []string{PhaseTaste, PhaseFinish}, notes.MissingScores())
}
