package handler

import (
	"github.com/google/uuid"

	"rickhouse-server/internal/models"
)

type startTastingRequest struct {
	BottleID uuid.UUID `json:"bottleId" binding:"required"`
	Mode     string    `json:"mode" binding:"required"`
}

type scoreRequest struct {
	Phase string `json:"phase" binding:"required"`
	Value int    `json:"value" binding:"required"`
}

// sessionResponse augments the stored session with the resolved phase keys so
// clients don't hard-code the phase order.
type sessionResponse struct {
	*models.TastingSession
	CurrentPhaseKey string   `json:"currentPhaseKey"`
	PhaseKeys       []string `json:"phaseKeys"`
}

func toSessionResponse(session *models.TastingSession) sessionResponse {
	return sessionResponse{
		TastingSession:  session,
		CurrentPhaseKey: session.CurrentPhaseKey(),
		PhaseKeys:       session.Phases(),
	}
}

type startTastingResponse struct {
	Session sessionResponse       `json:"session"`
	Script  *models.TastingScript `json:"script"`
}

type completeTastingResponse struct {
	SessionID     uuid.UUID `json:"sessionId"`
	OverallRating float64   `json:"overallRating"`
}
