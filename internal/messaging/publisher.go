package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types published to the analytics collaborator. Abandonment is
// derived downstream from started events without a matching completion; the
// engine itself has no abandoned state.
const (
	EventTastingStarted   = "tasting.started"
	EventTastingCompleted = "tasting.completed"
)

// TastingEvent is the telemetry payload for one session lifecycle event.
type TastingEvent struct {
	Type          string    `json:"type"`
	SessionID     uuid.UUID `json:"sessionId"`
	UserID        uuid.UUID `json:"userId"`
	BottleID      uuid.UUID `json:"bottleId"`
	Mode          string    `json:"mode"`
	OverallRating float64   `json:"overallRating,omitempty"`
	DurationSec   float64   `json:"durationSec,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// TelemetryPublisher hands session lifecycle events to the analytics
// boundary. Publish failures must never fail the user-facing request.
type TelemetryPublisher interface {
	PublishTastingEvent(ctx context.Context, event TastingEvent) error
	Close() error
}
