package messaging

import (
	"context"

	"go.uber.org/zap"
)

// Compile-time check
var _ TelemetryPublisher = (*noopTelemetryPublisher)(nil)

type noopTelemetryPublisher struct {
	logger *zap.Logger
}

// NewNoopTelemetryPublisher returns a publisher that only logs. Used when
// RabbitMQ is not configured.
func NewNoopTelemetryPublisher(logger *zap.Logger) TelemetryPublisher {
	return &noopTelemetryPublisher{logger: logger.Named("NoopTelemetryPublisher")}
}

func (p *noopTelemetryPublisher) PublishTastingEvent(_ context.Context, event TastingEvent) error {
	p.logger.Debug("Telemetry disabled, dropping tasting event", zap.String("type", event.Type))
	return nil
}

func (p *noopTelemetryPublisher) Close() error {
	return nil
}
