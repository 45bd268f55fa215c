package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rickhouse-server/internal/messaging"
)

// Mock TelemetryPublisher
type TelemetryPublisher struct {
	mock.Mock
}

func (m *TelemetryPublisher) PublishTastingEvent(ctx context.Context, event messaging.TastingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *TelemetryPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
