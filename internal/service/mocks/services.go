package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rickhouse-server/internal/models"
	"rickhouse-server/internal/service"
)

// MockAIClient is a mock of the service.AIClient interface.
type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) GenerateText(ctx context.Context, systemPrompt, userInput string) (string, service.UsageInfo, error) {
	args := m.Called(ctx, systemPrompt, userInput)
	return args.String(0), args.Get(1).(service.UsageInfo), args.Error(2)
}

// MockScriptService is a mock of the service.ScriptService interface.
type MockScriptService struct {
	mock.Mock
}

func (m *MockScriptService) GetOrGenerate(ctx context.Context, bottle *models.Bottle, userID uuid.UUID) (*models.TastingScript, error) {
	args := m.Called(ctx, bottle, userID)
	var script *models.TastingScript
	if args.Get(0) != nil {
		script = args.Get(0).(*models.TastingScript)
	}
	return script, args.Error(1)
}

func (m *MockScriptService) StartCacheSweep(ctx context.Context, interval time.Duration) {
	m.Called(ctx, interval)
}

// MockSessionService is a mock of the service.SessionService interface.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Start(ctx context.Context, userID, bottleID uuid.UUID, mode models.TastingMode) (*models.TastingSession, *models.TastingScript, error) {
	args := m.Called(ctx, userID, bottleID, mode)
	var session *models.TastingSession
	if args.Get(0) != nil {
		session = args.Get(0).(*models.TastingSession)
	}
	var script *models.TastingScript
	if args.Get(1) != nil {
		script = args.Get(1).(*models.TastingScript)
	}
	return session, script, args.Error(2)
}

func (m *MockSessionService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*models.TastingSession, error) {
	args := m.Called(ctx, userID, sessionID)
	var session *models.TastingSession
	if args.Get(0) != nil {
		session = args.Get(0).(*models.TastingSession)
	}
	return session, args.Error(1)
}

func (m *MockSessionService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.TastingSession, error) {
	args := m.Called(ctx, userID, limit, offset)
	var sessions []models.TastingSession
	if args.Get(0) != nil {
		sessions = args.Get(0).([]models.TastingSession)
	}
	return sessions, args.Error(1)
}

func (m *MockSessionService) Advance(ctx context.Context, userID, sessionID uuid.UUID) (*models.TastingSession, error) {
	args := m.Called(ctx, userID, sessionID)
	var session *models.TastingSession
	if args.Get(0) != nil {
		session = args.Get(0).(*models.TastingSession)
	}
	return session, args.Error(1)
}

func (m *MockSessionService) Retreat(ctx context.Context, userID, sessionID uuid.UUID) (*models.TastingSession, error) {
	args := m.Called(ctx, userID, sessionID)
	var session *models.TastingSession
	if args.Get(0) != nil {
		session = args.Get(0).(*models.TastingSession)
	}
	return session, args.Error(1)
}

func (m *MockSessionService) SetScore(ctx context.Context, userID, sessionID uuid.UUID, phaseKey string, value int) error {
	args := m.Called(ctx, userID, sessionID, phaseKey, value)
	return args.Error(0)
}

func (m *MockSessionService) Complete(ctx context.Context, userID, sessionID uuid.UUID) (float64, error) {
	args := m.Called(ctx, userID, sessionID)
	return args.Get(0).(float64), args.Error(1)
}

// MockQuotaService is a mock of the service.QuotaService interface.
type MockQuotaService struct {
	mock.Mock
}

func (m *MockQuotaService) CheckAndReserve(ctx context.Context, userID uuid.UUID) (bool, int, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockQuotaService) Status(ctx context.Context, userID uuid.UUID) (*models.QuotaStatus, error) {
	args := m.Called(ctx, userID)
	var status *models.QuotaStatus
	if args.Get(0) != nil {
		status = args.Get(0).(*models.QuotaStatus)
	}
	return status, args.Error(1)
}

// Compile-time interface checks.
var (
	_ service.AIClient       = (*MockAIClient)(nil)
	_ service.ScriptService  = (*MockScriptService)(nil)
	_ service.SessionService = (*MockSessionService)(nil)
	_ service.QuotaService   = (*MockQuotaService)(nil)
)
