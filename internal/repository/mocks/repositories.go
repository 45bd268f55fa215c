package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rickhouse-server/internal/models"
)

// Mock BottleRepository
type BottleRepository struct {
	mock.Mock
}

func (m *BottleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Bottle, error) {
	args := m.Called(ctx, id)
	bottle, _ := args.Get(0).(*models.Bottle)
	return bottle, args.Error(1)
}

// Mock ScriptCacheRepository
type ScriptCacheRepository struct {
	mock.Mock
}

func (m *ScriptCacheRepository) GetByBottle(ctx context.Context, bottleID uuid.UUID) (*models.TastingScript, error) {
	args := m.Called(ctx, bottleID)
	script, _ := args.Get(0).(*models.TastingScript)
	return script, args.Error(1)
}

func (m *ScriptCacheRepository) Upsert(ctx context.Context, script *models.TastingScript) error {
	args := m.Called(ctx, script)
	return args.Error(0)
}

func (m *ScriptCacheRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// Mock SessionRepository
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Create(ctx context.Context, session *models.TastingSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.TastingSession, error) {
	args := m.Called(ctx, id, userID)
	session, _ := args.Get(0).(*models.TastingSession)
	return session, args.Error(1)
}

func (m *SessionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.TastingSession, error) {
	args := m.Called(ctx, userID, limit, offset)
	sessions, _ := args.Get(0).([]models.TastingSession)
	return sessions, args.Error(1)
}

func (m *SessionRepository) UpdatePhase(ctx context.Context, id, userID uuid.UUID, fromPhase, toPhase int) error {
	args := m.Called(ctx, id, userID, fromPhase, toPhase)
	return args.Error(0)
}

func (m *SessionRepository) SetScore(ctx context.Context, id, userID uuid.UUID, phaseKey string, value int) error {
	args := m.Called(ctx, id, userID, phaseKey, value)
	return args.Error(0)
}

func (m *SessionRepository) Complete(ctx context.Context, id, userID uuid.UUID, terminalPhase int, completedAt time.Time) error {
	args := m.Called(ctx, id, userID, terminalPhase, completedAt)
	return args.Error(0)
}

// Mock QuotaRepository
type QuotaRepository struct {
	mock.Mock
}

func (m *QuotaRepository) CheckAndReserve(ctx context.Context, userID uuid.UUID, day string, limit int) (bool, int, error) {
	args := m.Called(ctx, userID, day, limit)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *QuotaRepository) Count(ctx context.Context, userID uuid.UUID, day string) (int, error) {
	args := m.Called(ctx, userID, day)
	return args.Int(0), args.Error(1)
}
