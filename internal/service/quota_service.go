package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rickhouse-server/internal/models"
	"rickhouse-server/internal/repository"
)

// QuotaService enforces the per-user daily AI generation allowance.
type QuotaService interface {
	// CheckAndReserve atomically consumes one generation slot for today.
	// It makes no mutation when the limit is reached.
	CheckAndReserve(ctx context.Context, userID uuid.UUID) (allowed bool, remaining int, err error)
	// Status is read-only quota introspection for the UI. Configured
	// reflects whether the AI collaborator can be called at all.
	Status(ctx context.Context, userID uuid.UUID) (*models.QuotaStatus, error)
}

type quotaServiceImpl struct {
	repo       repository.QuotaRepository
	dailyLimit int
	configured bool
	logger     *zap.Logger
}

// NewQuotaService creates a QuotaService over the given counter store.
func NewQuotaService(repo repository.QuotaRepository, dailyLimit int, configured bool, logger *zap.Logger) QuotaService {
	return &quotaServiceImpl{
		repo:       repo,
		dailyLimit: dailyLimit,
		configured: configured,
		logger:     logger.Named("QuotaService"),
	}
}

func (s *quotaServiceImpl) CheckAndReserve(ctx context.Context, userID uuid.UUID) (bool, int, error) {
	day := models.QuotaDay(time.Now())
	allowed, remaining, err := s.repo.CheckAndReserve(ctx, userID, day, s.dailyLimit)
	if err != nil {
		return false, 0, fmt.Errorf("failed to reserve quota slot: %w", err)
	}
	if !allowed {
		s.logger.Info("Daily generation quota exhausted",
			zap.String("userID", userID.String()),
			zap.String("day", day),
			zap.Int("limit", s.dailyLimit),
		)
	}
	return allowed, remaining, nil
}

func (s *quotaServiceImpl) Status(ctx context.Context, userID uuid.UUID) (*models.QuotaStatus, error) {
	count, err := s.repo.Count(ctx, userID, models.QuotaDay(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to read quota count: %w", err)
	}
	remaining := s.dailyLimit - count
	if remaining < 0 {
		remaining = 0
	}
	return &models.QuotaStatus{
		DailyLimit: s.dailyLimit,
		Remaining:  remaining,
		Allowed:    s.configured && remaining > 0,
		Configured: s.configured,
	}, nil
}
