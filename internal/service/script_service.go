package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rickhouse-server/internal/models"
	"rickhouse-server/internal/repository"
)

// ScriptService produces tasting scripts, serving cached content whenever it
// is still fresh so repeated tastings of the same bottle don't re-pay the
// generation cost.
type ScriptService interface {
	// GetOrGenerate returns the script for a bottle. Cache hits are free;
	// a miss or stale entry consumes one quota slot and calls the AI
	// collaborator. Failure modes: models.ErrQuotaExceeded,
	// models.ErrGenerationUnavailable, models.ErrGenerationFailed.
	GetOrGenerate(ctx context.Context, bottle *models.Bottle, userID uuid.UUID) (*models.TastingScript, error)
	// StartCacheSweep launches the periodic purge of time-expired cache
	// rows. Housekeeping only; freshness is re-checked on every read.
	StartCacheSweep(ctx context.Context, interval time.Duration)
}

type scriptServiceImpl struct {
	cache     repository.ScriptCacheRepository
	quota     QuotaService
	aiClient  AIClient // nil when the collaborator is not configured
	aiTimeout time.Duration
	scriptTTL time.Duration
	logger    *zap.Logger
}

// NewScriptService creates a ScriptService. aiClient may be nil, in which
// case every regeneration attempt fails with models.ErrGenerationUnavailable
// while fresh cached scripts keep being served.
func NewScriptService(
	cache repository.ScriptCacheRepository,
	quota QuotaService,
	aiClient AIClient,
	aiTimeout time.Duration,
	scriptTTL time.Duration,
	logger *zap.Logger,
) ScriptService {
	return &scriptServiceImpl{
		cache:     cache,
		quota:     quota,
		aiClient:  aiClient,
		aiTimeout: aiTimeout,
		scriptTTL: scriptTTL,
		logger:    logger.Named("ScriptService"),
	}
}

func (s *scriptServiceImpl) GetOrGenerate(ctx context.Context, bottle *models.Bottle, userID uuid.UUID) (*models.TastingScript, error) {
	logFields := []zap.Field{
		zap.String("bottleID", bottle.ID.String()),
		zap.String("userID", userID.String()),
	}

	cached, err := s.cache.GetByBottle(ctx, bottle.ID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up cached script: %w", err)
	}

	now := time.Now().UTC()
	if models.IsFresh(cached, bottle.ReviewCount, now) {
		s.logger.Debug("Serving cached tasting script", logFields...)
		return cached, nil
	}

	if s.aiClient == nil {
		return nil, models.ErrGenerationUnavailable
	}

	allowed, remaining, err := s.quota.CheckAndReserve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, models.ErrQuotaExceeded
	}

	s.logger.Info("Generating tasting script",
		append(logFields, zap.Int("quotaRemaining", remaining), zap.Bool("hadStaleEntry", cached != nil))...)

	systemPrompt, userInput := buildScriptPrompts(bottle)

	aiCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	responseText, usage, err := s.aiClient.GenerateText(aiCtx, systemPrompt, userInput)
	if err != nil {
		// The stale or absent prior entry stays authoritative; nothing is
		// written on failure. A timeout is just another failed call.
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: timed out after %s", models.ErrGenerationFailed, s.aiTimeout)
		}
		return nil, err
	}

	phases, closing, err := parseScriptResponse(responseText)
	if err != nil {
		s.logger.Warn("AI returned unusable script content", append(logFields, zap.Error(err))...)
		return nil, err
	}

	expiresAt := now.Add(s.scriptTTL)
	script := &models.TastingScript{
		BottleID:                bottle.ID,
		Phases:                  phases,
		Closing:                 closing,
		ReviewCountAtGeneration: bottle.ReviewCount,
		GeneratedAt:             now,
		ExpiresAt:               &expiresAt,
	}

	if err := s.cache.Upsert(ctx, script); err != nil {
		return nil, fmt.Errorf("failed to cache generated script: %w", err)
	}

	s.logger.Info("Tasting script generated and cached",
		append(logFields, zap.Int("totalTokens", usage.TotalTokens))...)
	return script, nil
}

func (s *scriptServiceImpl) StartCacheSweep(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := s.cache.DeleteExpired(ctx, time.Now().UTC())
				if err != nil {
					s.logger.Warn("Cache sweep failed", zap.Error(err))
					continue
				}
				if deleted > 0 {
					s.logger.Info("Cache sweep removed expired scripts", zap.Int64("deleted", deleted))
				}
			}
		}
	}()
}
