package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// quotaKeyTTL keeps day counters around slightly longer than the day itself
// so late readers still see them; the key is dead weight after that.
const quotaKeyTTL = 48 * time.Hour

// Compile-time check
var _ QuotaRepository = (*redisQuotaRepository)(nil)

type redisQuotaRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisQuotaRepository creates a Redis-backed QuotaRepository. The INCR
// counter is shared across server instances, so the per-(user, day) admission
// guarantee holds for the whole deployment.
func NewRedisQuotaRepository(client *redis.Client, logger *zap.Logger) QuotaRepository {
	return &redisQuotaRepository{
		client: client,
		logger: logger.Named("RedisQuotaRepo"),
	}
}

func quotaKey(userID uuid.UUID, day string) string {
	return fmt.Sprintf("tasting_quota:%s:%s", userID, day)
}

func (r *redisQuotaRepository) CheckAndReserve(ctx context.Context, userID uuid.UUID, day string, limit int) (bool, int, error) {
	key := quotaKey(userID, day)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to increment quota counter", zap.String("key", key), zap.Error(err))
		return false, 0, fmt.Errorf("failed to increment quota counter: %w", err)
	}
	if count == 1 {
		if err := r.client.Expire(ctx, key, quotaKeyTTL).Err(); err != nil {
			r.logger.Warn("Failed to set quota key TTL", zap.String("key", key), zap.Error(err))
		}
	}

	if count > int64(limit) {
		// Over the limit: hand the slot back so the counter reflects only
		// admitted reservations.
		if err := r.client.Decr(ctx, key).Err(); err != nil {
			r.logger.Warn("Failed to roll back quota increment", zap.String("key", key), zap.Error(err))
		}
		return false, 0, nil
	}

	remaining := limit - int(count)
	r.logger.Debug("Quota slot reserved",
		zap.String("userID", userID.String()),
		zap.String("day", day),
		zap.Int("remaining", remaining),
	)
	return true, remaining, nil
}

func (r *redisQuotaRepository) Count(ctx context.Context, userID uuid.UUID, day string) (int, error) {
	count, err := r.client.Get(ctx, quotaKey(userID, day)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read quota counter: %w", err)
	}
	return count, nil
}
