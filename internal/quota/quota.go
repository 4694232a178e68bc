// internal/quota/quota.go

// Package quota enforces the monthly pitch quota per user. Redis holds the
// live counter; when redis is unreachable the limiter falls back to counting
// rows in the store, and when that fails too it lets the request through
// rather than blocking document generation on infrastructure.
package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pitchforge/internal/common/metrics"
)

const (
	DefaultMonthlyLimit = 25

	keyPrefix = "pitch:quota:"
	// keys must outlive their month so a late Release still finds the counter
	keyTTL = 62 * 24 * time.Hour
)

var (
	ErrQuotaExceeded = errors.New("QUOTA_EXCEEDED")
)

// Counter is the store-side fallback used when redis is down.
type Counter interface {
	CountThisMonth(ctx context.Context, userID string) (int, error)
}

// Limiter reserves document slots against a user's monthly quota.
type Limiter struct {
	redis    *redis.Client
	fallback Counter
	limit    int
	logger   *zap.Logger
}

func NewLimiter(rdb *redis.Client, fallback Counter, limit int, logger *zap.Logger) *Limiter {
	if limit <= 0 {
		limit = DefaultMonthlyLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Limiter{
		redis:    rdb,
		fallback: fallback,
		limit:    limit,
		logger:   logger,
	}
}

// Limit returns the configured monthly limit.
func (l *Limiter) Limit() int {
	return l.limit
}

// Key is the redis counter key for a user in the month containing now.
func Key(userID string, now time.Time) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, userID, now.UTC().Format("2006-01"))
}

// Allow reserves one slot against the default limit and returns how many
// remain. Callers that fail downstream should Release the slot. Exceeding
// the limit returns ErrQuotaExceeded with the reservation undone.
func (l *Limiter) Allow(ctx context.Context, userID string) (int, error) {
	return l.AllowWithLimit(ctx, userID, l.limit)
}

// AllowWithLimit reserves one slot against a caller-supplied limit, for
// plan tiers whose quota differs from the default.
func (l *Limiter) AllowWithLimit(ctx context.Context, userID string, limit int) (int, error) {
	if limit <= 0 {
		limit = l.limit
	}
	key := Key(userID, time.Now())

	used, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return l.allowFromStore(ctx, userID, limit, err)
	}
	if used == 1 {
		if err := l.redis.Expire(ctx, key, keyTTL).Err(); err != nil {
			l.logger.Warn("failed to set quota key TTL",
				zap.String("key", key), zap.Error(err))
		}
	}

	if int(used) > limit {
		if err := l.redis.Decr(ctx, key).Err(); err != nil {
			l.logger.Warn("failed to undo quota reservation",
				zap.String("key", key), zap.Error(err))
		}
		metrics.QuotaRejections.Inc()
		return 0, ErrQuotaExceeded
	}
	return limit - int(used), nil
}

// Release returns a previously reserved slot, for callers whose document
// generation failed after Allow.
func (l *Limiter) Release(ctx context.Context, userID string) {
	key := Key(userID, time.Now())
	used, err := l.redis.Decr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("failed to release quota slot",
			zap.String("key", key), zap.Error(err))
		return
	}
	// a release with no matching reservation happens when Allow ran during a
	// redis outage; undo the drift
	if used < 0 {
		if err := l.redis.Incr(ctx, key).Err(); err != nil {
			l.logger.Warn("failed to correct quota counter",
				zap.String("key", key), zap.Error(err))
		}
	}
}

// Remaining reports how many slots the user has left this month without
// reserving one.
func (l *Limiter) Remaining(ctx context.Context, userID string) (int, error) {
	key := Key(userID, time.Now())

	used, err := l.redis.Get(ctx, key).Int()
	if errors.Is(err, redis.Nil) {
		return l.limit, nil
	}
	if err != nil {
		count, ferr := l.fallbackCount(ctx, userID, err)
		if ferr != nil {
			return 0, ferr
		}
		used = count
	}

	remaining := l.limit - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// allowFromStore is the redis-down path: count rows instead. A failure here
// too degrades open so an infrastructure outage never blocks generation.
func (l *Limiter) allowFromStore(ctx context.Context, userID string, limit int, cause error) (int, error) {
	l.logger.Error("quota redis unavailable, falling back to store count",
		zap.String("userId", userID), zap.Error(cause))

	used, err := l.fallback.CountThisMonth(ctx, userID)
	if err != nil {
		l.logger.Error("quota fallback count failed, allowing request",
			zap.String("userId", userID), zap.Error(err))
		return limit, nil
	}

	if used >= limit {
		metrics.QuotaRejections.Inc()
		return 0, ErrQuotaExceeded
	}
	return limit - used - 1, nil
}

func (l *Limiter) fallbackCount(ctx context.Context, userID string, cause error) (int, error) {
	l.logger.Error("quota redis unavailable, falling back to store count",
		zap.String("userId", userID), zap.Error(cause))
	return l.fallback.CountThisMonth(ctx, userID)
}
