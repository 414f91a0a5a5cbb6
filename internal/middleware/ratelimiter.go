package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/petmily-app/backend-go/internal/config"
)

// VerificationLimiter caps how many verification codes a single email
// address can request per day, backed by Redis.
type VerificationLimiter interface {
	// Allow reports whether another code may be sent to the address today
	// and, when allowed, counts the send.
	Allow(ctx context.Context, email string) (bool, error)

	// Close closes the Redis connection
	Close() error
}

type redisVerificationLimiter struct {
	client *redis.Client
	limit  int64
	logger *slog.Logger
}

// NewVerificationLimiter creates a Redis-backed verification limiter.
func NewVerificationLimiter(cfg *config.Config, logger *slog.Logger) (VerificationLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDB),
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("❌ [VerificationLimiter] Failed to connect to Redis", "error", err)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [VerificationLimiter] Connected to Redis",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
		"daily_limit", cfg.VerificationDailyLimit,
	)

	return &redisVerificationLimiter{
		client: client,
		limit:  cfg.VerificationDailyLimit,
		logger: logger,
	}, nil
}

// NewVerificationLimiterWithClient wraps an existing Redis client (for testing).
func NewVerificationLimiterWithClient(client *redis.Client, limit int64, logger *slog.Logger) VerificationLimiter {
	return &redisVerificationLimiter{
		client: client,
		limit:  limit,
		logger: logger,
	}
}

// dailyKey generates the Redis key for an address's daily send count.
// Format: verification:daily:{email}:{YYYY-MM-DD}
func dailyKey(email string) string {
	today := time.Now().UTC().Format("2006-01-02")
	return fmt.Sprintf("verification:daily:%s:%s", email, today)
}

func (r *redisVerificationLimiter) Allow(ctx context.Context, email string) (bool, error) {
	// Zero or negative limit means unlimited.
	if r.limit <= 0 {
		return true, nil
	}

	key := dailyKey(email)
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment counter: %w", err)
	}

	if count == 1 {
		// First send today; the counter expires at the end of the day.
		if err := r.client.Expire(ctx, key, 24*time.Hour).Err(); err != nil {
			r.logger.Warn("⚠️ [VerificationLimiter] Failed to set key expiry", "error", err)
		}
	}

	if count > r.limit {
		r.logger.Warn("⚠️ [VerificationLimiter] Daily limit exceeded",
			"email", email,
			"count", count,
			"limit", r.limit,
		)
		return false, nil
	}

	return true, nil
}

func (r *redisVerificationLimiter) Close() error {
	return r.client.Close()
}

// noOpVerificationLimiter allows everything. Used when Redis is unreachable
// so signups keep working without the abuse guard.
type noOpVerificationLimiter struct {
	logger *slog.Logger
}

// NewNoOpVerificationLimiter creates a limiter that never blocks.
func NewNoOpVerificationLimiter(logger *slog.Logger) VerificationLimiter {
	logger.Warn("⚠️ [VerificationLimiter] Using no-op limiter (no Redis)")
	return &noOpVerificationLimiter{logger: logger}
}

func (n *noOpVerificationLimiter) Allow(ctx context.Context, email string) (bool, error) {
	return true, nil
}

func (n *noOpVerificationLimiter) Close() error {
	return nil
}
