package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// SignInLimiter counts failed sign-in attempts per identity in Redis. A nil
// limiter, or one without a client, allows everything.
type SignInLimiter struct {
	rdb         *redis.Client
	maxAttempts int64
	window      time.Duration
}

func NewSignInLimiter(rdb *redis.Client, maxAttempts int, window time.Duration) *SignInLimiter {
	return &SignInLimiter{
		rdb:         rdb,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

func (l *SignInLimiter) enabled() bool {
	return l != nil && l.rdb != nil && l.maxAttempts > 0
}

func key(scope, identity string) string {
	return fmt.Sprintf("rate_limit:signin:%s:%s", scope, strings.ToLower(identity))
}

// Allow reports whether identity may attempt another sign-in.
func (l *SignInLimiter) Allow(ctx context.Context, scope, identity string) (bool, error) {
	if !l.enabled() {
		return true, nil
	}

	count, err := l.rdb.Get(ctx, key(scope, identity)).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return count < l.maxAttempts, nil
}

// RegisterFailure records a failed attempt; the window starts at the first failure.
func (l *SignInLimiter) RegisterFailure(ctx context.Context, scope, identity string) error {
	if !l.enabled() {
		return nil
	}

	k := key(scope, identity)
	count, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("failed to record sign-in failure in redis: %w", err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return fmt.Errorf("failed to set rate limit window in redis: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful sign-in.
func (l *SignInLimiter) Reset(ctx context.Context, scope, identity string) error {
	if !l.enabled() {
		return nil
	}
	return l.rdb.Del(ctx, key(scope, identity)).Err()
}

// TTL returns how long until identity may try again.
func (l *SignInLimiter) TTL(ctx context.Context, scope, identity string) (time.Duration, error) {
	if !l.enabled() {
		return 0, nil
	}
	return l.rdb.TTL(ctx, key(scope, identity)).Result()
}
