package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 5
	defaultWindow      = 15 * time.Minute
)

// SigninThrottle bounds failed signin attempts per username within a
// rolling window, backed by a Redis counter with a TTL.
// Key format: signin:fail:<username>
type SigninThrottle struct {
	client      *redis.Client
	maxFailures int
	window      time.Duration
}

// NewSigninThrottle creates a throttle that refuses further attempts
// after maxFailures failures inside window.
func NewSigninThrottle(client *redis.Client, maxFailures int, window time.Duration) *SigninThrottle {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &SigninThrottle{client: client, maxFailures: maxFailures, window: window}
}

// Allow reports whether another signin attempt is permitted for username.
func (t *SigninThrottle) Allow(ctx context.Context, username string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(username)).Int()
	if err != nil {
		if err == redis.Nil {
			return true, nil
		}
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n < t.maxFailures, nil
}

// RecordFailure bumps the failure counter. The window starts at the
// first failure; later failures do not extend it, so a locked-out user
// recovers a fixed time after their first bad attempt.
func (t *SigninThrottle) RecordFailure(ctx context.Context, username string) error {
	key := t.key(username)

	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

// Reset clears the failure counter after a successful signin.
func (t *SigninThrottle) Reset(ctx context.Context, username string) error {
	if err := t.client.Del(ctx, t.key(username)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *SigninThrottle) key(username string) string {
	return "signin:fail:" + username
}
