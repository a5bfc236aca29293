// internal/pkg/session/rate_limiter.go
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Login attempts allowed per window for one ip and username pair.
const (
	MaxLoginAttempts   = 5
	LoginAttemptWindow = 15 * time.Minute
)

type RateLimiter struct {
	client *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

func loginKey(ip, username string) string {
	return fmt.Sprintf("ratelimit:login:%s:%s", ip, strings.ToLower(username))
}

// CheckLoginAttempt counts an attempt and reports whether it is allowed
// along with how many remain.
func (r *RateLimiter) CheckLoginAttempt(ctx context.Context, ip, username string) (bool, int64, error) {
	key := loginKey(ip, username)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment login attempt: %w", err)
	}

	// Set expiration on first attempt
	if count == 1 {
		if err := r.client.Expire(ctx, key, LoginAttemptWindow).Err(); err != nil {
			// Without a window the counter would never reset.
			_ = r.client.Del(ctx, key).Err()
			return false, 0, fmt.Errorf("failed to set login attempt window: %w", err)
		}
	}

	remaining := MaxLoginAttempts - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= MaxLoginAttempts, remaining, nil
}

// ResetLoginAttempts clears the counter after a successful login.
func (r *RateLimiter) ResetLoginAttempts(ctx context.Context, ip, username string) error {
	return r.client.Del(ctx, loginKey(ip, username)).Err()
}
