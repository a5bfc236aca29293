// internal/pkg/session/inflight.go
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
)

// InFlight is a Redis-backed set of in-flight toggle keys shared by every
// console replica. Keys expire after ttl so a crashed request cannot pin a
// record forever.
type InFlight struct {
	client *redis.Client
	ttl    time.Duration
}

// releaseScript deletes the key only if it still holds the caller's token,
// so a hold that expired and was taken by another request is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewInFlight(client *redis.Client, ttl time.Duration) *InFlight {
	return &InFlight{client: client, ttl: ttl}
}

func inFlightKey(key string) string {
	return "console:inflight:" + key
}

func (f *InFlight) Acquire(ctx context.Context, key string) (string, bool, error) {
	token := ulid.Make().String()
	ok, err := f.client.SetNX(ctx, inFlightKey(key), token, f.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire in-flight key: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (f *InFlight) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, f.client, []string{inFlightKey(key)}, token).Err(); err != nil {
		return fmt.Errorf("failed to release in-flight key: %w", err)
	}
	return nil
}
