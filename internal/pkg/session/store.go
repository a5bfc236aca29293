// internal/pkg/session/store.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"landdeals-console/internal/domain/auth"
	xerrors "landdeals-console/internal/pkg/errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps console sessions in Redis. Each session lives under its
// own key with a TTL matching its expiry, and a per-user set indexes them.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(id string) string {
	return "console:session:" + id
}

func userIndexKey(userID int64) string {
	return "console:user_sessions:" + strconv.FormatInt(userID, 10)
}

// Create stores sess until its ExpiresAt.
func (s *RedisStore) Create(ctx context.Context, sess *auth.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKey(sess.ID), data, ttl)
	pipe.SAdd(ctx, userIndexKey(sess.User.ID), sess.ID)
	pipe.Expire(ctx, userIndexKey(sess.User.ID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store session in redis: %w", err)
	}
	return nil
}

// Get returns the session or ErrSessionExpired when Redis no longer has it.
func (s *RedisStore) Get(ctx context.Context, id string) (*auth.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, xerrors.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess auth.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// Delete removes one session. Deleting a missing session is not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	sess, err := s.Get(ctx, id)
	if errors.Is(err, xerrors.ErrSessionExpired) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.SRem(ctx, userIndexKey(sess.User.ID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ListForUser returns the user's live sessions, oldest first.
func (s *RedisStore) ListForUser(ctx context.Context, userID int64) ([]*auth.Session, error) {
	ids, err := s.client.SMembers(ctx, userIndexKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*auth.Session, 0, len(ids))
	for _, id := range ids {
		sess, err := s.Get(ctx, id)
		if err != nil {
			// Expired entries linger in the index until it expires itself.
			continue
		}
		sessions = append(sessions, sess)
	}
	sortByLogin(sessions)
	return sessions, nil
}

// DeleteAllForUser drops every session of userID and reports how many
// there were.
func (s *RedisStore) DeleteAllForUser(ctx context.Context, userID int64) (int, error) {
	ids, err := s.client.SMembers(ctx, userIndexKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, userIndexKey(userID))

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", err)
	}
	return len(ids), nil
}

func sortByLogin(sessions []*auth.Session) {
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].LoginAt.Before(sessions[j].LoginAt)
	})
}

// MemoryStore is a process-local session store with the same behaviour as
// RedisStore.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]auth.Session
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]auth.Session), now: time.Now}
}

func (m *MemoryStore) Create(_ context.Context, sess *auth.Session) error {
	if !sess.ExpiresAt.After(m.now()) {
		return fmt.Errorf("session already expired")
	}
	m.mu.Lock()
	m.sessions[sess.ID] = *sess
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, xerrors.ErrSessionExpired
	}
	if sess.Expired(m.now()) {
		delete(m.sessions, id)
		return nil, xerrors.ErrSessionExpired
	}
	return &sess, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) ListForUser(_ context.Context, userID int64) ([]*auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var out []*auth.Session
	for _, sess := range m.sessions {
		if sess.User.ID == userID && !sess.Expired(now) {
			sess := sess
			out = append(out, &sess)
		}
	}
	sortByLogin(out)
	return out, nil
}

func (m *MemoryStore) DeleteAllForUser(_ context.Context, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, sess := range m.sessions {
		if sess.User.ID == userID {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}
