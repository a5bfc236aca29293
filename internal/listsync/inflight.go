// internal/listsync/inflight.go
package listsync

import (
	"context"
	"sync"

	"github.com/oklog/ulid/v2"
)

// InFlightSet marks records whose flag request has not resolved yet. A
// second toggle for a marked key is dropped.
type InFlightSet interface {
	// Acquire marks key and reports whether it was free. The returned token
	// identifies this hold and must be passed back to Release.
	Acquire(ctx context.Context, key string) (string, bool, error)
	// Release clears key only while it is still held under token.
	Release(ctx context.Context, key, token string) error
}

// MemoryInFlight is an InFlightSet local to one process.
type MemoryInFlight struct {
	mu   sync.Mutex
	keys map[string]string
}

func NewMemoryInFlight() *MemoryInFlight {
	return &MemoryInFlight{keys: make(map[string]string)}
}

func (m *MemoryInFlight) Acquire(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, busy := m.keys[key]; busy {
		return "", false, nil
	}
	token := ulid.Make().String()
	m.keys[key] = token
	return token, true, nil
}

func (m *MemoryInFlight) Release(_ context.Context, key, token string) error {
	m.mu.Lock()
	if m.keys[key] == token {
		delete(m.keys, key)
	}
	m.mu.Unlock()
	return nil
}
