package auth

import (
	"context"
	"sync"
	"time"
)

// MemorySessionStore is an in-process SessionStore for tests and single-node
// deployments. Expiry is lazy: entries are dropped when read or overwritten
// past their deadline.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	revoked  map[string]memoryEntry
	now      func() time.Time
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemorySessionStoreOption customizes the in-memory store.
type MemorySessionStoreOption func(*MemorySessionStore)

// WithMemoryStoreClock injects a custom clock (useful for tests).
func WithMemoryStoreClock(clock func() time.Time) MemorySessionStoreOption {
	return func(s *MemorySessionStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore(opts ...MemorySessionStoreOption) *MemorySessionStore {
	s := &MemorySessionStore{
		sessions: make(map[string]memoryEntry),
		revoked:  make(map[string]memoryEntry),
		now:      time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

var _ SessionStore = (*MemorySessionStore)(nil)

// SetSession overwrites the current refresh token for the identity.
func (s *MemorySessionStore) SetSession(_ context.Context, identity, refreshToken string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[identity] = memoryEntry{
		value:     refreshToken,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// GetSession returns the stored refresh token, or ErrNoActiveSession.
func (s *MemorySessionStore) GetSession(_ context.Context, identity string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[identity]
	if !ok {
		return "", ErrNoActiveSession
	}

	if entry.expired(s.now()) {
		delete(s.sessions, identity)
		return "", ErrNoActiveSession
	}

	return entry.value, nil
}

// ClearSession deletes the session entry, idempotently.
func (s *MemorySessionStore) ClearSession(_ context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, identity)
	return nil
}

// MarkRevoked denylists the access token for the remaining lifetime.
func (s *MemorySessionStore) MarkRevoked(_ context.Context, accessToken string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.revoked[accessToken] = memoryEntry{
		value:     revokedSentinel,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// IsRevoked reports whether a live revocation marker exists for the token.
func (s *MemorySessionStore) IsRevoked(_ context.Context, accessToken string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.revoked[accessToken]
	if !ok {
		return false, nil
	}

	if entry.expired(s.now()) {
		delete(s.revoked, accessToken)
		return false, nil
	}

	return true, nil
}
