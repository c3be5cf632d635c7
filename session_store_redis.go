package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Session entries live under "RT:<identity>". Revocation markers use the raw
// access-token value as key with a sentinel value, so a downstream resource
// check can test membership with a single GET.
const (
	sessionKeyPrefix = "RT:"
	revokedSentinel  = "logout"
)

// RedisSessionStore backs the session contract with a TTL-capable Redis
// instance. Writes are plain SET commands: unconditional overwrite, last
// writer wins. There is no compare-and-set; a race between two concurrent
// logins for the same identity can leave either token as the current one.
type RedisSessionStore struct {
	rdb *redis.Client
}

// NewRedisSessionStore creates a session store on the given client.
func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

var _ SessionStore = (*RedisSessionStore)(nil)

// SetSession overwrites the current refresh token for the identity.
func (s *RedisSessionStore) SetSession(ctx context.Context, identity, refreshToken string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, sessionKey(identity), refreshToken, ttl).Err(); err != nil {
		return wrapStoreErr(err, "failed to write session entry")
	}
	return nil
}

// GetSession returns the stored refresh token. Absence means no active
// session: expired, never issued, or logged out.
func (s *RedisSessionStore) GetSession(ctx context.Context, identity string) (string, error) {
	val, err := s.rdb.Get(ctx, sessionKey(identity)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrNoActiveSession
		}
		return "", wrapStoreErr(err, "failed to read session entry")
	}
	return val, nil
}

// ClearSession deletes the session entry. Deleting a missing key is a no-op.
func (s *RedisSessionStore) ClearSession(ctx context.Context, identity string) error {
	if err := s.rdb.Del(ctx, sessionKey(identity)).Err(); err != nil {
		return wrapStoreErr(err, "failed to clear session entry")
	}
	return nil
}

// MarkRevoked denylists the exact access-token value until natural expiry.
func (s *RedisSessionStore) MarkRevoked(ctx context.Context, accessToken string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, accessToken, revokedSentinel, ttl).Err(); err != nil {
		return wrapStoreErr(err, "failed to write revocation marker")
	}
	return nil
}

// IsRevoked reports whether a revocation marker exists for the token.
func (s *RedisSessionStore) IsRevoked(ctx context.Context, accessToken string) (bool, error) {
	_, err := s.rdb.Get(ctx, accessToken).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, wrapStoreErr(err, "failed to read revocation marker")
	}
	return true, nil
}

func sessionKey(identity string) string {
	return sessionKeyPrefix + identity
}
