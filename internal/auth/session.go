package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// SessionStore is the legacy server-side fallback: an opaque session key
// mapped to a user id per namespace. The staff and diner namespaces may
// coexist under one key.
type SessionStore interface {
	// Login binds userID to the namespace slot of sessionKey, generating a
	// fresh key when sessionKey is empty. Returns the key in use.
	Login(ctx context.Context, sessionKey string, ns domain.SessionNamespace, userID string) (string, error)
	// Resolve returns the user id bound to the namespace slot, or "" when
	// the key or slot is unknown.
	Resolve(ctx context.Context, ns domain.SessionNamespace, sessionKey string) (string, error)
	// Logout removes the session entirely, all namespaces included.
	Logout(ctx context.Context, sessionKey string) error
}

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps sessions as Redis hashes with one field per
// namespace and a sliding TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore builds the store.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Login(ctx context.Context, sessionKey string, ns domain.SessionNamespace, userID string) (string, error) {
	if sessionKey == "" {
		sessionKey = uuid.NewString()
	}
	key := sessionKeyPrefix + sessionKey
	if err := s.client.HSet(ctx, key, string(ns), userID).Err(); err != nil {
		return "", err
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return "", err
	}
	return sessionKey, nil
}

func (s *RedisSessionStore) Resolve(ctx context.Context, ns domain.SessionNamespace, sessionKey string) (string, error) {
	if sessionKey == "" {
		return "", nil
	}
	userID, err := s.client.HGet(ctx, sessionKeyPrefix+sessionKey, string(ns)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *RedisSessionStore) Logout(ctx context.Context, sessionKey string) error {
	if sessionKey == "" {
		return nil
	}
	return s.client.Del(ctx, sessionKeyPrefix+sessionKey).Err()
}
