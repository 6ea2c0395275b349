package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenBlacklist invalidates every token of a user issued before a point in
// time. Tokens carry the user's role and branch, so they are revoked whenever
// either changes or the user is deleted.
type TokenBlacklist interface {
	// RevokeUserTokens rejects the user's tokens issued up to now.
	// ttl should cover the longest lifetime of an outstanding token.
	RevokeUserTokens(ctx context.Context, userID uuid.UUID, ttl time.Duration) error

	// IsRevoked reports whether a token of the user issued at issuedAt was revoked
	IsRevoked(ctx context.Context, userID uuid.UUID, issuedAt time.Time) (bool, error)
}

// RedisTokenBlacklist implements TokenBlacklist using Redis
type RedisTokenBlacklist struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisTokenBlacklist creates a token blacklist with an existing Redis client
func NewRedisTokenBlacklist(client redis.UniversalClient) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{
		client:    client,
		keyPrefix: "pos:token:revoked:",
	}
}

func (b *RedisTokenBlacklist) userKey(userID uuid.UUID) string {
	return b.keyPrefix + userID.String()
}

// RevokeUserTokens stores the revocation time of the user
func (b *RedisTokenBlacklist) RevokeUserTokens(ctx context.Context, userID uuid.UUID, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.userKey(userID), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	return nil
}

// IsRevoked compares issuedAt with the stored revocation time
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, userID uuid.UUID, issuedAt time.Time) (bool, error) {
	val, err := b.client.Get(ctx, b.userKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}

	revokedAt, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, fmt.Errorf("invalid revocation timestamp: %w", err)
	}
	// JWT timestamps have second precision
	return issuedAt.Unix() <= revokedAt, nil
}

// Ensure RedisTokenBlacklist implements TokenBlacklist
var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist keeps revocations in process memory.
// WARNING: revocations are not shared between instances.
type InMemoryTokenBlacklist struct {
	mu        sync.RWMutex
	revokedAt map[uuid.UUID]time.Time
}

// NewInMemoryTokenBlacklist creates a new in-memory token blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		revokedAt: make(map[uuid.UUID]time.Time),
	}
}

// RevokeUserTokens records the revocation time of the user
func (b *InMemoryTokenBlacklist) RevokeUserTokens(_ context.Context, userID uuid.UUID, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revokedAt[userID] = time.Now()
	return nil
}

// IsRevoked checks whether issuedAt is at or before the user's revocation
func (b *InMemoryTokenBlacklist) IsRevoked(_ context.Context, userID uuid.UUID, issuedAt time.Time) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	revokedAt, ok := b.revokedAt[userID]
	if !ok {
		return false, nil
	}
	return issuedAt.Unix() <= revokedAt.Unix(), nil
}

// Ensure InMemoryTokenBlacklist implements TokenBlacklist
var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
