package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultLockTTL = 30 * time.Second

// IdentityLock reserves an identity key (email or username) while a
// credential is created, so two concurrent registrations of the same identity
// cannot both pass the existence check.
// Key format: identity:lock:<kind>:<value>
type IdentityLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdentityLock wraps client. A non-positive ttl uses 30s; the TTL only
// bounds how long a crashed holder can block the identity.
func NewIdentityLock(client *redis.Client, ttl time.Duration) *IdentityLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &IdentityLock{client: client, ttl: ttl}
}

// Acquire reports whether the reservation was taken by this call.
func (l *IdentityLock) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(key), "1", l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("identity lock acquire: %w", err)
	}
	return ok, nil
}

// Release drops the reservation.
func (l *IdentityLock) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.key(key)).Err(); err != nil {
		return fmt.Errorf("identity lock release: %w", err)
	}
	return nil
}

func (l *IdentityLock) key(key string) string {
	return "identity:lock:" + key
}
