package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLock(t *testing.T) *IdentityLock {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client, err := Connect(context.Background(), Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewIdentityLock(client, 5*time.Second)
}

func TestIdentityLock_ExclusiveUntilReleased(t *testing.T) {
	lock := newTestLock(t)
	ctx := context.Background()
	key := fmt.Sprintf("email:lock-%d@example.com", time.Now().UnixNano())

	ok, err := lock.Acquire(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = lock.Acquire(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "second acquire must fail while held")

	require.NoError(t, lock.Release(ctx, key))

	ok, err = lock.Acquire(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, lock.Release(ctx, key))
}

func TestIdentityLock_KeyFormat(t *testing.T) {
	lock := NewIdentityLock(nil, 0)

	assert.Equal(t, "identity:lock:username:alice_w", lock.key("username:alice_w"))
	assert.Equal(t, defaultLockTTL, lock.ttl)
}
