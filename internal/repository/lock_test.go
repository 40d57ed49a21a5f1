// internal/repository/lock_test.go
package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLock(t *testing.T) (*ApplicationLock, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewApplicationLock(client, "test:lock:", 5*time.Second), mr
}

func TestApplicationLock_AcquireRelease(t *testing.T) {
	lock, mr := newTestLock(t)
	ctx := context.Background()

	release, err := lock.Acquire(ctx, 42)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:lock:42"))
	assert.Equal(t, 5*time.Second, mr.TTL("test:lock:42"))

	_, err = lock.Acquire(ctx, 42)
	assert.True(t, errors.Is(err, ErrLockNotAcquired))

	other, err := lock.Acquire(ctx, 43)
	require.NoError(t, err)
	defer other()

	assert.NoError(t, release())
	assert.NoError(t, release())
	assert.False(t, mr.Exists("test:lock:42"))

	again, err := lock.Acquire(ctx, 42)
	require.NoError(t, err)
	assert.NoError(t, again())
}

func TestApplicationLock_ReleaseKeepsForeignToken(t *testing.T) {
	lock, mr := newTestLock(t)

	release, err := lock.Acquire(context.Background(), 42)
	require.NoError(t, err)

	// lock expired and another worker took it
	mr.FastForward(6 * time.Second)
	require.NoError(t, mr.Set("test:lock:42", "someone-else"))

	assert.NoError(t, release())

	v, err := mr.Get("test:lock:42")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", v)
}

func TestApplicationLock_RedisError(t *testing.T) {
	lock, mr := newTestLock(t)
	mr.SetError("LOADING server is loading")

	release, err := lock.Acquire(context.Background(), 42)

	assert.Nil(t, release)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrLockNotAcquired))
	assert.Contains(t, err.Error(), "loading")
}

func TestNewApplicationLock_Defaults(t *testing.T) {
	lock := NewApplicationLock(redis.NewClient(&redis.Options{}), "", 0)
	assert.Equal(t, defaultLockTTL, lock.ttl)
	assert.Equal(t, "loan:evaluate:42", lock.key(42))
}

func TestApplicationLock_ReleaseReportsRedisError(t *testing.T) {
	lock, mr := newTestLock(t)

	release, err := lock.Acquire(context.Background(), 42)
	require.NoError(t, err)

	mr.SetError("READONLY You can't write against a read only replica")
	err = release()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "release lock test:lock:42")

	// the first result is kept; Redis is not asked again
	mr.SetError("")
	assert.Equal(t, err, release())
	assert.True(t, mr.Exists("test:lock:42"))
}

func TestApplicationLock_ConcurrentRelease(t *testing.T) {
	lock, mr := newTestLock(t)

	release, err := lock.Acquire(context.Background(), 42)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, release())
		}()
	}
	wg.Wait()

	assert.False(t, mr.Exists("test:lock:42"))
}
