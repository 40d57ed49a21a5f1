// internal/repository/lock.go
package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultLockTTL = 30 * time.Second

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another worker is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ApplicationLock serializes evaluations of the same loan application across
// worker processes.
type ApplicationLock struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewApplicationLock(client *redis.Client, prefix string, ttl time.Duration) *ApplicationLock {
	if prefix == "" {
		prefix = "loan:evaluate:"
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &ApplicationLock{client: client, prefix: prefix, ttl: ttl}
}

func (l *ApplicationLock) key(applicationID int64) string {
	return fmt.Sprintf("%s%d", l.prefix, applicationID)
}

// Acquire takes the lock for applicationID. It returns ErrLockNotAcquired if
// another holder has it. The returned release func may be called more than
// once and from several goroutines; only the first call talks to Redis and
// every call reports its result.
func (l *ApplicationLock) Acquire(ctx context.Context, applicationID int64) (func() error, error) {
	key := l.key(applicationID)
	token := uuid.New().String()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLockNotAcquired, key)
	}

	var (
		once       sync.Once
		releaseErr error
	)
	return func() error {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
				releaseErr = fmt.Errorf("release lock %s: %w", key, err)
			}
		})
		return releaseErr
	}, nil
}
