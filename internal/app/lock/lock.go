package lock

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "video2broll/internal/app/errors"
)

// RecordLocker serializes pipeline stages that mutate the same media
// record. Acquire fails fast instead of queueing; a busy record means
// another stage is mid-flight and the caller should report a conflict.
type RecordLocker interface {
	// Acquire takes the lock for recordID or returns a
	// precondition_failed error when it is already held.
	Acquire(ctx context.Context, recordID string) (release func(), err error)
}

// MemoryLocker locks records within a single process.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

// NewMemoryLocker creates a process-local record locker.
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]bool)}
}

func (l *MemoryLocker) Acquire(_ context.Context, recordID string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[recordID] {
		return nil, apperrors.PreconditionFailed("record is busy with another pipeline stage")
	}
	l.held[recordID] = true
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, recordID)
	}, nil
}

// RedisLocker locks records across processes via SET NX with a TTL, so
// a crashed holder cannot wedge a record forever.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocker creates a distributed record locker. A zero ttl
// defaults to 10 minutes, longer than any single pipeline stage.
func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisLocker{client: client, ttl: ttl}
}

func (l *RedisLocker) Acquire(ctx context.Context, recordID string) (func(), error) {
	key := "v2b:lock:" + recordID
	acquired, err := l.client.SetNX(ctx, key, 1, l.ttl).Result()
	if err != nil {
		return nil, apperrors.UpstreamUnavailable("redis", err)
	}
	if !acquired {
		return nil, apperrors.PreconditionFailed("record is busy with another pipeline stage")
	}
	return func() {
		l.client.Del(context.Background(), key)
	}, nil
}
