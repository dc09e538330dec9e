package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

const closureLockKey = "lock:closure:run"

// AcquireClosureLock attempts to acquire the lock guarding a closure
// (or reopen) run. Returns true if the lock was acquired, false if
// another run already holds it.
func (s *LockStore) AcquireClosureLock(ctx context.Context, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, closureLockKey, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseClosureLock releases the closure run lock.
func (s *LockStore) ReleaseClosureLock(ctx context.Context) error {
	return s.client.Del(ctx, closureLockKey).Err()
}
