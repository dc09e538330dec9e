package redis

import (
	"context"
	"time"

	"courier/internal/domain"
)

// CacheStoreInterface defines the interface for order caching.
type CacheStoreInterface interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	SetOrder(ctx context.Context, order *domain.Order) error
	InvalidateOrder(ctx context.Context, orderID string) error
	GetStats(ctx context.Context) (*OrderStats, error)
	SetStats(ctx context.Context, stats *OrderStats) error
	InvalidateStats(ctx context.Context) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireClosureLock(ctx context.Context, ttl time.Duration) (bool, error)
	ReleaseClosureLock(ctx context.Context) error
}

// Ensure concrete types implement interfaces.
var (
	_ CacheStoreInterface = (*CacheStore)(nil)
	_ LockStoreInterface  = (*LockStore)(nil)
)
