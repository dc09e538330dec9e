package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"courier/internal/domain"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	OrderCacheTTL = 30 * time.Second // order documents change on assignment/edit
	StatsCacheTTL = 15 * time.Second // dashboard stats rollup
)

// Key prefixes
const (
	orderCachePrefix = "cache:order:"
	statsCacheKey    = "cache:orders:stats"
)

// GetOrder retrieves an order document from cache. A nil order with a
// nil error is a cache miss.
func (s *CacheStore) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	data, err := s.client.Get(ctx, orderCachePrefix+orderID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// SetOrder stores an order document in cache.
func (s *CacheStore) SetOrder(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, orderCachePrefix+order.ID, data, OrderCacheTTL).Err()
}

// InvalidateOrder removes an order from cache.
func (s *CacheStore) InvalidateOrder(ctx context.Context, orderID string) error {
	return s.client.Del(ctx, orderCachePrefix+orderID).Err()
}

// OrderStats is the cached dashboard rollup over active orders.
type OrderStats struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	InProgress  int `json:"in_progress"`
	Delivered   int `json:"delivered"`
	Cancelled   int `json:"cancelled"`
	TotalAmount int `json:"total_amount"`
}

// GetStats retrieves the cached order stats. Nil with nil error is a
// cache miss.
func (s *CacheStore) GetStats(ctx context.Context) (*OrderStats, error) {
	data, err := s.client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var stats OrderStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SetStats stores the order stats rollup.
func (s *CacheStore) SetStats(ctx context.Context, stats *OrderStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, statsCacheKey, data, StatsCacheTTL).Err()
}

// InvalidateStats removes the stats rollup from cache.
func (s *CacheStore) InvalidateStats(ctx context.Context) error {
	return s.client.Del(ctx, statsCacheKey).Err()
}
