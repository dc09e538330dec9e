package service

import (
	"context"
	"time"

	"courier/internal/domain"
	redisx "courier/internal/redis"
	"courier/internal/repository"
)

// closureLockTTL bounds how long a crashed closure run can keep the
// lock.
const closureLockTTL = 30 * time.Second

// ClosureService owns the closed flag: daily reconciliation selects
// finished orders, stamps them closed in one atomic batch, and can
// reopen a mistaken batch the same way.
type ClosureService struct {
	orderRepo           repository.OrderRepository
	lockStore           redisx.LockStoreInterface
	cache               redisx.CacheStoreInterface
	notificationService *NotificationService

	// Now returns the current time. Overridable in tests.
	Now func() time.Time
}

// NewClosureService creates a new ClosureService.
func NewClosureService(
	orderRepo repository.OrderRepository,
	lockStore redisx.LockStoreInterface,
	cache redisx.CacheStoreInterface,
	notificationService *NotificationService,
) *ClosureService {
	return &ClosureService{
		orderRepo:           orderRepo,
		lockStore:           lockStore,
		cache:               cache,
		notificationService: notificationService,
		Now:                 time.Now,
	}
}

// Candidates lists the open terminal orders: delivered or cancelled,
// not yet closed. There is no age bound, so the backlog accumulates
// until an operator closes it.
func (s *ClosureService) Candidates(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepo.ListClosureCandidates(ctx)
}

// CloseOrders stamps the selected orders closed with a shared
// timestamp. The whole batch succeeds or none of it does, and
// concurrent closure runs are serialized by a lock.
func (s *ClosureService) CloseOrders(ctx context.Context, orderIDs []string) (int, error) {
	if len(orderIDs) == 0 {
		return 0, ErrNoOrdersGiven
	}
	for _, id := range orderIDs {
		if id == "" {
			return 0, ErrInvalidOrderID
		}
	}

	release, err := s.acquireLock(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	totalAmount := 0
	for _, id := range orderIDs {
		order, err := s.orderRepo.GetByID(ctx, id)
		if err != nil {
			return 0, err
		}
		totalAmount += order.Payment.Total
	}

	closedAt := s.Now()
	if err := s.orderRepo.CloseOrders(ctx, orderIDs, closedAt); err != nil {
		return 0, err
	}

	s.invalidateCaches(ctx, orderIDs)
	if s.notificationService != nil {
		_ = s.notificationService.NotifyOrdersClosed(ctx, len(orderIDs), totalAmount)
	}

	return len(orderIDs), nil
}

// ReopenOrders clears the closed flag on the selected orders, undoing
// a mistaken closure. Atomic like CloseOrders.
func (s *ClosureService) ReopenOrders(ctx context.Context, orderIDs []string) (int, error) {
	if len(orderIDs) == 0 {
		return 0, ErrNoOrdersGiven
	}
	for _, id := range orderIDs {
		if id == "" {
			return 0, ErrInvalidOrderID
		}
	}

	release, err := s.acquireLock(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	if err := s.orderRepo.ReopenOrders(ctx, orderIDs); err != nil {
		return 0, err
	}

	s.invalidateCaches(ctx, orderIDs)
	if s.notificationService != nil {
		_ = s.notificationService.NotifyOrdersReopened(ctx, len(orderIDs))
	}

	return len(orderIDs), nil
}

// acquireLock takes the closure lock, returning a release func. When
// no lock store is configured the service runs unguarded.
func (s *ClosureService) acquireLock(ctx context.Context) (func(), error) {
	if s.lockStore == nil {
		return func() {}, nil
	}

	ok, err := s.lockStore.AcquireClosureLock(ctx, closureLockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrClosureInProgress
	}

	return func() {
		_ = s.lockStore.ReleaseClosureLock(ctx)
	}, nil
}

func (s *ClosureService) invalidateCaches(ctx context.Context, orderIDs []string) {
	if s.cache == nil {
		return
	}
	for _, id := range orderIDs {
		_ = s.cache.InvalidateOrder(ctx, id)
	}
	_ = s.cache.InvalidateStats(ctx)
}
