package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"courier/internal/domain"
	"courier/internal/repository"
	"courier/internal/service"
)

// ──────────────────────────────────────────────
// 1. DAILY CLOSURE
// ──────────────────────────────────────────────

func newTestClosureService(orderRepo *MockOrderRepository, lockStore *MockLockStore) *service.ClosureService {
	svc := service.NewClosureService(orderRepo, lockStore, nil, nil)
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func seedTerminalOrder(orderRepo *MockOrderRepository, id string, total int, delivered bool) {
	order := &domain.Order{
		ID:      id,
		Payment: domain.Payment{Charged: true, Total: total},
		Dates:   domain.OrderDates{Created: fixedNow.Add(-24 * time.Hour)},
		Version: 1,
	}
	if delivered {
		order.Dates.Delivery = fixedNow.Add(-2 * time.Hour)
	} else {
		order.Dates.Cancellation = fixedNow.Add(-2 * time.Hour)
	}
	orderRepo.AddOrder(order)
}

func TestCloseOrders_StampsSharedTimestamp(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	svc := newTestClosureService(orderRepo, NewMockLockStore())

	seedTerminalOrder(orderRepo, "o1", 50, true)
	seedTerminalOrder(orderRepo, "o2", 30, false)

	count, err := svc.CloseOrders(context.Background(), []string{"o1", "o2"})
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}

	for _, id := range []string{"o1", "o2"} {
		order := orderRepo.GetOrder(id)
		if !order.Closed {
			t.Errorf("order %s not closed", id)
		}
		if !order.ClosedAt.Equal(fixedNow) {
			t.Errorf("order %s closed at %v, want shared timestamp %v", id, order.ClosedAt, fixedNow)
		}
	}
}

func TestCloseOrders_RemovesFromCandidates(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	svc := newTestClosureService(orderRepo, NewMockLockStore())

	seedTerminalOrder(orderRepo, "o1", 50, true)
	seedTerminalOrder(orderRepo, "o2", 30, true)

	if _, err := svc.CloseOrders(context.Background(), []string{"o1"}); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	candidates, err := svc.Candidates(context.Background())
	if err != nil {
		t.Fatalf("candidates failed: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != "o2" {
		t.Fatalf("expected only o2 as candidate, got %d candidates", len(candidates))
	}
}

func TestCloseOrders_EmptyBatch_Fails(t *testing.T) {
	t.Parallel()

	svc := newTestClosureService(NewMockOrderRepository(), NewMockLockStore())

	_, err := svc.CloseOrders(context.Background(), nil)
	if !errors.Is(err, service.ErrNoOrdersGiven) {
		t.Fatalf("expected ErrNoOrdersGiven, got: %v", err)
	}
}

func TestCloseOrders_MissingID_FailsWholeBatch(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	svc := newTestClosureService(orderRepo, NewMockLockStore())

	seedTerminalOrder(orderRepo, "o1", 50, true)

	_, err := svc.CloseOrders(context.Background(), []string{"o1", "ghost"})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}

	// All-or-nothing: the existing order stays open.
	if orderRepo.GetOrder("o1").Closed {
		t.Error("o1 must remain open after failed batch")
	}
}

func TestCloseOrders_LockContention_Fails(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	lockStore := NewMockLockStore()
	svc := newTestClosureService(orderRepo, lockStore)

	seedTerminalOrder(orderRepo, "o1", 50, true)

	// Another run holds the lock.
	if ok, _ := lockStore.AcquireClosureLock(context.Background(), time.Minute); !ok {
		t.Fatal("setup: could not take lock")
	}

	_, err := svc.CloseOrders(context.Background(), []string{"o1"})
	if !errors.Is(err, service.ErrClosureInProgress) {
		t.Fatalf("expected ErrClosureInProgress, got: %v", err)
	}
}

func TestCloseOrders_ReleasesLock(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	lockStore := NewMockLockStore()
	svc := newTestClosureService(orderRepo, lockStore)

	seedTerminalOrder(orderRepo, "o1", 50, true)

	if _, err := svc.CloseOrders(context.Background(), []string{"o1"}); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if lockStore.Locked() {
		t.Error("lock must be released after the batch")
	}

	// The lock is released even when the batch fails.
	_, err := svc.CloseOrders(context.Background(), []string{"ghost"})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if lockStore.Locked() {
		t.Error("lock must be released after a failed batch")
	}
}

// ──────────────────────────────────────────────
// 2. REOPEN
// ──────────────────────────────────────────────

func TestReopenOrders_RestoresEligibility(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	svc := newTestClosureService(orderRepo, NewMockLockStore())

	seedTerminalOrder(orderRepo, "o1", 50, true)

	if _, err := svc.CloseOrders(context.Background(), []string{"o1"}); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	count, err := svc.ReopenOrders(context.Background(), []string{"o1"})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}

	order := orderRepo.GetOrder("o1")
	if order.Closed {
		t.Error("order must be open after reopen")
	}
	if !order.ClosedAt.IsZero() {
		t.Error("closure timestamp must be cleared")
	}
	if !service.IsEligibleForClosure(order) {
		t.Error("reopened terminal order must be eligible again")
	}
}

func TestReopenOrders_EmptyBatch_Fails(t *testing.T) {
	t.Parallel()

	svc := newTestClosureService(NewMockOrderRepository(), NewMockLockStore())

	_, err := svc.ReopenOrders(context.Background(), []string{})
	if !errors.Is(err, service.ErrNoOrdersGiven) {
		t.Fatalf("expected ErrNoOrdersGiven, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// 3. CANDIDATE SELECTION
// ──────────────────────────────────────────────

func TestCandidates_UnboundedBacklog(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	svc := newTestClosureService(orderRepo, NewMockLockStore())

	// A month-old delivered order that nobody closed.
	old := &domain.Order{
		ID:      "old",
		Payment: domain.Payment{Charged: true, Total: 40},
		Dates: domain.OrderDates{
			Created:  fixedNow.AddDate(0, -1, 0),
			Delivery: fixedNow.AddDate(0, -1, 1),
		},
	}
	orderRepo.AddOrder(old)

	// A pending order is never a candidate.
	orderRepo.AddOrder(&domain.Order{
		ID:    "pending",
		Dates: domain.OrderDates{Created: fixedNow},
	})

	candidates, err := svc.Candidates(context.Background())
	if err != nil {
		t.Fatalf("candidates failed: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != "old" {
		t.Fatalf("expected the old delivered order, got %d candidates", len(candidates))
	}
}
