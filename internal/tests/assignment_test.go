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
// 1. DRIVER ASSIGNMENT
// ──────────────────────────────────────────────

func TestAssignDriver_PickupLeg_Succeeds(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	userRepo := NewMockUserRepository()
	svc := newTestOrderService(orderRepo, userRepo)

	userRepo.AddUser(&domain.User{
		UID:  "driver-1",
		Name: "Pedro", LastName: "Quispe",
		Role: domain.RoleDriver, Route: domain.ZoneGroupNOR,
	})

	order, err := svc.CreateOrder(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.AssignDriver(context.Background(), order.ID, "driver-1", domain.LegPickup)
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	if updated.Pickup.State != domain.AssignmentStateAssigned {
		t.Errorf("expected ASSIGNED, got %s", updated.Pickup.State)
	}
	if updated.Pickup.DriverName != "Pedro Quispe" {
		t.Errorf("expected driver name Pedro Quispe, got %q", updated.Pickup.DriverName)
	}
	if updated.Pickup.AssignedAt.IsZero() {
		t.Error("expected assignment timestamp")
	}
	if updated.Pickup.PendingReason != "" {
		t.Errorf("expected pending reason cleared, got %q", updated.Pickup.PendingReason)
	}
	// The driver's own route replaces the placeholder.
	if updated.Pickup.RouteName != "NOR" {
		t.Errorf("expected route NOR, got %q", updated.Pickup.RouteName)
	}
	if !updated.Visibility.PickupDriver {
		t.Error("expected order visible to the pickup driver")
	}
	if updated.Visibility.DeliveryDriver {
		t.Error("delivery visibility must stay off")
	}
}

func TestAssignDriver_RejectsNonDriver(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	userRepo := NewMockUserRepository()
	svc := newTestOrderService(orderRepo, userRepo)

	userRepo.AddUser(&domain.User{UID: "admin-1", Name: "Ana", Role: domain.RoleAdmin})

	order, err := svc.CreateOrder(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.AssignDriver(context.Background(), order.ID, "admin-1", domain.LegDelivery)
	if !errors.Is(err, service.ErrNotADriver) {
		t.Fatalf("expected ErrNotADriver, got: %v", err)
	}
}

func TestAssignDriver_UnknownDriver_Fails(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	svc := newTestOrderService(orderRepo, NewMockUserRepository())

	order, err := svc.CreateOrder(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.AssignDriver(context.Background(), order.ID, "ghost", domain.LegPickup)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestAssignDriver_InvalidLeg_Fails(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(NewMockOrderRepository(), NewMockUserRepository())

	_, err := svc.AssignDriver(context.Background(), "some-id", "driver-1", domain.Leg("sideways"))
	if !errors.Is(err, service.ErrInvalidLeg) {
		t.Fatalf("expected ErrInvalidLeg, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// 2. DELIVERY AND CANCELLATION EVENTS
// ──────────────────────────────────────────────

func TestMarkDelivered_SetsDateAndStatus(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	svc := newTestOrderService(orderRepo, NewMockUserRepository())

	order, err := svc.CreateOrder(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	deliveredAt := fixedNow.Add(6 * time.Hour)
	updated, err := svc.MarkDelivered(context.Background(), order.ID, deliveredAt)
	if err != nil {
		t.Fatalf("deliver failed: %v", err)
	}

	if !updated.Dates.Delivery.Equal(deliveredAt) {
		t.Errorf("expected delivery date %v, got %v", deliveredAt, updated.Dates.Delivery)
	}
	if service.ClassifyOrder(updated) != domain.OrderStatusDelivered {
		t.Error("expected DELIVERED status")
	}
	if !service.IsEligibleForClosure(updated) {
		t.Error("delivered order must be eligible for closure")
	}
}

func TestMarkDelivered_Twice_Fails(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	svc := newTestOrderService(orderRepo, NewMockUserRepository())

	order, err := svc.CreateOrder(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.MarkDelivered(context.Background(), order.ID, time.Time{}); err != nil {
		t.Fatalf("first deliver failed: %v", err)
	}

	_, err = svc.MarkDelivered(context.Background(), order.ID, time.Time{})
	if !errors.Is(err, service.ErrOrderAlreadyDelivered) {
		t.Fatalf("expected ErrOrderAlreadyDelivered, got: %v", err)
	}
}

func TestMarkCancelled_SetsDateAndStatus(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	svc := newTestOrderService(orderRepo, NewMockUserRepository())

	order, err := svc.CreateOrder(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.MarkCancelled(context.Background(), order.ID, "cliente ausente", time.Time{})
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if updated.Dates.Cancellation.IsZero() {
		t.Error("expected cancellation date set")
	}
	if service.ClassifyOrder(updated) != domain.OrderStatusCancelled {
		t.Error("expected CANCELLED status")
	}

	_, err = svc.MarkCancelled(context.Background(), order.ID, "again", time.Time{})
	if !errors.Is(err, service.ErrOrderAlreadyCancelled) {
		t.Fatalf("expected ErrOrderAlreadyCancelled, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// 3. LISTING AND STATS
// ──────────────────────────────────────────────

func TestListOrders_ExcludesClosedByDefault(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	svc := newTestOrderService(orderRepo, NewMockUserRepository())

	openOrder, err := svc.CreateOrder(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	closedOrder, err := svc.CreateOrder(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	orderRepo.GetOrder(closedOrder.ID).Closed = true

	orders, err := svc.ListOrders(context.Background(), service.ListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != openOrder.ID {
		t.Fatalf("expected only the open order, got %d orders", len(orders))
	}

	all, err := svc.ListOrders(context.Background(), service.ListFilter{IncludeClosed: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders with IncludeClosed, got %d", len(all))
	}
}

func TestListOrders_Filters(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	svc := newTestOrderService(orderRepo, NewMockUserRepository())

	if _, err := svc.CreateOrder(context.Background(), validCreateRequest()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	req := validCreateRequest()
	req.Recipient.District = "Chorrillos (Lima)"
	req.Recipient.Name = "maria lopez"
	other, err := svc.CreateOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	byDistrict, err := svc.ListOrders(context.Background(), service.ListFilter{District: "Chorrillos (Lima)"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byDistrict) != 1 || byDistrict[0].ID != other.ID {
		t.Fatalf("district filter returned %d orders", len(byDistrict))
	}

	bySearch, err := svc.ListOrders(context.Background(), service.ListFilter{Search: "maria"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].ID != other.ID {
		t.Fatalf("search filter returned %d orders", len(bySearch))
	}

	byStatus, err := svc.ListOrders(context.Background(), service.ListFilter{Status: domain.OrderStatusPending})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byStatus) != 2 {
		t.Fatalf("expected 2 pending orders, got %d", len(byStatus))
	}
}

func TestStats_CountsByDerivedStatus(t *testing.T) {
	t.Parallel()

	orderRepo := NewMockOrderRepository()
	svc := newTestOrderService(orderRepo, NewMockUserRepository())

	first, err := svc.CreateOrder(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.CreateOrder(context.Background(), validCreateRequest()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.MarkDelivered(context.Background(), first.ID, time.Time{}); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	if stats.Total != 2 {
		t.Errorf("expected total 2, got %d", stats.Total)
	}
	if stats.Delivered != 1 {
		t.Errorf("expected 1 delivered, got %d", stats.Delivered)
	}
	if stats.Pending != 1 {
		t.Errorf("expected 1 pending, got %d", stats.Pending)
	}
	if stats.TotalAmount != 100 {
		t.Errorf("expected total amount 100, got %d", stats.TotalAmount)
	}
}
