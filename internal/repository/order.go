package repository

import (
	"context"
	"time"

	"courier/internal/domain"
)

// OrderRepository defines the persistence operations for orders.
// Orders are stored as one document per order, keyed by the generated
// order ID; the same ID is kept redundantly inside the document body.
type OrderRepository interface {
	// Create persists a new order.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by ID.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// Update replaces an existing order document.
	Update(ctx context.Context, order *domain.Order) error

	// List retrieves orders newest first. Closed orders are excluded
	// unless includeClosed is set; they remain queryable for reporting.
	List(ctx context.Context, includeClosed bool) ([]*domain.Order, error)

	// ListClosureCandidates retrieves all orders that are delivered or
	// cancelled but not yet closed, regardless of age.
	ListClosureCandidates(ctx context.Context) ([]*domain.Order, error)

	// CloseOrders marks the given orders closed at closedAt. The batch
	// is all-or-nothing: a failure on any ID leaves every order
	// untouched.
	CloseOrders(ctx context.Context, ids []string, closedAt time.Time) error

	// ReopenOrders reverses CloseOrders for the given IDs, also
	// all-or-nothing.
	ReopenOrders(ctx context.Context, ids []string) error
}
