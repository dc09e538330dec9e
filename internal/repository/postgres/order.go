package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"courier/internal/domain"
	"courier/internal/repository"
)

// OrderRepository is a PostgreSQL implementation of
// repository.OrderRepository. Each order is one JSONB document keyed
// by the generated order ID; a handful of columns extracted from the
// document serve the listing and closure queries.
type OrderRepository struct {
	db *sql.DB
	q  Querier
}

// NewOrderRepository creates a new PostgreSQL order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db, q: db}
}

// NewOrderRepositoryWithTx creates an order repository using a
// transaction. Batch operations reuse the given transaction instead of
// opening their own.
func NewOrderRepositoryWithTx(tx *sql.Tx) *OrderRepository {
	return &OrderRepository{q: tx}
}

// Create persists a new order document.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, doc, closed, closed_at, created_at, delivered_at, cancelled_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	doc, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", order.ID, err)
	}

	idx := indexColumns(order)
	_, err = r.q.ExecContext(ctx, query,
		order.ID,
		doc,
		idx.closed,
		idx.closedAt,
		idx.createdAt,
		idx.deliveredAt,
		idx.cancelledAt,
		idx.updatedAt,
	)
	return err
}

// GetByID retrieves an order by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT doc FROM orders WHERE id = $1`

	var doc []byte
	err := r.q.QueryRowContext(ctx, query, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return unmarshalOrder(doc)
}

// Update replaces an existing order document and refreshes its index
// columns.
func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET doc = $1, closed = $2, closed_at = $3, delivered_at = $4, cancelled_at = $5, updated_at = $6
		WHERE id = $7
	`

	doc, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", order.ID, err)
	}

	idx := indexColumns(order)
	result, err := r.q.ExecContext(ctx, query,
		doc,
		idx.closed,
		idx.closedAt,
		idx.deliveredAt,
		idx.cancelledAt,
		idx.updatedAt,
		order.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// List retrieves orders newest first, excluding closed orders unless
// includeClosed is set.
func (r *OrderRepository) List(ctx context.Context, includeClosed bool) ([]*domain.Order, error) {
	query := `SELECT doc FROM orders WHERE closed = FALSE ORDER BY created_at DESC`
	if includeClosed {
		query = `SELECT doc FROM orders ORDER BY created_at DESC`
	}

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

// ListClosureCandidates retrieves all open terminal orders: delivered
// or cancelled, not yet closed, any age.
func (r *OrderRepository) ListClosureCandidates(ctx context.Context) ([]*domain.Order, error) {
	query := `
		SELECT doc FROM orders
		WHERE closed = FALSE AND (delivered_at IS NOT NULL OR cancelled_at IS NOT NULL)
		ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

// CloseOrders marks the given orders closed at closedAt in a single
// transaction. A missing ID fails the whole batch.
func (r *OrderRepository) CloseOrders(ctx context.Context, ids []string, closedAt time.Time) error {
	return r.inTx(ctx, func(tx Querier) error {
		return stampClosure(ctx, tx, ids, true, closedAt)
	})
}

// ReopenOrders clears the closed flag on the given orders, also in a
// single transaction.
func (r *OrderRepository) ReopenOrders(ctx context.Context, ids []string) error {
	return r.inTx(ctx, func(tx Querier) error {
		return stampClosure(ctx, tx, ids, false, time.Time{})
	})
}

// inTx runs fn in a transaction. When the repository itself was built
// from a transaction, fn joins it instead of opening a nested one.
func (r *OrderRepository) inTx(ctx context.Context, fn func(tx Querier) error) error {
	if r.db == nil {
		return fn(r.q)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// stampClosure rewrites the closure fields inside the locked documents
// and mirrors them into the index columns.
func stampClosure(ctx context.Context, tx Querier, ids []string, closed bool, closedAt time.Time) error {
	query := `SELECT id, doc FROM orders WHERE id = ANY($1) FOR UPDATE`

	rows, err := tx.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}

	docs := make(map[string]*domain.Order, len(ids))
	for rows.Next() {
		var id string
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			rows.Close()
			return err
		}
		order, err := unmarshalOrder(doc)
		if err != nil {
			rows.Close()
			return err
		}
		docs[id] = order
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, id := range ids {
		order, ok := docs[id]
		if !ok {
			return repository.ErrNotFound
		}

		order.Closed = closed
		if closed {
			order.ClosedAt = closedAt
			order.UpdatedAt = closedAt
		} else {
			order.ClosedAt = time.Time{}
			order.UpdatedAt = time.Now()
		}
		order.Version++

		doc, err := json.Marshal(order)
		if err != nil {
			return fmt.Errorf("marshal order %s: %w", id, err)
		}

		idx := indexColumns(order)
		if _, err := tx.ExecContext(ctx, `
			UPDATE orders
			SET doc = $1, closed = $2, closed_at = $3, updated_at = $4
			WHERE id = $5
		`, doc, idx.closed, idx.closedAt, idx.updatedAt, id); err != nil {
			return err
		}
	}

	return nil
}

// orderIndex holds the columns extracted from an order document for
// query use.
type orderIndex struct {
	closed      bool
	closedAt    sql.NullTime
	createdAt   time.Time
	deliveredAt sql.NullTime
	cancelledAt sql.NullTime
	updatedAt   time.Time
}

func indexColumns(order *domain.Order) orderIndex {
	return orderIndex{
		closed:      order.Closed,
		closedAt:    nullTime(order.ClosedAt),
		createdAt:   order.Dates.Created,
		deliveredAt: nullTime(order.Dates.Delivery),
		cancelledAt: nullTime(order.Dates.Cancellation),
		updatedAt:   order.UpdatedAt,
	}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

func unmarshalOrder(doc []byte) (*domain.Order, error) {
	var order domain.Order
	if err := json.Unmarshal(doc, &order); err != nil {
		return nil, fmt.Errorf("unmarshal order document: %w", err)
	}
	return &order, nil
}

func collectOrders(rows *sql.Rows) ([]*domain.Order, error) {
	var orders []*domain.Order
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		order, err := unmarshalOrder(doc)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
