package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"courier/internal/domain"
	"courier/internal/repository"
)

// UserRepository is a PostgreSQL implementation of
// repository.UserRepository.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{q: db}
}

// NewUserRepositoryWithTx creates a user repository using a transaction.
func NewUserRepositoryWithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{q: tx}
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (uid, name, last_name, email, phone, role, district, route, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	var route sql.NullString
	if user.Route != domain.ZoneGroupNone {
		route = sql.NullString{String: string(user.Route), Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		user.UID,
		user.Name,
		user.LastName,
		user.Email,
		user.Phone,
		user.Role,
		user.District,
		route,
		user.Active,
		user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		// 23505 unique_violation, from the users_email_key constraint.
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByUID retrieves a user by UID.
func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	query := `
		SELECT uid, name, last_name, email, phone, role, district, route, active, created_at
		FROM users WHERE uid = $1
	`
	return r.scanUser(r.q.QueryRowContext(ctx, query, uid))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT uid, name, last_name, email, phone, role, district, route, active, created_at
		FROM users WHERE email = $1
	`
	return r.scanUser(r.q.QueryRowContext(ctx, query, email))
}

// ListByRole retrieves all users with the given role, newest first.
func (r *UserRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	query := `
		SELECT uid, name, last_name, email, phone, role, district, route, active, created_at
		FROM users WHERE role = $1 ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		var route sql.NullString
		if err := rows.Scan(
			&user.UID,
			&user.Name,
			&user.LastName,
			&user.Email,
			&user.Phone,
			&user.Role,
			&user.District,
			&route,
			&user.Active,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		if route.Valid {
			user.Route = domain.ZoneGroup(route.String)
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

func (r *UserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var route sql.NullString

	err := row.Scan(
		&user.UID,
		&user.Name,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&user.Role,
		&user.District,
		&route,
		&user.Active,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if route.Valid {
		user.Route = domain.ZoneGroup(route.String)
	}
	return &user, nil
}
