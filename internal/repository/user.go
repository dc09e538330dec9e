package repository

import (
	"context"

	"courier/internal/domain"
)

// UserRepository defines the persistence operations for role-tagged
// user profiles (customers, drivers, admins).
type UserRepository interface {
	// Create persists a new user profile.
	Create(ctx context.Context, user *domain.User) error

	// GetByUID retrieves a user by UID.
	GetByUID(ctx context.Context, uid string) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListByRole retrieves all users with the given role.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}
