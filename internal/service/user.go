package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"courier/internal/domain"
	"courier/internal/repository"
)

// UserService manages the account registry: customers, drivers and
// admins share one profile shape distinguished by role.
type UserService struct {
	userRepo repository.UserRepository

	Now func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		Now:      time.Now,
	}
}

// CreateUserRequest contains the form input for registering a user.
type CreateUserRequest struct {
	Name     string
	LastName string
	Email    string
	Phone    string
	Role     string
	District string
	Route    string
}

// CreateUser validates and registers a new account. Driver profiles
// may carry a zone-group route used as the default when the driver is
// assigned to an order leg.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, newValidationError("name", "required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, newValidationError("email", "required")
	}

	role, err := ValidateRole(req.Role)
	if err != nil {
		return nil, err
	}

	route := domain.ZoneGroupNone
	if req.Route != "" {
		if role != domain.RoleDriver {
			return nil, newValidationError("route", "only drivers carry a route")
		}
		route, err = ValidateZoneGroup(req.Route)
		if err != nil {
			return nil, err
		}
	}

	user := &domain.User{
		UID:       uuid.New().String(),
		Name:      TitleCaseName(CleanName(req.Name)),
		LastName:  TitleCaseName(CleanName(req.LastName)),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     NormalizePhone(req.Phone),
		Role:      role,
		District:  req.District,
		Route:     route,
		Active:    true,
		CreatedAt: s.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user profile by UID.
func (s *UserService) GetUser(ctx context.Context, uid string) (*domain.User, error) {
	if uid == "" {
		return nil, ErrInvalidUserID
	}
	return s.userRepo.GetByUID(ctx, uid)
}

// ListUsers retrieves all users with the given role.
func (s *UserService) ListUsers(ctx context.Context, role string) ([]*domain.User, error) {
	parsed, err := ValidateRole(role)
	if err != nil {
		return nil, err
	}
	return s.userRepo.ListByRole(ctx, parsed)
}

// ListDrivers retrieves all driver profiles.
func (s *UserService) ListDrivers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.ListByRole(ctx, domain.RoleDriver)
}

// ValidateRole validates a role string.
func ValidateRole(role string) (domain.Role, error) {
	switch domain.Role(role) {
	case domain.RoleCustomer, domain.RoleDriver, domain.RoleAdmin:
		return domain.Role(role), nil
	default:
		return "", ErrInvalidRole
	}
}

// ValidateZoneGroup validates a zone-group string.
func ValidateZoneGroup(group string) (domain.ZoneGroup, error) {
	switch domain.ZoneGroup(group) {
	case domain.ZoneGroupNOR, domain.ZoneGroupSUR, domain.ZoneGroupEST,
		domain.ZoneGroupOES, domain.ZoneGroupSJL:
		return domain.ZoneGroup(group), nil
	default:
		return "", newValidationError("route", "unknown zone group "+group)
	}
}
