package tests

import (
	"context"
	"errors"
	"testing"

	"courier/internal/domain"
	"courier/internal/repository"
	"courier/internal/service"
)

// ──────────────────────────────────────────────
// 1. ACCOUNT REGISTRY
// ──────────────────────────────────────────────

func TestCreateUser_Driver_Succeeds(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := service.NewUserService(userRepo)

	user, err := svc.CreateUser(context.Background(), service.CreateUserRequest{
		Name:     "pedro",
		LastName: "quispe",
		Email:    "  Pedro@Example.com ",
		Phone:    "+51 987 654 321",
		Role:     string(domain.RoleDriver),
		Route:    "NOR",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if user.UID == "" {
		t.Error("expected generated UID")
	}
	if user.FullName() != "Pedro Quispe" {
		t.Errorf("expected full name Pedro Quispe, got %q", user.FullName())
	}
	if user.Email != "pedro@example.com" {
		t.Errorf("expected lowercased email, got %q", user.Email)
	}
	if user.Phone != "987654321" {
		t.Errorf("expected normalized phone, got %q", user.Phone)
	}
	if user.Route != domain.ZoneGroupNOR {
		t.Errorf("expected route NOR, got %q", user.Route)
	}
	if !user.Active {
		t.Error("new user must be active")
	}
}

func TestCreateUser_InvalidInput_Fails(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		req  service.CreateUserRequest
	}{
		{"missing name", service.CreateUserRequest{Email: "a@b.com", Role: "DRIVER"}},
		{"missing email", service.CreateUserRequest{Name: "Ana", Role: "ADMIN"}},
		{"unknown role", service.CreateUserRequest{Name: "Ana", Email: "a@b.com", Role: "SUPERVISOR"}},
		{"route on non-driver", service.CreateUserRequest{Name: "Ana", Email: "a@b.com", Role: "ADMIN", Route: "NOR"}},
		{"unknown route", service.CreateUserRequest{Name: "Ana", Email: "a@b.com", Role: "DRIVER", Route: "CENTRO"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := service.NewUserService(NewMockUserRepository())
			if _, err := svc.CreateUser(context.Background(), tc.req); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestCreateUser_DuplicateEmail_Fails(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := service.NewUserService(userRepo)

	req := service.CreateUserRequest{
		Name:  "Ana",
		Email: "ana@example.com",
		Role:  string(domain.RoleCustomer),
	}

	if _, err := svc.CreateUser(context.Background(), req); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.CreateUser(context.Background(), req)
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got: %v", err)
	}
}

func TestListDrivers_FiltersByRole(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	svc := service.NewUserService(userRepo)

	userRepo.AddUser(&domain.User{UID: "d1", Role: domain.RoleDriver})
	userRepo.AddUser(&domain.User{UID: "c1", Role: domain.RoleCustomer})

	drivers, err := svc.ListDrivers(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(drivers) != 1 || drivers[0].UID != "d1" {
		t.Fatalf("expected only d1, got %d users", len(drivers))
	}
}
