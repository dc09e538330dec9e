package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"courier/internal/domain"
	"courier/internal/service"
)

// UserHandler handles HTTP requests for the account registry.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserPayload is the HTTP request body for registering a user.
type CreateUserPayload struct {
	Name     string `json:"name"`
	LastName string `json:"last_name,omitempty"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	District string `json:"district,omitempty"`
	Route    string `json:"route,omitempty"`
}

// UserResponse is the HTTP representation of a user profile.
type UserResponse struct {
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	LastName  string    `json:"last_name,omitempty"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	District  string    `json:"district,omitempty"`
	Route     string    `json:"route,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UID:       user.UID,
		Name:      user.Name,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      string(user.Role),
		District:  user.District,
		Route:     string(user.Route),
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}

// CreateUser handles POST /v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), service.CreateUserRequest{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		District: req.District,
		Route:    req.Route,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newUserResponse(user))
}

// GetUser handles GET /v1/users/:uid
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newUserResponse(user))
}

// ListUsers handles GET /v1/users?role=DRIVER
func (h *UserHandler) ListUsers(c *gin.Context) {
	role := c.Query("role")

	var (
		users []*domain.User
		err   error
	)
	if role == "" {
		users, err = h.userService.ListDrivers(c.Request.Context())
	} else {
		users, err = h.userService.ListUsers(c.Request.Context(), role)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, newUserResponse(u))
	}

	respondJSON(c, http.StatusOK, response)
}
