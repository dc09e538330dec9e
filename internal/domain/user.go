package domain

import "time"

// Role tags a user profile as customer, driver or admin.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleDriver   Role = "DRIVER"
	RoleAdmin    Role = "ADMIN"
)

// User is a role-tagged profile referenced by an order's party and
// assignment fields. Authentication itself lives in the external
// identity provider; this record only carries the operational profile.
type User struct {
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	District  string    `json:"district,omitempty"`
	Route     ZoneGroup `json:"route,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns the display name used on assignments and listings.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.Name
	}
	return u.Name + " " + u.LastName
}
