package domain

import "time"

// Role enumerates the dashboard roles.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleDeveloper Role = "developer"
	RoleOwner     Role = "owner"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleDeveloper, RoleOwner:
		return true
	}
	return false
}

// User is an account held by the credential store. Pending developer
// registrations use the same shape while they wait in the approval queue.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public returns a copy of u without credential material.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
