package dto

import (
	"time"

	"github.com/spec-kit/ideaflow/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	Password        string      `json:"password"`
	ConfirmPassword string      `json:"confirm_password"`
	Role            domain.Role `json:"role"`
	SecretKey       string      `json:"secret_key"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone,omitempty"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// RegisterResponse reports where a registration landed.
type RegisterResponse struct {
	User    UserResponse `json:"user"`
	Pending bool         `json:"pending"`
	Message string       `json:"message"`
}

// SessionResponse describes the caller's live session.
type SessionResponse struct {
	User      UserResponse `json:"user"`
	LoginTime time.Time    `json:"login_time"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// NewUserResponse strips credentials from a user record.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// NewUserList converts a slice of users.
func NewUserList(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
