package dto

import "github.com/spec-kit/movie-catalog/internal/domain"

// UserRegisterRequest payload for new accounts.
type UserRegisterRequest struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role,omitempty"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

// SessionResponse is the diagnostic view of an active session.
type SessionResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}
