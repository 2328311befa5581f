package model

import "time"

// Role is the access level assigned to a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole normalizes a raw role string to a Role. Unknown values fall
// back to RoleUser; the validator rejects them before this is reached.
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// IsAdmin reports whether the role carries the admin override.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User represents a user account in the database.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email_id"`
	Password  string `json:"password"`
	Role      string `json:"role,omitempty"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email_id"`
	Password string `json:"password"`
}

// RefreshRequest carries a refresh token to exchange for a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UpdateUserRequest represents a partial user update. Nil fields were not
// present in the request body and are left untouched.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email_id"`
}

// TokenPairResponse represents a successful login with both tokens.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AccessTokenResponse represents a successful refresh-token exchange.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// UserResponse represents user data safe for API responses (no sensitive
// fields). Books lists the ids of the books the user owns.
type UserResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email_id"`
	Role      Role      `json:"role"`
	Books     []int64   `json:"books"`
	CreatedAt time.Time `json:"created_at"`
}
