package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/identity"
)

// RegisterInput contains the input for account registration
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	TokenType   string
	User        UserInfo
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TokenTTL time.Duration
}

// UpdateProfileInput contains the input for profile updates
type UpdateProfileInput struct {
	Name  string
	Phone string
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

// UserInfo contains basic user information returned by the API
type UserInfo struct {
	ID    uuid.UUID     `json:"id"`
	Email string        `json:"email"`
	Name  string        `json:"name"`
	Phone string        `json:"phone,omitempty"`
	Role  identity.Role `json:"role"`
}

// ToUserInfo maps a domain user to its API shape
func ToUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Phone: u.Phone,
		Role:  u.Role,
	}
}
