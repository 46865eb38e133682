package identity

import (
	"strings"
	"time"

	"github.com/komorebi/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role determines which surfaces a user can reach: members see the
// storefront, admins additionally get the back-office.
type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	return r == RoleMember || r == RoleAdmin
}

// User is the aggregate root for a member account
type User struct {
	shared.BaseAggregateRoot
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Name         string `gorm:"type:varchar(100);not null"`
	Phone        string `gorm:"type:varchar(30)"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	Role         Role   `gorm:"type:varchar(10);not null;default:'MEMBER'"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser registers a new member account
func NewUser(email, name, password string) (*User, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		Name:              name,
		Role:              RoleMember,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	return user, nil
}

// NewAdmin creates an admin account, used by seeding
func NewAdmin(email, name, password string) (*User, error) {
	user, err := NewUser(email, name, password)
	if err != nil {
		return nil, err
	}
	user.Role = RoleAdmin
	return user, nil
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpdateProfile changes the user's display name and phone
func (u *User) UpdateProfile(name, phone string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	u.Name = name
	u.Phone = phone
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	return nil
}
