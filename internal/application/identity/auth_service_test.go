package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/identity"
	"github.com/komorebi/backend/internal/domain/shared"
	"github.com/komorebi/backend/internal/infrastructure/auth"
	"github.com/komorebi/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func newAuthFixture() (*AuthService, *MockUserRepository, *auth.JWTService) {
	userRepo := new(MockUserRepository)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-at-least-32-chars",
		TokenExpiration: time.Hour,
		Issuer:          "komorebi-test",
	})
	svc := NewAuthService(userRepo, jwtService, auth.NewInMemoryTokenBlacklist(), nil)
	return svc, userRepo, jwtService
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and logs in a new member", func(t *testing.T) {
		svc, userRepo, jwtService := newAuthFixture()

		userRepo.On("ExistsByEmail", mock.Anything, "aya@example.com").Return(false, nil)
		userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		result, err := svc.Register(ctx, RegisterInput{
			Email:    "aya@example.com",
			Name:     "Aya Tanaka",
			Password: "hunter2hunter2",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, identity.RoleMember, result.User.Role)
		assert.Equal(t, "aya@example.com", result.User.Email)

		claims, err := jwtService.ValidateToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "MEMBER", claims.Role)
		userRepo.AssertExpectations(t)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture()

		userRepo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

		_, err := svc.Register(ctx, RegisterInput{
			Email:    "taken@example.com",
			Name:     "Aya",
			Password: "hunter2hunter2",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture()

		userRepo.On("ExistsByEmail", mock.Anything, "aya@example.com").Return(false, nil)

		_, err := svc.Register(ctx, RegisterInput{
			Email:    "aya@example.com",
			Name:     "Aya",
			Password: "short",
		})
		require.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("returns token for valid credentials", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture()

		user, err := identity.NewUser("aya@example.com", "Aya Tanaka", "hunter2hunter2")
		require.NoError(t, err)
		userRepo.On("FindByEmail", mock.Anything, "aya@example.com").Return(user, nil)

		result, err := svc.Login(ctx, LoginInput{Email: "aya@example.com", Password: "hunter2hunter2"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, user.ID, result.User.ID)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture()

		user, err := identity.NewUser("aya@example.com", "Aya Tanaka", "hunter2hunter2")
		require.NoError(t, err)
		userRepo.On("FindByEmail", mock.Anything, "aya@example.com").Return(user, nil)

		_, err = svc.Login(ctx, LoginInput{Email: "aya@example.com", Password: "wrong-password"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("does not reveal whether the email exists", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture()

		userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "whatever123"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("admin token carries the admin role", func(t *testing.T) {
		svc, userRepo, jwtService := newAuthFixture()

		admin, err := identity.NewAdmin("admin@komorebi.com", "Curator", "curate-well-12")
		require.NoError(t, err)
		userRepo.On("FindByEmail", mock.Anything, "admin@komorebi.com").Return(admin, nil)

		result, err := svc.Login(ctx, LoginInput{Email: "admin@komorebi.com", Password: "curate-well-12"})
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "ADMIN", claims.Role)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklists the token jti", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		userRepo := new(MockUserRepository)
		jwtService := auth.NewJWTService(config.JWTConfig{
			Secret:          "test-secret-key-at-least-32-chars",
			TokenExpiration: time.Hour,
			Issuer:          "komorebi-test",
		})
		svc := NewAuthService(userRepo, jwtService, blacklist, nil)

		err := svc.Logout(ctx, LogoutInput{
			UserID:   uuid.New(),
			TokenJTI: "jti-123",
			TokenTTL: time.Hour,
		})
		require.NoError(t, err)

		blacklisted, err := blacklist.IsBlacklisted(ctx, "jti-123")
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("ignores an already expired token", func(t *testing.T) {
		svc, _, _ := newAuthFixture()

		err := svc.Logout(ctx, LogoutInput{UserID: uuid.New(), TokenJTI: "jti-old", TokenTTL: 0})
		require.NoError(t, err)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes password after verifying the old one", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture()

		user, err := identity.NewUser("aya@example.com", "Aya", "old-password-1")
		require.NoError(t, err)
		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		userRepo.On("Save", mock.Anything, user).Return(nil)

		err = svc.ChangePassword(ctx, user.ID, ChangePasswordInput{
			OldPassword: "old-password-1",
			NewPassword: "new-password-1",
		})
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("new-password-1"))
	})

	t.Run("rejects a wrong current password", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture()

		user, err := identity.NewUser("aya@example.com", "Aya", "old-password-1")
		require.NoError(t, err)
		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		err = svc.ChangePassword(ctx, user.ID, ChangePasswordInput{
			OldPassword: "not-the-password",
			NewPassword: "new-password-1",
		})
		require.Error(t, err)
		assert.True(t, user.VerifyPassword("old-password-1"))
	})
}
