package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go-task-api/internal/model"
)

func newAuthService(users *mockUserStore) *AuthService {
	return NewAuthService(users, NewTokenService("test-secret", time.Hour))
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates user with default role and issues token", func(t *testing.T) {
		users := new(mockUserStore)
		svc := newAuthService(users)

		users.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
			return u.Email == "alice@example.com" &&
				u.Role == model.RoleUser &&
				u.Active &&
				u.PasswordHash != "" &&
				u.PasswordHash != "s3cret-pass"
		})).Return(nil)

		result, err := svc.Register(context.Background(), model.RegisterRequest{
			Email:     "alice@example.com",
			Password:  "s3cret-pass",
			FirstName: "Alice",
			LastName:  "Smith",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, "alice@example.com", result.User.Email)
		assert.Equal(t, model.RoleUser, result.User.Role)
		users.AssertExpectations(t)
	})

	t.Run("second registration with same email conflicts", func(t *testing.T) {
		users := new(mockUserStore)
		svc := newAuthService(users)

		users.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(true, nil)

		_, err := svc.Register(context.Background(), model.RegisterRequest{
			Email:     "alice@example.com",
			Password:  "s3cret-pass",
			FirstName: "Alice",
			LastName:  "Smith",
		})

		assert.ErrorIs(t, err, model.ErrEmailTaken)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	activeUser := func(t *testing.T) model.User {
		return model.User{
			ID:           "user-1",
			Email:        "alice@example.com",
			PasswordHash: hashFor(t, "correct-pass"),
			Role:         model.RoleUser,
			Active:       true,
		}
	}

	t.Run("success returns token and public user", func(t *testing.T) {
		users := new(mockUserStore)
		svc := newAuthService(users)
		users.On("FindByEmail", mock.Anything, "alice@example.com").Return(activeUser(t), nil)

		result, err := svc.Login(context.Background(), "alice@example.com", "correct-pass")
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "user-1", result.User.ID)
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		users := new(mockUserStore)
		svc := newAuthService(users)
		users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(model.User{}, model.ErrUserNotFound)
		users.On("FindByEmail", mock.Anything, "alice@example.com").Return(activeUser(t), nil)

		_, errUnknown := svc.Login(context.Background(), "nobody@example.com", "whatever")
		_, errWrongPass := svc.Login(context.Background(), "alice@example.com", "wrong-pass")

		assert.ErrorIs(t, errUnknown, model.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPass, model.ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
	})

	t.Run("deactivated account gets a distinct error", func(t *testing.T) {
		users := new(mockUserStore)
		svc := newAuthService(users)

		inactive := activeUser(t)
		inactive.Active = false
		users.On("FindByEmail", mock.Anything, "alice@example.com").Return(inactive, nil)

		_, err := svc.Login(context.Background(), "alice@example.com", "correct-pass")
		assert.ErrorIs(t, err, model.ErrAccountDeactivated)
	})
}

func TestAuthService_UserFromClaims(t *testing.T) {
	claims := &model.TokenClaims{UserID: "user-1", Email: "alice@example.com"}

	t.Run("resolves active user", func(t *testing.T) {
		users := new(mockUserStore)
		svc := newAuthService(users)
		users.On("FindByID", mock.Anything, "user-1").Return(model.User{
			ID: "user-1", Email: "alice@example.com", Role: model.RoleUser, Active: true,
		}, nil)

		user, err := svc.UserFromClaims(context.Background(), claims)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "user-1", user.ID)
	})

	t.Run("missing user yields nil without error", func(t *testing.T) {
		users := new(mockUserStore)
		svc := newAuthService(users)
		users.On("FindByID", mock.Anything, "user-1").Return(model.User{}, model.ErrUserNotFound)

		user, err := svc.UserFromClaims(context.Background(), claims)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("inactive user yields nil without error", func(t *testing.T) {
		users := new(mockUserStore)
		svc := newAuthService(users)
		users.On("FindByID", mock.Anything, "user-1").Return(model.User{
			ID: "user-1", Active: false,
		}, nil)

		user, err := svc.UserFromClaims(context.Background(), claims)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	// A token issued at login keeps resolving to the same identity.
	users := new(mockUserStore)
	tokens := NewTokenService("test-secret", time.Hour)
	svc := NewAuthService(users, tokens)

	users.On("FindByEmail", mock.Anything, "alice@example.com").Return(model.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: hashFor(t, "correct-pass"),
		Active:       true,
	}, nil)

	result, err := svc.Login(context.Background(), "alice@example.com", "correct-pass")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		claims, err := svc.VerifyToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
	}
}
