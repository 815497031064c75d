package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"go-task-api/internal/model"
)

const bcryptCost = 12

// UserStore is the persistence surface the auth and user services need.
type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u model.User) error
	Update(ctx context.Context, u model.User) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page int, limit int) ([]model.User, int, error)
	Count(ctx context.Context) (int, error)
}

type AuthService struct {
	users  UserStore
	tokens *TokenService
}

func NewAuthService(users UserStore, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResult, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return model.AuthResult{}, err
	}
	if exists {
		return model.AuthResult{}, model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return model.AuthResult{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         model.RoleUser,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.AuthResult{}, err
	}

	return s.issueFor(user)
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (model.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Same message as a bad password; no hint which check failed.
			return model.AuthResult{}, model.ErrInvalidCredentials
		}
		return model.AuthResult{}, err
	}

	if !user.Active {
		return model.AuthResult{}, model.ErrAccountDeactivated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.AuthResult{}, model.ErrInvalidCredentials
	}

	return s.issueFor(user)
}

func (s *AuthService) VerifyToken(tokenString string) (*model.TokenClaims, error) {
	return s.tokens.Verify(tokenString)
}

// UserFromClaims re-fetches the token subject. A missing or inactive
// user yields nil without an error; the access guard turns nil into an
// unauthorized failure.
func (s *AuthService) UserFromClaims(ctx context.Context, claims *model.TokenClaims) (*model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !user.Active {
		return nil, nil
	}

	public := user.Public()
	return &public, nil
}

// SeedAdmin creates the first admin account on an empty users table.
func (s *AuthService) SeedAdmin(ctx context.Context, email string, password string) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if password == "" {
		slog.Warn("users table is empty and SEED_ADMIN_PASSWORD is not set; skipping admin seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		LastName:     "User",
		Role:         model.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}

	slog.Info("seeded default admin", "email", email)
	return nil
}

func (s *AuthService) issueFor(user model.User) (model.AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return model.AuthResult{}, err
	}

	return model.AuthResult{
		User:        user.Public(),
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}
