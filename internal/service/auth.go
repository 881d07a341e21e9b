package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dkoval87/minibank/internal/apperr"
	"github.com/dkoval87/minibank/internal/auth"
	"github.com/dkoval87/minibank/internal/domain/user"
	"github.com/dkoval87/minibank/internal/security"
	"github.com/google/uuid"
)

// UserStore is the slice of the user repository the auth service consumes.
type UserStore interface {
	Save(ctx context.Context, u user.User) error
	FindByID(ctx context.Context, id string) (user.User, error)
	FindByEmail(ctx context.Context, email string) (user.User, error)
}

type AuthService struct {
	users UserStore
	jwt   *auth.Manager
	log   *slog.Logger
}

func NewAuthService(users UserStore, jwtManager *auth.Manager, log *slog.Logger) *AuthService {
	return &AuthService{
		users: users,
		jwt:   jwtManager,
		log:   log,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (user.User, error) {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return user.User{}, apperr.Validation("User with this email already exists")
	}
	if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, apperr.Internal("Could not create user", err)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return user.User{}, apperr.Internal("Could not create user", err)
	}

	u := user.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.Save(ctx, u); err != nil {
		return user.User{}, apperr.Internal("Could not create user", err)
	}

	s.log.Info("user registered", "user_id", u.ID)

	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// identical answer for unknown email and wrong password
			return "", apperr.Unauthorized("Invalid email or password")
		}
		return "", apperr.Internal("Could not verify credentials", err)
	}

	ok, err := security.VerifyPassword(password, u.PasswordHash)
	if err != nil {
		return "", apperr.Internal("Could not verify credentials", err)
	}
	if !ok {
		return "", apperr.Unauthorized("Invalid email or password")
	}

	token, err := s.jwt.GenerateToken(u.ID)
	if err != nil {
		return "", apperr.Internal("Could not generate token", err)
	}

	s.log.Info("user logged in", "user_id", u.ID)

	return token, nil
}

// Token issues a fresh token for a known user id without a credential check.
// Every issuance is logged with the target user.
func (s *AuthService) Token(ctx context.Context, userID string) (string, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", apperr.NotFound(fmt.Sprintf("User not found: %s", userID))
		}
		return "", apperr.Internal("Could not issue token", err)
	}

	token, err := s.jwt.GenerateToken(u.ID)
	if err != nil {
		return "", apperr.Internal("Could not generate token", err)
	}

	s.log.Info("token issued by id", "user_id", u.ID)

	return token, nil
}
