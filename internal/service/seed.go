package service

import (
	"context"
	"errors"

	"github.com/dkoval87/minibank/internal/domain/user"
)

// EnsureUser registers a bootstrap user at startup unless the email is
// already taken. Used for demo seeding; a no-op when the user exists.
func (s *AuthService) EnsureUser(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return err
	}

	u, err := s.Register(ctx, email, password)
	if err != nil {
		return err
	}

	s.log.Info("seed user created", "user_id", u.ID)

	return nil
}
