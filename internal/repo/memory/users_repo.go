package memory

import (
	"context"
	"sync"

	"github.com/dkoval87/minibank/internal/domain/user"
)

// UsersRepo keeps users in process memory behind one RWMutex, indexed by id
// and by email. Save overwrites on id collision; uniqueness is the caller's
// concern.
type UsersRepo struct {
	mu      sync.RWMutex
	byID    map[string]user.User
	idByEml map[string]string
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		byID:    make(map[string]user.User),
		idByEml: make(map[string]string),
	}
}

func (r *UsersRepo) Save(ctx context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// an overwrite may change the email; the old index entry must go
	if prev, ok := r.byID[u.ID]; ok && prev.Email != u.Email {
		delete(r.idByEml, prev.Email)
	}

	r.byID[u.ID] = u
	r.idByEml[u.Email] = u.ID

	return nil
}

func (r *UsersRepo) FindByID(ctx context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) FindByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idByEml[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return r.byID[id], nil
}
