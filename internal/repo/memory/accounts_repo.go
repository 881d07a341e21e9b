package memory

import (
	"context"
	"sync"

	"github.com/dkoval87/minibank/internal/domain/account"
)

type AccountsRepo struct {
	mu    sync.RWMutex
	items map[uint32]account.Account
}

func NewAccountsRepo() *AccountsRepo {
	return &AccountsRepo{
		items: make(map[uint32]account.Account),
	}
}

func (r *AccountsRepo) Save(ctx context.Context, a account.Account) error {
	r.mu.Lock()
	r.items[a.ID] = a
	r.mu.Unlock()

	return nil
}

func (r *AccountsRepo) FindByID(ctx context.Context, id uint32) (account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}

	return a, nil
}

// Update overwrites like Save; existence checks belong to the service layer.
func (r *AccountsRepo) Update(ctx context.Context, a account.Account) error {
	return r.Save(ctx, a)
}
