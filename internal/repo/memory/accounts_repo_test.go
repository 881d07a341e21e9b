package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/dkoval87/minibank/internal/domain/account"
)

func TestAccountsRepoSaveFindUpdate(t *testing.T) {
	t.Parallel()

	repo := NewAccountsRepo()
	ctx := context.Background()

	a := account.Account{ID: 7, Name: "checking", Balance: 0}
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.FindByID(ctx, 7)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != a {
		t.Fatalf("find: got %+v want %+v", got, a)
	}

	a.Balance = 250
	if err := repo.Update(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err = repo.FindByID(ctx, 7)
	if err != nil {
		t.Fatalf("find after update: %v", err)
	}
	if got.Balance != 250 {
		t.Fatalf("balance after update: got %d want 250", got.Balance)
	}
}

func TestAccountsRepoFindMiss(t *testing.T) {
	t.Parallel()

	repo := NewAccountsRepo()

	if _, err := repo.FindByID(context.Background(), 99); !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("miss: got %v want ErrNotFound", err)
	}
}
