package postgres

import (
	"context"
	"errors"

	"github.com/dkoval87/minibank/internal/domain/account"
	"github.com/dkoval87/minibank/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountsRepo stores ids and balances as BIGINT; values are converted at
// the edge because postgres has no unsigned columns.
type AccountsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewAccountsRepo(pool *pgxpool.Pool, prom *observability.Prom) *AccountsRepo {
	return &AccountsRepo{
		pool: pool,
		prom: prom,
	}
}

func (repo *AccountsRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (repo *AccountsRepo) Save(ctx context.Context, a account.Account) error {
	return repo.observe("accounts.save", func() error {
		_, err := repo.pool.Exec(ctx,
			`INSERT INTO accounts (id, name, balance)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (id) DO UPDATE
			 SET name = EXCLUDED.name,
			     balance = EXCLUDED.balance`,
			int64(a.ID), a.Name, int64(a.Balance),
		)
		return err
	})
}

func (repo *AccountsRepo) FindByID(ctx context.Context, id uint32) (account.Account, error) {
	var (
		rowID   int64
		name    string
		balance int64
	)

	err := repo.observe("accounts.find_by_id", func() error {
		return repo.pool.QueryRow(ctx,
			`SELECT id, name, balance FROM accounts WHERE id = $1`,
			int64(id),
		).Scan(&rowID, &name, &balance)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrNotFound
		}

		return account.Account{}, err
	}

	return account.Account{
		ID:      uint32(rowID),
		Name:    name,
		Balance: uint64(balance),
	}, nil
}

func (repo *AccountsRepo) Update(ctx context.Context, a account.Account) error {
	var tag int64

	err := repo.observe("accounts.update", func() error {
		t, err := repo.pool.Exec(ctx,
			`UPDATE accounts SET name = $2, balance = $3 WHERE id = $1`,
			int64(a.ID), a.Name, int64(a.Balance),
		)
		if err != nil {
			return err
		}
		tag = t.RowsAffected()
		return nil
	})

	if err != nil {
		return err
	}

	if tag == 0 {
		return account.ErrNotFound
	}

	return nil
}
