package postgres

import (
	"context"
	"errors"

	"github.com/dkoval87/minibank/internal/domain/user"
	"github.com/dkoval87/minibank/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		pool: pool,
		prom: prom,
	}
}

func (repo *UsersRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Save upserts by id so it carries the same overwrite semantics as the
// in-memory store.
func (repo *UsersRepo) Save(ctx context.Context, u user.User) error {
	return repo.observe("users.save", func() error {
		_, err := repo.pool.Exec(ctx,
			`INSERT INTO users (id, email, password_hash)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (id) DO UPDATE
			 SET email = EXCLUDED.email,
			     password_hash = EXCLUDED.password_hash`,
			u.ID, u.Email, u.PasswordHash,
		)
		return err
	})
}

func (repo *UsersRepo) FindByID(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := repo.observe("users.find_by_id", func() error {
		return repo.pool.QueryRow(ctx,
			`SELECT id, email, password_hash FROM users WHERE id = $1`,
			id,
		).Scan(&u.ID, &u.Email, &u.PasswordHash)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

func (repo *UsersRepo) FindByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := repo.observe("users.find_by_email", func() error {
		return repo.pool.QueryRow(ctx,
			`SELECT id, email, password_hash FROM users WHERE email = $1`,
			email,
		).Scan(&u.ID, &u.Email, &u.PasswordHash)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}
