package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand"

	"github.com/dkoval87/minibank/internal/actorctx"
	"github.com/dkoval87/minibank/internal/apperr"
	"github.com/dkoval87/minibank/internal/domain/account"
)

// AccountStore is the slice of the account repository the bank service
// consumes.
type AccountStore interface {
	Save(ctx context.Context, a account.Account) error
	FindByID(ctx context.Context, id uint32) (account.Account, error)
	Update(ctx context.Context, a account.Account) error
}

type BankService struct {
	accounts AccountStore
	log      *slog.Logger
}

func NewBankService(accounts AccountStore, log *slog.Logger) *BankService {
	return &BankService{
		accounts: accounts,
		log:      log,
	}
}

func (s *BankService) CreateAccount(ctx context.Context, name string) (account.Account, error) {
	a := account.Account{
		ID:      rand.Uint32(),
		Name:    name,
		Balance: 0,
	}

	if err := s.accounts.Save(ctx, a); err != nil {
		return account.Account{}, apperr.Internal("Could not create account", err)
	}

	s.log.Info("account created", "account_id", a.ID, "actor", actorFrom(ctx))

	return a, nil
}

func (s *BankService) GetAccount(ctx context.Context, id uint32) (account.Account, error) {
	a, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return account.Account{}, apperr.NotFound("Account not found")
		}
		return account.Account{}, apperr.Internal("Could not load account", err)
	}

	return a, nil
}

func (s *BankService) Deposit(ctx context.Context, id uint32, amount uint64) (account.Account, error) {
	a, err := s.GetAccount(ctx, id)
	if err != nil {
		return account.Account{}, err
	}

	if a.Balance > math.MaxUint64-amount {
		return account.Account{}, apperr.Validation("Invalid amount")
	}
	a.Balance += amount

	if err := s.accounts.Update(ctx, a); err != nil {
		return account.Account{}, apperr.Internal("Could not update account", err)
	}

	s.log.Info("deposit", "account_id", id, "amount", amount, "actor", actorFrom(ctx))

	return a, nil
}

func (s *BankService) Withdraw(ctx context.Context, id uint32, amount uint64) (account.Account, error) {
	a, err := s.GetAccount(ctx, id)
	if err != nil {
		return account.Account{}, err
	}

	if a.Balance < amount {
		return account.Account{}, apperr.Validation("Insufficient funds")
	}
	a.Balance -= amount

	if err := s.accounts.Update(ctx, a); err != nil {
		return account.Account{}, apperr.Internal("Could not update account", err)
	}

	s.log.Info("withdraw", "account_id", id, "amount", amount, "actor", actorFrom(ctx))

	return a, nil
}

func (s *BankService) Transfer(ctx context.Context, from, to uint32, amount uint64) error {
	if from == to {
		return apperr.Validation("Invalid amount")
	}

	src, err := s.GetAccount(ctx, from)
	if err != nil {
		return err
	}
	dst, err := s.GetAccount(ctx, to)
	if err != nil {
		return err
	}

	if src.Balance < amount {
		return apperr.Validation("Insufficient funds")
	}
	if dst.Balance > math.MaxUint64-amount {
		return apperr.Validation("Invalid amount")
	}

	src.Balance -= amount
	dst.Balance += amount

	// two sequential writes, no atomicity across accounts
	if err := s.accounts.Update(ctx, src); err != nil {
		return apperr.Internal("Could not update account", err)
	}
	if err := s.accounts.Update(ctx, dst); err != nil {
		return apperr.Internal("Could not update account", err)
	}

	s.log.Info("transfer", "from_account", from, "to_account", to, "amount", amount, "actor", actorFrom(ctx))

	return nil
}

func actorFrom(ctx context.Context) string {
	if id, ok := actorctx.UserIDFrom(ctx); ok {
		return id
	}
	return "anonymous"
}
