package account

import "errors"

type Account struct {
	ID      uint32 `json:"id"`
	Name    string `json:"name"`
	Balance uint64 `json:"balance"`
}

var (
	ErrNotFound          = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type CreateAccountRequest struct {
	Name string `json:"name" binding:"required"`
}

// Amount is a pointer so an explicit zero passes the required check;
// zero-value deposits and withdrawals are legal.
type AmountRequest struct {
	Amount *uint64 `json:"amount" binding:"required"`
}

type TransferRequest struct {
	FromAccountID *uint32 `json:"from_account_id" binding:"required"`
	ToAccountID   *uint32 `json:"to_account_id" binding:"required"`
	Amount        *uint64 `json:"amount" binding:"required"`
}
