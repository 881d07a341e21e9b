package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/dkoval87/minibank/internal/apperr"
	"github.com/dkoval87/minibank/internal/repo/memory"
	"github.com/dkoval87/minibank/internal/service"
)

func newBankService() *service.BankService {
	return service.NewBankService(memory.NewAccountsRepo(), discardLogger())
}

func TestCreateAndGetAccount(t *testing.T) {
	t.Parallel()

	svc := newBankService()
	ctx := context.Background()

	a, err := svc.CreateAccount(ctx, "checking")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Name != "checking" || a.Balance != 0 {
		t.Fatalf("new account malformed: %+v", a)
	}

	got, err := svc.GetAccount(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != a {
		t.Fatalf("get: got %+v want %+v", got, a)
	}

	_, err = svc.GetAccount(ctx, a.ID+1)
	wantKind(t, err, apperr.KindNotFound, "Account not found")
}

func TestDepositAndWithdraw(t *testing.T) {
	t.Parallel()

	svc := newBankService()
	ctx := context.Background()

	a, err := svc.CreateAccount(ctx, "main")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	a, err = svc.Deposit(ctx, a.ID, 100)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if a.Balance != 100 {
		t.Fatalf("balance after deposit: got %d want 100", a.Balance)
	}

	// zero amounts are legal on both operations
	a, err = svc.Deposit(ctx, a.ID, 0)
	if err != nil {
		t.Fatalf("zero deposit: %v", err)
	}
	if a.Balance != 100 {
		t.Fatalf("balance after zero deposit: got %d want 100", a.Balance)
	}

	a, err = svc.Withdraw(ctx, a.ID, 0)
	if err != nil {
		t.Fatalf("zero withdraw: %v", err)
	}
	if a.Balance != 100 {
		t.Fatalf("balance after zero withdraw: got %d want 100", a.Balance)
	}

	a, err = svc.Withdraw(ctx, a.ID, 30)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if a.Balance != 70 {
		t.Fatalf("balance after withdraw: got %d want 70", a.Balance)
	}

	_, err = svc.Withdraw(ctx, a.ID, 1000)
	wantKind(t, err, apperr.KindValidation, "Insufficient funds")

	got, err := svc.GetAccount(ctx, a.ID)
	if err != nil {
		t.Fatalf("get after failed withdraw: %v", err)
	}
	if got.Balance != 70 {
		t.Fatalf("failed withdraw must not change balance: got %d want 70", got.Balance)
	}
}

func TestDepositOverflow(t *testing.T) {
	t.Parallel()

	svc := newBankService()
	ctx := context.Background()

	a, err := svc.CreateAccount(ctx, "vault")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Deposit(ctx, a.ID, math.MaxUint64); err != nil {
		t.Fatalf("max deposit: %v", err)
	}

	_, err = svc.Deposit(ctx, a.ID, 1)
	wantKind(t, err, apperr.KindValidation, "Invalid amount")
}

func TestTransfer(t *testing.T) {
	t.Parallel()

	svc := newBankService()
	ctx := context.Background()

	src, err := svc.CreateAccount(ctx, "src")
	if err != nil {
		t.Fatalf("create src: %v", err)
	}
	dst, err := svc.CreateAccount(ctx, "dst")
	if err != nil {
		t.Fatalf("create dst: %v", err)
	}

	if _, err := svc.Deposit(ctx, src.ID, 100); err != nil {
		t.Fatalf("fund src: %v", err)
	}

	if err := svc.Transfer(ctx, src.ID, dst.ID, 40); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	gotSrc, _ := svc.GetAccount(ctx, src.ID)
	gotDst, _ := svc.GetAccount(ctx, dst.ID)
	if gotSrc.Balance != 60 || gotDst.Balance != 40 {
		t.Fatalf("balances after transfer: src=%d dst=%d, want 60/40", gotSrc.Balance, gotDst.Balance)
	}

	err = svc.Transfer(ctx, src.ID, src.ID, 10)
	wantKind(t, err, apperr.KindValidation, "Invalid amount")

	err = svc.Transfer(ctx, src.ID, dst.ID, 10_000)
	wantKind(t, err, apperr.KindValidation, "Insufficient funds")

	gotSrc, _ = svc.GetAccount(ctx, src.ID)
	gotDst, _ = svc.GetAccount(ctx, dst.ID)
	if gotSrc.Balance != 60 || gotDst.Balance != 40 {
		t.Fatalf("failed transfer must not move funds: src=%d dst=%d", gotSrc.Balance, gotDst.Balance)
	}
}

func TestTransferUnknownAccounts(t *testing.T) {
	t.Parallel()

	svc := newBankService()
	ctx := context.Background()

	a, err := svc.CreateAccount(ctx, "only")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.Transfer(ctx, a.ID+1, a.ID, 10)
	wantKind(t, err, apperr.KindNotFound, "Account not found")

	err = svc.Transfer(ctx, a.ID, a.ID+1, 10)
	wantKind(t, err, apperr.KindNotFound, "Account not found")
}
