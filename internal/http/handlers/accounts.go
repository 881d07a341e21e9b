package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dkoval87/minibank/internal/domain/account"
	"github.com/gin-gonic/gin"
)

// Ledger is the slice of the bank service these handlers consume.
type Ledger interface {
	CreateAccount(ctx context.Context, name string) (account.Account, error)
	GetAccount(ctx context.Context, id uint32) (account.Account, error)
	Deposit(ctx context.Context, id uint32, amount uint64) (account.Account, error)
	Withdraw(ctx context.Context, id uint32, amount uint64) (account.Account, error)
}

type AccountsHandler struct {
	svc Ledger
}

func NewAccountsHandler(svc Ledger) *AccountsHandler {
	return &AccountsHandler{svc: svc}
}

func (h *AccountsHandler) CreateAccount(ctx *gin.Context) {
	var req account.CreateAccountRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := opTimeout(ctx)
	defer cancel()

	a, err := h.svc.CreateAccount(cctx, req.Name)
	if err != nil {
		RespondAppError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, a)
}

func (h *AccountsHandler) GetAccount(ctx *gin.Context) {
	id, ok := accountIDParam(ctx)
	if !ok {
		return
	}

	cctx, cancel := opTimeout(ctx)
	defer cancel()

	a, err := h.svc.GetAccount(cctx, id)
	if err != nil {
		RespondAppError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, a)
}

func (h *AccountsHandler) Deposit(ctx *gin.Context) {
	id, ok := accountIDParam(ctx)
	if !ok {
		return
	}

	var req account.AmountRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := opTimeout(ctx)
	defer cancel()

	a, err := h.svc.Deposit(cctx, id, *req.Amount)
	if err != nil {
		RespondAppError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, a)
}

func (h *AccountsHandler) Withdraw(ctx *gin.Context) {
	id, ok := accountIDParam(ctx)
	if !ok {
		return
	}

	var req account.AmountRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := opTimeout(ctx)
	defer cancel()

	a, err := h.svc.Withdraw(cctx, id, *req.Amount)
	if err != nil {
		RespondAppError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, a)
}

func accountIDParam(ctx *gin.Context) (uint32, bool) {
	id64, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		RespondBadRequest(ctx, "Invalid account id", nil)
		return 0, false
	}

	return uint32(id64), true
}

// opTimeout bounds a store operation while keeping the request context, so
// the authenticated actor and any active span travel with it.
func opTimeout(ctx *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), 3*time.Second)
}
