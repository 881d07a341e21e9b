package handlers

import (
	"context"
	"net/http"

	"github.com/dkoval87/minibank/internal/domain/account"
	"github.com/gin-gonic/gin"
)

type Transferrer interface {
	Transfer(ctx context.Context, from, to uint32, amount uint64) error
}

type TransfersHandler struct {
	svc Transferrer
}

func NewTransfersHandler(svc Transferrer) *TransfersHandler {
	return &TransfersHandler{svc: svc}
}

func (h *TransfersHandler) Transfer(ctx *gin.Context) {
	var req account.TransferRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := opTimeout(ctx)
	defer cancel()

	if err := h.svc.Transfer(cctx, *req.FromAccountID, *req.ToAccountID, *req.Amount); err != nil {
		RespondAppError(ctx, err)
		return
	}

	// Success carries no body.
	ctx.Status(http.StatusOK)
}
