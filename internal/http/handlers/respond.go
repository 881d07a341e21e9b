package handlers

import (
	"net/http"

	"github.com/dkoval87/minibank/internal/apperr"
	"github.com/dkoval87/minibank/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	if v, ok := ctx.Get(middlewares.CtxRequestID); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.JSON(status, gin.H{
		"error": APIError{
			Code:      code,
			Message:   message,
			RequestID: requestIDFrom(ctx),
			Details:   details,
		},
	})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, "unauthorized", message, nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}

// RespondAppError is the one place the service error taxonomy turns into
// HTTP statuses. Every kind has a branch; anything unrecognized answers 500.
func RespondAppError(ctx *gin.Context, err error) {
	ae, ok := apperr.From(err)
	if !ok {
		RespondInternal(ctx, "Internal server error")
		return
	}

	switch ae.Kind {
	case apperr.KindValidation:
		RespondBadRequest(ctx, ae.Message, nil)
	case apperr.KindNotFound:
		RespondNotFound(ctx, ae.Message)
	case apperr.KindUnauthorized:
		RespondUnauthorized(ctx, ae.Message)
	case apperr.KindInternal:
		RespondInternal(ctx, ae.Message)
	default:
		RespondInternal(ctx, ae.Message)
	}
}
