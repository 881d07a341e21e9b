package middlewares

import (
	"net/http"
	"strings"

	"github.com/dkoval87/minibank/internal/actorctx"
	"github.com/dkoval87/minibank/internal/auth"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// AuthMiddleware gates every route except the ones the public predicate
// allows through. It holds no per-request state; each request is judged on
// its own header.
type AuthMiddleware struct {
	jwt    TokenVerifier
	public func(path string) bool
}

func NewAuthMiddleware(jwt TokenVerifier, public func(path string) bool) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, public: public}
}

const bearerPrefix = "Bearer "

func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.public(c.Request.URL.Path) {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "missing bearer")
			return
		}

		claims, err := m.jwt.VerifyToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			// uniform answer regardless of cause; detail stays server-side
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(CtxUserID, claims.Subject)
		c.Request = c.Request.WithContext(actorctx.WithUserID(c.Request.Context(), claims.Subject))

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":      "unauthorized",
			"message":   message,
			"requestId": c.GetString(CtxRequestID),
		},
	})
}

// UserIDFromContext lets handlers read the authenticated user without
// knowing the context key.
func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
