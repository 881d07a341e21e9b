package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dkoval87/minibank/internal/actorctx"
	"github.com/dkoval87/minibank/internal/auth"
	"github.com/dkoval87/minibank/internal/http/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Fake implementation of the middlewares.TokenVerifier interface

type fakeVerifier struct {
	verifyFn func(token string) (*auth.Claims, error)
}

func (f *fakeVerifier) VerifyToken(token string) (*auth.Claims, error) {
	if f.verifyFn != nil {
		return f.verifyFn(token)
	}

	return nil, errors.New("no verifier configured")
}

func gateRouter(verifier middlewares.TokenVerifier, public func(string) bool, final gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.NewAuthMiddleware(verifier, public).Authenticate())
	r.GET("/open", final)
	r.GET("/locked", final)
	return r
}

func TestAuthenticatePublicPathSkipsVerification(t *testing.T) {
	called := false

	verifier := &fakeVerifier{
		verifyFn: func(token string) (*auth.Claims, error) {
			called = true
			return nil, errors.New("should not be called")
		},
	}

	public := func(path string) bool { return path == "/open" }

	r := gateRouter(verifier, public, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}
	if called {
		t.Fatalf("verifier should not run on public paths")
	}
}

func TestAuthenticateRejections(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		wantMessage string
	}{
		{
			name:        "no_header",
			header:      "",
			wantMessage: "missing bearer",
		},
		{
			name:        "not_bearer",
			header:      "Basic dXNlcjpwYXNz",
			wantMessage: "missing bearer",
		},
		{
			name:        "bad_token",
			header:      "Bearer garbage",
			wantMessage: "invalid token",
		},
	}

	verifier := &fakeVerifier{
		verifyFn: func(token string) (*auth.Claims, error) {
			return nil, auth.ErrTokenMalformed
		},
	}

	public := func(string) bool { return false }

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			r := gateRouter(verifier, public, func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/locked", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusUnauthorized, w.Body.String())
			}

			want := `"message":"` + tt.wantMessage + `"`
			if body := w.Body.String(); !strings.Contains(body, want) {
				t.Fatalf("body %q missing %q", body, want)
			}
		})
	}
}

func TestAuthenticatePropagatesUserID(t *testing.T) {
	verifier := &fakeVerifier{
		verifyFn: func(token string) (*auth.Claims, error) {
			if token != "good-token" {
				t.Fatalf("got token %q", token)
			}
			return &auth.Claims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
			}, nil
		},
	}

	public := func(string) bool { return false }

	var (
		ginUserID string
		ctxUserID string
	)

	r := gateRouter(verifier, public, func(c *gin.Context) {
		ginUserID, _ = middlewares.UserIDFromContext(c)
		// downstream code that never sees gin reads the request context
		ctxUserID, _ = actorctx.UserIDFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/locked", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	if ginUserID != "user-1" {
		t.Fatalf("gin context user id = %q, want user-1", ginUserID)
	}
	if ctxUserID != "user-1" {
		t.Fatalf("request context user id = %q, want user-1", ctxUserID)
	}
}
