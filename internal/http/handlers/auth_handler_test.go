package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkoval87/minibank/internal/apperr"
	"github.com/dkoval87/minibank/internal/domain/user"
	"github.com/dkoval87/minibank/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

// Fake service implementation of the handlers.Authenticator interface

type fakeAuthService struct {
	registerFn func(ctx context.Context, email, password string) (user.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, error)
	tokenFn    func(ctx context.Context, userID string) (string, error)
}

func (f *fakeAuthService) Register(ctx context.Context, email, password string) (user.User, error) {
	if f.registerFn != nil {
		return f.registerFn(ctx, email, password)
	}

	return user.User{}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, email, password)
	}

	return "", nil
}

func (f *fakeAuthService) Token(ctx context.Context, userID string) (string, error) {
	if f.tokenFn != nil {
		return f.tokenFn(ctx, userID)
	}

	return "", nil
}

// small helper function which returns the gin engine to mount one handler per test

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svcSetUp       func(*fakeAuthService)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"email": "alice@example.com", "password": "s3cret"}`,
			svcSetUp: func(f *fakeAuthService) {
				f.registerFn = func(ctx context.Context, email, password string) (user.User, error) {
					return user.User{ID: "user-1", Email: email}, nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "duplicate_email",
			body: `{"email": "alice@example.com", "password": "s3cret"}`,
			svcSetUp: func(f *fakeAuthService) {
				f.registerFn = func(ctx context.Context, email, password string) (user.User, error) {
					return user.User{}, apperr.Validation("User with this email already exists")
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "invalid_email",
			body: `{"email": "not-an-email", "password": "s3cret"}`,
			svcSetUp: func(f *fakeAuthService) {
				// invalid payload, the service should not be called
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "missing_password",
			body: `{"email": "alice@example.com"}`,
			svcSetUp: func(f *fakeAuthService) {
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fakeSvc := &fakeAuthService{}

			if tt.svcSetUp != nil {
				tt.svcSetUp(fakeSvc)
			}

			h := handlers.NewAuthHandler(fakeSvc)

			r := setupRouter(http.MethodPost, "/api/auth/register", h.Register)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode == http.StatusCreated {
				var resp struct {
					ID    string `json:"id"`
					Email string `json:"email"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if resp.ID != "user-1" || resp.Email != "alice@example.com" {
					t.Fatalf("unexpected body: %+v", resp)
				}
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svcSetUp       func(*fakeAuthService)
		wantStatusCode int
		wantToken      string
	}{
		{
			name: "success",
			body: `{"email": "alice@example.com", "password": "s3cret"}`,
			svcSetUp: func(f *fakeAuthService) {
				f.loginFn = func(ctx context.Context, email, password string) (string, error) {
					return "signed.jwt.token", nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantToken:      "signed.jwt.token",
		},
		{
			name: "wrong_credentials",
			body: `{"email": "alice@example.com", "password": "nope"}`,
			svcSetUp: func(f *fakeAuthService) {
				f.loginFn = func(ctx context.Context, email, password string) (string, error) {
					return "", apperr.Unauthorized("Invalid email or password")
				}
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "missing_body",
			body: ``,
			svcSetUp: func(f *fakeAuthService) {
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fakeSvc := &fakeAuthService{}

			if tt.svcSetUp != nil {
				tt.svcSetUp(fakeSvc)
			}

			h := handlers.NewAuthHandler(fakeSvc)

			r := setupRouter(http.MethodPost, "/api/auth/login", h.Login)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantToken != "" {
				var resp struct {
					AccessToken string `json:"access_token"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if resp.AccessToken != tt.wantToken {
					t.Fatalf("got token %q, want %q", resp.AccessToken, tt.wantToken)
				}
			}
		})
	}
}

func TestTokenHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svcSetUp       func(*fakeAuthService)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"user_id": "user-1"}`,
			svcSetUp: func(f *fakeAuthService) {
				f.tokenFn = func(ctx context.Context, userID string) (string, error) {
					if userID != "user-1" {
						t.Fatalf("unexpected user id %q", userID)
					}
					return "signed.jwt.token", nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "unknown_user",
			body: `{"user_id": "missing"}`,
			svcSetUp: func(f *fakeAuthService) {
				f.tokenFn = func(ctx context.Context, userID string) (string, error) {
					return "", apperr.NotFound("User not found: missing")
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "missing_user_id",
			body: `{}`,
			svcSetUp: func(f *fakeAuthService) {
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fakeSvc := &fakeAuthService{}

			if tt.svcSetUp != nil {
				tt.svcSetUp(fakeSvc)
			}

			h := handlers.NewAuthHandler(fakeSvc)

			r := setupRouter(http.MethodPost, "/api/auth/token", h.Token)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/token", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}
