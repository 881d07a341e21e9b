package http

import (
	"log/slog"
	"strings"
	"time"

	"github.com/dkoval87/minibank/internal/config"
	"github.com/dkoval87/minibank/internal/http/handlers"
	"github.com/dkoval87/minibank/internal/http/middlewares"
	"github.com/dkoval87/minibank/internal/observability"
	"github.com/dkoval87/minibank/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20

// Deps carries everything the router wires into handlers. main builds it
// once; integration tests build it with in-memory stores. Prom is built from
// Metrics by the caller because the repos share it for DB metrics.
type Deps struct {
	JWT     middlewares.TokenVerifier
	Auth    *service.AuthService
	Bank    *service.BankService
	Prom    *observability.Prom
	Metrics *prometheus.Registry
	Ping    func() error
}

// PublicRoute reports whether a path is reachable without a bearer token.
func PublicRoute(path string) bool {
	switch {
	case path == "/api/health":
		return true
	case strings.HasPrefix(path, "/api/auth/"):
		return true
	case path == "/readyz" || path == "/metrics":
		return true
	case path == "/docs" || strings.HasPrefix(path, "/docs/"):
		return true
	}
	return false
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	authGate := middlewares.NewAuthMiddleware(deps.JWT, PublicRoute)

	// middleware; the auth gate sits before body checks so a missing token
	// answers 401 whatever the payload looks like
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.Timing())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(deps.Prom.GinHandleMiddleware())
	r.Use(otelgin.Middleware("minibank"))
	r.Use(authGate.Authenticate())
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))

	// Routes
	health := handlers.NewHealthHandler(deps.Ping)
	r.GET("/api/health", health.Health)
	r.GET("/readyz", health.Readyz)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))

	r.GET("/docs", handlers.SwaggerUI)
	r.GET("/docs/openapi.yaml", handlers.OpenAPISpec)

	// credential endpoints carry a per-IP budget against brute force
	authLimiter := middlewares.NewRateLimiter(10, time.Minute)
	limitByIP := authLimiter.RateLimiterMiddleware(middlewares.KeyByIP)

	authHandler := handlers.NewAuthHandler(deps.Auth)
	r.POST("/api/auth/register", limitByIP, authHandler.Register)
	r.POST("/api/auth/login", limitByIP, authHandler.Login)
	r.POST("/api/auth/token", limitByIP, authHandler.Token)

	accountsHandler := handlers.NewAccountsHandler(deps.Bank)
	r.POST("/api/accounts", accountsHandler.CreateAccount)
	r.GET("/api/accounts/:id", accountsHandler.GetAccount)
	r.POST("/api/accounts/:id/deposit", accountsHandler.Deposit)
	r.POST("/api/accounts/:id/withdraw", accountsHandler.Withdraw)

	transfersHandler := handlers.NewTransfersHandler(deps.Bank)
	r.POST("/api/transfers", transfersHandler.Transfer)

	return r
}
