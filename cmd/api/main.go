package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkoval87/minibank/internal/auth"
	"github.com/dkoval87/minibank/internal/config"
	"github.com/dkoval87/minibank/internal/db"
	httpx "github.com/dkoval87/minibank/internal/http"
	"github.com/dkoval87/minibank/internal/observability"
	"github.com/dkoval87/minibank/internal/repo/memory"
	"github.com/dkoval87/minibank/internal/repo/postgres"
	"github.com/dkoval87/minibank/internal/service"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// .env is a dev convenience; the real environment wins
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)

	// tracing is opt-in via OTLP_ENDPOINT
	var shutdownTracer func(context.Context) error

	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(context.Background(), "minibank", cfg.Env, cfg.OTLPEndpoint)
		if err != nil {
			log.Error("tracer init failed", "err", err)
		} else {
			shutdownTracer = shutdown
		}
	}

	metrics := prometheus.NewRegistry()
	prom := observability.NewProm(metrics)

	var (
		users    service.UserStore
		accounts service.AccountStore
		ping     func() error
	)

	switch cfg.StoreBackend {
	case "postgres":
		pool, err := db.NewPool(cfg.DBURL)
		if err != nil {
			log.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		schemaCtx, cancel := config.WithTimeout(5 * time.Second)
		err = postgres.EnsureSchema(schemaCtx, pool)
		cancel()

		if err != nil {
			log.Error("schema setup failed", "err", err)
			os.Exit(1)
		}

		users = postgres.NewUsersRepo(pool, prom)
		accounts = postgres.NewAccountsRepo(pool, prom)

		ping = func() error {
			ctx, cancel := config.WithTimeout(1 * time.Second)
			defer cancel()

			return pool.Ping(ctx)
		}

	default:
		users = memory.NewUsersRepo()
		accounts = memory.NewAccountsRepo()
	}

	jwtManager := auth.NewManager(cfg.JWTSecret, auth.TokenTTL)

	authSvc := service.NewAuthService(users, jwtManager, log)
	bankSvc := service.NewBankService(accounts, log)

	seedCtx, cancelSeed := config.WithTimeout(5 * time.Second)
	err = authSvc.EnsureUser(seedCtx, cfg.SeedUserEmail, cfg.SeedUserPass)
	cancelSeed()

	if err != nil {
		log.Error("seed user failed", "err", err)
	}

	router := httpx.NewRouter(log, cfg, httpx.Deps{
		JWT:     jwtManager,
		Auth:    authSvc,
		Bank:    bankSvc,
		Prom:    prom,
		Metrics: metrics,
		Ping:    ping,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreBackend)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
			return
		}

		if shutdownTracer != nil {
			if err := shutdownTracer(ctx); err != nil {
				log.Error("tracer shutdown failed", "err", err)
			}
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
