package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/tiwiti-backend/internal/api"
	"github.com/baharkarakas/tiwiti-backend/internal/auth"
	"github.com/baharkarakas/tiwiti-backend/internal/config"
	"github.com/baharkarakas/tiwiti-backend/internal/db"
	"github.com/baharkarakas/tiwiti-backend/internal/logger"
	"github.com/baharkarakas/tiwiti-backend/internal/metrics"
	"github.com/baharkarakas/tiwiti-backend/internal/middleware"
	"github.com/baharkarakas/tiwiti-backend/internal/repository/postgres"
	"github.com/baharkarakas/tiwiti-backend/internal/services"
	"github.com/baharkarakas/tiwiti-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	store := postgres.NewStore(pool, cfg.TxTimeout)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	audit := services.NewAuditTrail(store.Repos().AuditLogs, wp, log)

	userSvc := services.NewUserService(store, tm)
	ledgerSvc := services.NewLedgerService(store, audit, log)
	adminSvc := services.NewAdminService(store, audit, log)

	r := api.NewRouter(api.RouterDeps{
		Cfg:    cfg,
		Auth:   middleware.NewAuthMiddleware(tm),
		Users:  userSvc,
		Ledger: ledgerSvc,
		Admin:  adminSvc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
