package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	tshttp "github.com/tasksetu/tasksetu/internal/adapter/http"
	tsnats "github.com/tasksetu/tasksetu/internal/adapter/nats"
	"github.com/tasksetu/tasksetu/internal/adapter/otel"
	"github.com/tasksetu/tasksetu/internal/adapter/postgres"
	"github.com/tasksetu/tasksetu/internal/adapter/ristretto"
	"github.com/tasksetu/tasksetu/internal/adapter/ws"
	"github.com/tasksetu/tasksetu/internal/config"
	"github.com/tasksetu/tasksetu/internal/logger"
	"github.com/tasksetu/tasksetu/internal/middleware"
	"github.com/tasksetu/tasksetu/internal/resilience"
	"github.com/tasksetu/tasksetu/internal/service"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "admin" {
		if err := runAdmin(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"auth_enabled", cfg.Auth.Enabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Telemetry ---
	shutdownOtel, err := otel.Setup(ctx, cfg.Logging.Service, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		if err := shutdownOtel(context.Background()); err != nil {
			slog.Warn("telemetry shutdown", "error", err)
		}
	}()

	metrics, err := otel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Infrastructure ---
	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	queue, err := tsnats.Connect(ctx, cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("nats: %w", err)
	}
	defer func() {
		if err := queue.Drain(); err != nil {
			slog.Warn("nats drain", "error", err)
		}
	}()

	taskCache, err := ristretto.New(cfg.Cache.MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer taskCache.Close()

	// --- Services ---
	hub := ws.NewHub()
	defer hub.Close()

	store := postgres.NewStore(pool)
	breaker := resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout)
	activitySvc := service.NewActivityService(store, queue, breaker)
	taskSvc := service.NewTaskService(store, queue, hub, taskCache, activitySvc, cfg.Cache.TTL, cfg.Proposal.TTL)
	commentSvc := service.NewCommentService(store, queue, hub, taskSvc, activitySvc)
	authSvc := service.NewAuthService(store, &cfg.Auth)
	tenantSvc := service.NewTenantService(store)

	handlers := &tshttp.Handlers{
		Tasks:    taskSvc,
		Comments: commentSvc,
		Activity: activitySvc,
		Auth:     authSvc,
		Tenants:  tenantSvc,
		Hub:      hub,
		Queue:    queue,
		Metrics:  metrics,
	}

	// --- HTTP ---
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.TenantID)
	r.Use(middleware.Auth(authSvc, cfg.Auth.Enabled))
	r.Use(tshttp.SecurityHeaders)
	r.Use(tshttp.CORS(cfg.Server.CORSOrigin))
	r.Use(tshttp.Logger)
	r.Use(otel.HTTPMiddleware(cfg.Logging.Service))

	tshttp.MountRoutes(r, handlers)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
