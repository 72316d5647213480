package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	cqhttp "github.com/mozeyada/cybercqbench/internal/adapter/http"
	cqnats "github.com/mozeyada/cybercqbench/internal/adapter/nats"
	cqotel "github.com/mozeyada/cybercqbench/internal/adapter/otel"
	"github.com/mozeyada/cybercqbench/internal/adapter/postgres"
	"github.com/mozeyada/cybercqbench/internal/adapter/ristretto"
	"github.com/mozeyada/cybercqbench/internal/adapter/ws"
	"github.com/mozeyada/cybercqbench/internal/config"
	"github.com/mozeyada/cybercqbench/internal/logger"
	"github.com/mozeyada/cybercqbench/internal/middleware"
	"github.com/mozeyada/cybercqbench/internal/service"
)

func main() {
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
		"monthly_volume", cfg.Analytics.MonthlyVolume,
	)

	ctx := context.Background()

	// --- Telemetry ---
	shutdownOtel, err := cqotel.Setup(ctx, cfg.Telemetry, cfg.Logging.Service)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownOtel(sctx)
	}()

	metrics, err := cqotel.NewMetrics()
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

	queue, err := cqnats.Connect(ctx, cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("nats: %w", err)
	}
	defer func() { _ = queue.Close() }()

	reportCache, err := ristretto.New(cfg.Cache.MaxBytes)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer reportCache.Close()

	// --- Services ---
	hub := ws.NewHub()
	store := postgres.NewStore(pool)
	promptSvc := service.NewPromptService(store)
	analyticsSvc := service.NewAnalyticsService(store, reportCache, cfg.Cache.TTL, cfg.Analytics.MonthlyVolume, metrics)
	runSvc := service.NewRunService(store, queue, hub, analyticsSvc, metrics)

	// Consume worker results from NATS
	stopResults, err := runSvc.StartResultSubscriber(ctx)
	if err != nil {
		return fmt.Errorf("result subscriber: %w", err)
	}
	defer stopResults()

	// --- HTTP ---
	handlers := &cqhttp.Handlers{
		Prompts:   promptSvc,
		Runs:      runSvc,
		Analytics: analyticsSvc,
	}

	limiter := middleware.NewRateLimiter(cfg.Rate.RequestsPerSecond, cfg.Rate.Burst)
	stopCleanup := limiter.StartCleanup(time.Minute, 10*time.Minute)
	defer stopCleanup()

	r := chi.NewRouter()
	r.Use(cqhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(cqhttp.Logger)
	r.Use(cqotel.HTTPMiddleware(cfg.Logging.Service))
	r.Use(chimw.RequestID)
	// No chimw.RealIP: the rate limiter keys on the raw socket address, and
	// rewriting RemoteAddr from forwarded headers would let clients mint a
	// fresh bucket per request.
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(limiter.Handler)

	r.Get("/health", healthHandler(hub))
	r.Get("/ws", hub.HandleWS)
	cqhttp.MountRoutes(r, handlers)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// healthHandler reports service liveness and the number of live dashboard
// connections.
func healthHandler(hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","ws_connections":%d}`, hub.ConnectionCount())
	}
}
