package main

import (
	"context"
	"encoding/json"
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

	mdhttp "github.com/kestrelworks/meritd/internal/adapter/http"
	"github.com/kestrelworks/meritd/internal/adapter/membus"
	mdnats "github.com/kestrelworks/meritd/internal/adapter/nats"
	mdotel "github.com/kestrelworks/meritd/internal/adapter/otel"
	"github.com/kestrelworks/meritd/internal/adapter/ristretto"
	"github.com/kestrelworks/meritd/internal/adapter/ws"
	"github.com/kestrelworks/meritd/internal/config"
	"github.com/kestrelworks/meritd/internal/logger"
	"github.com/kestrelworks/meritd/internal/service"
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
		"nats", cfg.NATS.URL != "",
		"otlp", cfg.Telemetry.OTLPEndpoint != "",
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Telemetry ---
	shutdownOtel, err := mdotel.Setup(ctx, cfg.Logging.Service, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOtel(shutdownCtx); err != nil {
			slog.Error("otel shutdown", "error", err)
		}
	}()

	// --- Core ---
	bus := membus.New()
	registry := service.NewRegistry(bus)

	agentSvc := service.NewAgentService(registry)
	taskSvc := service.NewTaskService(registry)
	reviewSvc := service.NewReviewService(registry)
	badgeSvc := service.NewBadgeService(registry)
	boardSvc := service.NewLeaderboardService(registry)
	recommendSvc := service.NewRecommendService(registry)
	advisorySvc := service.NewAdvisoryService(agentSvc)

	// --- Event consumers ---
	metrics, err := mdotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	cancelMetrics := metrics.Bind(bus)
	defer cancelMetrics()

	hub := ws.NewHub()
	cancelHub := hub.Bind(bus)
	defer cancelHub()

	if cfg.NATS.URL != "" {
		relay, err := mdnats.Connect(ctx, cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("nats: %w", err)
		}
		defer func() { _ = relay.Close() }()
		cancelRelay := relay.Bind(bus)
		defer cancelRelay()
	}

	// --- Read cache ---
	readCache, err := ristretto.New(cfg.Cache.MaxCostBytes)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer readCache.Close()

	// --- HTTP ---
	handlers := &mdhttp.Handlers{
		Agents:      agentSvc,
		Tasks:       taskSvc,
		Reviews:     reviewSvc,
		Badges:      badgeSvc,
		Leaderboard: boardSvc,
		Recommend:   recommendSvc,
		Advisory:    advisorySvc,
		ReadCache:   readCache,
		CacheTTL:    cfg.Cache.TTL,
	}

	r := chi.NewRouter()
	r.Use(mdhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(mdhttp.RequestID)
	r.Use(mdhttp.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(mdotel.HTTPMiddleware("meritd"))

	r.Get("/health", healthHandler(cfg, hub))
	r.Get("/ws", hub.HandleWS)

	mdhttp.MountRoutes(r, handlers)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

// healthHandler reports service health and the active WebSocket count.
func healthHandler(cfg *config.Config, hub *ws.Hub) http.HandlerFunc {
	type healthStatus struct {
		Status        string `json:"status"`
		NATS          bool   `json:"nats"`
		WSConnections int    `json:"ws_connections"`
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		status := healthStatus{
			Status:        "ok",
			NATS:          cfg.NATS.URL != "",
			WSConnections: hub.ConnectionCount(),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(status)
	}
}
