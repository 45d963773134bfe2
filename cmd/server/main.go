package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/tripkit/internal/config"
	"github.com/mmynk/tripkit/internal/ledger"
	"github.com/mmynk/tripkit/internal/middleware"
	"github.com/mmynk/tripkit/internal/service"
	"github.com/mmynk/tripkit/internal/storage"
	"github.com/mmynk/tripkit/internal/storage/sqlite"
	"github.com/mmynk/tripkit/pkg/api"
	"github.com/mmynk/tripkit/pkg/logging"
)

func main() {
	// Load .env file for local development (ignore errors in production)
	_ = godotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// run opens storage and serves until the listener fails. The store is closed
// on every return path.
func run(cfg *config.Config) error {
	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	if cfg.SeedSampleData {
		if err := service.SeedSampleTrips(context.Background(), store); err != nil {
			return fmt.Errorf("failed to seed sample data: %w", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	l := ledger.New(ledger.WithSplitMode(cfg.Mode()))
	handler := newHandler(cfg, store, l, reg)

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := ":" + cfg.Port
	slog.Info("Connect server starting",
		"address", addr,
		"url", fmt.Sprintf("http://localhost%s", addr),
		"split_mode", l.Mode(),
	)
	return http.ListenAndServe(addr, h2cHandler)
}

// newHandler builds the mux with the Connect services, /metrics and
// /healthz, wrapped in logging and CORS middleware.
func newHandler(cfg *config.Config, store storage.Store, l *ledger.Ledger, reg *prometheus.Registry) http.Handler {
	metrics := middleware.NewMetrics(reg)

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		metrics.Interceptor(),
	)

	mux := http.NewServeMux()

	// Register Connect services
	tripPath, tripHandler := api.NewTripServiceHandler(service.NewTripService(store), interceptors)
	mux.Handle(tripPath, tripHandler)

	expensePath, expenseHandler := api.NewExpenseServiceHandler(service.NewExpenseService(store, l, metrics), interceptors)
	mux.Handle(expensePath, expenseHandler)

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Add logging and CORS middleware
	return loggingMiddleware(corsMiddleware(cfg.CORSOrigin, mux))
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
