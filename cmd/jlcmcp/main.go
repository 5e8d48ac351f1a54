package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Averyy/jlcpcb-mcp/internal/config"
	"github.com/Averyy/jlcpcb-mcp/internal/db"
	dbRedis "github.com/Averyy/jlcpcb-mcp/internal/db/redis"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/compat"
	"github.com/Averyy/jlcpcb-mcp/internal/domain/spec"
	logpkg "github.com/Averyy/jlcpcb-mcp/internal/logger"
	"github.com/Averyy/jlcpcb-mcp/internal/metrics"
	"github.com/Averyy/jlcpcb-mcp/internal/repository/catalog"
	"github.com/Averyy/jlcpcb-mcp/internal/transport/mcptools"
	alternativesuc "github.com/Averyy/jlcpcb-mcp/internal/usecase/alternatives"
	searchuc "github.com/Averyy/jlcpcb-mcp/internal/usecase/search"
	"github.com/Averyy/jlcpcb-mcp/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting jlcpcb-mcp server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	registry := spec.NewRegistry()
	rules := compat.NewTable()

	// "load" ingests a catalog dump and exits; it needs no category cache.
	if len(os.Args) > 1 && os.Args[1] == "load" {
		runLoad(ctx, logger, store, cfg, registry, rules)
		return
	}

	repo := catalog.New(store, catalog.Options{
		KeyPrefix:     cfg.Storage.KeyPrefix,
		ValueMatchPct: cfg.Matching.ValueMatchPct,
	})
	if err := repo.Init(ctx); err != nil {
		logger.Fatal("Failed to initialize catalog", zap.Error(err))
	}

	var matcherOpts []spec.MatcherOption
	if cfg.Matching.ValueMatchPct > 0 {
		matcherOpts = append(matcherOpts, spec.WithValueMatchPct(cfg.Matching.ValueMatchPct))
	}
	if cfg.Matching.DirectionalSlackPct > 0 {
		matcherOpts = append(matcherOpts, spec.WithDirectionalSlackPct(cfg.Matching.DirectionalSlackPct))
	}
	matcher := spec.NewMatcher(registry, matcherOpts...)

	searchSvc := searchuc.New(repo, cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	altSvc := alternativesuc.New(repo, rules, registry, matcher,
		alternativesuc.WithOverfetchFactor(cfg.Search.OverfetchFactor))

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "jlcpcb-mcp",
		Version: version.Version,
	}, nil)
	mcptools.NewHandler(searchSvc, altSvc, logger).Register(mcpServer)

	// "stdio" serves a single MCP session over stdin/stdout for local
	// clients; the HTTP surface is skipped entirely.
	if len(os.Args) > 1 && os.Args[1] == "stdio" {
		runStdio(ctx, logger, mcpServer)
		return
	}

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	r.Get("/health", healthHandler(store))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Mount("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpServer
	}, nil))

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// runLoad ingests a JSONL catalog dump: jlcmcp load <dump.jsonl>
func runLoad(
	ctx context.Context,
	logger *zap.Logger,
	store db.Store,
	cfg config.Config,
	registry *spec.Registry,
	rules *compat.Table,
) {
	if len(os.Args) < 3 {
		logger.Fatal("Usage: jlcmcp load <dump.jsonl>")
	}
	path := os.Args[2]

	f, err := os.Open(path) //nolint:gosec // operator-supplied dump path
	if err != nil {
		logger.Fatal("Failed to open dump", zap.String("path", path), zap.Error(err))
	}
	defer func() { _ = f.Close() }()

	loader := catalog.NewLoader(store, cfg.Storage.KeyPrefix, registry, rules)
	if err := loader.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to create search index", zap.Error(err))
	}

	start := time.Now()
	n, err := loader.LoadJSONL(ctx, f)
	if err != nil {
		logger.Fatal("Catalog load failed", zap.Error(err))
	}
	logger.Info("Catalog loaded",
		zap.String("path", path),
		zap.Int("parts", n),
		zap.Duration("took", time.Since(start)),
	)
}

// runStdio blocks until the client disconnects or a signal arrives.
func runStdio(ctx context.Context, logger *zap.Logger, server *mcp.Server) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting MCP server", zap.String("transport", "stdio"))
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Error("MCP server error", zap.Error(err))
	}
}

func healthHandler(store db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := store.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy", "database": "down"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line -- one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
