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
	"go.uber.org/zap"

	"github.com/attorney-tools/codesearch/internal/config"
	dbRedis "github.com/attorney-tools/codesearch/internal/db/redis"
	"github.com/attorney-tools/codesearch/internal/index/bleve"
	logpkg "github.com/attorney-tools/codesearch/internal/logger"
	"github.com/attorney-tools/codesearch/internal/metrics"
	catalogrepo "github.com/attorney-tools/codesearch/internal/repository/catalog"
	credentialrepo "github.com/attorney-tools/codesearch/internal/repository/credential"
	ratelimitrepo "github.com/attorney-tools/codesearch/internal/repository/ratelimit"
	chiTransport "github.com/attorney-tools/codesearch/internal/transport/chi"
	admissionuc "github.com/attorney-tools/codesearch/internal/usecase/admission"
	cataloguc "github.com/attorney-tools/codesearch/internal/usecase/catalog"
	healthuc "github.com/attorney-tools/codesearch/internal/usecase/health"
	searchuc "github.com/attorney-tools/codesearch/internal/usecase/search"
	"github.com/attorney-tools/codesearch/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting codesearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("index_path", cfg.Index.Path),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Store not ready", zap.Error(err))
	}
	logger.Info("Connected to store")

	// Open the pre-built full-text index
	engine, err := bleve.Open(cfg.Index.Path)
	if err != nil {
		logger.Fatal("Failed to open index", zap.Error(err))
	}
	defer func() { _ = engine.Close() }()

	if count, err := engine.DocCount(); err == nil {
		logger.Info("Index opened", zap.Uint64("doc_count", count))
	}

	// Register domain metrics explicitly (no init())
	metrics.RegisterDomainMetrics()

	// Create repositories
	credRepo := credentialrepo.New(store, cfg.Storage.KeyPrefix)
	limiter := ratelimitrepo.New(store, cfg.Storage.KeyPrefix, cfg.RateLimit.RequestsPerSecond)
	descriptors := catalogrepo.New(cfg.Catalog.Path, logger)

	// Create use case services
	admissionSvc := admissionuc.New(credRepo, limiter, logger)
	searchSvc := searchuc.New(engine, logger)
	catalogSvc := cataloguc.New(
		descriptors, engine, store,
		cfg.Storage.KeyPrefix,
		time.Duration(cfg.Catalog.CacheTTLMin)*time.Minute,
		logger,
	)
	healthSvc := healthuc.New(store, engine)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, catalogSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	// Legacy clients request slash-terminated URLs (/codesearch/list/).
	// Strip before admission so the exemption lookup and routing both see
	// the canonical path.
	r.Use(chiMiddleware.StripSlashes)
	r.Use(chiTransport.AdmissionMiddleware(admissionSvc))
	r.Use(metrics.Middleware())
	server.Mount(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
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
					_ = json.NewEncoder(w).Encode(map[string]any{
						"success": false,
						"message": "internal error",
						"code":    "ERR_GENERAL",
						"version": version.Version,
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

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
