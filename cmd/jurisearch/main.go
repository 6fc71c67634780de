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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kermartin/jurisearch/internal/config"
	dbRedis "github.com/kermartin/jurisearch/internal/db/redis"
	"github.com/kermartin/jurisearch/internal/domain"
	"github.com/kermartin/jurisearch/internal/domain/scoring"
	"github.com/kermartin/jurisearch/internal/graph"
	logpkg "github.com/kermartin/jurisearch/internal/logger"
	"github.com/kermartin/jurisearch/internal/metrics"
	"github.com/kermartin/jurisearch/internal/repository/embcache"
	precedentrepo "github.com/kermartin/jurisearch/internal/repository/precedent"
	chiTransport "github.com/kermartin/jurisearch/internal/transport/chi"
	openaiEmb "github.com/kermartin/jurisearch/internal/transport/openai"
	healthuc "github.com/kermartin/jurisearch/internal/usecase/health"
	retrievaluc "github.com/kermartin/jurisearch/internal/usecase/retrieval"
	"github.com/kermartin/jurisearch/internal/version"
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

	logger.Info("Starting jurisearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("default_provider", cfg.Retrieval.DefaultProvider),
		zap.Bool("graph_enabled", cfg.Graph.Enabled),
	)

	ctx := context.Background()

	// Relational record store
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		logger.Fatal("Invalid database URL", zap.Error(err))
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxConns)
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	records := precedentrepo.New(
		pool,
		time.Duration(cfg.Database.QueryTimeoutSec)*time.Second,
		cfg.Retrieval.CandidateCap,
	)
	if err := records.Ping(ctx); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Graph store — optional, strategies degrade without it
	var graphStore *graph.Store
	if cfg.Graph.Enabled {
		graphStore, err = graph.NewStore(graph.Config{
			URI:      cfg.Graph.URI,
			Username: cfg.Graph.Username,
			Password: cfg.Graph.Password,
			Database: cfg.Graph.Database,
			Timeout:  time.Duration(cfg.Graph.TimeoutMS) * time.Millisecond,
		})
		if err != nil {
			logger.Fatal("Failed to create graph store", zap.Error(err))
		}
		defer func() { _ = graphStore.Close(ctx) }()
		if err := graphStore.Ping(ctx); err != nil {
			// Not fatal: graph strategies degrade to empty outcomes and
			// hybrid requests fall back to simple.
			logger.Warn("Graph store not reachable at startup", zap.Error(err))
		}
	}

	metrics.RegisterRetrievalMetrics()

	embedder, embedderHealth := buildEmbedder(cfg, logger)

	params := scoringParams(cfg.Retrieval.Scoring)

	// Strategies and selector
	var graphAdapter retrievaluc.GraphStore
	if graphStore != nil {
		graphAdapter = graphStore
	} else {
		graphAdapter = unavailableGraph{}
	}
	simple := retrievaluc.NewSimple(records, embedder, params)
	graphStrategy := retrievaluc.NewGraph(graphAdapter, records, embedder, params)
	hybrid := retrievaluc.NewHybrid(graphStrategy, simple)
	selector := retrievaluc.NewSelector(retrievaluc.SelectorConfig{
		Default:      domain.Provider(cfg.Retrieval.DefaultProvider),
		GraphEnabled: cfg.Graph.Enabled,
	}, simple, graphStrategy, hybrid)
	retrievalSvc := retrievaluc.NewService(selector, logger)

	// Health service
	var graphPinger healthuc.GraphPinger
	if graphStore != nil {
		graphPinger = graphStore
	}
	healthSvc := healthuc.New(records, graphPinger, embedderHealth, cfg.Retrieval.DefaultProvider)

	server := chiTransport.NewServer(retrievalSvc, healthSvc, cfg.Retrieval.DefaultTopK, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Mount(r)
	r.Handle("/metrics", promhttp.Handler())

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

// buildEmbedder assembles the embedder chain: OpenAI -> Cached. Returns nil
// when no API key is configured, which keeps scoring lexical.
func buildEmbedder(cfg config.Config, logger *zap.Logger) (retrievaluc.Embedder, healthuc.EmbeddingChecker) {
	if cfg.Embedding.APIKey == "" {
		logger.Info("No embedding provider configured, retrieval scoring is lexical")
		return nil, nil
	}

	base := openaiEmb.NewEmbedder(openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Timeout:    time.Duration(cfg.Embedding.TimeoutSec) * time.Second,
	})

	if len(cfg.Cache.Addrs) == 0 {
		return base, base
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Cache.Addrs,
		Password: cfg.Cache.Password,
	})
	if err != nil {
		logger.Warn("Query-embedding cache unavailable, embedding without cache", zap.Error(err))
		return base, base
	}

	cached := embcache.New(
		base, store,
		cfg.Cache.KeyPrefix, base.Model(),
		time.Duration(cfg.Cache.TTLSec)*time.Second,
		metrics.EmbeddingCacheTotal,
		logger,
	)
	return cached, base
}

// scoringParams overlays configured weights on the defaults. Zero config
// values keep the default weight.
func scoringParams(sc config.ScoringConfig) scoring.Params {
	p := scoring.DefaultParams()
	if sc.TitleWeight > 0 {
		p.TitleWeight = sc.TitleWeight
	}
	if sc.AbstractWeight > 0 {
		p.AbstractWeight = sc.AbstractWeight
	}
	if sc.ReasoningWeight > 0 {
		p.ReasoningWeight = sc.ReasoningWeight
	}
	if sc.TitleOnlyWeight > 0 {
		p.TitleOnlyWeight = sc.TitleOnlyWeight
	}
	if sc.RecencyPerYear > 0 {
		p.RecencyPerYear = sc.RecencyPerYear
	}
	if sc.RecencyCap > 0 {
		p.RecencyCap = sc.RecencyCap
	}
	if sc.BindingBoost > 0 {
		p.BindingBoost = sc.BindingBoost
	}
	return p
}

// unavailableGraph serves the graph contract when no graph store is
// configured. Strategy selection downgrades graph providers to simple, so
// this only answers if wiring changes.
type unavailableGraph struct{}

func (unavailableGraph) MatchPrecedents(_ context.Context, _ domain.Filters, _ int) ([]domain.GraphCandidate, error) {
	return nil, domain.ErrGraphUnavailable
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
			ctx := logpkg.WithContext(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

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
