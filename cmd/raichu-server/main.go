package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"raichu/internal/bootstrap"
	"raichu/internal/cache"
	"raichu/internal/server/game"
	httpserver "raichu/internal/server/http"
)

func main() {
	cfgPath := flag.String("config", ".env", "config file (optional, env vars override)")
	flag.Parse()

	cfg, err := bootstrap.Setup(*cfgPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	logger, err := bootstrap.NewLogger(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ===== 存储：配了就用 Mongo / Redis，否则内存 =====
	var store game.Store = game.NewMemoryStore()
	if cfg.MongoUri != "" {
		client, ms, err := game.ConnectMongo(ctx, cfg.MongoUri, cfg.MongoDatabase)
		if err != nil {
			logger.Fatalw("mongo init failed", "error", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		store = ms
		logger.Infow("using mongo game store", "database", cfg.MongoDatabase)
	}

	var rc cache.ResultCache = cache.NewMemory(cfg.CacheTTL(), cfg.CacheMaxItems)
	if cfg.RedisUrl != "" {
		r, err := cache.Dial(ctx, cfg.RedisUrl, cfg.CacheTTL())
		if err != nil {
			logger.Fatalw("redis init failed", "error", err)
		}
		defer r.Close()
		rc = r
		logger.Infow("using redis result cache", "addr", cfg.RedisUrl)
	}

	h := httpserver.NewHandler(
		game.NewManager(store, logger.Named("game")),
		rc,
		httpserver.SearchDefaults{
			MinDepth:  cfg.SearchMinDepth,
			MaxDepth:  cfg.SearchMaxDepth,
			TimeLimit: cfg.SearchTimeLimit(),
			Parallel:  cfg.SearchParallel,
			Workers:   cfg.SearchWorkers,
			UseTT:     cfg.SearchUseTT,
			BoardSize: cfg.DefaultBoardSize,
		},
		logger.Named("http"),
	)

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           h.Router(cfg.StaticDir),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("received shutdown signal")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Infow("server is running", "addr", cfg.ServerAddr, "static", cfg.StaticDir)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalw("server failed", zap.Error(err))
	}
}
