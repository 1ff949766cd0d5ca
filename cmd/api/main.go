package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/cache"
	"bookshelf/internal/config"
	"bookshelf/internal/httpx"
	"bookshelf/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("cannot load configuration", "error", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := openDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Error("cannot open database", "dsn", redactDSN(cfg.DatabaseDSN), "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	log.Info("database connection OK")

	var bookRepository book.Repository = book.NewPostgresRepo(dbPool, cfg.DatabaseSchema, cfg.DatabaseTimeout)
	if cfg.RedisAddr != "" {
		redisStore, err := cache.NewRedisStore(cfg.RedisAddr)
		if err != nil {
			log.Warn("book cache disabled", "error", err)
		} else {
			defer redisStore.Close()
			bookRepository = cache.NewBookRepository(bookRepository, redisStore, cfg.CacheTTL, log)
			log.Info("book cache enabled", "redis_addr", cfg.RedisAddr, "ttl", cfg.CacheTTL.String())
		}
	}

	bookHandler := book.NewHTTPHandler(book.NewService(bookRepository), log)

	var limiter *httpx.RateLimitMiddleware
	if cfg.RateLimitRPS > 0 {
		proxies, err := httpx.ParseTrustedProxies(cfg.TrustedProxies)
		if err != nil {
			log.Error("invalid trusted proxies", "error", err)
			os.Exit(1)
		}
		limiter = httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, proxies)
	}

	router := newRouter(routerDeps{
		config:  cfg,
		logger:  log,
		books:   bookHandler,
		limiter: limiter,
		ready:   dbPool.Ping,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	}()

	log.Info("starting server", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
