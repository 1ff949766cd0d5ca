package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/greeting"
	"bookshelf/internal/httpx"

	"github.com/go-chi/chi/v5"
)

type routerDeps struct {
	config  *config.Config
	logger  *slog.Logger
	books   *book.HTTPHandler
	limiter *httpx.RateLimitMiddleware
	ready   func(ctx context.Context) error
}

func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	// Recovery must stay inside the access log; see httpx.RecoveryMiddleware.
	r.Use(httpx.RequestIDMiddleware)
	r.Use(httpx.AccessLogMiddleware(deps.logger))
	r.Use(httpx.RecoveryMiddleware(deps.logger))
	r.Use(httpx.SecurityHeadersMiddleware(deps.config.EnableHSTS))
	r.Use(httpx.CORSMiddleware(deps.config.CORSAllowedOrigins))
	if deps.limiter != nil {
		r.Use(deps.limiter.Middleware)
	}
	r.Use(httpx.RequestSizeLimitMiddleware(deps.config.MaxBodyBytes))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.Text(w, http.StatusOK, "ok")
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := deps.ready(ctx); err != nil {
			deps.logger.Warn("readiness check failed", "error", err)
			httpx.Text(w, http.StatusServiceUnavailable, "db not ready")
			return
		}
		httpx.Text(w, http.StatusOK, "ready")
	})

	r.Get("/hello", greeting.Hello)
	r.Get("/helloSpringBoot", greeting.Hello)

	r.Route("/books", deps.books.Mount)
	r.Route("/rest/v1/books", deps.books.Mount)

	return r
}
