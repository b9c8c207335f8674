package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gemrelay/internal/handler"
	"gemrelay/internal/middleware"
	"gemrelay/internal/probe"
	"gemrelay/internal/provider"
	"gemrelay/internal/session"
)

const maxBodyBytes = 64 * 1024

// Options carries everything the router needs. Candidates are injected
// so tests can run against a scripted provider.
type Options struct {
	Sessions        *session.Registry
	Provider        provider.Provider
	Candidates      []string
	APIKey          string
	ProviderTimeout time.Duration
	RateLimit       int // requests per minute per IP; 0 disables
	StaticDir       string
}

// New wires handlers with the full middleware stack.
// Order: CORS → RequestID → Logging → Metrics → RateLimit → APIKey → MaxBytes → routes
func New(opts Options) http.Handler {
	if opts.ProviderTimeout <= 0 {
		opts.ProviderTimeout = 60 * time.Second
	}

	prober := &probe.Prober{Provider: opts.Provider, Candidates: opts.Candidates}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-API-Key"},
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	if opts.RateLimit > 0 {
		r.Use(httprate.LimitByIP(opts.RateLimit, time.Minute))
	}
	r.Use(middleware.APIKey(opts.APIKey))
	r.Use(middleware.MaxBytes(maxBodyBytes))

	r.Post("/api/setup", handler.Setup(opts.Sessions, prober, opts.ProviderTimeout))
	r.Post("/api/chat", handler.Chat(opts.Sessions, opts.Provider, opts.ProviderTimeout))
	r.Get("/api/status", handler.Status(opts.Sessions))
	r.Get("/api/models", handler.Models(opts.Candidates))
	r.Handle("/metrics", promhttp.Handler())

	if opts.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(opts.StaticDir)))
	}

	return r
}
