// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

// Package api provides HTTP routing and handlers using the Chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/llaqtashield/llaqtashield/internal/auth"
	"github.com/llaqtashield/llaqtashield/internal/config"
	"github.com/llaqtashield/llaqtashield/internal/middleware"
)

// Router assembles the HTTP surface from its handler and configuration.
type Router struct {
	cfg     *config.Config
	handler *Handler
	creds   auth.CredentialStore
}

// NewRouter creates a Router. The credential store guards /admin routes.
func NewRouter(cfg *config.Config, handler *Handler, creds auth.CredentialStore) *Router {
	return &Router{cfg: cfg, handler: handler, creds: creds}
}

// Setup configures all routes and returns the root handler.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   router.cfg.Security.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(securityHeaders)

	// Demo alerts get an independent bucket so map polling cannot starve
	// report submission, and vice versa.
	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByRealIP(
			router.cfg.Alerts.RateLimitMax,
			router.cfg.Alerts.RateLimitWindow,
		))
		r.Use(middleware.Prometheus)
		r.Get("/api/alertas", router.handler.Alertas)
	})

	// Submission and export share one sliding-window budget per client.
	r.Group(func(r chi.Router) {
		r.Use(router.handler.SlidingWindowLimit)
		r.Use(middleware.Prometheus)
		r.Post("/report", router.handler.SubmitReport)
		r.Get("/api/reports", router.handler.ListReports)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Prometheus)
		r.Get("/reporte/{filename}", router.handler.ServeDocument)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireBasicAuth(router.creds))
		r.Use(middleware.Prometheus)
		r.Get("/admin/reports", router.handler.AdminReports)
	})

	r.Get("/healthz", router.handler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// securityHeaders adds baseline browser hardening headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
