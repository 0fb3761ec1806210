package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cajafund/cajafund/internal/adapter/http/handler"
	"github.com/cajafund/cajafund/internal/adapter/http/middleware"
	"github.com/cajafund/cajafund/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	MemberHandler     *handler.MemberHandler
	LedgerHandler     *handler.LedgerHandler
	LoanHandler       *handler.LoanHandler
	RepaymentHandler  *handler.RepaymentHandler
	FundConfigHandler *handler.FundConfigHandler
	HealthHandler     *handler.HealthHandler
	IdempotencyStore  usecase.IdempotencyStore
	RateLimiter       *middleware.RateLimiter
	LoggingMiddleware *middleware.LoggingMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.LoggingMiddleware != nil {
		r.Use(cfg.LoggingMiddleware.Wrap)
	}
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Members and their savings streams
		r.Route("/members", func(r chi.Router) {
			r.Post("/", cfg.MemberHandler.Create)
			r.Get("/", cfg.MemberHandler.List)
			r.Get("/{id}", cfg.MemberHandler.Get)
			r.Delete("/{id}", cfg.MemberHandler.Deactivate)

			r.Route("/{id}/savings", func(r chi.Router) {
				r.Post("/entries", cfg.LedgerHandler.Append)
				r.Get("/entries", cfg.LedgerHandler.List)
				r.Get("/totals", cfg.LedgerHandler.Totals)
				r.Get("/missing-periods", cfg.LedgerHandler.MissingPeriods)
				r.Get("/check", cfg.LedgerHandler.Check)
				r.Post("/recalculate", cfg.LedgerHandler.Recalculate)
			})
		})

		// Fund-wide administrative stream
		r.Route("/admin-expenses", func(r chi.Router) {
			r.Post("/entries", cfg.LedgerHandler.Append)
			r.Get("/entries", cfg.LedgerHandler.List)
			r.Get("/totals", cfg.LedgerHandler.Totals)
			r.Get("/check", cfg.LedgerHandler.Check)
			r.Post("/recalculate", cfg.LedgerHandler.Recalculate)
		})

		// Entry edits are addressed by entry ID, stream-independent
		r.Put("/entries/{entryID}", cfg.LedgerHandler.Edit)

		// Loans
		r.Route("/loans", func(r chi.Router) {
			r.Post("/", cfg.LoanHandler.Create)
			r.Get("/", cfg.LoanHandler.List)
			r.Get("/{id}", cfg.LoanHandler.Get)
			r.Put("/{id}", cfg.LoanHandler.Update)
			r.Post("/{id}/approve", cfg.LoanHandler.Approve)
			r.Post("/{id}/reject", cfg.LoanHandler.Reject)
			r.Get("/{id}/schedule", cfg.LoanHandler.Schedule)
		})

		// Repayments
		r.Post("/installments/{id}/pay", cfg.RepaymentHandler.Pay)

		// Fund configuration
		r.Route("/config", func(r chi.Router) {
			r.Get("/", cfg.FundConfigHandler.Get)
			r.Put("/", cfg.FundConfigHandler.Update)
			r.Post("/reload", cfg.FundConfigHandler.Reload)
		})
	})

	return r
}
