package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tctpro/clubledger/internal/adapter/http/handler"
	"github.com/tctpro/clubledger/internal/adapter/http/middleware"
	"github.com/tctpro/clubledger/internal/infrastructure/auth"
	"github.com/tctpro/clubledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler           *handler.AuthHandler
	MemberHandler         *handler.MemberHandler
	VehicleHandler        *handler.VehicleHandler
	ExpenseHandler        *handler.ExpenseHandler
	SettlementHandler     *handler.SettlementHandler
	FundHandler           *handler.FundHandler
	SettingsHandler       *handler.SettingsHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler

	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)
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

		// Public auth endpoints
		r.Post("/auth/signup", cfg.AuthHandler.Signup)
		r.Post("/auth/login", cfg.AuthHandler.Login)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTManager))

			r.Get("/auth/me", cfg.AuthHandler.Me)

			// Members
			r.Route("/members", func(r chi.Router) {
				r.With(middleware.RequireAdmin).Get("/", cfg.MemberHandler.List)
				r.Get("/{id}", cfg.MemberHandler.Get)
				r.Put("/{id}", cfg.MemberHandler.Update)
				r.With(middleware.RequireAdmin).Delete("/{id}", cfg.MemberHandler.Delete)
				r.Get("/{id}/balance", cfg.FundHandler.Balance)
				r.Get("/{id}/stats", cfg.MemberHandler.Stats)
				r.Get("/{id}/sales", cfg.VehicleHandler.SalesHistory)
				r.With(middleware.RequireAdmin).Post("/{id}/funds", cfg.FundHandler.Adjust)
				r.With(middleware.RequireAdmin).Get("/{id}/reconciliation", cfg.ReconciliationHandler.Member)
			})

			// Vehicles
			r.Route("/vehicles", func(r chi.Router) {
				r.Post("/", cfg.VehicleHandler.Create)
				r.Get("/", cfg.VehicleHandler.List)
				r.Get("/{id}", cfg.VehicleHandler.Get)
				r.Put("/{id}", cfg.VehicleHandler.Update)
				r.Delete("/{id}", cfg.VehicleHandler.Delete)
				r.Get("/{id}/expenses", cfg.ExpenseHandler.ListByVehicle)
				r.Post("/{id}/expenses", cfg.ExpenseHandler.Add)
				r.Post("/{id}/sale", cfg.SettlementHandler.Settle)
			})

			// Expenses
			r.Route("/expenses", func(r chi.Router) {
				r.Put("/{id}", cfg.ExpenseHandler.Update)
				r.Delete("/{id}", cfg.ExpenseHandler.Delete)
			})

			// Settlements
			r.Route("/settlements", func(r chi.Router) {
				r.Get("/", cfg.SettlementHandler.List)
				r.Get("/{id}", cfg.SettlementHandler.Get)
			})

			// Fund ledger
			r.Route("/funds", func(r chi.Router) {
				r.Post("/", cfg.FundHandler.Deposit)
				r.Get("/", cfg.FundHandler.List)
				r.With(middleware.RequireAdmin).Get("/stats", cfg.FundHandler.Stats)
				r.Get("/{id}", cfg.FundHandler.Get)
				r.With(middleware.RequireAdmin).Post("/{id}/review", cfg.FundHandler.Review)
			})

			// Admin settings
			r.Route("/settings", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", cfg.SettingsHandler.List)
				r.Get("/{key}", cfg.SettingsHandler.Get)
				r.Put("/{key}", cfg.SettingsHandler.Update)
			})

			// Reconciliation
			r.With(middleware.RequireAdmin).Get("/reconciliation", cfg.ReconciliationHandler.Report)
		})
	})

	return r
}
