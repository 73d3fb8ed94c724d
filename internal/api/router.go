package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/tiwiti-backend/internal/api/handlers"
	"github.com/baharkarakas/tiwiti-backend/internal/config"
	"github.com/baharkarakas/tiwiti-backend/internal/metrics"
	"github.com/baharkarakas/tiwiti-backend/internal/middleware"
	"github.com/baharkarakas/tiwiti-backend/internal/models"
)

type RouterDeps struct {
	Cfg    config.Config
	Auth   *middleware.AuthMiddleware
	Users  handlers.UserService
	Ledger handlers.LedgerService
	Admin  handlers.AdminService
}

func NewRouter(d RouterDeps) http.Handler {
	authH := handlers.NewAuthHandler(d.Users)
	ledgerH := handlers.NewLedgerHandler(d.Ledger)
	adminH := handlers.NewAdminHandler(d.Admin)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/refresh", authH.Refresh)

		// authenticated
		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Auth)

			r.Post("/deposits", ledgerH.Deposit)
			r.Post("/withdrawals", ledgerH.Withdraw)
			r.Get("/balance", ledgerH.Balance)
			r.Get("/transactions", ledgerH.Transactions)

			// admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))

				r.Get("/total-balance", adminH.TotalBalance)
				r.Get("/personal-usage", adminH.ListPersonalUsage)
				r.Post("/personal-usage", adminH.CreatePersonalUsage)
				r.Delete("/personal-usage/{id}", adminH.DeletePersonalUsage)
			})
		})
	})

	return r
}
