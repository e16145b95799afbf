package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/kmfx/kmfx-backoffice-service/internal/delivery/http/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the back-office REST API. All business routes live under
// /api/v1; /metrics and /health sit outside it for the infra side.
func NewRouter(
	clientHandler *handlers.ClientHandler,
	ledgerHandler *handlers.LedgerHandler,
	referralHandler *handlers.ReferralHandler,
	licenseHandler *handlers.LicenseHandler,
	dashboardHandler *handlers.DashboardHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", clientHandler.Login)

		r.Route("/clients", func(r chi.Router) {
			r.Post("/", clientHandler.CreateClient)
			r.Get("/", clientHandler.ListClients)

			r.Route("/{clientID}", func(r chi.Router) {
				r.Get("/", clientHandler.GetClient)
				r.Put("/", clientHandler.UpdateClient)
				r.Post("/credentials", clientHandler.SetCredentials)

				r.Post("/profits", ledgerHandler.RecordProfit)
				r.Get("/profits", ledgerHandler.GetProfitHistory)

				r.Post("/withdrawals", ledgerHandler.RequestWithdrawal)
				r.Get("/withdrawals", ledgerHandler.GetWithdrawalHistory)

				r.Route("/referrals", func(r chi.Router) {
					r.Get("/plan", referralHandler.GetBonusPlan)
					r.Get("/tree", referralHandler.GetDownlineTree)
					r.Get("/count", referralHandler.GetDownlineCount)
					r.Get("/earnings", referralHandler.GetReferralEarnings)
				})

				r.Post("/licenses", licenseHandler.IssueLicense)
				r.Get("/licenses", licenseHandler.ListLicenses)
			})
		})

		r.Route("/withdrawals", func(r chi.Router) {
			r.Get("/", ledgerHandler.ListWithdrawals)
			r.Post("/{withdrawalID}/status", ledgerHandler.TransitionWithdrawal)
		})

		r.Get("/dashboard/summary", dashboardHandler.GetSummary)
		r.Get("/audit", dashboardHandler.GetAuditLog)
	})

	return r
}
