package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"raiseme/internal/http/handlers"
	"raiseme/internal/infra"
	"raiseme/internal/middleware"
)

// NewRouter wires every route. Campaign reads and donation endpoints
// are open; mutations sit behind access-token auth, and logout accepts
// either token type so refresh tokens can be revoked.
func NewRouter(app *handlers.App, cfg *infra.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimw.RealIP,
		chimw.Recoverer,
		middleware.RequestID,
		middleware.Logger(app.Logger),
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "UserId"},
		AllowCredentials: true,
	}))

	requireAccess := middleware.RequireAccess(app.Auth)
	requireToken := middleware.RequireToken(app.Auth)

	r.Get("/healthz", app.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", app.Register)
		r.Post("/login", app.Login)
		r.With(requireToken).Post("/logout", app.Logout)
	})

	r.Get("/users", app.UsersList)
	r.With(requireAccess).Put("/users", app.UserUpdate)

	r.Get("/campaigns", app.CampaignsList)
	r.Get("/campaigns/{id}", app.CampaignGet)
	r.With(requireAccess).Post("/campaigns", app.CampaignCreate)
	r.With(requireAccess).Put("/campaigns/{id}", app.CampaignUpdate)
	r.With(requireAccess).Delete("/campaigns/{id}", app.CampaignDelete)
	r.With(requireAccess).Get("/user-campaigns", app.UserCampaigns)

	r.Post("/donations", app.DonationCreate)
	r.Get("/donations/{campaign_id}", app.DonationsByCampaign)

	r.Post("/payments", app.PaymentCreate)
	r.Get("/payments/{donation_id}", app.PaymentsByDonation)

	return r
}
