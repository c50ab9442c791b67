package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"raiseme/internal/auth"
	"raiseme/internal/domain"
	"raiseme/internal/infra/geoip"
)

// App is the handler container. Everything a route needs is injected
// here so tests can build isolated instances.
type App struct {
	Users     domain.UserRepository
	Campaigns domain.CampaignRepository
	Donations domain.DonationRepository
	Payments  domain.PaymentRepository
	Auth      *auth.Authority
	GeoIP     geoip.CountryResolver
	Logger    zerolog.Logger

	// Now is swappable in tests; nil means time.Now.
	Now func() time.Time
}

func (a *App) clock() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

func (a *App) message(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]string{"message": msg})
}

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
