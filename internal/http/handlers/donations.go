package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"raiseme/internal/domain"
	"raiseme/internal/middleware"
)

type donationCreateRequest struct {
	CampaignID   *int64   `json:"campaign_id"`
	DonorUserID  *int64   `json:"donor_user_id"`
	Amount       *float64 `json:"amount"`
	DonationDate *string  `json:"donation_date"`
	Message      *string  `json:"message"`
}

// DonationCreate records a donation and bumps the campaign total in
// one transaction. Anonymous donations are allowed, so no auth here.
func (a *App) DonationCreate(w http.ResponseWriter, r *http.Request) {
	var req donationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.CampaignID == nil || req.Amount == nil || req.DonationDate == nil {
		a.error(w, http.StatusBadRequest, "bad_request", "Missing required fields")
		return
	}

	donationDate, err := parseDate(*req.DonationDate)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "Invalid donation_date format")
		return
	}

	donation := &domain.Donation{
		CampaignID:   *req.CampaignID,
		DonorUserID:  req.DonorUserID,
		Amount:       *req.Amount,
		DonationDate: donationDate,
		Message:      req.Message,
		DonorCountry: a.donorCountry(r),
	}

	if err := a.Donations.Create(r.Context(), donation); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "Campaign not found")
			return
		}
		a.Logger.Error().Err(err).Msg("create donation failed")
		a.error(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	a.message(w, http.StatusCreated, "Donation created successfully")
}

func (a *App) DonationsByCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID, err := strconv.ParseInt(chi.URLParam(r, "campaign_id"), 10, 64)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid campaign id")
		return
	}

	if _, err := a.Campaigns.GetByID(r.Context(), campaignID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "Campaign not found")
			return
		}
		a.Logger.Error().Err(err).Msg("load campaign failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load campaign")
		return
	}

	donations, err := a.Donations.ListByCampaign(r.Context(), campaignID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list donations failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
		return
	}

	items := make([]donationDTO, 0, len(donations))
	for i := range donations {
		items = append(items, toDonationDTO(&donations[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"donations": items})
}

// donorCountry resolves a best-effort ISO country code for the donor.
// Lookup failures only cost the annotation, never the donation.
func (a *App) donorCountry(r *http.Request) *string {
	if a.GeoIP == nil {
		return nil
	}
	ip := middleware.ClientIP(r)
	if ip == "" {
		return nil
	}
	code, err := a.GeoIP.CountryCode(ip)
	if err != nil || code == "" {
		return nil
	}
	return &code
}
