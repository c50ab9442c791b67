package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"raiseme/internal/auth"
	"raiseme/internal/domain"
	"raiseme/internal/middleware"
)

func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	campaigns, err := a.Campaigns.List(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("list campaigns failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load campaigns")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"campaigns": campaignDTOs(campaigns)})
}

func (a *App) CampaignGet(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid campaign id")
		return
	}
	campaign, err := a.Campaigns.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "Campaign not found")
			return
		}
		a.Logger.Error().Err(err).Msg("load campaign failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load campaign")
		return
	}
	a.json(w, http.StatusOK, toCampaignDTO(campaign))
}

// UserCampaigns lists the campaigns owned by the authenticated caller.
func (a *App) UserCampaigns(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	campaigns, err := a.Campaigns.ListByOwner(r.Context(), id.UserID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list user campaigns failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load campaigns")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"campaigns": campaignDTOs(campaigns)})
}

type campaignCreateRequest struct {
	UserID        *int64  `json:"user_id"`
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	Pic           *string `json:"pic"`
	GoalAmount    float64 `json:"goal_amount"`
	CurrentAmount float64 `json:"current_amount"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Status        string  `json:"status"`
}

func (a *App) CampaignCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	var req campaignCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.UserID == nil || req.Title == "" || req.StartDate == "" || req.EndDate == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "user_id, title, start_date and end_date required")
		return
	}

	owner, err := a.Users.GetByID(r.Context(), *req.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		a.Logger.Error().Err(err).Msg("lookup owner failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load user")
		return
	}
	if !auth.CanCreateCampaign(id, owner) {
		a.error(w, http.StatusUnauthorized, "unauthorized", "Invalid user id")
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid start_date format")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid end_date format")
		return
	}

	status := req.Status
	if status == "" {
		status = domain.CampaignStatusActive
	}

	campaign := &domain.Campaign{
		UserID:        owner.ID,
		Title:         req.Title,
		Description:   req.Description,
		Pic:           req.Pic,
		GoalAmount:    req.GoalAmount,
		CurrentAmount: req.CurrentAmount,
		StartDate:     start,
		EndDate:       end,
		Status:        status,
	}
	if err := a.Campaigns.Create(r.Context(), campaign); err != nil {
		a.Logger.Error().Err(err).Msg("create campaign failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create campaign")
		return
	}

	a.message(w, http.StatusOK, "Campaign created successfully")
}

type campaignUpdateRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Pic           *string  `json:"pic"`
	GoalAmount    *float64 `json:"goal_amount"`
	CurrentAmount *float64 `json:"current_amount"`
	StartDate     *string  `json:"start_date"`
	EndDate       *string  `json:"end_date"`
	Status        *string  `json:"status"`
}

// CampaignUpdate applies a partial update: absent fields keep their
// stored values. Owner or admin only.
func (a *App) CampaignUpdate(w http.ResponseWriter, r *http.Request) {
	campaign, done := a.manageableCampaign(w, r, "update")
	if done {
		return
	}

	var req campaignUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	domain.Merge(&campaign.Title, req.Title)
	domain.MergeOptional(&campaign.Description, req.Description)
	domain.MergeOptional(&campaign.Pic, req.Pic)
	domain.Merge(&campaign.GoalAmount, req.GoalAmount)
	domain.Merge(&campaign.CurrentAmount, req.CurrentAmount)
	domain.Merge(&campaign.Status, req.Status)
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid start_date format")
			return
		}
		campaign.StartDate = start
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid end_date format")
			return
		}
		campaign.EndDate = end
	}

	if err := a.Campaigns.Update(r.Context(), campaign); err != nil {
		a.Logger.Error().Err(err).Msg("update campaign failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update campaign")
		return
	}

	a.message(w, http.StatusOK, "Campaign updated successfully")
}

func (a *App) CampaignDelete(w http.ResponseWriter, r *http.Request) {
	campaign, done := a.manageableCampaign(w, r, "delete")
	if done {
		return
	}

	if err := a.Campaigns.Delete(r.Context(), campaign.ID); err != nil {
		a.Logger.Error().Err(err).Msg("delete campaign failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete campaign")
		return
	}

	a.message(w, http.StatusOK, "Campaign deleted successfully")
}

// manageableCampaign loads the target campaign and enforces the
// owner-or-admin rule shared by update and delete. The second return
// value reports whether a response has already been written.
func (a *App) manageableCampaign(w http.ResponseWriter, r *http.Request, action string) (*domain.Campaign, bool) {
	id, err := campaignID(r)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid campaign id")
		return nil, true
	}
	campaign, err := a.Campaigns.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "Campaign not found")
			return nil, true
		}
		a.Logger.Error().Err(err).Msg("load campaign failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load campaign")
		return nil, true
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return nil, true
	}
	if !auth.CanManageCampaign(identity, campaign) {
		a.error(w, http.StatusForbidden, "forbidden", "Unauthorized to "+action+" this campaign")
		return nil, true
	}
	return campaign, false
}

func campaignID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func campaignDTOs(campaigns []domain.Campaign) []campaignDTO {
	items := make([]campaignDTO, 0, len(campaigns))
	for i := range campaigns {
		items = append(items, toCampaignDTO(&campaigns[i]))
	}
	return items
}
