package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"raiseme/internal/domain"
)

type paymentCreateRequest struct {
	DonationID         *int64   `json:"donation_id"`
	ProcessorPaymentID *string  `json:"processor_payment_id"`
	Amount             *float64 `json:"amount"`
	Currency           *string  `json:"currency"`
	Status             *string  `json:"status"`
	PaymentMethodType  *string  `json:"payment_method_type"`
	TransactionDate    *string  `json:"transaction_date"`
}

// PaymentCreate stores a processor charge record verbatim. No
// reconciliation happens here; the row only mirrors what the external
// processor reported.
func (a *App) PaymentCreate(w http.ResponseWriter, r *http.Request) {
	var req paymentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.DonationID == nil || req.ProcessorPaymentID == nil || req.Amount == nil ||
		req.Currency == nil || req.Status == nil || req.PaymentMethodType == nil || req.TransactionDate == nil {
		a.error(w, http.StatusBadRequest, "bad_request", "Missing required fields")
		return
	}
	if len(*req.Currency) != 3 {
		a.error(w, http.StatusBadRequest, "bad_request", "currency must be a 3-letter code")
		return
	}

	transactionDate, err := parseDate(*req.TransactionDate)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "Invalid transaction_date format")
		return
	}

	if _, err := a.Donations.GetByID(r.Context(), *req.DonationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "Donation not found")
			return
		}
		a.Logger.Error().Err(err).Msg("load donation failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donation")
		return
	}

	payment := &domain.Payment{
		DonationID:         *req.DonationID,
		ProcessorPaymentID: *req.ProcessorPaymentID,
		Amount:             *req.Amount,
		Currency:           *req.Currency,
		Status:             *req.Status,
		PaymentMethodType:  *req.PaymentMethodType,
		TransactionDate:    transactionDate,
	}
	if err := a.Payments.Create(r.Context(), payment); err != nil {
		a.Logger.Error().Err(err).Msg("create payment failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to record payment")
		return
	}

	a.message(w, http.StatusCreated, "Payment recorded successfully")
}

func (a *App) PaymentsByDonation(w http.ResponseWriter, r *http.Request) {
	donationID, err := strconv.ParseInt(chi.URLParam(r, "donation_id"), 10, 64)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid donation id")
		return
	}

	payments, err := a.Payments.ListByDonation(r.Context(), donationID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list payments failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load payments")
		return
	}

	items := make([]paymentDTO, 0, len(payments))
	for i := range payments {
		items = append(items, toPaymentDTO(&payments[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"payments": items})
}
