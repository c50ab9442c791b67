package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"raiseme/internal/domain"
)

func (e *testEnv) addDonation(t *testing.T, campaign *domain.Campaign, amount float64) *domain.Donation {
	t.Helper()
	donation := &domain.Donation{
		CampaignID:   campaign.ID,
		Amount:       amount,
		DonationDate: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
	}
	if err := e.donations.Create(context.Background(), donation); err != nil {
		t.Fatalf("seed donation: %v", err)
	}
	return donation
}

func TestPaymentCreateAndList(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addUser(t, "owner@example.com", "s3cret", false)
	campaign := env.addCampaign(t, owner, "Water well", 0)
	donation := env.addDonation(t, campaign, 50)

	body := `{"donation_id":1,"processor_payment_id":"ch_123","amount":50,"currency":"USD","status":"succeeded","payment_method_type":"card","transaction_date":"2024-04-02"}`
	req := httptest.NewRequest("POST", "/payments", strings.NewReader(body))
	rr := httptest.NewRecorder()
	env.app.PaymentCreate(rr, req)

	if rr.Code != 201 {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}

	listReq := httptest.NewRequest("GET", "/payments/1", nil)
	listReq = withChiParam(listReq, "donation_id", "1")
	listRR := httptest.NewRecorder()
	env.app.PaymentsByDonation(listRR, listReq)

	if listRR.Code != 200 {
		t.Fatalf("list status = %d, want 200", listRR.Code)
	}
	var resp struct {
		Payments []struct {
			DonationID         int64  `json:"donation_id"`
			ProcessorPaymentID string `json:"processor_payment_id"`
			Currency           string `json:"currency"`
			TransactionDate    string `json:"transaction_date"`
		} `json:"payments"`
	}
	if err := json.NewDecoder(listRR.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Payments) != 1 {
		t.Fatalf("payments = %d, want 1", len(resp.Payments))
	}
	p := resp.Payments[0]
	if p.DonationID != donation.ID || p.ProcessorPaymentID != "ch_123" || p.Currency != "USD" {
		t.Fatalf("unexpected payment: %+v", p)
	}
	if p.TransactionDate != "2024-04-02 00:00:00" {
		t.Fatalf("transaction_date = %q", p.TransactionDate)
	}
}

func TestPaymentCreateUnknownDonation(t *testing.T) {
	env := newTestEnv(t)

	body := `{"donation_id":9,"processor_payment_id":"ch_123","amount":50,"currency":"USD","status":"succeeded","payment_method_type":"card","transaction_date":"2024-04-02"}`
	req := httptest.NewRequest("POST", "/payments", strings.NewReader(body))
	rr := httptest.NewRecorder()
	env.app.PaymentCreate(rr, req)

	if rr.Code != 404 {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Donation not found") {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestPaymentCreateMissingFields(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addUser(t, "owner@example.com", "s3cret", false)
	campaign := env.addCampaign(t, owner, "Water well", 0)
	env.addDonation(t, campaign, 50)

	body := `{"donation_id":1,"amount":50,"currency":"USD"}`
	req := httptest.NewRequest("POST", "/payments", strings.NewReader(body))
	rr := httptest.NewRecorder()
	env.app.PaymentCreate(rr, req)

	if rr.Code != 400 {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Missing required fields") {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestPaymentCreateRejectsBadCurrency(t *testing.T) {
	env := newTestEnv(t)
	owner := env.addUser(t, "owner@example.com", "s3cret", false)
	campaign := env.addCampaign(t, owner, "Water well", 0)
	env.addDonation(t, campaign, 50)

	body := `{"donation_id":1,"processor_payment_id":"ch_123","amount":50,"currency":"US","status":"succeeded","payment_method_type":"card","transaction_date":"2024-04-02"}`
	req := httptest.NewRequest("POST", "/payments", strings.NewReader(body))
	rr := httptest.NewRecorder()
	env.app.PaymentCreate(rr, req)

	if rr.Code != 400 {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	payments, _ := env.payments.ListByDonation(context.Background(), 1)
	if len(payments) != 0 {
		t.Fatalf("rejected payment was stored: %d", len(payments))
	}
}
