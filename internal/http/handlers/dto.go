package handlers

import (
	"fmt"
	"time"

	"raiseme/internal/domain"
)

// Wire formats kept compatible with the original API: date inputs are
// YYYY-MM-DD, serialized timestamps are YYYY-MM-DD HH:MM:SS.
const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}
	return t, nil
}

func fmtDateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

func fmtDateTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateTimeLayout)
	return &s
}

type userProfileDTO struct {
	ID            int64   `json:"id"`
	ProfilePic    *string `json:"profile_pic"`
	Email         string  `json:"email"`
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	CreateDate    string  `json:"create_date"`
	LastLoginDate *string `json:"last_login_date"`
}

func userDTO(u *domain.User) userProfileDTO {
	return userProfileDTO{
		ID:            u.ID,
		ProfilePic:    u.ProfilePic,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		CreateDate:    fmtDateTime(u.CreateDate),
		LastLoginDate: fmtDateTimePtr(u.LastLoginDate),
	}
}

type campaignDTO struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Title         string          `json:"title"`
	Description   *string         `json:"description"`
	Pic           *string         `json:"pic"`
	GoalAmount    float64         `json:"goal_amount"`
	CurrentAmount float64         `json:"current_amount"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	Status        string          `json:"status"`
	User          *userProfileDTO `json:"user"`
}

func toCampaignDTO(c *domain.Campaign) campaignDTO {
	dto := campaignDTO{
		ID:            c.ID,
		UserID:        c.UserID,
		Title:         c.Title,
		Description:   c.Description,
		Pic:           c.Pic,
		GoalAmount:    c.GoalAmount,
		CurrentAmount: c.CurrentAmount,
		StartDate:     fmtDateTime(c.StartDate),
		EndDate:       fmtDateTime(c.EndDate),
		Status:        c.Status,
	}
	if c.Owner != nil {
		owner := userDTO(c.Owner)
		dto.User = &owner
	}
	return dto
}

type donationDTO struct {
	ID           int64   `json:"id"`
	CampaignID   int64   `json:"campaign_id"`
	DonorUserID  *int64  `json:"donor_user_id"`
	Amount       float64 `json:"amount"`
	DonationDate string  `json:"donation_date"`
	Message      *string `json:"message"`
	DonorCountry *string `json:"donor_country,omitempty"`
}

func toDonationDTO(d *domain.Donation) donationDTO {
	return donationDTO{
		ID:           d.ID,
		CampaignID:   d.CampaignID,
		DonorUserID:  d.DonorUserID,
		Amount:       d.Amount,
		DonationDate: fmtDateTime(d.DonationDate),
		Message:      d.Message,
		DonorCountry: d.DonorCountry,
	}
}

type paymentDTO struct {
	ID                 int64   `json:"id"`
	DonationID         int64   `json:"donation_id"`
	ProcessorPaymentID string  `json:"processor_payment_id"`
	Amount             float64 `json:"amount"`
	Currency           string  `json:"currency"`
	Status             string  `json:"status"`
	PaymentMethodType  string  `json:"payment_method_type"`
	TransactionDate    string  `json:"transaction_date"`
}

func toPaymentDTO(p *domain.Payment) paymentDTO {
	return paymentDTO{
		ID:                 p.ID,
		DonationID:         p.DonationID,
		ProcessorPaymentID: p.ProcessorPaymentID,
		Amount:             p.Amount,
		Currency:           p.Currency,
		Status:             p.Status,
		PaymentMethodType:  p.PaymentMethodType,
		TransactionDate:    fmtDateTime(p.TransactionDate),
	}
}
