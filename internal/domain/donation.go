package domain

import "time"

// Donation is a contribution against a campaign. DonorUserID is nil
// for anonymous donations. DonorCountry is a best-effort ISO code
// resolved from the client address when GeoIP is configured.
type Donation struct {
	ID           int64
	CampaignID   int64
	DonorUserID  *int64
	Amount       float64
	DonationDate time.Time
	Message      *string
	DonorCountry *string
}
