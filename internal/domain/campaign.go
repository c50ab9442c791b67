package domain

import "time"

// CampaignStatus enumerates campaign lifecycle states.
type CampaignStatus = string

const (
	CampaignStatusActive CampaignStatus = "active"
)

// Campaign is a fundraising campaign owned by exactly one user.
// CurrentAmount only grows, and only through accepted donations.
type Campaign struct {
	ID            int64
	UserID        int64
	Title         string
	Description   *string
	Pic           *string
	GoalAmount    float64
	CurrentAmount float64
	StartDate     time.Time
	EndDate       time.Time
	Status        CampaignStatus

	// Owner is populated on reads that join the owning user.
	Owner *User
}
