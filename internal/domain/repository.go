package domain

import (
	"context"
	"time"
)

// UserRepository defines access methods for users.
type UserRepository interface {
	// Create persists a new user. Returns ErrEmailTaken when the email
	// is already registered.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

// CampaignRepository handles campaign persistence. Reads populate the
// Owner field.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *Campaign) error
	GetByID(ctx context.Context, id int64) (*Campaign, error)
	List(ctx context.Context) ([]Campaign, error)
	ListByOwner(ctx context.Context, userID int64) ([]Campaign, error)
	Update(ctx context.Context, campaign *Campaign) error
	Delete(ctx context.Context, id int64) error
}

// DonationRepository handles donation persistence.
type DonationRepository interface {
	// Create persists the donation and increments the referenced
	// campaign's current_amount in one transaction. Returns ErrNotFound
	// when the campaign does not exist; on any failure neither write
	// survives.
	Create(ctx context.Context, donation *Donation) error
	GetByID(ctx context.Context, id int64) (*Donation, error)
	ListByCampaign(ctx context.Context, campaignID int64) ([]Donation, error)
}

// PaymentRepository records external processor charges.
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	ListByDonation(ctx context.Context, donationID int64) ([]Payment, error)
}

// RevokedTokenRepository is the append-only revocation set keyed by jti.
type RevokedTokenRepository interface {
	// Revoke inserts the jti. Revoking an already-revoked jti is a no-op.
	Revoke(ctx context.Context, jti string, at time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
