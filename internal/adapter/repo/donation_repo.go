package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"raiseme/internal/domain"
)

// DonationRepositoryPG implements domain.DonationRepository backed by PostgreSQL.
type DonationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDonationRepository creates a new DonationRepositoryPG.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepositoryPG {
	return &DonationRepositoryPG{pool: pool}
}

// Create runs the paired writes in one transaction: the campaign's
// current_amount is incremented in-database (no read-modify-write, so
// concurrent donations cannot lose updates) and the donation row is
// inserted. If either write fails the transaction rolls back and
// neither persists.
func (r *DonationRepositoryPG) Create(ctx context.Context, donation *domain.Donation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin donation tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
UPDATE campaigns SET current_amount = current_amount + $1 WHERE id = $2;
`, donation.Amount, donation.CampaignID)
	if err != nil {
		return fmt.Errorf("increment campaign amount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	row := tx.QueryRow(ctx, `
INSERT INTO donations (campaign_id, donor_user_id, amount, donation_date, message, donor_country)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id;
`, donation.CampaignID, donation.DonorUserID, donation.Amount, donation.DonationDate, donation.Message, donation.DonorCountry)
	if err := row.Scan(&donation.ID); err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}

	return tx.Commit(ctx)
}

// GetByID fetches a donation by primary key.
func (r *DonationRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.Donation, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, campaign_id, donor_user_id, amount, donation_date, message, donor_country
FROM donations
WHERE id = $1;
`, id)
	var d domain.Donation
	if err := row.Scan(&d.ID, &d.CampaignID, &d.DonorUserID, &d.Amount, &d.DonationDate, &d.Message, &d.DonorCountry); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListByCampaign returns the donations recorded against a campaign.
func (r *DonationRepositoryPG) ListByCampaign(ctx context.Context, campaignID int64) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, campaign_id, donor_user_id, amount, donation_date, message, donor_country
FROM donations
WHERE campaign_id = $1
ORDER BY id;
`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(&d.ID, &d.CampaignID, &d.DonorUserID, &d.Amount, &d.DonationDate, &d.Message, &d.DonorCountry); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}
