package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"raiseme/internal/domain"
)

// CampaignRepositoryPG implements domain.CampaignRepository backed by PostgreSQL.
type CampaignRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository creates a new CampaignRepositoryPG.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{pool: pool}
}

// Create inserts a new campaign and fills in the generated id.
func (r *CampaignRepositoryPG) Create(ctx context.Context, campaign *domain.Campaign) error {
	row := r.pool.QueryRow(ctx, `
INSERT INTO campaigns (user_id, title, description, pic, goal_amount, current_amount, start_date, end_date, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id;
`, campaign.UserID, campaign.Title, campaign.Description, campaign.Pic, campaign.GoalAmount,
		campaign.CurrentAmount, campaign.StartDate, campaign.EndDate, campaign.Status)

	return row.Scan(&campaign.ID)
}

// GetByID fetches a campaign with its owner joined in.
func (r *CampaignRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx, selectCampaign+` WHERE c.id = $1`, id)
	c, err := scanCampaign(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// List returns every campaign with owners joined in.
func (r *CampaignRepositoryPG) List(ctx context.Context) ([]domain.Campaign, error) {
	return r.list(ctx, selectCampaign+` ORDER BY c.id`)
}

// ListByOwner returns the campaigns owned by the given user.
func (r *CampaignRepositoryPG) ListByOwner(ctx context.Context, userID int64) ([]domain.Campaign, error) {
	return r.list(ctx, selectCampaign+` WHERE c.user_id = $1 ORDER BY c.id`, userID)
}

func (r *CampaignRepositoryPG) list(ctx context.Context, query string, args ...any) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Update persists every mutable campaign field.
func (r *CampaignRepositoryPG) Update(ctx context.Context, campaign *domain.Campaign) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE campaigns
SET title = $1, description = $2, pic = $3, goal_amount = $4, current_amount = $5,
    start_date = $6, end_date = $7, status = $8
WHERE id = $9;
`, campaign.Title, campaign.Description, campaign.Pic, campaign.GoalAmount, campaign.CurrentAmount,
		campaign.StartDate, campaign.EndDate, campaign.Status, campaign.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the campaign row.
func (r *CampaignRepositoryPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const selectCampaign = `
SELECT c.id, c.user_id, c.title, c.description, c.pic, c.goal_amount, c.current_amount,
       c.start_date, c.end_date, c.status,
       u.id, u.profile_pic, u.email, u.first_name, u.last_name, u.is_admin, u.create_date, u.last_login_date
FROM campaigns c
JOIN users u ON u.id = c.user_id`

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	var owner domain.User
	if err := row.Scan(
		&c.ID, &c.UserID, &c.Title, &c.Description, &c.Pic, &c.GoalAmount, &c.CurrentAmount,
		&c.StartDate, &c.EndDate, &c.Status,
		&owner.ID, &owner.ProfilePic, &owner.Email, &owner.FirstName, &owner.LastName,
		&owner.IsAdmin, &owner.CreateDate, &owner.LastLoginDate,
	); err != nil {
		return nil, err
	}
	c.Owner = &owner
	return &c, nil
}
