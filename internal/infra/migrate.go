package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	profile_pic TEXT,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	first_name TEXT,
	last_name TEXT,
	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
	create_date TIMESTAMPTZ NOT NULL,
	last_login_date TIMESTAMPTZ
)`,
	`CREATE TABLE IF NOT EXISTS campaigns (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id),
	title TEXT NOT NULL,
	description TEXT,
	pic TEXT,
	goal_amount DOUBLE PRECISION NOT NULL,
	current_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
	start_date TIMESTAMPTZ NOT NULL,
	end_date TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL DEFAULT 'active',
	CONSTRAINT campaigns_current_amount_nonnegative CHECK (current_amount >= 0)
)`,
	`CREATE TABLE IF NOT EXISTS donations (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	campaign_id BIGINT NOT NULL REFERENCES campaigns(id),
	donor_user_id BIGINT REFERENCES users(id),
	amount DOUBLE PRECISION NOT NULL,
	donation_date TIMESTAMPTZ NOT NULL,
	message TEXT,
	donor_country TEXT
)`,
	`CREATE TABLE IF NOT EXISTS payments (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	donation_id BIGINT NOT NULL REFERENCES donations(id),
	processor_payment_id TEXT NOT NULL,
	amount DOUBLE PRECISION NOT NULL,
	currency CHAR(3) NOT NULL,
	status TEXT NOT NULL,
	payment_method_type TEXT NOT NULL,
	transaction_date TIMESTAMPTZ NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS revoked_tokens (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	jti TEXT NOT NULL UNIQUE,
	revoked_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
}

// Migrate applies the schema. Statements are idempotent so startup can
// run this unconditionally.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
