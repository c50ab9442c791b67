package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RevokedTokenRepositoryPG implements domain.RevokedTokenRepository
// backed by PostgreSQL. The lookup runs on every authenticated
// request, so the jti column carries a unique index.
type RevokedTokenRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewRevokedTokenRepository creates a new RevokedTokenRepositoryPG.
func NewRevokedTokenRepository(pool *pgxpool.Pool) *RevokedTokenRepositoryPG {
	return &RevokedTokenRepositoryPG{pool: pool}
}

// Revoke appends the jti to the revocation set. Conflicts are ignored
// so re-revoking is a no-op.
func (r *RevokedTokenRepositoryPG) Revoke(ctx context.Context, jti string, at time.Time) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO revoked_tokens (jti, revoked_at)
VALUES ($1, $2)
ON CONFLICT (jti) DO NOTHING;
`, jti, at)
	return err
}

// IsRevoked reports whether the jti exists in the revocation set.
func (r *RevokedTokenRepositoryPG) IsRevoked(ctx context.Context, jti string) (bool, error) {
	row := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)`, jti)
	var revoked bool
	if err := row.Scan(&revoked); err != nil {
		return false, err
	}
	return revoked, nil
}
