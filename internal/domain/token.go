package domain

import "time"

// RevokedToken marks a token identifier as permanently invalid.
// Rows are append-only; presence of a jti is the sole revocation check.
type RevokedToken struct {
	ID        int64
	JTI       string
	RevokedAt time.Time
}
