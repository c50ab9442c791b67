package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"raiseme/internal/domain"
)

// PaymentRepositoryPG implements domain.PaymentRepository backed by PostgreSQL.
type PaymentRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepositoryPG.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepositoryPG {
	return &PaymentRepositoryPG{pool: pool}
}

// Create records an external processor charge against a donation.
func (r *PaymentRepositoryPG) Create(ctx context.Context, payment *domain.Payment) error {
	row := r.pool.QueryRow(ctx, `
INSERT INTO payments (donation_id, processor_payment_id, amount, currency, status, payment_method_type, transaction_date)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id;
`, payment.DonationID, payment.ProcessorPaymentID, payment.Amount, payment.Currency,
		payment.Status, payment.PaymentMethodType, payment.TransactionDate)

	return row.Scan(&payment.ID)
}

// ListByDonation returns the payments recorded for a donation.
func (r *PaymentRepositoryPG) ListByDonation(ctx context.Context, donationID int64) ([]domain.Payment, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, donation_id, processor_payment_id, amount, currency, status, payment_method_type, transaction_date
FROM payments
WHERE donation_id = $1
ORDER BY id;
`, donationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.DonationID, &p.ProcessorPaymentID, &p.Amount, &p.Currency, &p.Status, &p.PaymentMethodType, &p.TransactionDate); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
