package domain

import "time"

// Payment is a passive record of an external processor charge backing
// a donation. One payment per donation is assumed, not enforced.
type Payment struct {
	ID                 int64
	DonationID         int64
	ProcessorPaymentID string
	Amount             float64
	Currency           string
	Status             string
	PaymentMethodType  string
	TransactionDate    time.Time
}
