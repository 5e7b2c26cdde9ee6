package domain

import "time"

// Payment records one confirmed charge against an order. Append-only; it is
// written in the same transaction that marks the order paid.
type Payment struct {
	ID             string
	OrderID        string
	TransactionRef string
	AmountCents    int64
	CreatedAt      time.Time
}
