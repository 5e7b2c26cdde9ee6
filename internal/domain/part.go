package domain

import "time"

// Part is a sellable inventory item. Quantity is only ever mutated through
// the part repository's conditional reserve/restock statements and can never
// be observed negative.
type Part struct {
	ID         string
	Name       string
	Quantity   int
	PriceCents int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
