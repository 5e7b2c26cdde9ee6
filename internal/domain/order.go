package domain

import "time"

type OrderStatus string

const (
	OrderStatusPlaced  OrderStatus = "placed"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusShipped OrderStatus = "shipped"
)

var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPlaced:  {OrderStatusPaid: true},
	OrderStatusPaid:    {OrderStatusShipped: true},
	OrderStatusShipped: {},
}

// CanTransition reports whether an order may move from one status to another.
// Cancellation is not a status; a cancelled order is deleted.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// Order is a customer purchase of a single part. UnitPriceCents snapshots the
// part price at placement time. TransactionRef is set once payment is
// confirmed and ties the order to exactly one provider charge.
type Order struct {
	ID             string
	PartID         string
	CustomerEmail  string
	Quantity       int
	UnitPriceCents int
	Status         OrderStatus
	TransactionRef string
	CreatedAt      time.Time
}

// TotalCents is the amount owed for the order in minor currency units.
func (o Order) TotalCents() int64 {
	return int64(o.UnitPriceCents) * int64(o.Quantity)
}
