package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
)

const (
	TopicOrderPlaced    = "order.placed"
	TopicOrderPaid      = "order.paid"
	TopicOrderShipped   = "order.shipped"
	TopicOrderCancelled = "order.cancelled"
)

const (
	TypeOrderPlaced    = "OrderPlaced"
	TypeOrderPaid      = "OrderPaid"
	TypeOrderShipped   = "OrderShipped"
	TypeOrderCancelled = "OrderCancelled"
)

// Envelope wraps every published event. The kafka partition key is the order
// id, so one order's events keep their relative order.
type Envelope struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	Producer   string    `json:"producer"`
	Payload    any       `json:"payload"`
}

type OrderPayload struct {
	OrderID        string `json:"order_id"`
	PartID         string `json:"part_id"`
	CustomerEmail  string `json:"customer_email"`
	Quantity       int    `json:"quantity"`
	TotalCents     int64  `json:"total_cents"`
	Status         string `json:"status"`
	TransactionRef string `json:"transaction_ref,omitempty"`
}

// NewOrderEnvelope builds an envelope for an order lifecycle event.
func NewOrderEnvelope(producer, eventType string, order domain.Order, occurredAt time.Time) Envelope {
	return Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: occurredAt,
		Producer:   producer,
		Payload: OrderPayload{
			OrderID:        order.ID,
			PartID:         order.PartID,
			CustomerEmail:  order.CustomerEmail,
			Quantity:       order.Quantity,
			TotalCents:     order.TotalCents(),
			Status:         string(order.Status),
			TransactionRef: order.TransactionRef,
		},
	}
}

// Publisher delivers envelopes to a topic keyed for per-order ordering.
// Publishing is best effort and must not block or fail the request that
// produced the event.
type Publisher interface {
	Publish(topic, key string, envelope Envelope)
}

// Nop discards all events. Used when no brokers are configured and in tests.
type Nop struct{}

func (Nop) Publish(string, string, Envelope) {}
