package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/atikxb/manufacturing-company-server-side/internal/clock"
	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
	"github.com/atikxb/manufacturing-company-server-side/internal/events"
	"github.com/atikxb/manufacturing-company-server-side/internal/payment"
)

// PartStore is the inventory ledger surface the orchestrator needs.
type PartStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Get(ctx context.Context, partID string) (domain.Part, error)
	Reserve(ctx context.Context, partID string, qty int) (int, error)
}

// OrderStore owns order records and their status transitions.
type OrderStore interface {
	Create(ctx context.Context, order domain.Order) error
	Get(ctx context.Context, orderID string) (domain.Order, error)
	ListByCustomer(ctx context.Context, email string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	SetPaid(ctx context.Context, orderID, transactionRef string) (domain.Order, error)
	SetShipped(ctx context.Context, orderID string) (domain.Order, error)
	Delete(ctx context.Context, orderID string) error
}

// PaymentStore appends payment records.
type PaymentStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Create(ctx context.Context, payment domain.Payment) error
}

// RoleDirectory resolves a caller's stored role for authorization.
type RoleDirectory interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

// OrderService sequences the inventory ledger, order store and payment bridge
// for each request type: place, pay, ship, cancel, list.
type OrderService struct {
	parts     PartStore
	orders    OrderStore
	payments  PaymentStore
	users     RoleDirectory
	intents   payment.IntentCreator
	clock     clock.Clock
	publisher events.Publisher
	producer  string
}

func NewOrderService(
	parts PartStore,
	orders OrderStore,
	payments PaymentStore,
	users RoleDirectory,
	intents payment.IntentCreator,
	clk clock.Clock,
	opts ...OrderServiceOption,
) *OrderService {
	svc := &OrderService{
		parts:     parts,
		orders:    orders,
		payments:  payments,
		users:     users,
		intents:   intents,
		clock:     clk,
		publisher: events.Nop{},
		producer:  "inventory-api",
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type OrderServiceOption func(*OrderService)

// WithEventPublisher enables lifecycle event publishing under the given
// producer name.
func WithEventPublisher(p events.Publisher, producer string) OrderServiceOption {
	return func(s *OrderService) {
		if p != nil {
			s.publisher = p
		}
		if producer != "" {
			s.producer = producer
		}
	}
}

type PlaceOrderInput struct {
	PartID   string
	Quantity int
}

// PlaceOrder reserves stock and records the order as one transaction: if the
// insert fails the reservation rolls back, so inventory is never consumed
// without a matching order.
func (s *OrderService) PlaceOrder(ctx context.Context, identity string, in PlaceOrderInput) (domain.Order, error) {
	if identity == "" {
		return domain.Order{}, domain.ErrUnauthenticated
	}
	if in.Quantity <= 0 {
		return domain.Order{}, domain.ErrInvalidQuantity
	}

	now := s.clock.Now()
	var placed domain.Order

	err := s.parts.WithTx(ctx, func(txCtx context.Context) error {
		part, err := s.parts.Get(txCtx, in.PartID)
		if err != nil {
			return err
		}
		if _, err := s.parts.Reserve(txCtx, in.PartID, in.Quantity); err != nil {
			return err
		}

		order := domain.Order{
			ID:             uuid.NewString(),
			PartID:         part.ID,
			CustomerEmail:  identity,
			Quantity:       in.Quantity,
			UnitPriceCents: part.PriceCents,
			Status:         domain.OrderStatusPlaced,
			CreatedAt:      now,
		}
		if err := s.orders.Create(txCtx, order); err != nil {
			return err
		}

		placed = order
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.publishOrderEvent(events.TopicOrderPlaced, events.TypeOrderPlaced, placed)
	return placed, nil
}

// ListOrders returns the orders visible to the caller. A non-admin caller may
// only filter by their own email.
func (s *OrderService) ListOrders(ctx context.Context, identity, filterEmail string) ([]domain.Order, error) {
	if identity == "" {
		return nil, domain.ErrUnauthenticated
	}

	admin, err := s.isAdmin(ctx, identity)
	if err != nil {
		return nil, err
	}

	switch {
	case filterEmail == "" && admin:
		return s.orders.ListAll(ctx)
	case filterEmail == "":
		return s.orders.ListByCustomer(ctx, identity)
	case filterEmail != identity && !admin:
		return nil, domain.ErrForbidden
	default:
		return s.orders.ListByCustomer(ctx, filterEmail)
	}
}

// GetOrder fetches one order for its owner or an admin. Backs the payment
// page lookup.
func (s *OrderService) GetOrder(ctx context.Context, identity, orderID string) (domain.Order, error) {
	if identity == "" {
		return domain.Order{}, domain.ErrUnauthenticated
	}

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if err := s.authorizeOwnerOrAdmin(ctx, identity, order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

type PaymentIntentInput struct {
	OrderID string
	// Amount is a decimal currency value; the payment bridge converts it to
	// minor units.
	Amount float64
}

// CreatePaymentIntent obtains a client secret authorizing the caller to
// complete the charge client-side. Provider failures surface unretried.
func (s *OrderService) CreatePaymentIntent(ctx context.Context, identity string, in PaymentIntentInput) (string, error) {
	if identity == "" {
		return "", domain.ErrUnauthenticated
	}
	if in.Amount <= 0 {
		return "", domain.ErrInvalidAmount
	}

	order, err := s.orders.Get(ctx, in.OrderID)
	if err != nil {
		return "", err
	}
	if err := s.authorizeOwnerOrAdmin(ctx, identity, order); err != nil {
		return "", err
	}
	if order.Status != domain.OrderStatusPlaced {
		return "", domain.ErrInvalidState
	}

	return s.intents.CreateIntent(ctx, in.Amount)
}

// ConfirmPayment appends the payment record and marks the order paid in one
// transaction, so a stored transaction reference can never be orphaned from
// the order status.
func (s *OrderService) ConfirmPayment(ctx context.Context, identity, orderID, transactionRef string) (domain.Order, error) {
	if identity == "" {
		return domain.Order{}, domain.ErrUnauthenticated
	}
	if transactionRef == "" {
		return domain.Order{}, domain.ErrInvalidID
	}

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if err := s.authorizeOwnerOrAdmin(ctx, identity, order); err != nil {
		return domain.Order{}, err
	}

	now := s.clock.Now()
	var paid domain.Order

	err = s.payments.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.payments.Create(txCtx, domain.Payment{
			ID:             uuid.NewString(),
			OrderID:        orderID,
			TransactionRef: transactionRef,
			AmountCents:    order.TotalCents(),
			CreatedAt:      now,
		}); err != nil {
			return err
		}

		updated, err := s.orders.SetPaid(txCtx, orderID, transactionRef)
		if err != nil {
			return err
		}
		paid = updated
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.publishOrderEvent(events.TopicOrderPaid, events.TypeOrderPaid, paid)
	return paid, nil
}

// ShipOrder marks a paid order shipped. Admin only.
func (s *OrderService) ShipOrder(ctx context.Context, identity, orderID string) (domain.Order, error) {
	if identity == "" {
		return domain.Order{}, domain.ErrUnauthenticated
	}
	if err := s.requireAdmin(ctx, identity); err != nil {
		return domain.Order{}, err
	}

	shipped, err := s.orders.SetShipped(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	s.publishOrderEvent(events.TopicOrderShipped, events.TypeOrderShipped, shipped)
	return shipped, nil
}

// CancelOrder removes an order for its owner or an admin. A shipped order is
// terminal and cannot be cancelled. The reserved quantity is not returned to
// inventory; restocking cancelled orders is a manual operation via
// PartRepository.Restock.
func (s *OrderService) CancelOrder(ctx context.Context, identity, orderID string) error {
	if identity == "" {
		return domain.ErrUnauthenticated
	}

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if err := s.authorizeOwnerOrAdmin(ctx, identity, order); err != nil {
		return err
	}
	if order.Status == domain.OrderStatusShipped {
		return domain.ErrInvalidState
	}

	if err := s.orders.Delete(ctx, orderID); err != nil {
		return err
	}

	s.publishOrderEvent(events.TopicOrderCancelled, events.TypeOrderCancelled, order)
	return nil
}

// isAdmin fails closed: an identity with no stored account is simply not an
// admin, never an internal error.
func (s *OrderService) isAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return false, nil
		}
		return false, err
	}
	return user.Role == domain.RoleAdmin, nil
}

func (s *OrderService) requireAdmin(ctx context.Context, email string) error {
	admin, err := s.isAdmin(ctx, email)
	if err != nil {
		return err
	}
	if !admin {
		return domain.ErrForbidden
	}
	return nil
}

func (s *OrderService) authorizeOwnerOrAdmin(ctx context.Context, identity string, order domain.Order) error {
	if order.CustomerEmail == identity {
		return nil
	}
	return s.requireAdmin(ctx, identity)
}

func (s *OrderService) publishOrderEvent(topic, eventType string, order domain.Order) {
	s.publisher.Publish(topic, order.ID, events.NewOrderEnvelope(s.producer, eventType, order, s.clock.Now()))
}
