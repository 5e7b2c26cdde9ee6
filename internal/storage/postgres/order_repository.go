package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
)

const orderColumns = `id, part_id, customer_email, quantity, unit_price_cents, status, COALESCE(transaction_ref, ''), created_at`

// OrderRepository owns order records and their lifecycle status. Status
// transitions are optimistic precondition checks: the UPDATE names the
// expected prior status, and a zero-row result on an existing order means a
// concurrent or repeated transition already moved it.
type OrderRepository struct {
	store
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{store: store{pool: pool}}
}

func (r *OrderRepository) Create(ctx context.Context, order domain.Order) error {
	const stmt = `
INSERT INTO orders (id, part_id, customer_email, quantity, unit_price_cents, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		order.ID,
		order.PartID,
		order.CustomerEmail,
		order.Quantity,
		order.UnitPriceCents,
		order.Status,
		order.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, orderID string) (domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := r.scanOrder(r.queryRow(ctx, query, orderID))
	if err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, email string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_email = $1 ORDER BY created_at DESC`

	rows, err := r.query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return r.collectOrders(rows)
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return r.collectOrders(rows)
}

// SetPaid transitions placed -> paid and attaches the transaction reference.
// An order already paid or shipped rejects with ErrInvalidState rather than
// silently absorbing the duplicate confirmation.
func (r *OrderRepository) SetPaid(ctx context.Context, orderID, transactionRef string) (domain.Order, error) {
	stmt := `
UPDATE orders
SET status = $2, transaction_ref = $3
WHERE id = $1 AND status = $4
RETURNING ` + orderColumns

	o, err := r.scanOrder(r.queryRow(ctx, stmt, orderID, domain.OrderStatusPaid, transactionRef, domain.OrderStatusPlaced))
	if err == domain.ErrOrderNotFound {
		return domain.Order{}, r.classifyMissedTransition(ctx, orderID)
	}
	if err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// SetShipped transitions paid -> shipped. An order that was never paid cannot
// be shipped.
func (r *OrderRepository) SetShipped(ctx context.Context, orderID string) (domain.Order, error) {
	stmt := `
UPDATE orders
SET status = $2
WHERE id = $1 AND status = $3
RETURNING ` + orderColumns

	o, err := r.scanOrder(r.queryRow(ctx, stmt, orderID, domain.OrderStatusShipped, domain.OrderStatusPaid))
	if err == domain.ErrOrderNotFound {
		return domain.Order{}, r.classifyMissedTransition(ctx, orderID)
	}
	if err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// Delete removes an order that has not shipped; shipped is terminal and
// rejects with ErrInvalidState. It does not restock the reserved quantity;
// see OrderService.CancelOrder.
func (r *OrderRepository) Delete(ctx context.Context, orderID string) error {
	tag, err := r.exec(ctx, `DELETE FROM orders WHERE id = $1 AND status <> $2`, orderID, domain.OrderStatusShipped)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissedTransition(ctx, orderID)
	}
	return nil
}

// classifyMissedTransition tells a missing order apart from one whose status
// failed the transition precondition.
func (r *OrderRepository) classifyMissedTransition(ctx context.Context, orderID string) error {
	var exists bool
	if err := r.queryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists); err != nil {
		return fmt.Errorf("check order: %w", err)
	}
	if !exists {
		return domain.ErrOrderNotFound
	}
	return domain.ErrInvalidState
}

func (r *OrderRepository) scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID,
		&o.PartID,
		&o.CustomerEmail,
		&o.Quantity,
		&o.UnitPriceCents,
		&o.Status,
		&o.TransactionRef,
		&o.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Order{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("scan order: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
