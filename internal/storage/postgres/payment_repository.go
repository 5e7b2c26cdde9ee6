package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
)

// PaymentRepository appends payment records. Rows are never updated or
// deleted and survive deletion of their order; the record is written in the
// same transaction that marks its order paid. A provider transaction
// reference can be recorded at most once.
type PaymentRepository struct {
	store
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{store: store{pool: pool}}
}

func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) error {
	const stmt = `
INSERT INTO payments (id, order_id, transaction_ref, amount_cents, created_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.exec(ctx, stmt,
		payment.ID,
		payment.OrderID,
		payment.TransactionRef,
		payment.AmountCents,
		payment.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isUniqueViolation(err) {
			return domain.ErrInvalidState
		}
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) ListByOrder(ctx context.Context, orderID string) ([]domain.Payment, error) {
	const query = `
SELECT id, order_id, transaction_ref, amount_cents, created_at
FROM payments
WHERE order_id = $1
ORDER BY created_at`

	rows, err := r.query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.TransactionRef, &p.AmountCents, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
