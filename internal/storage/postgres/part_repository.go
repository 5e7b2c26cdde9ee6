package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
)

// PartRepository is the inventory ledger. Reserve and Restock are the only
// statements that touch a part's quantity.
type PartRepository struct {
	store
}

func NewPartRepository(pool *pgxpool.Pool) *PartRepository {
	return &PartRepository{store: store{pool: pool}}
}

func (r *PartRepository) List(ctx context.Context) ([]domain.Part, error) {
	const query = `
SELECT id, name, quantity, price_cents, created_at, updated_at
FROM parts
ORDER BY name`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()

	var out []domain.Part
	for rows.Next() {
		var p domain.Part
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.PriceCents, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PartRepository) Get(ctx context.Context, partID string) (domain.Part, error) {
	const query = `
SELECT id, name, quantity, price_cents, created_at, updated_at
FROM parts
WHERE id = $1`

	var p domain.Part
	err := r.queryRow(ctx, query, partID).
		Scan(&p.ID, &p.Name, &p.Quantity, &p.PriceCents, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Part{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Part{}, domain.ErrPartNotFound
		}
		return domain.Part{}, fmt.Errorf("get part: %w", err)
	}
	return p, nil
}

// Reserve decrements a part's quantity by qty and returns the remaining
// quantity. The check and the decrement are a single conditional statement:
// the predicate is re-evaluated under the row lock, so two concurrent
// reservations cannot both succeed past availability and the stored value can
// never go negative.
func (r *PartRepository) Reserve(ctx context.Context, partID string, qty int) (int, error) {
	if qty <= 0 {
		return 0, domain.ErrInvalidQuantity
	}

	const stmt = `
UPDATE parts
SET quantity = quantity - $2, updated_at = NOW()
WHERE id = $1 AND quantity >= $2
RETURNING quantity`

	var remaining int
	err := r.queryRow(ctx, stmt, partID, qty).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if isInvalidUUID(err) {
		return 0, domain.ErrInvalidID
	}
	if err != pgx.ErrNoRows {
		return 0, fmt.Errorf("reserve part: %w", err)
	}

	// No row matched: either the part does not exist or stock was short.
	var exists bool
	if err := r.queryRow(ctx, `SELECT EXISTS (SELECT 1 FROM parts WHERE id = $1)`, partID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("reserve part: %w", err)
	}
	if !exists {
		return 0, domain.ErrPartNotFound
	}
	return 0, domain.ErrInsufficientStock
}

// Restock returns qty units to a part. Compensation primitive for reversed
// reservations; also used by administrative restock.
func (r *PartRepository) Restock(ctx context.Context, partID string, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}

	const stmt = `
UPDATE parts
SET quantity = quantity + $2, updated_at = NOW()
WHERE id = $1`

	tag, err := r.exec(ctx, stmt, partID, qty)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("restock part: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPartNotFound
	}
	return nil
}

// Create inserts a part. Used by seeds and tests; the public API does not
// expose part creation.
func (r *PartRepository) Create(ctx context.Context, part domain.Part) error {
	const stmt = `
INSERT INTO parts (id, name, quantity, price_cents, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)`

	_, err := r.exec(ctx, stmt, part.ID, part.Name, part.Quantity, part.PriceCents, part.CreatedAt)
	if err != nil {
		return fmt.Errorf("create part: %w", err)
	}
	return nil
}
