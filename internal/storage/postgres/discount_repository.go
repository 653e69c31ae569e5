package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nvalera/supermart/internal/domain"
)

// DiscountRepository backs the discount evaluator.
type DiscountRepository struct {
	pool *pgxpool.Pool
}

func NewDiscountRepository(pool *pgxpool.Pool) *DiscountRepository {
	return &DiscountRepository{pool: pool}
}

const discountColumns = `id, code, description, percent_off, uses_remaining, expires_at, active, created_at`

// FindRedeemableByCode resolves a code that is active, unexpired, and has
// uses left (or unlimited). Nil without error means no such code.
func (r *DiscountRepository) FindRedeemableByCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	query := `
SELECT ` + discountColumns + `
FROM discount_codes
WHERE code = $1
  AND active
  AND (expires_at IS NULL OR expires_at > NOW())
  AND (uses_remaining IS NULL OR uses_remaining > 0)`

	var d domain.DiscountCode
	err := r.pool.QueryRow(ctx, query, code).
		Scan(&d.ID, &d.Code, &d.Description, &d.PercentOff, &d.UsesRemaining, &d.ExpiresAt, &d.Active, &d.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find discount code: %w", err)
	}
	return &d, nil
}

// DecrementUses consumes one use. The guard keeps unlimited codes untouched
// and never lets a counter drop below zero, even under concurrent applies.
func (r *DiscountRepository) DecrementUses(ctx context.Context, codeID string) error {
	const stmt = `
UPDATE discount_codes
SET uses_remaining = uses_remaining - 1
WHERE id = $1 AND uses_remaining IS NOT NULL AND uses_remaining > 0`

	if _, err := r.pool.Exec(ctx, stmt, codeID); err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("decrement discount uses: %w", err)
	}
	return nil
}
