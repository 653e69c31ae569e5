package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nvalera/supermart/internal/domain"
)

// AdminRepository covers product and discount-code management writes.
type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) CreateProduct(ctx context.Context, product domain.Product) error {
	const stmt = `
INSERT INTO products (id, name, price_cents, quantity, image_ref, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, stmt,
		product.ID,
		product.Name,
		product.PriceCents,
		product.Quantity,
		product.ImageRef,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *AdminRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	const stmt = `
UPDATE products
SET name = $2, price_cents = $3, quantity = $4, image_ref = $5, updated_at = $6
WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt,
		product.ID,
		product.Name,
		product.PriceCents,
		product.Quantity,
		product.ImageRef,
		product.UpdatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *AdminRepository) DeleteProduct(ctx context.Context, productID string) error {
	const stmt = `DELETE FROM products WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt, productID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *AdminRepository) ListDiscounts(ctx context.Context) ([]domain.DiscountCode, error) {
	query := `SELECT ` + discountColumns + ` FROM discount_codes ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list discount codes: %w", err)
	}
	defer rows.Close()

	var out []domain.DiscountCode
	for rows.Next() {
		var d domain.DiscountCode
		if err := rows.Scan(&d.ID, &d.Code, &d.Description, &d.PercentOff, &d.UsesRemaining, &d.ExpiresAt, &d.Active, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan discount code: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *AdminRepository) GetDiscount(ctx context.Context, codeID string) (domain.DiscountCode, error) {
	query := `SELECT ` + discountColumns + ` FROM discount_codes WHERE id = $1`

	var d domain.DiscountCode
	err := r.pool.QueryRow(ctx, query, codeID).
		Scan(&d.ID, &d.Code, &d.Description, &d.PercentOff, &d.UsesRemaining, &d.ExpiresAt, &d.Active, &d.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.DiscountCode{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.DiscountCode{}, domain.ErrDiscountNotFound
		}
		return domain.DiscountCode{}, fmt.Errorf("get discount code: %w", err)
	}
	return d, nil
}

func (r *AdminRepository) CreateDiscount(ctx context.Context, code domain.DiscountCode) error {
	const stmt = `
INSERT INTO discount_codes (id, code, description, percent_off, uses_remaining, expires_at, active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, stmt,
		code.ID,
		code.Code,
		code.Description,
		code.PercentOff,
		code.UsesRemaining,
		code.ExpiresAt,
		code.Active,
		code.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDiscountCodeTaken
		}
		return fmt.Errorf("create discount code: %w", err)
	}
	return nil
}

func (r *AdminRepository) UpdateDiscount(ctx context.Context, code domain.DiscountCode) error {
	const stmt = `
UPDATE discount_codes
SET code = $2, description = $3, percent_off = $4, uses_remaining = $5, expires_at = $6, active = $7
WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt,
		code.ID,
		code.Code,
		code.Description,
		code.PercentOff,
		code.UsesRemaining,
		code.ExpiresAt,
		code.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDiscountCodeTaken
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update discount code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDiscountNotFound
	}
	return nil
}

func (r *AdminRepository) DeleteDiscount(ctx context.Context, codeID string) error {
	const stmt = `DELETE FROM discount_codes WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt, codeID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete discount code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDiscountNotFound
	}
	return nil
}
