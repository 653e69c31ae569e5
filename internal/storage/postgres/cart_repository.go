package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nvalera/supermart/internal/domain"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// cartSnapshotQuery joins cart lines with live product data. Order is cart
// insertion order, which is the order checkout walks the lines in.
const cartSnapshotQuery = `
SELECT ci.product_id, p.name, p.price_cents, ci.quantity, p.quantity, p.image_ref
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.user_id = $1
ORDER BY ci.created_at, ci.product_id`

func (r *CartRepository) CartSnapshot(ctx context.Context, userID string) ([]domain.CartItem, error) {
	rows, err := r.query(ctx, cartSnapshotQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("cart snapshot: %w", err)
	}
	defer rows.Close()

	return scanCartItems(rows)
}

func (r *CartRepository) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p domain.Product
	err := r.queryRow(ctx, query, productID).
		Scan(&p.ID, &p.Name, &p.PriceCents, &p.Quantity, &p.ImageRef, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Product{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// UpsertCartLine adds quantity to an existing line or creates one.
func (r *CartRepository) UpsertCartLine(ctx context.Context, line domain.CartLine) error {
	const stmt = `
INSERT INTO cart_items (user_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, product_id) DO UPDATE
SET quantity = cart_items.quantity + EXCLUDED.quantity`

	_, err := r.exec(ctx, stmt, line.UserID, line.ProductID, line.Quantity)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("upsert cart line: %w", err)
	}
	return nil
}

func (r *CartRepository) SetCartQuantity(ctx context.Context, userID, productID string, quantity int) error {
	const stmt = `UPDATE cart_items SET quantity = $3 WHERE user_id = $1 AND product_id = $2`

	_, err := r.exec(ctx, stmt, userID, productID, quantity)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("set cart quantity: %w", err)
	}
	return nil
}

func (r *CartRepository) RemoveCartLine(ctx context.Context, userID, productID string) error {
	const stmt = `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	_, err := r.exec(ctx, stmt, userID, productID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("remove cart line: %w", err)
	}
	return nil
}

func (r *CartRepository) ClearCart(ctx context.Context, userID string) error {
	const stmt = `DELETE FROM cart_items WHERE user_id = $1`

	if _, err := r.exec(ctx, stmt, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func scanCartItems(rows pgx.Rows) ([]domain.CartItem, error) {
	var out []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.PriceCents, &item.Quantity, &item.Stock, &item.ImageRef); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *CartRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *CartRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *CartRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
