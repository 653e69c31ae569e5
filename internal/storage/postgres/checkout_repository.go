package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nvalera/supermart/internal/domain"
)

// CheckoutRepository backs the checkout transaction: the cart snapshot, the
// stock ledger decrement, and the order ledger write.
type CheckoutRepository struct {
	pool *pgxpool.Pool
}

func NewCheckoutRepository(pool *pgxpool.Pool) *CheckoutRepository {
	return &CheckoutRepository{pool: pool}
}

func (r *CheckoutRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *CheckoutRepository) CartSnapshot(ctx context.Context, userID string) ([]domain.CartItem, error) {
	rows, err := r.query(ctx, cartSnapshotQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("cart snapshot: %w", err)
	}
	defer rows.Close()

	return scanCartItems(rows)
}

// DecrementStock is the stock ledger's conditional update. The availability
// check and the decrement are one statement, so two concurrent checkouts
// can never both take the last units of a product. A false return means
// insufficient stock, not a failure.
func (r *CheckoutRepository) DecrementStock(ctx context.Context, productID string, qty int) (bool, error) {
	const stmt = `
UPDATE products
SET quantity = quantity - $2, updated_at = NOW()
WHERE id = $1 AND quantity >= $2`

	tag, err := r.exec(ctx, stmt, productID, qty)
	if err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// CreateOrder writes the order header and its denormalized items. It only
// makes sense inside the checkout transaction, after every line reserved.
func (r *CheckoutRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	const headerStmt = `
INSERT INTO orders (id, user_id, total_cents, created_at)
VALUES ($1, $2, $3, $4)`

	if _, err := r.exec(ctx, headerStmt, order.ID, order.UserID, order.TotalCents, order.CreatedAt); err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	const itemStmt = `
INSERT INTO order_items (order_id, product_id, product_name, price_cents, quantity, image_ref)
VALUES ($1, $2, $3, $4, $5, $6)`

	for _, item := range order.Items {
		if _, err := r.exec(ctx, itemStmt, order.ID, item.ProductID, item.Name, item.PriceCents, item.Quantity, item.ImageRef); err != nil {
			return fmt.Errorf("create order item: %w", err)
		}
	}
	return nil
}

func (r *CheckoutRepository) ClearCart(ctx context.Context, userID string) error {
	const stmt = `DELETE FROM cart_items WHERE user_id = $1`

	if _, err := r.exec(ctx, stmt, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (r *CheckoutRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *CheckoutRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
