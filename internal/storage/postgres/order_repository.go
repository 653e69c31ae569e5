package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nvalera/supermart/internal/domain"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderRowsPrefix = `
SELECT o.id, o.user_id, o.total_cents, o.created_at,
       oi.product_id, oi.product_name, oi.price_cents, oi.quantity, oi.image_ref
FROM orders o
JOIN order_items oi ON oi.order_id = o.id`

const orderRowsSuffix = ` ORDER BY o.created_at DESC, o.id, oi.id`

func (r *OrderRepository) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	query := orderRowsPrefix + ` WHERE o.user_id = $1` + orderRowsSuffix

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	return groupOrderRows(rows)
}

func (r *OrderRepository) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	query := orderRowsPrefix + orderRowsSuffix

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	defer rows.Close()

	return groupOrderRows(rows)
}

// SearchOrders matches the term against the order id and item product
// names. An empty userID means no user filter (admin view).
func (r *OrderRepository) SearchOrders(ctx context.Context, userID, term string) ([]domain.Order, error) {
	matched := `(o.id::text = $1 OR EXISTS (
	SELECT 1 FROM order_items mi
	WHERE mi.order_id = o.id AND mi.product_name ILIKE '%' || $1 || '%'
))`

	var (
		rows pgx.Rows
		err  error
	)
	if userID == "" {
		query := orderRowsPrefix + ` WHERE ` + matched + orderRowsSuffix
		rows, err = r.pool.Query(ctx, query, term)
	} else {
		query := orderRowsPrefix + ` WHERE o.user_id = $2 AND ` + matched + orderRowsSuffix
		rows, err = r.pool.Query(ctx, query, term, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}
	defer rows.Close()

	return groupOrderRows(rows)
}

// groupOrderRows folds the joined result set back into orders with items,
// preserving row order.
func groupOrderRows(rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	index := make(map[string]int)

	for rows.Next() {
		var (
			order domain.Order
			item  domain.OrderItem
		)
		if err := rows.Scan(
			&order.ID, &order.UserID, &order.TotalCents, &order.CreatedAt,
			&item.ProductID, &item.Name, &item.PriceCents, &item.Quantity, &item.ImageRef,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		i, ok := index[order.ID]
		if !ok {
			i = len(orders)
			index[order.ID] = i
			orders = append(orders, order)
		}
		orders[i].Items = append(orders[i].Items, item)
	}
	return orders, rows.Err()
}
