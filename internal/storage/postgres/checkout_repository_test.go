package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nvalera/supermart/internal/app"
	"github.com/nvalera/supermart/internal/clock"
	"github.com/nvalera/supermart/internal/domain"
	"github.com/nvalera/supermart/internal/testutil"
)

func TestCheckoutRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewCheckoutRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("DecrementStock takes stock only when enough is available", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		productID := testutil.InsertProduct(t, ctx, pool, "Milk", 199, 5)

		reserved, err := repo.DecrementStock(ctx, productID, 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reserved {
			t.Fatalf("expected reservation to succeed")
		}
		if got := testutil.ProductQuantity(t, ctx, pool, productID); got != 2 {
			t.Fatalf("expected quantity 2, got %d", got)
		}

		reserved, err = repo.DecrementStock(ctx, productID, 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if reserved {
			t.Fatalf("expected reservation to fail with 2 left")
		}
		if got := testutil.ProductQuantity(t, ctx, pool, productID); got != 2 {
			t.Fatalf("expected quantity unchanged at 2, got %d", got)
		}

		if _, err := repo.DecrementStock(ctx, "not-a-uuid", 1); err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("WithTx rolls back every decrement on failure", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		milkID := testutil.InsertProduct(t, ctx, pool, "Milk", 199, 5)
		breadID := testutil.InsertProduct(t, ctx, pool, "Bread", 350, 1)

		failed := errors.New("abort")
		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			if _, err := repo.DecrementStock(txCtx, milkID, 2); err != nil {
				return err
			}
			if reserved, err := repo.DecrementStock(txCtx, breadID, 3); err != nil || reserved {
				t.Fatalf("expected shortfall, reserved=%v err=%v", reserved, err)
			}
			return failed
		})
		if !errors.Is(err, failed) {
			t.Fatalf("expected abort error, got %v", err)
		}

		if got := testutil.ProductQuantity(t, ctx, pool, milkID); got != 5 {
			t.Fatalf("expected milk restored to 5, got %d", got)
		}
		if got := testutil.ProductQuantity(t, ctx, pool, breadID); got != 1 {
			t.Fatalf("expected bread untouched at 1, got %d", got)
		}
	})

	t.Run("CreateOrder writes header and items", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		productID := testutil.InsertProduct(t, ctx, pool, "Milk", 199, 5)

		order := domain.Order{
			ID:         uuid.NewString(),
			UserID:     "u-1",
			TotalCents: 398,
			CreatedAt:  time.Now().UTC(),
			Items: []domain.OrderItem{
				{ProductID: productID, Name: "Milk", PriceCents: 199, Quantity: 2},
			},
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if got := testutil.CountRows(t, ctx, pool, "orders"); got != 1 {
			t.Fatalf("expected 1 order, got %d", got)
		}
		if got := testutil.CountRows(t, ctx, pool, "order_items"); got != 1 {
			t.Fatalf("expected 1 order item, got %d", got)
		}
	})

	t.Run("CartSnapshot walks lines in insertion order", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		milkID := testutil.InsertProduct(t, ctx, pool, "Milk", 199, 5)
		breadID := testutil.InsertProduct(t, ctx, pool, "Bread", 350, 3)
		testutil.InsertCartLine(t, ctx, pool, "u-1", milkID, 2)
		testutil.InsertCartLine(t, ctx, pool, "u-1", breadID, 1)
		testutil.InsertCartLine(t, ctx, pool, "u-2", milkID, 4)

		items, err := repo.CartSnapshot(ctx, "u-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(items))
		}
		if items[0].Name != "Milk" || items[0].Quantity != 2 || items[0].PriceCents != 199 || items[0].Stock != 5 {
			t.Fatalf("unexpected first line: %+v", items[0])
		}
	})

	t.Run("concurrent checkouts of scarce stock never oversell", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		productID := testutil.InsertProduct(t, ctx, pool, "Milk", 199, 3)

		const buyers = 6
		users := make([]string, buyers)
		for i := range users {
			users[i] = "buyer-" + string(rune('a'+i))
			testutil.InsertCartLine(t, ctx, pool, users[i], productID, 1)
		}

		svc := app.NewCheckoutService(repo, clock.NewSystem())

		var wg sync.WaitGroup
		results := make(chan error, buyers)
		for _, userID := range users {
			wg.Add(1)
			go func(userID string) {
				defer wg.Done()
				_, err := svc.Checkout(ctx, userID)
				results <- err
			}(userID)
		}
		wg.Wait()
		close(results)

		succeeded := 0
		for err := range results {
			if err == nil {
				succeeded++
				continue
			}
			if !errors.Is(err, domain.ErrInsufficientStock) {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if succeeded != 3 {
			t.Fatalf("expected exactly 3 successful checkouts, got %d", succeeded)
		}
		if got := testutil.ProductQuantity(t, ctx, pool, productID); got != 0 {
			t.Fatalf("expected stock 0, got %d", got)
		}
		if got := testutil.CountRows(t, ctx, pool, "orders"); got != 3 {
			t.Fatalf("expected 3 orders, got %d", got)
		}
	})
}
