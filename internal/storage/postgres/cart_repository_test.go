package postgres

import (
	"context"
	"testing"

	"github.com/nvalera/supermart/internal/domain"
	"github.com/nvalera/supermart/internal/testutil"
)

func TestCartRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewCartRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("UpsertCartLine accumulates quantity", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		productID := testutil.InsertProduct(t, ctx, pool, "Milk", 199, 10)

		line := domain.CartLine{UserID: "u-1", ProductID: productID, Quantity: 2}
		if err := repo.UpsertCartLine(ctx, line); err != nil {
			t.Fatalf("first upsert: %v", err)
		}
		line.Quantity = 3
		if err := repo.UpsertCartLine(ctx, line); err != nil {
			t.Fatalf("second upsert: %v", err)
		}

		items, err := repo.CartSnapshot(ctx, "u-1")
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		if len(items) != 1 || items[0].Quantity != 5 {
			t.Fatalf("expected one line with quantity 5, got %+v", items)
		}
	})

	t.Run("SetCartQuantity replaces quantity", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		productID := testutil.InsertProduct(t, ctx, pool, "Milk", 199, 10)
		testutil.InsertCartLine(t, ctx, pool, "u-1", productID, 2)

		if err := repo.SetCartQuantity(ctx, "u-1", productID, 7); err != nil {
			t.Fatalf("set quantity: %v", err)
		}

		items, err := repo.CartSnapshot(ctx, "u-1")
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		if len(items) != 1 || items[0].Quantity != 7 {
			t.Fatalf("expected quantity 7, got %+v", items)
		}
	})

	t.Run("RemoveCartLine and ClearCart scope to the user", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		milkID := testutil.InsertProduct(t, ctx, pool, "Milk", 199, 10)
		breadID := testutil.InsertProduct(t, ctx, pool, "Bread", 350, 10)
		testutil.InsertCartLine(t, ctx, pool, "u-1", milkID, 1)
		testutil.InsertCartLine(t, ctx, pool, "u-1", breadID, 1)
		testutil.InsertCartLine(t, ctx, pool, "u-2", milkID, 4)

		if err := repo.RemoveCartLine(ctx, "u-1", milkID); err != nil {
			t.Fatalf("remove: %v", err)
		}
		items, err := repo.CartSnapshot(ctx, "u-1")
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		if len(items) != 1 || items[0].ProductID != breadID {
			t.Fatalf("expected only bread left, got %+v", items)
		}

		if err := repo.ClearCart(ctx, "u-1"); err != nil {
			t.Fatalf("clear: %v", err)
		}
		items, err = repo.CartSnapshot(ctx, "u-1")
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("expected empty cart, got %+v", items)
		}

		other, err := repo.CartSnapshot(ctx, "u-2")
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		if len(other) != 1 || other[0].Quantity != 4 {
			t.Fatalf("expected other user's cart untouched, got %+v", other)
		}
	})

	t.Run("GetProduct reads live stock", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		productID := testutil.InsertProduct(t, ctx, pool, "Milk", 199, 10)

		product, err := repo.GetProduct(ctx, productID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if product.Quantity != 10 {
			t.Fatalf("expected stock 10, got %d", product.Quantity)
		}

		if _, err := repo.GetProduct(ctx, "not-a-uuid"); err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})
}
