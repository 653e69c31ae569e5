package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nvalera/supermart/internal/domain"
	"github.com/nvalera/supermart/internal/testutil"
)

func TestAdminRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewAdminRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("product create, update, delete", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		now := time.Now().UTC()

		product := domain.Product{
			ID:         uuid.NewString(),
			Name:       "Milk",
			PriceCents: 199,
			Quantity:   10,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := repo.CreateProduct(ctx, product); err != nil {
			t.Fatalf("create: %v", err)
		}

		product.Name = "Whole Milk"
		product.PriceCents = 249
		if err := repo.UpdateProduct(ctx, product); err != nil {
			t.Fatalf("update: %v", err)
		}

		var name string
		if err := pool.QueryRow(ctx, `SELECT name FROM products WHERE id = $1`, product.ID).Scan(&name); err != nil {
			t.Fatalf("read product: %v", err)
		}
		if name != "Whole Milk" {
			t.Fatalf("expected updated name, got %q", name)
		}

		if err := repo.DeleteProduct(ctx, product.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if got := testutil.CountRows(t, ctx, pool, "products"); got != 0 {
			t.Fatalf("expected product gone, got %d rows", got)
		}
	})

	t.Run("missing product maps to ErrProductNotFound", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		missingID := "00000000-0000-0000-0000-000000000001"

		err := repo.UpdateProduct(ctx, domain.Product{ID: missingID, Name: "Milk"})
		if err != domain.ErrProductNotFound {
			t.Fatalf("expected ErrProductNotFound on update, got %v", err)
		}
		if err := repo.DeleteProduct(ctx, missingID); err != domain.ErrProductNotFound {
			t.Fatalf("expected ErrProductNotFound on delete, got %v", err)
		}
	})

	t.Run("discount lifecycle and unique code", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		now := time.Now().UTC()
		percentOff := 20

		code := domain.DiscountCode{
			ID:         uuid.NewString(),
			Code:       "SAVE20",
			PercentOff: &percentOff,
			Active:     true,
			CreatedAt:  now,
		}
		if err := repo.CreateDiscount(ctx, code); err != nil {
			t.Fatalf("create: %v", err)
		}

		dup := domain.DiscountCode{ID: uuid.NewString(), Code: "SAVE20", CreatedAt: now}
		if err := repo.CreateDiscount(ctx, dup); err != domain.ErrDiscountCodeTaken {
			t.Fatalf("expected ErrDiscountCodeTaken, got %v", err)
		}

		got, err := repo.GetDiscount(ctx, code.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Code != "SAVE20" || got.PercentOff == nil || *got.PercentOff != 20 {
			t.Fatalf("unexpected discount: %+v", got)
		}

		code.Code = "SAVE25"
		code.Active = false
		if err := repo.UpdateDiscount(ctx, code); err != nil {
			t.Fatalf("update: %v", err)
		}
		got, err = repo.GetDiscount(ctx, code.ID)
		if err != nil {
			t.Fatalf("get after update: %v", err)
		}
		if got.Code != "SAVE25" || got.Active {
			t.Fatalf("expected updated discount, got %+v", got)
		}

		codes, err := repo.ListDiscounts(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(codes) != 1 {
			t.Fatalf("expected 1 code, got %d", len(codes))
		}

		if err := repo.DeleteDiscount(ctx, code.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := repo.DeleteDiscount(ctx, code.ID); err != domain.ErrDiscountNotFound {
			t.Fatalf("expected ErrDiscountNotFound, got %v", err)
		}
	})
}
