package session

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/nvalera/supermart/internal/domain"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 9})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping Redis integration tests: %v", err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush test db: %v", err)
	}

	t.Cleanup(func() {
		client.Close()
	})
	return client
}

func TestInvoiceStore(t *testing.T) {
	client := newTestClient(t)
	store := NewInvoiceStore(client, time.Minute)
	ctx := context.Background()

	t.Run("round-trips the latest invoice", func(t *testing.T) {
		inv := domain.Invoice{
			OrderID:     "order-1",
			TotalCents:  548,
			PurchasedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
			Items: []domain.InvoiceItem{
				{ProductID: "p-1", Name: "Milk", PriceCents: 199, Quantity: 2, SubtotalCents: 398},
			},
		}
		if err := store.Put(ctx, "u-1", inv); err != nil {
			t.Fatalf("put: %v", err)
		}

		got, err := store.Get(ctx, "u-1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.OrderID != inv.OrderID || got.TotalCents != inv.TotalCents || len(got.Items) != 1 {
			t.Fatalf("unexpected invoice: %+v", got)
		}
	})

	t.Run("a newer checkout overwrites the slot", func(t *testing.T) {
		if err := store.Put(ctx, "u-2", domain.Invoice{OrderID: "order-old"}); err != nil {
			t.Fatalf("put old: %v", err)
		}
		if err := store.Put(ctx, "u-2", domain.Invoice{OrderID: "order-new"}); err != nil {
			t.Fatalf("put new: %v", err)
		}

		got, err := store.Get(ctx, "u-2")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.OrderID != "order-new" {
			t.Fatalf("expected order-new, got %s", got.OrderID)
		}
	})

	t.Run("missing invoice", func(t *testing.T) {
		if _, err := store.Get(ctx, "nobody"); !errors.Is(err, ErrNoInvoice) {
			t.Fatalf("expected ErrNoInvoice, got %v", err)
		}
	})
}

func TestFlashStore(t *testing.T) {
	client := newTestClient(t)
	store := NewFlashStore(client, time.Minute)
	ctx := context.Background()

	t.Run("messages queue and drain once", func(t *testing.T) {
		if err := store.Flash(ctx, "u-1", "error", "Not enough stock for Milk."); err != nil {
			t.Fatalf("flash: %v", err)
		}
		if err := store.Flash(ctx, "u-1", "success", "Purchase successful. Order #order-1"); err != nil {
			t.Fatalf("flash: %v", err)
		}

		messages, err := store.Drain(ctx, "u-1")
		if err != nil {
			t.Fatalf("drain: %v", err)
		}
		if len(messages) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(messages))
		}
		if messages[0].Level != "error" || messages[1].Level != "success" {
			t.Fatalf("expected queue order preserved, got %+v", messages)
		}

		messages, err = store.Drain(ctx, "u-1")
		if err != nil {
			t.Fatalf("second drain: %v", err)
		}
		if len(messages) != 0 {
			t.Fatalf("expected drained queue, got %+v", messages)
		}
	})

	t.Run("queues are per user", func(t *testing.T) {
		if err := store.Flash(ctx, "u-a", "success", "one"); err != nil {
			t.Fatalf("flash: %v", err)
		}

		messages, err := store.Drain(ctx, "u-b")
		if err != nil {
			t.Fatalf("drain: %v", err)
		}
		if len(messages) != 0 {
			t.Fatalf("expected no messages for other user, got %+v", messages)
		}
	})
}
