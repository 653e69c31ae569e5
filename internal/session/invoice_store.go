// Package session holds the short-lived per-user state that sits beside the
// durable storefront data: the latest invoice and pending flash messages.
// Both live in Redis under TTLs; losing them loses nothing of record.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nvalera/supermart/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ErrNoInvoice is returned when a user has no stored invoice (never checked
// out, or the slot expired).
var ErrNoInvoice = errors.New("no invoice available")

const defaultInvoiceTTL = 30 * time.Minute

// InvoiceStore is a single-slot holder for each user's most recent invoice.
// Every checkout overwrites the slot; it is a view cache, not a ledger.
type InvoiceStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewInvoiceStore(client *redis.Client, ttl time.Duration) *InvoiceStore {
	if ttl <= 0 {
		ttl = defaultInvoiceTTL
	}
	return &InvoiceStore{client: client, ttl: ttl}
}

func (s *InvoiceStore) Put(ctx context.Context, userID string, inv domain.Invoice) error {
	payload, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("marshal invoice: %w", err)
	}
	if err := s.client.Set(ctx, invoiceKey(userID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store invoice: %w", err)
	}
	return nil
}

func (s *InvoiceStore) Get(ctx context.Context, userID string) (domain.Invoice, error) {
	payload, err := s.client.Get(ctx, invoiceKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Invoice{}, ErrNoInvoice
		}
		return domain.Invoice{}, fmt.Errorf("load invoice: %w", err)
	}

	var inv domain.Invoice
	if err := json.Unmarshal(payload, &inv); err != nil {
		return domain.Invoice{}, fmt.Errorf("unmarshal invoice: %w", err)
	}
	return inv, nil
}
