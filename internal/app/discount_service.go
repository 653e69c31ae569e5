package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/nvalera/supermart/internal/clock"
	"github.com/nvalera/supermart/internal/domain"
)

type DiscountRepository interface {
	FindRedeemableByCode(ctx context.Context, code string) (*domain.DiscountCode, error)
	DecrementUses(ctx context.Context, codeID string) error
}

// DiscountService evaluates promo codes against a displayed subtotal.
//
// Applying a code is deliberately outside the checkout transaction: it only
// adjusts the total the user sees, and the recorded order total stays the
// undiscounted snapshot sum. Uses are consumed at apply time through a
// guarded conditional update, so a remaining-uses counter can never go
// negative even under concurrent applies.
type DiscountService struct {
	repo   DiscountRepository
	clock  clock.Clock
	logger *log.Logger
}

func NewDiscountService(repo DiscountRepository, clk clock.Clock, logger *log.Logger) *DiscountService {
	if logger == nil {
		logger = log.Default()
	}
	return &DiscountService{repo: repo, clock: clk, logger: logger}
}

type ApplyDiscountResult struct {
	Accepted      bool
	Message       string
	Code          string
	DiscountCents int64
	TotalCents    int64
}

// ApplyDiscount validates a code and computes the discounted total. Any
// lookup failure is reported as an invalid code rather than an error; a
// broken evaluator must never take the cart page down with it.
func (s *DiscountService) ApplyDiscount(ctx context.Context, code string, subtotalCents int64) ApplyDiscountResult {
	code = strings.TrimSpace(code)
	if code == "" {
		return ApplyDiscountResult{Message: "Enter a promo code.", TotalCents: subtotalCents}
	}
	if subtotalCents < 0 {
		subtotalCents = 0
	}

	found, err := s.repo.FindRedeemableByCode(ctx, code)
	if err != nil {
		s.logger.Printf("WARN: discount lookup for %q: %v", code, err)
		return ApplyDiscountResult{Message: "Invalid or expired code.", TotalCents: subtotalCents}
	}
	if found == nil || !found.Redeemable(s.clock.Now()) {
		return ApplyDiscountResult{Message: "Invalid or expired code.", TotalCents: subtotalCents}
	}

	discount := found.DiscountCents(subtotalCents)

	// Best-effort: the use is consumed now, whether or not the shopper
	// finishes checking out.
	if err := s.repo.DecrementUses(ctx, found.ID); err != nil {
		s.logger.Printf("WARN: decrement uses for code %s: %v", found.Code, err)
	}

	return ApplyDiscountResult{
		Accepted:      true,
		Message:       fmt.Sprintf("Applied %s.", found.Code),
		Code:          found.Code,
		DiscountCents: discount,
		TotalCents:    subtotalCents - discount,
	}
}
