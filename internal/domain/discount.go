package domain

import "time"

// DiscountCode is a promo code applied against a displayed subtotal.
// UsesRemaining nil means unlimited; PercentOff nil means the code carries
// no percentage discount.
type DiscountCode struct {
	ID            string
	Code          string
	Description   string
	PercentOff    *int
	UsesRemaining *int
	ExpiresAt     *time.Time
	Active        bool
	CreatedAt     time.Time
}

// Redeemable reports whether the code can be applied at the given instant:
// active, not expired, and with uses left (or unlimited).
func (d DiscountCode) Redeemable(now time.Time) bool {
	if !d.Active {
		return false
	}
	if d.ExpiresAt != nil && !d.ExpiresAt.After(now) {
		return false
	}
	if d.UsesRemaining != nil && *d.UsesRemaining <= 0 {
		return false
	}
	return true
}

// DiscountCents computes the discount for a subtotal, clamped so the final
// total never goes negative.
func (d DiscountCode) DiscountCents(subtotalCents int64) int64 {
	if d.PercentOff == nil || *d.PercentOff <= 0 {
		return 0
	}
	discount := subtotalCents * int64(*d.PercentOff) / 100
	if discount > subtotalCents {
		return subtotalCents
	}
	return discount
}
