package domain

import "time"

// Product is a catalog item. Quantity is the contended stock field; it is
// only ever reduced through the conditional decrement in the checkout path.
type Product struct {
	ID         string
	Name       string
	PriceCents int64
	Quantity   int
	ImageRef   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
