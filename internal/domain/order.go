package domain

import "time"

// Order is a committed purchase. Orders are append-only: once written they
// are never updated or deleted, and their items are denormalized copies so
// history survives later product edits.
type Order struct {
	ID         string
	UserID     string
	TotalCents int64
	CreatedAt  time.Time
	Items      []OrderItem
}

// OrderItem is a snapshot copy of one purchased line.
type OrderItem struct {
	ProductID  string
	Name       string
	PriceCents int64
	Quantity   int
	ImageRef   string
}
