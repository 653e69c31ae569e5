package domain

// CartLine is a requested quantity for one product in a user's cart.
// Quantities here are requests, not reservations; nothing is held until
// checkout runs.
type CartLine struct {
	UserID    string
	ProductID string
	Quantity  int
}

// CartItem is one line of a cart snapshot: the cart line joined with the
// product's name, price and stock as they were at snapshot time. The price
// recorded here is the one a resulting order is billed at.
type CartItem struct {
	ProductID  string
	Name       string
	PriceCents int64
	Quantity   int
	Stock      int
	ImageRef   string
}

// SubtotalCents returns the snapshot price times the requested quantity.
func (i CartItem) SubtotalCents() int64 {
	return i.PriceCents * int64(i.Quantity)
}
