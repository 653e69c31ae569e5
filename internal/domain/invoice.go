package domain

import "time"

// Invoice is the ephemeral post-checkout receipt handed back to the caller.
// It is never persisted; the session layer keeps the latest one per user for
// a short time so the invoice view can read it back.
type Invoice struct {
	OrderID     string        `json:"order_id"`
	Items       []InvoiceItem `json:"items"`
	TotalCents  int64         `json:"total_cents"`
	PurchasedAt time.Time     `json:"purchased_at"`
}

type InvoiceItem struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	PriceCents    int64  `json:"price_cents"`
	Quantity      int    `json:"quantity"`
	SubtotalCents int64  `json:"subtotal_cents"`
	ImageRef      string `json:"image_ref,omitempty"`
}
