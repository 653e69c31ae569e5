package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nvalera/supermart/internal/clock"
	"github.com/nvalera/supermart/internal/domain"
)

// CheckoutRepository is the storage contract for the checkout transaction.
// DecrementStock must be a single conditional update: reduce stock by qty
// only when enough is available, reporting whether a row changed. That
// compare-and-decrement is what keeps concurrent checkouts from overselling.
type CheckoutRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CartSnapshot(ctx context.Context, userID string) ([]domain.CartItem, error)
	DecrementStock(ctx context.Context, productID string, qty int) (bool, error)
	CreateOrder(ctx context.Context, order domain.Order) error
	ClearCart(ctx context.Context, userID string) error
}

// Notifier delivers human-readable outcome messages to a user's session.
type Notifier interface {
	Flash(ctx context.Context, userID, level, message string) error
}

// InvoiceHolder keeps the latest invoice per user so the invoice view can
// read it back after the redirect.
type InvoiceHolder interface {
	Put(ctx context.Context, userID string, inv domain.Invoice) error
}

// OrderPublisher announces committed orders to downstream consumers.
type OrderPublisher interface {
	OrderCreated(ctx context.Context, order domain.Order) error
}

type CheckoutService struct {
	repo      CheckoutRepository
	clock     clock.Clock
	logger    *log.Logger
	notifier  Notifier
	invoices  InvoiceHolder
	publisher OrderPublisher
}

func NewCheckoutService(repo CheckoutRepository, clk clock.Clock, opts ...CheckoutServiceOption) *CheckoutService {
	svc := &CheckoutService{
		repo:   repo,
		clock:  clk,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type CheckoutServiceOption func(*CheckoutService)

// WithLogger overrides the logger used for best-effort failures.
func WithLogger(logger *log.Logger) CheckoutServiceOption {
	return func(s *CheckoutService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithNotifier routes outcome messages through the given channel.
func WithNotifier(n Notifier) CheckoutServiceOption {
	return func(s *CheckoutService) {
		s.notifier = n
	}
}

// WithInvoiceHolder stores each invoice for the user's next invoice read.
func WithInvoiceHolder(h InvoiceHolder) CheckoutServiceOption {
	return func(s *CheckoutService) {
		s.invoices = h
	}
}

// WithOrderPublisher emits an event for every committed order.
func WithOrderPublisher(p OrderPublisher) CheckoutServiceOption {
	return func(s *CheckoutService) {
		s.publisher = p
	}
}

// Checkout converts the user's cart into a committed order.
//
// The snapshot is taken once up front; prices recorded there are the prices
// billed, even if a product is repriced mid-checkout. All stock decrements
// and the order write happen inside one transaction: either every line
// reserves and the order commits, or nothing changes and the cart is left
// intact for a retry. Lines are processed in cart insertion order and the
// first shortfall aborts the attempt, so only that product is reported.
func (s *CheckoutService) Checkout(ctx context.Context, userID string) (domain.Invoice, error) {
	if userID == "" {
		return domain.Invoice{}, domain.ErrUnidentifiedUser
	}

	snapshot, err := s.repo.CartSnapshot(ctx, userID)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("load cart: %w", err)
	}
	if len(snapshot) == 0 {
		return domain.Invoice{}, domain.ErrEmptyCart
	}

	now := s.clock.Now()
	var order domain.Order

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		for _, item := range snapshot {
			reserved, err := s.repo.DecrementStock(txCtx, item.ProductID, item.Quantity)
			if err != nil {
				return fmt.Errorf("reserve stock for %s: %w", item.ProductID, err)
			}
			if !reserved {
				return &domain.InsufficientStockError{
					ProductID:   item.ProductID,
					ProductName: item.Name,
				}
			}
		}

		items := make([]domain.OrderItem, 0, len(snapshot))
		var total int64
		for _, item := range snapshot {
			total += item.SubtotalCents()
			items = append(items, domain.OrderItem{
				ProductID:  item.ProductID,
				Name:       item.Name,
				PriceCents: item.PriceCents,
				Quantity:   item.Quantity,
				ImageRef:   item.ImageRef,
			})
		}

		order = domain.Order{
			ID:         newID(),
			UserID:     userID,
			TotalCents: total,
			CreatedAt:  now,
			Items:      items,
		}
		return s.repo.CreateOrder(txCtx, order)
	})
	if err != nil {
		s.flash(ctx, userID, "error", checkoutFailureMessage(err))
		return domain.Invoice{}, err
	}

	// The order is committed. Everything below is best-effort and must not
	// undo or fail the purchase.
	if err := s.repo.ClearCart(ctx, userID); err != nil {
		s.logger.Printf("WARN: clear cart for user %s: %v", userID, err)
	}

	invoice := buildInvoice(order)
	if s.invoices != nil {
		if err := s.invoices.Put(ctx, userID, invoice); err != nil {
			s.logger.Printf("WARN: store invoice for order %s: %v", order.ID, err)
		}
	}
	s.flash(ctx, userID, "success", fmt.Sprintf("Purchase successful. Order #%s", order.ID))
	if s.publisher != nil {
		if err := s.publisher.OrderCreated(ctx, order); err != nil {
			s.logger.Printf("WARN: publish order %s: %v", order.ID, err)
		}
	}

	return invoice, nil
}

func (s *CheckoutService) flash(ctx context.Context, userID, level, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Flash(ctx, userID, level, message); err != nil {
		s.logger.Printf("WARN: flash message for user %s: %v", userID, err)
	}
}

func checkoutFailureMessage(err error) string {
	var short *domain.InsufficientStockError
	if errors.As(err, &short) {
		return fmt.Sprintf("Not enough stock for %s.", short.ProductName)
	}
	return "Could not complete purchase. Please try again."
}

func buildInvoice(order domain.Order) domain.Invoice {
	items := make([]domain.InvoiceItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, domain.InvoiceItem{
			ProductID:     it.ProductID,
			Name:          it.Name,
			PriceCents:    it.PriceCents,
			Quantity:      it.Quantity,
			SubtotalCents: it.PriceCents * int64(it.Quantity),
			ImageRef:      it.ImageRef,
		})
	}
	return domain.Invoice{
		OrderID:     order.ID,
		Items:       items,
		TotalCents:  order.TotalCents,
		PurchasedAt: order.CreatedAt,
	}
}
