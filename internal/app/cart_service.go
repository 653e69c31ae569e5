package app

import (
	"context"

	"github.com/nvalera/supermart/internal/domain"
)

type CartRepository interface {
	CartSnapshot(ctx context.Context, userID string) ([]domain.CartItem, error)
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
	UpsertCartLine(ctx context.Context, line domain.CartLine) error
	SetCartQuantity(ctx context.Context, userID, productID string, quantity int) error
	RemoveCartLine(ctx context.Context, userID, productID string) error
	ClearCart(ctx context.Context, userID string) error
}

// CartService manages a user's cart lines. Quantities are clamped against
// live stock on every write so a cart never requests more than the shelf
// shows, but nothing is reserved until checkout.
type CartService struct {
	repo CartRepository
}

func NewCartService(repo CartRepository) *CartService {
	return &CartService{repo: repo}
}

func (s *CartService) ViewCart(ctx context.Context, userID string) ([]domain.CartItem, error) {
	if userID == "" {
		return nil, domain.ErrUnidentifiedUser
	}
	return s.repo.CartSnapshot(ctx, userID)
}

type AddToCartResult struct {
	// Added is the quantity actually placed in the cart after clamping.
	Added int
	// Adjusted is set when the request exceeded available stock and was
	// capped at the maximum available.
	Adjusted bool
	// Available is the stock not yet claimed by this user's cart.
	Available int
}

// AddToCart adds quantity of a product, capped at the stock not already in
// the user's cart. Requesting more than is available is not an error; the
// result reports the adjustment so the caller can word a warning.
func (s *CartService) AddToCart(ctx context.Context, userID, productID string, quantity int) (AddToCartResult, error) {
	if userID == "" {
		return AddToCartResult{}, domain.ErrUnidentifiedUser
	}
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return AddToCartResult{}, err
	}

	items, err := s.repo.CartSnapshot(ctx, userID)
	if err != nil {
		return AddToCartResult{}, err
	}
	alreadyInCart := 0
	for _, item := range items {
		if item.ProductID == productID {
			alreadyInCart = item.Quantity
			break
		}
	}

	available := product.Quantity - alreadyInCart
	if available < 0 {
		available = 0
	}
	if available == 0 {
		return AddToCartResult{Available: 0}, domain.ErrInsufficientStock
	}

	toAdd := quantity
	if toAdd > available {
		toAdd = available
	}

	if err := s.repo.UpsertCartLine(ctx, domain.CartLine{
		UserID:    userID,
		ProductID: productID,
		Quantity:  toAdd,
	}); err != nil {
		return AddToCartResult{}, err
	}

	return AddToCartResult{
		Added:     toAdd,
		Adjusted:  quantity > available,
		Available: available,
	}, nil
}

type UpdateCartResult struct {
	Quantity int
	Adjusted bool
}

// UpdateCartItem sets the quantity of an existing line, floored at 1 and
// capped at current stock.
func (s *CartService) UpdateCartItem(ctx context.Context, userID, productID string, quantity int) (UpdateCartResult, error) {
	if userID == "" {
		return UpdateCartResult{}, domain.ErrUnidentifiedUser
	}
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return UpdateCartResult{}, err
	}

	newQuantity := quantity
	if newQuantity > product.Quantity {
		newQuantity = product.Quantity
	}
	if newQuantity == 0 {
		// Stock ran out entirely; dropping the line beats keeping a zero.
		if err := s.repo.RemoveCartLine(ctx, userID, productID); err != nil {
			return UpdateCartResult{}, err
		}
		return UpdateCartResult{Quantity: 0, Adjusted: true}, nil
	}

	if err := s.repo.SetCartQuantity(ctx, userID, productID, newQuantity); err != nil {
		return UpdateCartResult{}, err
	}
	return UpdateCartResult{
		Quantity: newQuantity,
		Adjusted: quantity > product.Quantity,
	}, nil
}

func (s *CartService) RemoveCartItem(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return domain.ErrUnidentifiedUser
	}
	return s.repo.RemoveCartLine(ctx, userID, productID)
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrUnidentifiedUser
	}
	return s.repo.ClearCart(ctx, userID)
}
