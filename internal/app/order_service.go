package app

import (
	"context"
	"strings"

	"github.com/nvalera/supermart/internal/domain"
)

type OrderRepository interface {
	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAllOrders(ctx context.Context) ([]domain.Order, error)
	SearchOrders(ctx context.Context, userID, term string) ([]domain.Order, error)
}

// OrderService reads purchase history. Admins see every order, everyone
// else only their own; passing an empty userID to SearchOrders means no
// user filter.
type OrderService struct {
	repo OrderRepository
}

func NewOrderService(repo OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

func (s *OrderService) ListOrders(ctx context.Context, userID string, admin bool) ([]domain.Order, error) {
	if userID == "" && !admin {
		return nil, domain.ErrUnidentifiedUser
	}
	if admin {
		return s.repo.ListAllOrders(ctx)
	}
	return s.repo.ListOrdersByUser(ctx, userID)
}

// SearchOrders matches the term against order ids and item product names.
func (s *OrderService) SearchOrders(ctx context.Context, userID string, admin bool, term string) ([]domain.Order, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.ListOrders(ctx, userID, admin)
	}
	if userID == "" && !admin {
		return nil, domain.ErrUnidentifiedUser
	}
	filterUser := userID
	if admin {
		filterUser = ""
	}
	return s.repo.SearchOrders(ctx, filterUser, term)
}
