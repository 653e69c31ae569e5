package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/nvalera/supermart/internal/domain"
)

// OrderService is the minimal interface needed for order history.
type OrderService interface {
	ListOrders(ctx context.Context, userID string, admin bool) ([]domain.Order, error)
	SearchOrders(ctx context.Context, userID string, admin bool, term string) ([]domain.Order, error)
}

// HandleListOrders lists purchase history, optionally filtered by a search
// term. Admins see every order; everyone else only their own.
func HandleListOrders(svc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := userIDFromContext(ctx)
		admin := isAdmin(ctx)

		var (
			orders []domain.Order
			err    error
		)
		if term := r.URL.Query().Get("q"); term != "" {
			orders, err = svc.SearchOrders(ctx, userID, admin, term)
		} else {
			orders, err = svc.ListOrders(ctx, userID, admin)
		}
		if err != nil {
			if errors.Is(err, domain.ErrUnidentifiedUser) {
				writeError(w, http.StatusUnauthorized, codeUnidentifiedUser, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := make([]orderResponse, 0, len(orders))
		for _, order := range orders {
			resp = append(resp, toOrderResponse(order))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type orderResponse struct {
	ID         string              `json:"id"`
	UserID     string              `json:"user_id"`
	TotalCents int64               `json:"total_cents"`
	CreatedAt  time.Time           `json:"created_at"`
	Items      []orderItemResponse `json:"items"`
}

type orderItemResponse struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
	ImageRef   string `json:"image_ref,omitempty"`
}

func toOrderResponse(order domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, orderItemResponse{
			ProductID:  it.ProductID,
			Name:       it.Name,
			PriceCents: it.PriceCents,
			Quantity:   it.Quantity,
			ImageRef:   it.ImageRef,
		})
	}
	return orderResponse{
		ID:         order.ID,
		UserID:     order.UserID,
		TotalCents: order.TotalCents,
		CreatedAt:  order.CreatedAt,
		Items:      items,
	}
}
