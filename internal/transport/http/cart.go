package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nvalera/supermart/internal/app"
	"github.com/nvalera/supermart/internal/domain"
)

// CartService is the minimal interface needed for cart endpoints.
type CartService interface {
	ViewCart(ctx context.Context, userID string) ([]domain.CartItem, error)
	AddToCart(ctx context.Context, userID, productID string, quantity int) (app.AddToCartResult, error)
	UpdateCartItem(ctx context.Context, userID, productID string, quantity int) (app.UpdateCartResult, error)
	RemoveCartItem(ctx context.Context, userID, productID string) error
	ClearCart(ctx context.Context, userID string) error
}

// HandleViewCart returns the user's cart joined with live product data.
func HandleViewCart(svc CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ViewCart(r.Context(), userIDFromContext(r.Context()))
		if err != nil {
			writeCartError(w, err)
			return
		}

		resp := cartResponse{Items: make([]cartItemResponse, 0, len(items))}
		for _, item := range items {
			resp.Items = append(resp.Items, cartItemResponse{
				ProductID:     item.ProductID,
				Name:          item.Name,
				PriceCents:    item.PriceCents,
				Quantity:      item.Quantity,
				Stock:         item.Stock,
				SubtotalCents: item.SubtotalCents(),
				ImageRef:      item.ImageRef,
			})
			resp.SubtotalCents += item.SubtotalCents()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleAddToCart adds a product to the cart, clamped at available stock.
func HandleAddToCart(svc CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addToCartRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.ProductID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		result, err := svc.AddToCart(r.Context(), userIDFromContext(r.Context()), req.ProductID, req.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				writeError(w, http.StatusConflict, codeInsufficientStock, "no stock left for this item")
				return
			}
			writeCartError(w, err)
			return
		}

		resp := mutationResponse{Quantity: result.Added}
		if result.Adjusted {
			resp.Warning = fmt.Sprintf("Only %d left in stock. Added the maximum available.", result.Available)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleUpdateCartItem sets the quantity of an existing line.
func HandleUpdateCartItem(svc CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateCartRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		productID := chi.URLParam(r, "productID")
		result, err := svc.UpdateCartItem(r.Context(), userIDFromContext(r.Context()), productID, req.Quantity)
		if err != nil {
			writeCartError(w, err)
			return
		}

		resp := mutationResponse{Quantity: result.Quantity}
		if result.Adjusted {
			resp.Warning = fmt.Sprintf("Only %d left in stock. Adjusted quantity.", result.Quantity)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleRemoveCartItem deletes one line from the cart.
func HandleRemoveCartItem(svc CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.RemoveCartItem(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "productID"))
		if err != nil {
			writeCartError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleClearCart removes every line from the cart.
func HandleClearCart(svc CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ClearCart(r.Context(), userIDFromContext(r.Context())); err != nil {
			writeCartError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnidentifiedUser):
		writeError(w, http.StatusUnauthorized, codeUnidentifiedUser, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, codeProductNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	Items         []cartItemResponse `json:"items"`
	SubtotalCents int64              `json:"subtotal_cents"`
}

type cartItemResponse struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	PriceCents    int64  `json:"price_cents"`
	Quantity      int    `json:"quantity"`
	Stock         int    `json:"stock"`
	SubtotalCents int64  `json:"subtotal_cents"`
	ImageRef      string `json:"image_ref,omitempty"`
}

type mutationResponse struct {
	Quantity int    `json:"quantity"`
	Warning  string `json:"warning,omitempty"`
}
