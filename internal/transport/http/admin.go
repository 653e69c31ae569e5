package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nvalera/supermart/internal/app"
	"github.com/nvalera/supermart/internal/domain"
)

// AdminProductService is the minimal interface for product management.
type AdminProductService interface {
	CreateProduct(ctx context.Context, in app.ProductInput) (domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, in app.ProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// AdminDiscountService is the minimal interface for promo-code management.
type AdminDiscountService interface {
	ListDiscounts(ctx context.Context) ([]domain.DiscountCode, error)
	GetDiscount(ctx context.Context, codeID string) (domain.DiscountCode, error)
	CreateDiscount(ctx context.Context, in app.DiscountInput) (domain.DiscountCode, error)
	UpdateDiscount(ctx context.Context, codeID string, in app.DiscountInput) (domain.DiscountCode, error)
	DeleteDiscount(ctx context.Context, codeID string) error
}

// HandleAdminCreateProduct creates a catalog product.
func HandleAdminCreateProduct(svc AdminProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeProductInput(w, r)
		if !ok {
			return
		}
		product, err := svc.CreateProduct(r.Context(), in)
		if err != nil {
			writeAdminProductError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toProductResponse(product))
	}
}

// HandleAdminUpdateProduct updates an existing product.
func HandleAdminUpdateProduct(svc AdminProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeProductInput(w, r)
		if !ok {
			return
		}
		product, err := svc.UpdateProduct(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			writeAdminProductError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProductResponse(product))
	}
}

// HandleAdminDeleteProduct removes a product from the catalog.
func HandleAdminDeleteProduct(svc AdminProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeAdminProductError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleAdminListDiscounts lists every promo code, newest first.
func HandleAdminListDiscounts(svc AdminDiscountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		codes, err := svc.ListDiscounts(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		resp := make([]discountResponse, 0, len(codes))
		for _, code := range codes {
			resp = append(resp, toDiscountResponse(code))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleAdminGetDiscount returns one promo code by id.
func HandleAdminGetDiscount(svc AdminDiscountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, err := svc.GetDiscount(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeAdminDiscountError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDiscountResponse(code))
	}
}

// HandleAdminCreateDiscount creates a promo code.
func HandleAdminCreateDiscount(svc AdminDiscountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeDiscountInput(w, r)
		if !ok {
			return
		}
		code, err := svc.CreateDiscount(r.Context(), in)
		if err != nil {
			writeAdminDiscountError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toDiscountResponse(code))
	}
}

// HandleAdminUpdateDiscount updates an existing promo code.
func HandleAdminUpdateDiscount(svc AdminDiscountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeDiscountInput(w, r)
		if !ok {
			return
		}
		code, err := svc.UpdateDiscount(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			writeAdminDiscountError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDiscountResponse(code))
	}
}

// HandleAdminDeleteDiscount removes a promo code.
func HandleAdminDeleteDiscount(svc AdminDiscountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteDiscount(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeAdminDiscountError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeProductInput(w http.ResponseWriter, r *http.Request) (app.ProductInput, bool) {
	var req productRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return app.ProductInput{}, false
	}
	return app.ProductInput{
		Name:       req.Name,
		PriceCents: req.PriceCents,
		Quantity:   req.Quantity,
		ImageRef:   req.ImageRef,
	}, true
}

func decodeDiscountInput(w http.ResponseWriter, r *http.Request) (app.DiscountInput, bool) {
	var req discountRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return app.DiscountInput{}, false
	}

	in := app.DiscountInput{
		Code:          req.Code,
		Description:   req.Description,
		PercentOff:    req.PercentOff,
		UsesRemaining: req.UsesRemaining,
		Active:        req.Active,
	}
	if req.ExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid expires_at format")
			return app.DiscountInput{}, false
		}
		in.ExpiresAt = &parsed
	}
	return in, true
}

func writeAdminProductError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNameRequired):
		writeError(w, http.StatusBadRequest, codeProductNameRequired, err.Error())
	case errors.Is(err, domain.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, codeInvalidPrice, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, codeProductNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeAdminDiscountError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrDiscountCodeRequired):
		writeError(w, http.StatusBadRequest, codeDiscountRequired, err.Error())
	case errors.Is(err, domain.ErrInvalidPercentOff):
		writeError(w, http.StatusBadRequest, codeInvalidPercentOff, err.Error())
	case errors.Is(err, domain.ErrInvalidUses):
		writeError(w, http.StatusBadRequest, codeInvalidUses, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrDiscountNotFound):
		writeError(w, http.StatusNotFound, codeDiscountNotFound, err.Error())
	case errors.Is(err, domain.ErrDiscountCodeTaken):
		writeError(w, http.StatusConflict, codeDiscountTaken, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

type productRequest struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
	ImageRef   string `json:"image_ref"`
}

type discountRequest struct {
	Code          string `json:"code"`
	Description   string `json:"description"`
	PercentOff    *int   `json:"percent_off"`
	UsesRemaining *int   `json:"uses_remaining"`
	ExpiresAt     string `json:"expires_at"`
	Active        bool   `json:"active"`
}

type discountResponse struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	Description   string     `json:"description,omitempty"`
	PercentOff    *int       `json:"percent_off,omitempty"`
	UsesRemaining *int       `json:"uses_remaining,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	Active        bool       `json:"active"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toDiscountResponse(d domain.DiscountCode) discountResponse {
	return discountResponse{
		ID:            d.ID,
		Code:          d.Code,
		Description:   d.Description,
		PercentOff:    d.PercentOff,
		UsesRemaining: d.UsesRemaining,
		ExpiresAt:     d.ExpiresAt,
		Active:        d.Active,
		CreatedAt:     d.CreatedAt,
	}
}
