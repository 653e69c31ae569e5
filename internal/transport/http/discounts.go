package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nvalera/supermart/internal/app"
)

// DiscountApplier is the minimal interface needed to apply a promo code.
type DiscountApplier interface {
	ApplyDiscount(ctx context.Context, code string, subtotalCents int64) app.ApplyDiscountResult
}

// HandleApplyDiscount evaluates a promo code against a displayed subtotal.
// A bad code is a normal response, not an error status; the cart page keeps
// working either way.
func HandleApplyDiscount(svc DiscountApplier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req applyDiscountRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		result := svc.ApplyDiscount(r.Context(), req.Code, req.SubtotalCents)
		writeJSON(w, http.StatusOK, applyDiscountResponse{
			Accepted:      result.Accepted,
			Message:       result.Message,
			Code:          result.Code,
			DiscountCents: result.DiscountCents,
			TotalCents:    result.TotalCents,
		})
	}
}

type applyDiscountRequest struct {
	Code          string `json:"code"`
	SubtotalCents int64  `json:"subtotal_cents"`
}

type applyDiscountResponse struct {
	Accepted      bool   `json:"accepted"`
	Message       string `json:"message"`
	Code          string `json:"code,omitempty"`
	DiscountCents int64  `json:"discount_cents"`
	TotalCents    int64  `json:"total_cents"`
}
