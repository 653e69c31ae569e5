package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/nvalera/supermart/internal/domain"
	"github.com/nvalera/supermart/internal/session"
)

// CheckoutService is the minimal interface needed to run a checkout.
type CheckoutService interface {
	Checkout(ctx context.Context, userID string) (domain.Invoice, error)
}

// InvoiceReader reads back the latest stored invoice for a user.
type InvoiceReader interface {
	Get(ctx context.Context, userID string) (domain.Invoice, error)
}

// FlashReader drains pending outcome messages for a user.
type FlashReader interface {
	Drain(ctx context.Context, userID string) ([]session.Message, error)
}

// HandleCheckout converts the user's cart into an order and returns the
// invoice. Failures leave the cart untouched so the user can retry.
func HandleCheckout(svc CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		invoice, err := svc.Checkout(r.Context(), userIDFromContext(r.Context()))
		if err != nil {
			var short *domain.InsufficientStockError
			switch {
			case errors.Is(err, domain.ErrUnidentifiedUser):
				writeError(w, http.StatusUnauthorized, codeUnidentifiedUser, err.Error())
			case errors.Is(err, domain.ErrEmptyCart):
				writeError(w, http.StatusBadRequest, codeEmptyCart, err.Error())
			case errors.As(err, &short):
				writeError(w, http.StatusConflict, codeInsufficientStock, short.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeCheckoutFailed, "could not complete purchase, please try again")
			}
			return
		}
		writeJSON(w, http.StatusCreated, invoice)
	}
}

// HandleGetInvoice returns the user's most recent invoice, if any.
func HandleGetInvoice(store InvoiceReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		invoice, err := store.Get(r.Context(), userIDFromContext(r.Context()))
		if err != nil {
			if errors.Is(err, session.ErrNoInvoice) {
				writeError(w, http.StatusNotFound, codeNoInvoice, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, invoice)
	}
}

// HandleGetFlash drains and returns the user's pending messages.
func HandleGetFlash(store FlashReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := store.Drain(r.Context(), userIDFromContext(r.Context()))
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string][]session.Message{"messages": messages})
	}
}
