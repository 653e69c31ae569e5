package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nvalera/supermart/internal/domain"
)

func newTestRouter() http.Handler {
	return NewRouter(Services{
		Catalog:        &stubCatalogService{products: []domain.Product{{ID: "p-1", Name: "Milk"}}},
		Cart:           &stubCartService{},
		Checkout:       &stubCheckoutService{invoice: domain.Invoice{OrderID: "order-123"}},
		Orders:         &stubOrderService{},
		Discounts:      &stubDiscountApplier{},
		Invoices:       &stubInvoiceReader{},
		Flash:          &stubFlashReader{},
		AdminProducts:  &stubAdminService{},
		AdminDiscounts: &stubAdminService{},
	})
}

func TestRouter(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		userID         string
		role           string
		expectedStatus int
	}{
		{"health is public", http.MethodGet, "/health", "", "", http.StatusOK},
		{"catalog is public", http.MethodGet, "/api/products", "", "", http.StatusOK},
		{"cart needs a user", http.MethodGet, "/api/cart", "", "", http.StatusUnauthorized},
		{"cart with user", http.MethodGet, "/api/cart", "u-1", "", http.StatusOK},
		{"checkout needs a user", http.MethodPost, "/api/checkout", "", "", http.StatusUnauthorized},
		{"checkout with user", http.MethodPost, "/api/checkout", "u-1", "", http.StatusCreated},
		{"admin needs a user", http.MethodGet, "/api/admin/discounts", "", "", http.StatusUnauthorized},
		{"admin needs the role", http.MethodGet, "/api/admin/discounts", "u-1", "", http.StatusForbidden},
		{"admin with role", http.MethodGet, "/api/admin/discounts", "u-1", roleAdmin, http.StatusOK},
		{"unknown route", http.MethodGet, "/api/nope", "", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.userID != "" {
				req.Header.Set(userIDHeader, tt.userID)
			}
			if tt.role != "" {
				req.Header.Set(userRoleHeader, tt.role)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouterNotFoundIsJSON(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"code":"not_found"`) {
		t.Fatalf("expected JSON error body, got %q", rec.Body.String())
	}
}
