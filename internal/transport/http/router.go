package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Services bundles everything the router mounts.
type Services struct {
	Catalog        CatalogService
	Cart           CartService
	Checkout       CheckoutService
	Orders         OrderService
	Discounts      DiscountApplier
	Invoices       InvoiceReader
	Flash          FlashReader
	AdminProducts  AdminProductService
	AdminDiscounts AdminDiscountService
}

// NewRouter wires every endpoint. Identity is resolved for all routes;
// cart, checkout and history routes additionally require a user, and the
// admin subtree requires the admin role.
func NewRouter(svcs Services) http.Handler {
	r := chi.NewRouter()
	r.Use(Identity)

	r.Get("/health", HealthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", HandleListProducts(svcs.Catalog))
		r.Get("/products/search", HandleSearchProducts(svcs.Catalog))
		r.Get("/products/{id}", HandleGetProduct(svcs.Catalog))

		r.Post("/discounts/apply", HandleApplyDiscount(svcs.Discounts))

		r.Group(func(r chi.Router) {
			r.Use(RequireUser)

			r.Get("/cart", HandleViewCart(svcs.Cart))
			r.Post("/cart/items", HandleAddToCart(svcs.Cart))
			r.Put("/cart/items/{productID}", HandleUpdateCartItem(svcs.Cart))
			r.Delete("/cart/items/{productID}", HandleRemoveCartItem(svcs.Cart))
			r.Delete("/cart", HandleClearCart(svcs.Cart))

			r.Post("/checkout", HandleCheckout(svcs.Checkout))
			r.Get("/invoice", HandleGetInvoice(svcs.Invoices))
			r.Get("/flash", HandleGetFlash(svcs.Flash))
			r.Get("/orders", HandleListOrders(svcs.Orders))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireUser, RequireAdmin)

			r.Post("/products", HandleAdminCreateProduct(svcs.AdminProducts))
			r.Get("/products", HandleListProducts(svcs.Catalog))
			r.Put("/products/{id}", HandleAdminUpdateProduct(svcs.AdminProducts))
			r.Delete("/products/{id}", HandleAdminDeleteProduct(svcs.AdminProducts))

			r.Get("/discounts", HandleAdminListDiscounts(svcs.AdminDiscounts))
			r.Post("/discounts", HandleAdminCreateDiscount(svcs.AdminDiscounts))
			r.Get("/discounts/{id}", HandleAdminGetDiscount(svcs.AdminDiscounts))
			r.Put("/discounts/{id}", HandleAdminUpdateDiscount(svcs.AdminDiscounts))
			r.Delete("/discounts/{id}", HandleAdminDeleteDiscount(svcs.AdminDiscounts))
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})

	return r
}
