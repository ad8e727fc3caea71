package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/app"
	"github.com/ziplofy/storeconfig/services/storefront/application/handlers"
	appsvcs "github.com/ziplofy/storeconfig/services/storefront/application/services"
)

// StorefrontRoutes registers the public cart and wishlist endpoints on r.
// r is expected to be behind auth.Visitor.
func StorefrontRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a), a)
}

// Mount registers the storefront routes for already-wired services.
func Mount(r chi.Router, svcs *appsvcs.Services, a *app.Application) {
	r.Route("/storefront/{theme}", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", handlers.NewGetCartHandler(svcs, a.Errors).Execute)
			r.Post("/items", handlers.NewAddCartItemHandler(svcs, a.Errors).Execute)
			r.Patch("/items/{itemId}", handlers.NewUpdateCartItemHandler(svcs, a.Errors).Execute)
			r.Delete("/items/{itemId}", handlers.NewRemoveCartItemHandler(svcs, a.Errors).Execute)
			r.Post("/coupon", handlers.NewApplyCouponHandler(svcs, a.Errors).Execute)
			r.Delete("/coupon", handlers.NewClearCouponHandler(svcs, a.Errors).Execute)
		})
		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", handlers.NewGetWishlistHandler(svcs, a.Errors).Execute)
			r.Post("/items", handlers.NewAddWishlistItemHandler(svcs, a.Errors).Execute)
			r.Delete("/items/{itemId}", handlers.NewRemoveWishlistItemHandler(svcs, a.Errors).Execute)
			r.Post("/items/{itemId}/toggle", handlers.NewToggleWishlistItemHandler(svcs, a.Errors).Execute)
		})
	})
}
