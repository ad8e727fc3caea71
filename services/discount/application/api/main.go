package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/app"
	"github.com/ziplofy/storeconfig/services/discount/application/handlers"
	appsvcs "github.com/ziplofy/storeconfig/services/discount/application/services"
)

// DiscountRoutes registers the discount endpoints on r.
// r is expected to be behind auth.Protect.
func DiscountRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a), a)
}

// Mount registers the discount routes for already-wired services.
func Mount(r chi.Router, svcs *appsvcs.Services, a *app.Application) {
	r.Route("/discounts/amount-off-products", func(r chi.Router) {
		r.Post("/", handlers.NewPostDiscountHandler(svcs, a.Errors).Execute)
		r.Get("/store/{storeId}", handlers.NewGetDiscountsByStoreHandler(svcs, a.Errors).Execute)
		r.Get("/{id}", handlers.NewGetDiscountHandler(svcs, a.Errors).Execute)
		r.Delete("/{id}", handlers.NewDeleteDiscountHandler(svcs, a.Errors).Execute)
	})
}
