package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/app"
	"github.com/ziplofy/storeconfig/services/policy/application/handlers"
	appsvcs "github.com/ziplofy/storeconfig/services/policy/application/services"
	"github.com/ziplofy/storeconfig/services/policy/domain/models"
)

// PolicyRoutes registers the endpoints of every policy kind on r.
// r is expected to be behind auth.Protect.
func PolicyRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a), a)
}

// Mount registers the policy routes for already-wired services.
func Mount(r chi.Router, svcs *appsvcs.Services, a *app.Application) {
	for _, kind := range models.Kinds {
		r.Route(kind.Route, func(r chi.Router) {
			r.Post("/", handlers.NewPostPolicyHandler(svcs, kind, a.Errors).Execute)
			r.Get("/store/{storeId}", handlers.NewGetPolicyByStoreHandler(svcs, kind, a.Errors).Execute)
			r.Put("/store/{storeId}", handlers.NewPutPolicyByStoreHandler(svcs, kind, a.Errors).Execute)
			r.Put("/{id}", handlers.NewPutPolicyHandler(svcs, kind, a.Errors).Execute)
		})
	}
}
