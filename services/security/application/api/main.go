package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/app"
	"github.com/ziplofy/storeconfig/services/security/application/handlers"
	appsvcs "github.com/ziplofy/storeconfig/services/security/application/services"
)

// SecurityRoutes registers the store security endpoints on r.
// r is expected to be behind auth.Protect.
func SecurityRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a), a)
}

// Mount registers the security routes for already-wired services.
func Mount(r chi.Router, svcs *appsvcs.Services, a *app.Application) {
	r.Route("/store-security/store/{storeId}", func(r chi.Router) {
		r.Get("/", handlers.NewGetSecurityHandler(svcs, a.Errors).Execute)
		r.Put("/", handlers.NewPutSecurityHandler(svcs, a.Errors).Execute)
		r.Post("/regenerate", handlers.NewRegenerateCodeHandler(svcs, a.Errors).Execute)
	})
}
