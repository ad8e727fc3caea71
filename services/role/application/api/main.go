package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/app"
	"github.com/ziplofy/storeconfig/services/role/application/handlers"
	appsvcs "github.com/ziplofy/storeconfig/services/role/application/services"
)

// RoleRoutes registers the store role endpoints on r.
// r is expected to be behind auth.Protect.
func RoleRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a), a)
}

// Mount registers the role routes for already-wired services.
func Mount(r chi.Router, svcs *appsvcs.Services, a *app.Application) {
	r.Route("/store-roles", func(r chi.Router) {
		r.Post("/", handlers.NewPostRoleHandler(svcs, a.Errors).Execute)
		r.Get("/", handlers.NewGetRolesHandler(svcs, a.Errors).Execute)
		r.Patch("/{roleId}", handlers.NewPatchRoleHandler(svcs, a.Errors).Execute)
		r.Delete("/{roleId}", handlers.NewDeleteRoleHandler(svcs, a.Errors).Execute)
	})
}
