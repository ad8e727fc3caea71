package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/app"
	"github.com/ziplofy/storeconfig/services/tag/application/handlers"
	appsvcs "github.com/ziplofy/storeconfig/services/tag/application/services"
	"github.com/ziplofy/storeconfig/services/tag/domain/models"
)

// TagRoutes registers the endpoints of every tag-family kind on r.
// r is expected to be behind auth.Protect.
func TagRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a), a)
}

// Mount registers the tag-family routes for already-wired services.
func Mount(r chi.Router, svcs *appsvcs.Services, a *app.Application) {
	for _, kind := range models.Kinds {
		r.Route(kind.Route, func(r chi.Router) {
			r.Post("/", handlers.NewPostTagHandler(svcs, kind, a.Errors).Execute)
			r.Get("/store/{storeId}", handlers.NewGetTagsByStoreHandler(svcs, kind, a.Errors).Execute)
			r.Delete("/{id}", handlers.NewDeleteTagHandler(svcs, kind, a.Errors).Execute)
		})
	}
}
