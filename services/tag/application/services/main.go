package services

import (
	"github.com/ziplofy/storeconfig/pkg/app"
	"github.com/ziplofy/storeconfig/services/tag/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the tag family.
type Services struct {
	Tag *TagService
}

// New wires the tag services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewTagRepository(a.Db, a.Publisher())
	return &Services{
		Tag: NewTagService(repo, a.Lists, a.Metrics, a.Logger),
	}
}
