package services

import (
	"github.com/ziplofy/storeconfig/pkg/app"
	"github.com/ziplofy/storeconfig/services/role/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for store roles.
type Services struct {
	Role *RoleService
}

// New wires the role services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return &Services{
		Role: NewRoleService(postgres.NewRoleRepository(a.Db), a.Metrics, a.Logger),
	}
}
