package services

import (
	"github.com/ziplofy/storeconfig/pkg/app"
	"github.com/ziplofy/storeconfig/services/security/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for store security.
type Services struct {
	Security *SecurityService
}

// New wires the security services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return &Services{
		Security: NewSecurityService(postgres.NewSettingsRepository(a.Db), a.Metrics, a.Logger),
	}
}
