package services

import (
	"github.com/ziplofy/storeconfig/pkg/app"
	"github.com/ziplofy/storeconfig/services/policy/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for policy documents.
type Services struct {
	Policy *PolicyService
}

// New wires the policy services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewPolicyRepository(a.Db, a.Publisher())
	return &Services{
		Policy: NewPolicyService(repo, a.Lists, a.Metrics, a.Logger),
	}
}
