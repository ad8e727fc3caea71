package services

import (
	"github.com/ziplofy/storeconfig/pkg/app"
	"github.com/ziplofy/storeconfig/services/discount/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for discounts.
type Services struct {
	Discount *DiscountService
}

// New wires the discount services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewDiscountRepository(a.Db, a.Publisher())
	return &Services{
		Discount: NewDiscountService(repo, a.Lists, a.Metrics, a.Logger),
	}
}
