package services

import (
	"github.com/ziplofy/storeconfig/pkg/app"
	"github.com/ziplofy/storeconfig/services/storefront/infrastructure/storage/redis"
)

// Services is the application-layer service container for the storefront.
type Services struct {
	Storefront *StorefrontService
}

// New wires the storefront services with Redis-backed storage.
func New(a *app.Application) *Services {
	storage := redis.NewStorage(a.Redis.Client(), a.Config.StorefrontTTL)
	return &Services{
		Storefront: NewStorefrontService(storage, a.Metrics, a.Logger),
	}
}
