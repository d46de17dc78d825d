package di

import (
	appauth "itemstore-backend/application/auth"
	"itemstore-backend/application/items"
	"itemstore-backend/application/ports"
	"itemstore-backend/infrastructure/config"
	pkgauth "itemstore-backend/pkg/auth"
	"itemstore-backend/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	ItemRepo    ports.ItemRepository
	Identity    ports.IdentityProvider
	Publisher   ports.EventPublisher
	Verifier    pkgauth.TokenVerifier
	Metrics     *observability.Metrics
	ItemService *items.Service
	AuthService *appauth.Service
}
