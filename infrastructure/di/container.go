package di

import (
	"go.uber.org/zap"

	"keepsake-backend/application/services"
	"keepsake-backend/infrastructure/config"
	"keepsake-backend/infrastructure/persistence/neo4j"
	"keepsake-backend/interfaces/http/rest"
	"keepsake-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Client   *neo4j.Client
	Router   *rest.Router
	Metrics  *observability.Metrics
	Accounts *services.AccountService
	Media    *services.MediaService
}
