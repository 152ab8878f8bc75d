package di

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"keepsake-backend/application/ports"
	"keepsake-backend/application/services"
	domainconfig "keepsake-backend/domain/config"
	"keepsake-backend/domain/core/validators"
	"keepsake-backend/infrastructure/cache"
	"keepsake-backend/infrastructure/config"
	"keepsake-backend/infrastructure/events"
	"keepsake-backend/infrastructure/journal"
	"keepsake-backend/infrastructure/persistence/neo4j"
	"keepsake-backend/interfaces/http/rest"
	"keepsake-backend/interfaces/http/rest/middleware"
	"keepsake-backend/pkg/auth"
	pkgerrors "keepsake-backend/pkg/errors"
	"keepsake-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideDomainConfig loads the environment's domain parameters
func ProvideDomainConfig(cfg *config.Config) (*domainconfig.DomainConfig, error) {
	domainCfg := domainconfig.LoadDomainConfig(cfg.Environment)
	if err := domainCfg.Validate(); err != nil {
		return nil, err
	}
	return domainCfg, nil
}

// ProvideNeo4jClient connects to the graph store
func ProvideNeo4jClient(ctx context.Context, cfg *config.Config, logger *zap.Logger, metrics *observability.Metrics) (*neo4j.Client, error) {
	return neo4j.NewClient(ctx, neo4j.Config{
		URI:          cfg.Neo4jURI,
		Username:     cfg.Neo4jUsername,
		Password:     cfg.Neo4jPassword,
		Database:     cfg.Neo4jDatabase,
		QueryTimeout: cfg.Neo4jQueryTimeout,
	}, logger, metrics)
}

// ProvideGraphStore creates the graph store over the client and ensures the
// uniqueness constraints are in place
func ProvideGraphStore(ctx context.Context, client *neo4j.Client, logger *zap.Logger) (*neo4j.Store, error) {
	store := neo4j.NewStore(client, logger)
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// ProvideMediaRepository creates the media repository
func ProvideMediaRepository(store *neo4j.Store, logger *zap.Logger) ports.MediaRepository {
	return neo4j.NewMediaRepository(store, logger)
}

// ProvideDimensionRepository creates the dimension repository
func ProvideDimensionRepository(store *neo4j.Store, logger *zap.Logger) ports.DimensionRepository {
	return neo4j.NewDimensionRepository(store, logger)
}

// ProvideCollectionRepository creates the collection repository
func ProvideCollectionRepository(store *neo4j.Store, logger *zap.Logger) ports.CollectionRepository {
	return neo4j.NewCollectionRepository(store, logger)
}

// ProvideAccountRepository creates the account repository
func ProvideAccountRepository(store *neo4j.Store, logger *zap.Logger) ports.AccountRepository {
	return neo4j.NewAccountRepository(store, logger)
}

// ProvideViewerStateStore creates the in-process sampler state cache
func ProvideViewerStateStore() ports.ViewerStateStore {
	return cache.NewViewerStateCache()
}

// ProvideEventPublisher creates the log-backed event publisher
func ProvideEventPublisher(logger *zap.Logger) ports.EventPublisher {
	return events.NewLogPublisher(logger)
}

// ProvideSessionLog creates the session journal
func ProvideSessionLog(logger *zap.Logger) ports.SessionLog {
	return journal.NewZapSessionLog(logger)
}

// ProvideMediaValidator creates the ingestion validator
func ProvideMediaValidator(domainCfg *domainconfig.DomainConfig) *validators.MediaValidator {
	return validators.NewMediaValidatorWithConfig(domainCfg)
}

// ProvideMediaService creates the media service
func ProvideMediaService(
	mediaRepo ports.MediaRepository,
	dimRepo ports.DimensionRepository,
	collRepo ports.CollectionRepository,
	accountRepo ports.AccountRepository,
	validator *validators.MediaValidator,
	publisher ports.EventPublisher,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *services.MediaService {
	return services.NewMediaService(mediaRepo, dimRepo, collRepo, accountRepo, validator, publisher, domainCfg, logger)
}

// ProvideRelationService creates the relation scoring service
func ProvideRelationService(
	mediaRepo ports.MediaRepository,
	dimRepo ports.DimensionRepository,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *services.RelationService {
	return services.NewRelationService(mediaRepo, dimRepo, domainCfg, logger)
}

// ProvideEmotionService creates the emotion service
func ProvideEmotionService(
	media *services.MediaService,
	mediaRepo ports.MediaRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *services.EmotionService {
	return services.NewEmotionService(media, mediaRepo, publisher, logger)
}

// ProvideSamplerService creates the sampler with the process-wide RNG
func ProvideSamplerService(
	media *services.MediaService,
	relations *services.RelationService,
	collRepo ports.CollectionRepository,
	mediaRepo ports.MediaRepository,
	store ports.ViewerStateStore,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *services.SamplerService {
	return services.NewSamplerService(media, relations, collRepo, mediaRepo, store, domainCfg, logger, metrics, rand.Intn, time.Now)
}

// ProvideSessionService creates the session service
func ProvideSessionService(
	mediaRepo ports.MediaRepository,
	sessionLog ports.SessionLog,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *services.SessionService {
	return services.NewSessionService(mediaRepo, sessionLog, publisher, logger)
}

// ProvideAccountService creates the account service
func ProvideAccountService(accountRepo ports.AccountRepository, logger *zap.Logger) *services.AccountService {
	return services.NewAccountService(accountRepo, logger)
}

// ProvideJWTValidator creates the token validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" && !cfg.IsProduction() {
		secret = "development-secret-change-in-production"
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     secret,
		Issuer:        cfg.JWTIssuer,
	})
}

// ProvideTokenRefresh creates the token refresh endpoint handler
func ProvideTokenRefresh(cfg *config.Config) (*middleware.TokenRefreshMiddleware, error) {
	secret := cfg.JWTSecret
	if secret == "" && !cfg.IsProduction() {
		secret = "development-secret-change-in-production"
	}
	return middleware.NewTokenRefreshMiddleware(secret, cfg.JWTIssuer)
}

// ProvideMetrics creates the Prometheus collectors
func ProvideMetrics() *observability.Metrics {
	return observability.NewMetrics("keepsake")
}

// ProvideErrorHandler creates the HTTP error handler
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideRouter creates the configured HTTP router
func ProvideRouter(
	cfg *config.Config,
	accounts *services.AccountService,
	media *services.MediaService,
	emotions *services.EmotionService,
	relations *services.RelationService,
	sampler *services.SamplerService,
	sessions *services.SessionService,
	validator *auth.JWTValidator,
	refresh *middleware.TokenRefreshMiddleware,
	metrics *observability.Metrics,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(
		accounts,
		media,
		emotions,
		relations,
		sampler,
		sessions,
		validator,
		refresh,
		metrics,
		errorHandler,
		rest.SplitOrigins(cfg.CORSOrigins),
		logger,
	)
}
