package rest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"keepsake-backend/application/services"
	"keepsake-backend/interfaces/http/rest/handlers"
	"keepsake-backend/interfaces/http/rest/middleware"
	"keepsake-backend/pkg/auth"
	pkgerrors "keepsake-backend/pkg/errors"
	"keepsake-backend/pkg/observability"
	"keepsake-backend/pkg/utils"
)

// Router creates and configures the HTTP router
type Router struct {
	accounts    *services.AccountService
	media       *services.MediaService
	emotions    *services.EmotionService
	relations   *services.RelationService
	sampler     *services.SamplerService
	sessions    *services.SessionService
	validator   *auth.JWTValidator
	refresh     *middleware.TokenRefreshMiddleware
	metrics     *observability.Metrics
	errors      *pkgerrors.ErrorHandler
	corsOrigins []string
	logger      *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	accounts *services.AccountService,
	media *services.MediaService,
	emotions *services.EmotionService,
	relations *services.RelationService,
	sampler *services.SamplerService,
	sessions *services.SessionService,
	validator *auth.JWTValidator,
	refresh *middleware.TokenRefreshMiddleware,
	metrics *observability.Metrics,
	errors *pkgerrors.ErrorHandler,
	corsOrigins []string,
	logger *zap.Logger,
) *Router {
	return &Router{
		accounts:    accounts,
		media:       media,
		emotions:    emotions,
		relations:   relations,
		sampler:     sampler,
		sessions:    sessions,
		validator:   validator,
		refresh:     refresh,
		metrics:     metrics,
		errors:      errors,
		corsOrigins: corsOrigins,
		logger:      logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.metrics))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health and metrics
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	router.Method("GET", "/metrics", rt.metrics.Handler())

	// Token refresh sits outside the authenticated tree
	router.Post("/auth/refresh", rt.refresh.RefreshToken)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.logger))

		// Account endpoints
		accountHandler := handlers.NewAccountHandler(rt.accounts, rt.errors, rt.logger)
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", accountHandler.CreateAccount)
			r.Get("/me", accountHandler.GetAccount)
		})

		// Media endpoints
		mediaHandler := handlers.NewMediaHandler(rt.media, rt.emotions, rt.relations, rt.errors, rt.logger)
		r.Route("/media", func(r chi.Router) {
			r.Post("/", mediaHandler.Ingest)
			r.Get("/", mediaHandler.ListMedia)
			r.Get("/{mediaID}", mediaHandler.GetMedia)
			r.Delete("/{mediaID}", mediaHandler.DestroyMedia)
			r.Post("/{mediaID}/emotions", mediaHandler.AppendEmotion)
			r.Get("/{mediaID}/emotional-links", mediaHandler.EmotionalLinks)
			r.Get("/{mediaID}/related", mediaHandler.Related)
			r.Get("/{mediaID}/links", mediaHandler.ListLinks)
			r.Post("/{mediaID}/links", mediaHandler.CreateLink)
		})

		// Collection endpoints
		suggestionHandler := handlers.NewSuggestionHandler(rt.sampler, rt.errors, rt.logger)
		r.Route("/collections", func(r chi.Router) {
			r.Get("/{name}/media", mediaHandler.CollectionMedia)
			r.Get("/{name}/random", suggestionHandler.Random)
		})

		// Presentation sampling
		r.Post("/sample", suggestionHandler.Sample)

		// Viewing sessions
		sessionHandler := handlers.NewSessionHandler(rt.sessions, rt.errors, rt.logger)
		r.Post("/sessions", sessionHandler.StartSession)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","time":%q}`, utils.NowRFC3339())
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ready","time":%q}`, utils.NowRFC3339())
}

// SplitOrigins parses the comma-separated CORS origin list
func SplitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}
