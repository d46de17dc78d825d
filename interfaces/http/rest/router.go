// Package rest wires the HTTP surface: routing, middleware, and handlers.
package rest

import (
	"net/http"

	appauth "itemstore-backend/application/auth"
	"itemstore-backend/application/items"
	"itemstore-backend/infrastructure/config"
	"itemstore-backend/interfaces/http/rest/handlers"
	"itemstore-backend/interfaces/http/rest/middleware"
	pkgauth "itemstore-backend/pkg/auth"
	"itemstore-backend/pkg/observability"
	"itemstore-backend/pkg/response"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg      *config.Config
	items    *items.Service
	auth     *appauth.Service
	verifier pkgauth.TokenVerifier
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewRouter creates a new router instance. metrics may be nil when disabled.
func NewRouter(
	cfg *config.Config,
	itemService *items.Service,
	authService *appauth.Service,
	verifier pkgauth.TokenVerifier,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:      cfg,
		items:    itemService,
		auth:     authService,
		verifier: verifier,
		metrics:  metrics,
		logger:   logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.metrics != nil {
		router.Use(middleware.Metrics(rt.metrics))
	}

	// CORS is fixed to the single configured origin
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{rt.cfg.CORSAllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	router.Get("/health", rt.healthCheck)

	writer := response.NewWriter(rt.logger)
	authenticate := middleware.Authenticate(rt.verifier, writer, rt.cfg.TrustGatewayHeaders, rt.logger)

	itemHandler := handlers.NewItemHandler(rt.items, writer, rt.cfg.MaxBodyBytes, rt.logger)
	router.Route("/items", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/", itemHandler.Create)
		r.Get("/", itemHandler.List)
		r.Get("/{id}", itemHandler.Get)
		r.Put("/{id}", itemHandler.Update)
		r.Delete("/{id}", itemHandler.Delete)
	})

	authHandler := handlers.NewAuthHandler(rt.auth, writer, rt.cfg.MaxBodyBytes, rt.logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)
		r.With(authenticate).Get("/me", authHandler.Me)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
