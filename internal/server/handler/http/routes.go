package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/akaryakin/propnest/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter constructs and returns an HTTP handler that serves the
// property-listing API. It applies CORS, JSON content-type enforcement,
// and request logging globally; all routes except registration and login
// require a valid bearer token.
//
// Routes:
//
//	POST   /api/v1/auth/register     → authHandler.Register
//	POST   /api/v1/auth/login        → authHandler.Login
//	GET    /api/v1/property          → propertyHandler.Search
//	POST   /api/v1/property          → propertyHandler.Create
//	GET    /api/v1/property/{id}     → propertyHandler.Get
//	PUT    /api/v1/property/{id}     → propertyHandler.Update
//	DELETE /api/v1/property/{id}     → propertyHandler.Delete
//	GET    /api/v1/favorite          → favoritesHandler.List
//	POST   /api/v1/favorite/{id}     → favoritesHandler.Add
//	DELETE /api/v1/favorite/{id}     → favoritesHandler.Remove
//	POST   /api/v1/recommendation    → recommendationHandler.Send
//	GET    /api/v1/recommendation    → recommendationHandler.ListReceived
func NewRouter(
	authHandler *AuthHandler,
	propertyHandler *PropertyHandler,
	favoritesHandler *FavoritesHandler,
	recommendationHandler *RecommendationHandler,
	tokens middleware.TokenVerifier,
	users middleware.UserSource,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(tokens, users, logger))

			r.Get("/property", propertyHandler.Search)
			r.Post("/property", propertyHandler.Create)
			r.Get("/property/{id}", propertyHandler.Get)
			r.Put("/property/{id}", propertyHandler.Update)
			r.Delete("/property/{id}", propertyHandler.Delete)

			r.Get("/favorite", favoritesHandler.List)
			r.Post("/favorite/{id}", favoritesHandler.Add)
			r.Delete("/favorite/{id}", favoritesHandler.Remove)

			r.Post("/recommendation", recommendationHandler.Send)
			r.Get("/recommendation", recommendationHandler.ListReceived)
		})
	})

	return r
}
