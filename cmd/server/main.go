// Package main initializes and starts the property-listing API server,
// setting up configuration, logging, database and cache connections,
// repositories, services, handlers, and routing.
package main

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"time"

	nethttp "net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/akaryakin/propnest/internal/cache"
	"github.com/akaryakin/propnest/internal/config"
	"github.com/akaryakin/propnest/internal/db"
	"github.com/akaryakin/propnest/internal/logger"
	"github.com/akaryakin/propnest/internal/repository"
	"github.com/akaryakin/propnest/internal/server/handler/http"
	"github.com/akaryakin/propnest/internal/service"
	"github.com/akaryakin/propnest/internal/token"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	zapLogger, err := logger.New(options.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Purge soft-deleted properties in the background.
	db.StartSoftDeleteCleaner(context.Background(), postgresDB,
		time.Hour,       // interval
		30*24*time.Hour, // retention: 30 days
		zapLogger,
	)

	// Initialize the side cache: redis when reachable, in-memory otherwise.
	redisClient := redis.NewClient(&redis.Options{Addr: options.RedisAddr})
	sideCache := cache.New(context.Background(), redisClient)
	aside := cache.NewAside(sideCache, options.CacheTTL, zapLogger)

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	propertyRepo := repository.NewPostgresPropertyRepository(postgresDB)
	recommendationRepo := repository.NewPostgresRecommendationRepository(postgresDB)

	// Token manager signs and verifies access tokens.
	tokens := token.NewManager(options.JWTSecret, options.TokenTTL)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, tokens)
	propertyService := service.NewPropertyService(propertyRepo)
	favoritesService := service.NewFavoritesService(userRepo, propertyRepo, aside)
	recommendationService := service.NewRecommendationService(recommendationRepo, userRepo, propertyRepo, aside)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService, Log: zapLogger}
	propertyHandler := &http.PropertyHandler{PropertyService: propertyService, Log: zapLogger}
	favoritesHandler := &http.FavoritesHandler{FavoritesService: favoritesService, Log: zapLogger}
	recommendationHandler := &http.RecommendationHandler{RecommendationService: recommendationService, Log: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, propertyHandler, favoritesHandler,
		recommendationHandler, tokens, userRepo, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
