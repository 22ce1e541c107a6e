// @title Treelink Backend API
// @version 1.0
// @description Personal link hub: public profiles with an ordered link collection

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/rs/cors"
	"go.uber.org/zap"

	_ "treelink-backend/docs" // This is required for swagger
	"treelink-backend/internal/cache"
	"treelink-backend/internal/config"
	"treelink-backend/internal/events"
	"treelink-backend/internal/handlers"
	"treelink-backend/internal/middleware"
	"treelink-backend/internal/routes"
	"treelink-backend/internal/store"
	_ "treelink-backend/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	// --- Database ---
	db, err := sqlx.Connect("pgx", cfg.GetDSN())
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)
	logger.Info("database connected", zap.String("host", cfg.Database.Host))

	// Run migrations (registered by the migrations package init)
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatal("set goose dialect", zap.Error(err))
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	// --- Optional collaborators ---
	var profileCache cache.ProfileCache
	if cfg.IsRedisConfigured() {
		profileCache = cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			UseTLS:   cfg.Redis.UseTLS,
			TTL:      cfg.Redis.TTL,
		})
		logger.Info("profile cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	publisher := events.NewNoopPublisher()
	if cfg.IsNATSConfigured() {
		publisher, err = events.NewNatsPublisher(cfg.NATS.URL, logger)
		if err != nil {
			logger.Fatal("connect to NATS", zap.Error(err))
		}
		logger.Info("event publishing enabled", zap.String("url", cfg.NATS.URL))
	}

	// --- HTTP Handlers ---
	profileStore := store.NewPostgresProfileStore(db, cfg.Database.QueryTimeout)

	treelinkHandler := handlers.NewTreelinkHandler(profileStore, profileCache, publisher, logger)
	publicHandler := handlers.NewPublicProfileHandler(profileStore, profileCache, logger)
	healthHandler := handlers.NewHealthHandler(db)

	// Setup all routes
	routes.SetupRoutes(treelinkHandler, publicHandler, healthHandler)

	// --- HTTP Server + Graceful Shutdown ---

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	// Wrap the default mux with request logging and CORS
	handler := c.Handler(middleware.RequestLogger(logger, http.DefaultServeMux))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("ListenAndServe", zap.Error(err))
		}
	}()

	// Wait for SIGINT/SIGTERM and shut down politely
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
