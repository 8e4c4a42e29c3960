// Package main is the entry point for the navhub API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"navhub/internal/cache"
	"navhub/internal/config"
	"navhub/internal/database"
	"navhub/internal/handlers"
	"navhub/internal/hierarchy"
	"navhub/internal/homeview"
	"navhub/internal/router"
	"navhub/internal/store"
	"navhub/internal/token"
)

func main() {
	// Structured logger for the whole process.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey — backs the token revocation list.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	categoryStore := store.NewCategoryStore(db)
	navStore := store.NewNavStore(db)

	// Hierarchy engine and home-view composition over the stores.
	validator := hierarchy.NewValidator(categoryStore)
	composer := homeview.New(categoryStore, navStore)
	viewCache := homeview.NewCache()

	// Token issuance and revocation.
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL, cfg.RememberTTL)
	blacklist := token.NewBlacklist(valkeyClient)

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(userStore, tokens, blacklist)
	categoryHandlers := handlers.NewCategories(categoryStore, validator, viewCache)
	navHandlers := handlers.NewNavs(navStore, categoryStore, viewCache)
	homeHandlers := handlers.NewHome(composer, viewCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(router.Deps{
		Auth:        authHandlers,
		Categories:  categoryHandlers,
		Navs:        navHandlers,
		Home:        homeHandlers,
		TokenParser: tokens,
		Revocations: blacklist,
		Users:       userStore,
	})

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
