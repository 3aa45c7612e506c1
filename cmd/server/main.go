package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/api"
	"github.com/hsapparel/storefront/internal/cart"
	"github.com/hsapparel/storefront/internal/config"
	"github.com/hsapparel/storefront/internal/imaging"
	"github.com/hsapparel/storefront/internal/repository/postgres"
	"github.com/hsapparel/storefront/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Create repositories and services
	repos := postgres.NewRepositories(db, logger)
	carts := cart.NewManager(cfg.Cart.DataDir)
	pricer := service.NewPricer(cfg.Shipping)
	checkout := service.NewCheckoutService(repos, pricer, logger)
	resolver := imaging.NewResolver(imaging.NewClient(cfg.ImageStore, logger), logger)

	router := api.NewRouter(cfg, repos, carts, checkout, resolver, logger)

	logger.Info("Starting storefront server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
