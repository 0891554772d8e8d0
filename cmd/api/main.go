// Package main provides the HungryJack JSON API server.
// All dependencies are constructed and wired explicitly here.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	appnutrition "github.com/hungryjack/backend/internal/application/nutrition"
	"github.com/hungryjack/backend/internal/application/planner"
	"github.com/hungryjack/backend/internal/infrastructure/ai/fixture"
	"github.com/hungryjack/backend/internal/infrastructure/ai/openai"
	"github.com/hungryjack/backend/internal/infrastructure/config"
	"github.com/hungryjack/backend/internal/infrastructure/http/handlers"
	"github.com/hungryjack/backend/internal/infrastructure/http/server"
	"github.com/hungryjack/backend/internal/infrastructure/nutrition/usda"
	"github.com/hungryjack/backend/internal/infrastructure/persistence/supabase"
	"github.com/hungryjack/backend/internal/ports/outbound"
	"github.com/hungryjack/backend/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// .env is a development convenience, absence is not an error
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting HungryJack API",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("shopping_strategy", cfg.Shopping.Strategy),
	)

	// AI provider selection
	var (
		generator   outbound.MealPlanGenerator
		categorizer outbound.ShoppingListCategorizer
	)
	switch cfg.AI.Provider {
	case config.AIProviderFixture:
		p := fixture.NewProvider()
		generator, categorizer = p, p
	default:
		client, err := openai.NewClient(cfg.AI, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize AI client", zap.Error(err))
		}
		generator, categorizer = client, client
	}

	// Persistence
	db := supabase.NewClient(cfg.Supabase, appLogger)
	profileRepo := supabase.NewProfileRepository(db, appLogger)
	planRepo := supabase.NewMealPlanRepository(db, appLogger)
	listRepo := supabase.NewShoppingListRepository(db, appLogger)

	// Nutrition lookup tier is optional, keyword estimation covers its absence
	var lookup outbound.NutritionLookup
	if usdaClient := usda.NewClient(cfg.Nutrition, appLogger); usdaClient != nil {
		lookup = usdaClient
	}

	nutritionService := appnutrition.NewService(lookup, appLogger)
	plannerService := planner.NewService(
		generator,
		categorizer,
		profileRepo,
		planRepo,
		listRepo,
		cfg.Shopping,
		appLogger,
	)

	h := handlers.NewHandlers(plannerService, nutritionService, cfg.App.Version, appLogger)
	srv := server.NewServer(cfg, h, appLogger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
	appLogger.Info("Server stopped")
}
