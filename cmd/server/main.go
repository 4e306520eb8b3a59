package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"nexacrm/internal/config"
	"nexacrm/internal/handler"
	"nexacrm/internal/httpserver"
	"nexacrm/internal/repository"
	"nexacrm/internal/service/ai"
	"nexacrm/internal/service/dashboard"
	"nexacrm/internal/store"
	"nexacrm/pkg/logger"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	cfg := config.Load("config.yaml")

	logger := logger.NewLogger()
	defer logger.Sync()

	st, err := store.Open(store.Options{
		Path:   cfg.Store.Path,
		Strict: cfg.Store.Strict,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("store initialization failed", zap.Error(err))
	}

	contactRepo := repository.NewContactRepository(st, logger)
	opportunityRepo := repository.NewOpportunityRepository(st, logger)
	taskRepo := repository.NewTaskRepository(st, logger)

	dashboardService := dashboard.NewService(st, logger)
	aiClient := ai.NewClient(ai.ClientConfig{
		BaseURL: cfg.AI.BaseURL,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		Timeout: time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
	}, logger)
	aiService := ai.NewService(aiClient, logger)

	contactHandler := handler.NewContactHandler(contactRepo, logger)
	opportunityHandler := handler.NewOpportunityHandler(opportunityRepo, logger)
	taskHandler := handler.NewTaskHandler(taskRepo, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)
	aiHandler := handler.NewAIHandler(aiService, logger)

	router := httpserver.NewRouter(
		contactHandler,
		opportunityHandler,
		taskHandler,
		dashboardHandler,
		aiHandler,
		cfg.Server.PublicDir,
	)

	logger.Info("starting nexa crm server",
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Path),
	)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}
