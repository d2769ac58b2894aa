package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"vizier/adapters/postgres"
	"vizier/adapters/tabular"
	"vizier/internal"
	"vizier/internal/api"
	"vizier/internal/cache"
	"vizier/internal/config"
	"vizier/internal/pipeline"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewDefaultLogger()
	gin.SetMode(cfg.Server.GinMode)

	db, err := postgres.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	source := tabular.NewSource(cache.NewTableCache(cfg.Engine.CacheSize))
	repos := pipeline.Repos{
		Fields:        postgres.NewFieldRepository(db),
		Datasets:      postgres.NewDatasetRepository(db),
		Relationships: postgres.NewRelationshipRepository(db),
		Specs:         postgres.NewSpecRepository(db),
	}
	runner := pipeline.NewRunner(cfg.Engine, source, repos, nil, logger)

	server := api.NewServer(runner, source, repos, logger)
	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
