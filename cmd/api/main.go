package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/partwall/partwall-golang/internal/database"
	"github.com/partwall/partwall-golang/internal/events"
	"github.com/partwall/partwall-golang/internal/handlers"
	"github.com/partwall/partwall-golang/internal/logging"
	"github.com/partwall/partwall-golang/internal/routes"
)

func main() {
	logger := logging.New(os.Stdout)

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("could not load .env file, relying on system environment variables")
	}

	db, err := database.OpenDB()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply database schema")
	}
	logger.Info().Msg("database ready")

	app := &handlers.Handlers{
		DB:     db,
		Hub:    events.NewHub(),
		Logger: logger,
	}

	router := routes.SetupRouter(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info().Str("port", port).Msg("starting partwall API server")
	if err := router.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
