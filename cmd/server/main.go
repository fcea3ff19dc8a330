package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nilax-Kundu/AI-Diary/internal/api"
	"github.com/Nilax-Kundu/AI-Diary/internal/config"
	"github.com/Nilax-Kundu/AI-Diary/internal/core"
	"github.com/Nilax-Kundu/AI-Diary/internal/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := setupLogger(cfg.LogLevel, cfg.Environment)
	logger.Info().
		Str("environment", cfg.Environment).
		Int("summary_window_days", cfg.SummaryWindowDays).
		Bool("auth_enabled", cfg.AuthSecret != "").
		Msg("Starting AI Diary backend")

	ctx := context.Background()

	// A failed store connection is fatal; the process refuses to serve.
	dbStore, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := dbStore.Close(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to close MongoDB connection")
		}
	}()
	logger.Info().Msg("MongoDB connection successful")

	llmService, err := core.NewLLMService(ctx, cfg.GeminiAPIKey, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize LLM service")
	}
	defer llmService.Close()

	chatService := core.NewChatService(dbStore, logger)
	profileService := core.NewProfileService(dbStore, logger)
	summaryService := core.NewSummaryService(dbStore, llmService, cfg.SummaryWindowDays, cfg.ChunkWordBudget, logger)
	riddleService := core.NewRiddleService(dbStore, core.DefaultRiddles(), logger)

	apiHandler := api.NewAPIHandler(chatService, profileService, summaryService, riddleService, logger)
	router := api.NewRouter(apiHandler, cfg.AuthSecret, logger)

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // summarization calls can take time
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Str("addr", serverAddr).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exiting gracefully")
}

// setupLogger configures and returns a zerolog logger.
func setupLogger(level, environment string) zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if environment == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
