package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vbonduro/mealai/internal/analysis"
	"github.com/vbonduro/mealai/internal/baseline/openfoodfacts"
	"github.com/vbonduro/mealai/internal/baseline/usda"
	"github.com/vbonduro/mealai/internal/config"
	"github.com/vbonduro/mealai/internal/db"
	"github.com/vbonduro/mealai/internal/inference"
	"github.com/vbonduro/mealai/internal/inference/claude"
	"github.com/vbonduro/mealai/internal/inference/openai"
	"github.com/vbonduro/mealai/internal/logging"
	"github.com/vbonduro/mealai/internal/photostore/local"
	"github.com/vbonduro/mealai/internal/resolve"
	"github.com/vbonduro/mealai/internal/service"
	"github.com/vbonduro/mealai/internal/store"
)

// app holds what every command needs. close releases the database and the
// log file in that order.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	db      *sql.DB
	service *service.MealService
	cleanup func()
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		cleanup()
		return nil, err
	}

	photoStg, err := local.NewStore(cfg.PhotoPath)
	if err != nil {
		closeDB(database, logger)
		cleanup()
		return nil, err
	}

	router := resolve.NewRouter(
		usda.NewClient(cfg.USDAAPIKey, cfg.USDABaseURL, logger),
		openfoodfacts.NewClient(cfg.OFFBaseURL),
		newAnalysisService(cfg, logger),
		logger,
	)

	svc := service.NewMealService(router, store.NewHistoryStore(database), store.NewFavoriteStore(database), photoStg, logger)

	return &app{cfg: cfg, logger: logger, db: database, service: svc, cleanup: cleanup}, nil
}

func (a *app) close() {
	closeDB(a.db, a.logger)
	a.cleanup()
}

func closeDB(database *sql.DB, logger *slog.Logger) {
	if err := database.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}
}

// newAnalysisService registers the OpenAI client always and the Claude client
// only when a Claude key is configured; other selections fall back to OpenAI.
func newAnalysisService(cfg *config.Config, logger *slog.Logger) *analysis.Service {
	clients := map[analysis.Provider]inference.Client{
		analysis.ProviderOpenAI: openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL),
	}
	if cfg.ClaudeAPIKey != "" {
		clients[analysis.ProviderClaude] = claude.NewClient(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	}

	provider := analysis.ParseProvider(cfg.AIProvider)
	if _, ok := clients[provider]; !ok && provider != analysis.ProviderOpenAI {
		logger.Warn("no client for provider, using openai", "provider", provider)
	} else {
		logger.Info("using inference provider", "provider", provider)
	}
	return analysis.NewService(provider, clients, logger)
}
