package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ellavondegurechaff/goaura/backend/handlers"
	"github.com/ellavondegurechaff/goaura/backend/middleware"
	"github.com/ellavondegurechaff/goaura/goaura"
	"github.com/ellavondegurechaff/goaura/goaura/ai"
	"github.com/ellavondegurechaff/goaura/goaura/database"
	"github.com/ellavondegurechaff/goaura/goaura/database/repositories"
	"github.com/ellavondegurechaff/goaura/goaura/economy"
	"github.com/ellavondegurechaff/goaura/goaura/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// Initialize logger first
	customHandler := logger.NewHandler("GoAura")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting GoAura API",
		slog.String("version", version),
		slog.String("commit", commit))

	cfg, err := goaura.LoadConfig(configPath)
	if err != nil {
		logger.LogError("Failed to load config", err)
		os.Exit(1)
	}
	customHandler.SetLevel(cfg.Log.Level)

	// The sealed provider key must open before anything serves; there is
	// no fallback key.
	opener := ai.NewKeyOpener()
	apiKey, err := opener.Open(cfg.AI.SealedAPIKey, cfg.AI.KeyPassphrase)
	if err != nil {
		logger.LogError("Failed to unseal AI provider key", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slog.Info("Connecting to database...")
	db, err := database.New(ctx, database.DBConfig{
		Host:         cfg.DB.Host,
		Port:         cfg.DB.Port,
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Database:     cfg.DB.Database,
		PoolSize:     cfg.DB.PoolSize,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxLifetime:  cfg.DB.MaxLifetime,
	})
	if err != nil {
		logger.LogError("Failed to connect to database", err)
		os.Exit(1)
	}
	logger.LogSystem("Database connected successfully")

	if err := db.InitializeSchema(ctx); err != nil {
		logger.LogError("Failed to initialize schema", err)
		os.Exit(1)
	}

	// Repositories
	accountRepo := repositories.NewAccountRepository(db.BunDB())
	subscriptionRepo := repositories.NewSubscriptionRepository(db.BunDB())
	ledgerRepo := repositories.NewLedgerRepository(db.BunDB())
	checkInRepo := repositories.NewCheckInRepository(db.BunDB())
	adventureRepo := repositories.NewAdventureRepository(db.BunDB())
	dialogueRepo := repositories.NewDialogueRepository(db.BunDB())
	usageRepo := repositories.NewUsageRepository(db.BunDB())

	// Services
	checkIns := economy.NewCheckInService(accountRepo, checkInRepo)
	adventures := economy.NewAdventureService(accountRepo, adventureRepo)
	dialogues := economy.NewDialogueService(accountRepo, dialogueRepo)
	balances := economy.NewBalanceService(accountRepo, subscriptionRepo, ledgerRepo, dialogueRepo, usageRepo, checkIns)

	provider := ai.NewClient(cfg.AI.BaseURL, apiKey, time.Duration(cfg.AI.RequestTimeoutSecs)*time.Second)
	quota := ai.NewQuotaService(usageRepo, provider, ai.QuotaServiceConfig{
		DailyLimit:          cfg.AI.DailyTokenLimit,
		MonthlyLimit:        cfg.AI.MonthlyTokenLimit,
		MaxCompletionTokens: cfg.AI.MaxCompletionTokens,
		CheapModel:          cfg.AI.CheapModel,
		StrongModel:         cfg.AI.StrongModel,
	})

	app := fiber.New(fiber.Config{
		AppName:      "GoAura API",
		ServerHeader: "GoAura",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Wallet-Address",
	}))
	app.Use(middleware.LoggingMiddleware())

	webApp := &handlers.App{
		Config:     cfg,
		DB:         db,
		CheckIns:   checkIns,
		Adventures: adventures,
		Dialogues:  dialogues,
		Balances:   balances,
		Quota:      quota,
		Version:    version,
		Commit:     commit,
	}

	setupRoutes(app, webApp)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	slog.Info("Starting server", slog.String("address", address))

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-c
	logger.LogSystem("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.LogError("Server shutdown error", err)
	}

	db.Close()

	logger.LogSystem("Server shutdown complete")
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, webApp *handlers.App) {
	app.Get("/health", handlers.HealthCheck(webApp))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "GoAura API",
			"version": webApp.Version,
			"status":  "running",
		})
	})

	api := app.Group("/api/v1")
	api.Use(middleware.WalletRequired())

	api.Post("/checkin", handlers.CheckIn(webApp))
	api.Get("/checkin/status", handlers.CheckInStatus(webApp))
	api.Post("/adventure/complete", handlers.AdventureComplete(webApp))
	api.Post("/dialogue/reward", handlers.DialogueReward(webApp))
	api.Get("/transactions", handlers.TransactionHistory(webApp))
	api.Get("/balance", handlers.Balance(webApp))
	api.Post("/balance/sync", handlers.SyncBalance(webApp))
	api.Post("/ai/chat/completions", handlers.AIProxy(webApp))
	api.Get("/ai/quota", handlers.AIQuotaStatus(webApp))

	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("type", "http"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()))
		return c.Status(404).JSON(fiber.Map{
			"error": "not_found",
		})
	})
}
