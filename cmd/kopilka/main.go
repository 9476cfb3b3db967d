package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"kopilka/internal/amqp"
	"kopilka/internal/bot"
	"kopilka/internal/config"
	"kopilka/internal/log"
	"kopilka/internal/services"
	"kopilka/internal/storage"
)

func main() {
	// Load .env for local development; in production the environment is
	// already populated.
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.BotToken == "" {
		logger.Error("BOT_TOKEN is required")
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository",
			log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}

	// AMQP is optional: without it the ledger still works, only the audit
	// trail goes dark.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events",
				log.FieldError, err)
		} else {
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	service := services.NewLedgerService(repo, amqpClient)
	defer service.Close()

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Error("Failed to initialize Telegram bot", log.FieldError, err)
		os.Exit(1)
	}

	handler := bot.NewHandler(api, service, logger, int(cfg.BotUpdateTimeout.Seconds()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting kopilka bot",
		log.FieldOperation, log.OpStartup,
		"username", api.Self.UserName,
		"db_path", cfg.SQLiteDBPath,
		"amqp_enabled", amqpClient != nil)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return handler.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped with error", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Bot stopped gracefully", log.FieldOperation, log.OpShutdown)
}
