package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeman-83/homework-bot/internal/app"
	"github.com/Freeman-83/homework-bot/internal/infra/config"
	"github.com/Freeman-83/homework-bot/internal/infra/logger"
	practicumInfra "github.com/Freeman-83/homework-bot/internal/infra/practicum"
	"github.com/Freeman-83/homework-bot/internal/infra/scheduler"
	telegramInfra "github.com/Freeman-83/homework-bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	// Bootstrap logger for the window before configuration is loaded.
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	log = logger.New(cfg)
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, PollInterval: %s",
		cfg.LogLevel, cfg.Environment, cfg.PollInterval)

	// Initialize Practicum API Client
	apiClient := practicumInfra.NewClient(cfg.PracticumEndpoint, cfg.PracticumToken)
	log.Info("Practicum API client initialized.")

	// Initialize Telegram Bot. The bot only sends messages; it never polls
	// Telegram updates, so bot.Start() is never called.
	bot, err := telebot.NewBot(telebot.Settings{Token: cfg.TelegramToken})
	if err != nil {
		log.Fatalf("FATAL: Could not create Telegram bot: %v", err)
	}
	telegramClient := telegramInfra.NewTelebotAdapter(bot)
	log.Info("Telegram client initialized.")

	// Initialize StatusService
	statusService := app.NewStatusService(apiClient, telegramClient, cfg.TelegramChatID, log)
	log.Info("Status service initialized.")

	// Initialize PollScheduler
	pollScheduler := scheduler.NewPollScheduler(statusService, log, cfg.PollInterval)
	pollScheduler.Start()

	log.Info("Application setup complete. Homework status bot is running...")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("Shutting down application...")
	pollScheduler.Stop()
	log.Info("Application shut down gracefully.")
}
