package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-companion/internal/app"
	"github.com/aliskhannn/vocab-companion/internal/config"
	"github.com/aliskhannn/vocab-companion/internal/delivery/telegram"
	"github.com/aliskhannn/vocab-companion/internal/logger"
	"github.com/aliskhannn/vocab-companion/internal/repository"
	"github.com/aliskhannn/vocab-companion/internal/service"
	"github.com/aliskhannn/vocab-companion/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	token, err := cfg.TelegramToken()
	if err != nil {
		lg.Fatal("telegram token is not set", zap.Error(err))
	}

	loc, err := cfg.Streak.Location()
	if err != nil {
		lg.Fatal("invalid streak timezone", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		lg.Fatal("failed to open store", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			lg.Error("failed to close store", zap.Error(err))
		}
	}()

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Env != "production"

	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "add", Description: "Save a word: /add word - translation"},
		{Command: "review", Description: "Review due cards"},
		{Command: "words", Description: "List saved words"},
		{Command: "delete", Description: "Delete a word"},
		{Command: "stats", Description: "Statistics and achievements"},
		{Command: "level", Description: "Progress to the next level"},
		{Command: "read", Description: "Count an article as read"},
		{Command: "goal", Description: "Set the daily goal"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	// Repositories.
	profileRepo := repository.NewProfileRepository(store)
	wordRepo := repository.NewWordRepository(store)
	prefsRepo := repository.NewPreferencesRepository(store)
	stateRepo := repository.NewAppStateRepository(store)

	// Services.
	now := time.Now
	profileService := service.NewProfileService(profileRepo, prefsRepo, now, loc, lg)
	progressService := service.NewProgressService(profileRepo, wordRepo, now, lg)
	vocabService := service.NewVocabularyService(wordRepo, profileService, progressService, now, lg)
	reminderService := service.NewReminderService(profileRepo, wordRepo, stateRepo, service.ReminderConfig{
		Schedule:      cfg.Reminders.Schedule,
		MaxConcurrent: cfg.Reminders.MaxConcurrent,
		Window:        cfg.Reminders.Window(),
		Location:      loc,
	}, now, lg)

	// In-memory storages.
	sessionStorage := storage.NewSessionStorage()
	reminderStorage := storage.NewReminderStorage()

	handler := telegram.NewHandler(
		bot,
		lg,
		profileService,
		vocabService,
		progressService,
		sessionStorage,
		reminderStorage,
		now,
	)
	reminderService.SetNotifier(handler)

	var wg sync.WaitGroup

	if cfg.Reminders.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := reminderService.Start(ctx); err != nil {
				lg.Error("reminder service stopped", zap.Error(err))
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			lg.Error("telegram handler stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("shutdown signal received")

	bot.StopReceivingUpdates()
	wg.Wait()
}
