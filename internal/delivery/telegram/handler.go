package telegram

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot             Bot
	logger          *zap.Logger
	profileService  ProfileService
	vocabService    VocabularyService
	progressService ProgressService
	sessions        SessionStorage
	reminders       ReminderStorage
	now             func() time.Time
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	profileService ProfileService,
	vocabService VocabularyService,
	progressService ProgressService,
	sessions SessionStorage,
	reminders ReminderStorage,
	now func() time.Time,
) *Handler {
	return &Handler{
		bot:             bot,
		logger:          logger,
		profileService:  profileService,
		vocabService:    vocabService,
		progressService: progressService,
		sessions:        sessions,
		reminders:       reminders,
		now:             now,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		h.send(newPlainMessage(chatID, msgUseAdd))
		return
	}

	args := strings.TrimSpace(update.Message.CommandArguments())

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling(h.handleStart(displayName(update.Message.From)))(ctx, chatID)

	case "add":
		_ = h.withErrorHandling(h.withProfile(h.handleAdd(args)))(ctx, chatID)

	case "review":
		_ = h.withErrorHandling(h.withProfile(h.handleReview()))(ctx, chatID)

	case "words":
		_ = h.withErrorHandling(h.withProfile(h.handleWords()))(ctx, chatID)

	case "delete":
		_ = h.withErrorHandling(h.withProfile(h.handleDelete(args)))(ctx, chatID)

	case "stats":
		_ = h.withErrorHandling(h.withProfile(h.handleStats()))(ctx, chatID)

	case "level":
		_ = h.withErrorHandling(h.withProfile(h.handleLevel()))(ctx, chatID)

	case "read":
		_ = h.withErrorHandling(h.withProfile(h.handleRead(args)))(ctx, chatID)

	case "goal":
		_ = h.withErrorHandling(h.withProfile(h.handleGoal(args)))(ctx, chatID)

	case "help":
		h.send(newPlainMessage(chatID, msgHelp))

	default:
		h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

func displayName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.UserName
}
