package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
	"github.com/aliskhannn/vocab-companion/internal/domain/progression"
	"github.com/aliskhannn/vocab-companion/internal/service"
	"github.com/aliskhannn/vocab-companion/internal/storage"
)

// Bot is the subset of *tgbotapi.BotAPI used by the handler.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type ProfileService interface {
	EnsureForChat(ctx context.Context, chatID int64, name string) (*entities.Profile, bool, error)
	GetByChat(ctx context.Context, chatID int64) (*entities.Profile, error)
	IsArticleRead(ctx context.Context, profileID, articleID string) (bool, error)
	MarkArticleRead(ctx context.Context, profileID, articleID string) (bool, error)
	SetDailyGoal(ctx context.Context, profileID string, goal int) error
}

type VocabularyService interface {
	SaveWord(ctx context.Context, profileID string, in service.WordInput) (entities.VocabularyItem, bool, error)
	DeleteWord(ctx context.Context, profileID, word string) error
	List(ctx context.Context, profileID string) ([]entities.VocabularyItem, error)
	DueQueue(ctx context.Context, profileID string, limit int) ([]entities.VocabularyItem, int, error)
	Review(ctx context.Context, profileID, itemID string, grade entities.ReviewGrade) (service.ReviewResult, error)
}

type ProgressService interface {
	CompleteStats(ctx context.Context, profileID string) (entities.CompleteStats, error)
	ProgressToNextLevel(ctx context.Context, profileID string) (*entities.Profile, progression.Summary, bool, error)
	CheckLevelUp(ctx context.Context, profileID string) (*service.LevelUp, error)
}

type SessionStorage interface {
	Start(chatID int64, now time.Time)
	Record(chatID int64, grade entities.ReviewGrade, now time.Time)
	Finish(chatID int64) (storage.ReviewSession, bool)
}

type ReminderStorage interface {
	Store(chatID int64, messageID int, sentAt time.Time)
	Take(chatID int64) (storage.ReminderMessage, bool)
}
