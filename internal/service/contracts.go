package service

import (
	"context"
	"time"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
)

// Clock returns the current time. Services never call time.Now directly.
type Clock func() time.Time

type ProfileRepository interface {
	List(ctx context.Context) ([]*entities.Profile, error)
	GetByID(ctx context.Context, id string) (*entities.Profile, error)
	GetByChatID(ctx context.Context, chatID int64) (*entities.Profile, error)
	Save(ctx context.Context, profile *entities.Profile) error
	Update(ctx context.Context, id string, fn func(*entities.Profile) error) (*entities.Profile, error)
}

type WordRepository interface {
	List(ctx context.Context, profileID string) ([]entities.VocabularyItem, error)
	Update(
		ctx context.Context,
		profileID string,
		fn func([]entities.VocabularyItem) ([]entities.VocabularyItem, error),
	) ([]entities.VocabularyItem, error)
}

type PreferencesRepository interface {
	CurrentProfileID(ctx context.Context) (string, error)
	SetCurrentProfileID(ctx context.Context, id string) error
}

// AppStateRepository manages reminder bookkeeping.
type AppStateRepository interface {
	Get(ctx context.Context) (*entities.AppState, error)
	Update(ctx context.Context, fn func(*entities.AppState) error) error
}

// ReminderNotifier sends reminder notifications to users.
type ReminderNotifier interface {
	SendReminder(chatID int64, payload entities.ReminderPayload) error
}

// LevelChecker runs the progression engine after learner activity.
type LevelChecker interface {
	CheckLevelUp(ctx context.Context, profileID string) (*LevelUp, error)
}

// ActivityRecorder updates the learner streak after a study action.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, profileID string) (int, error)
}
