package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
	"github.com/aliskhannn/vocab-companion/internal/domain/srs"
)

// WordInput is the display data of a word being saved.
type WordInput struct {
	Word          string
	Translation   string
	Context       string
	Pronunciation string
}

// ReviewResult is the outcome of grading one card.
type ReviewResult struct {
	Item    entities.VocabularyItem
	Grade   entities.ReviewGrade
	Streak  int
	LevelUp *LevelUp // nil unless the review triggered a promotion
}

// VocabularyService manages the saved words of a profile and runs reviews.
type VocabularyService struct {
	words    WordRepository
	activity ActivityRecorder
	levels   LevelChecker
	now      Clock
	logger   *zap.Logger
}

func NewVocabularyService(
	words WordRepository,
	activity ActivityRecorder,
	levels LevelChecker,
	now Clock,
	logger *zap.Logger,
) *VocabularyService {
	return &VocabularyService{
		words:    words,
		activity: activity,
		levels:   levels,
		now:      now,
		logger:   logger,
	}
}

// SaveWord adds a word to the collection. Saving a word that already exists
// (same text) merges its display data and keeps the review schedule. The
// boolean reports whether a new item was created.
func (s *VocabularyService) SaveWord(ctx context.Context, profileID string, in WordInput) (entities.VocabularyItem, bool, error) {
	in.Word = strings.TrimSpace(in.Word)
	in.Translation = strings.TrimSpace(in.Translation)
	if in.Word == "" || in.Translation == "" {
		return entities.VocabularyItem{}, false, ErrEmptyWord
	}

	var (
		saved   entities.VocabularyItem
		created bool
	)

	_, err := s.words.Update(ctx, profileID, func(items []entities.VocabularyItem) ([]entities.VocabularyItem, error) {
		incoming := entities.NewVocabularyItem(in.Word, in.Translation, s.now())
		incoming.Context = strings.TrimSpace(in.Context)
		incoming.Pronunciation = strings.TrimSpace(in.Pronunciation)

		i := slices.IndexFunc(items, func(it entities.VocabularyItem) bool { return it.Word == in.Word })
		if i >= 0 {
			items[i] = items[i].Merge(incoming)
			saved = items[i]
			return items, nil
		}

		created = true
		saved = incoming
		return append(items, incoming), nil
	})
	if err != nil {
		if saved.ID != "" {
			return saved, created, &SaveError{Op: "save word", Err: err}
		}
		return entities.VocabularyItem{}, false, fmt.Errorf("save word: %w", err)
	}

	s.logger.Debug("word saved",
		zap.String("profile_id", profileID),
		zap.String("item_id", saved.ID),
		zap.Bool("created", created),
	)

	return saved, created, nil
}

// ImportWords saves many words in a single store update. It returns how many
// items were created and how many existing ones were merged.
func (s *VocabularyService) ImportWords(ctx context.Context, profileID string, inputs []WordInput) (created, merged int, err error) {
	_, err = s.words.Update(ctx, profileID, func(items []entities.VocabularyItem) ([]entities.VocabularyItem, error) {
		created, merged = 0, 0
		now := s.now()

		for _, in := range inputs {
			word := strings.TrimSpace(in.Word)
			translation := strings.TrimSpace(in.Translation)
			if word == "" || translation == "" {
				continue
			}

			incoming := entities.NewVocabularyItem(word, translation, now)
			incoming.Context = strings.TrimSpace(in.Context)
			incoming.Pronunciation = strings.TrimSpace(in.Pronunciation)

			if i := slices.IndexFunc(items, func(it entities.VocabularyItem) bool { return it.Word == word }); i >= 0 {
				items[i] = items[i].Merge(incoming)
				merged++
				continue
			}

			items = append(items, incoming)
			created++
		}

		return items, nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("import words: %w", err)
	}

	s.logger.Info("words imported",
		zap.String("profile_id", profileID),
		zap.Int("created", created),
		zap.Int("merged", merged),
	)

	return created, merged, nil
}

// DeleteWord removes the item whose text is word.
func (s *VocabularyService) DeleteWord(ctx context.Context, profileID, word string) error {
	word = strings.TrimSpace(word)

	_, err := s.words.Update(ctx, profileID, func(items []entities.VocabularyItem) ([]entities.VocabularyItem, error) {
		i := slices.IndexFunc(items, func(it entities.VocabularyItem) bool { return it.Word == word })
		if i < 0 {
			return nil, ErrWordNotFound
		}
		return slices.Delete(items, i, i+1), nil
	})
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}

	return nil
}

// List returns the whole collection in insertion order.
func (s *VocabularyService) List(ctx context.Context, profileID string) ([]entities.VocabularyItem, error) {
	items, err := s.words.List(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return items, nil
}

// DueQueue returns up to limit due items in review order together with the
// total number of due items.
func (s *VocabularyService) DueQueue(ctx context.Context, profileID string, limit int) ([]entities.VocabularyItem, int, error) {
	items, err := s.List(ctx, profileID)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	return srs.DueItems(items, now, limit), srs.CountDue(items, now), nil
}

// Review grades the item itemID, persists its new schedule, records the
// activity for the streak and runs the level-up check. Grading a card that
// is not yet due fails with ErrNotDue.
//
// When only a save fails, the returned result carries the computed state and
// the error is a *SaveError.
func (s *VocabularyService) Review(
	ctx context.Context,
	profileID, itemID string,
	grade entities.ReviewGrade,
) (ReviewResult, error) {
	if !grade.IsValid() {
		return ReviewResult{}, fmt.Errorf("review: %w: %d", ErrInvalidGrade, int(grade))
	}

	result := ReviewResult{Grade: grade}
	computed := false

	_, err := s.words.Update(ctx, profileID, func(items []entities.VocabularyItem) ([]entities.VocabularyItem, error) {
		i := slices.IndexFunc(items, func(it entities.VocabularyItem) bool { return it.ID == itemID })
		if i < 0 {
			return nil, ErrWordNotFound
		}

		now := s.now()
		if !srs.IsDue(items[i], now) {
			return nil, ErrNotDue
		}

		items[i] = srs.Review(items[i], grade, now)
		result.Item = items[i]
		computed = true
		return items, nil
	})
	if err != nil {
		if computed {
			s.logger.Error("failed to save review",
				zap.String("profile_id", profileID),
				zap.String("item_id", itemID),
				zap.Error(err),
			)
			return result, &SaveError{Op: "review", Err: err}
		}
		return ReviewResult{}, fmt.Errorf("review: %w", err)
	}

	streak, err := s.activity.RecordActivity(ctx, profileID)
	if err != nil {
		s.logger.Warn("failed to record activity", zap.String("profile_id", profileID), zap.Error(err))
	}
	result.Streak = streak

	levelUp, err := s.levels.CheckLevelUp(ctx, profileID)
	if err != nil {
		s.logger.Warn("level-up check failed", zap.String("profile_id", profileID), zap.Error(err))
	}
	result.LevelUp = levelUp

	s.logger.Debug("card reviewed",
		zap.String("profile_id", profileID),
		zap.String("item_id", itemID),
		zap.Stringer("grade", grade),
		zap.Int("interval", result.Item.Interval),
		zap.Float64("ease_factor", result.Item.EaseFactor),
	)

	return result, nil
}
