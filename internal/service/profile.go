package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
	"github.com/aliskhannn/vocab-companion/internal/domain/stats"
)

// ProfileService manages learner profiles and their activity counters.
type ProfileService struct {
	profiles ProfileRepository
	prefs    PreferencesRepository
	now      Clock
	loc      *time.Location
	logger   *zap.Logger
}

// NewProfileService creates a ProfileService. loc is the reference location
// for calendar-day streaks.
func NewProfileService(
	profiles ProfileRepository,
	prefs PreferencesRepository,
	now Clock,
	loc *time.Location,
	logger *zap.Logger,
) *ProfileService {
	if loc == nil {
		loc = time.UTC
	}
	return &ProfileService{
		profiles: profiles,
		prefs:    prefs,
		now:      now,
		loc:      loc,
		logger:   logger,
	}
}

// Create saves a new Beginner profile. The first profile created becomes
// the current one.
func (s *ProfileService) Create(ctx context.Context, name string, chatID int64) (*entities.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Learner"
	}

	p := entities.NewProfile(name, s.now())
	p.ChatID = chatID

	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	if _, err := s.prefs.CurrentProfileID(ctx); errors.Is(err, ErrProfileNotFound) {
		if err := s.prefs.SetCurrentProfileID(ctx, p.ID); err != nil {
			s.logger.Warn("failed to set current profile", zap.String("profile_id", p.ID), zap.Error(err))
		}
	}

	s.logger.Info("profile created",
		zap.String("profile_id", p.ID),
		zap.Int64("chat_id", chatID),
	)

	return p, nil
}

func (s *ProfileService) Get(ctx context.Context, id string) (*entities.Profile, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// List returns every profile in creation order.
func (s *ProfileService) List(ctx context.Context) ([]*entities.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// Current returns the profile selected in preferences.
func (s *ProfileService) Current(ctx context.Context) (*entities.Profile, error) {
	id, err := s.prefs.CurrentProfileID(ctx)
	if err != nil {
		return nil, fmt.Errorf("get current profile: %w", err)
	}
	return s.Get(ctx, id)
}

// EnsureForChat returns the profile bound to chatID, creating one if none
// exists. The boolean reports whether a profile was created.
func (s *ProfileService) EnsureForChat(ctx context.Context, chatID int64, name string) (*entities.Profile, bool, error) {
	p, err := s.profiles.GetByChatID(ctx, chatID)
	if err == nil {
		return p, false, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, false, fmt.Errorf("get profile by chat: %w", err)
	}

	p, err = s.Create(ctx, name, chatID)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// GetByChat returns the profile bound to chatID.
func (s *ProfileService) GetByChat(ctx context.Context, chatID int64) (*entities.Profile, error) {
	p, err := s.profiles.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("get profile by chat: %w", err)
	}
	return p, nil
}

// RecordActivity updates the streak for today and returns the new value.
func (s *ProfileService) RecordActivity(ctx context.Context, profileID string) (int, error) {
	var streak int
	_, err := s.profiles.Update(ctx, profileID, func(p *entities.Profile) error {
		streak = stats.UpdateStreak(p, s.today())
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("record activity: %w", err)
	}
	return streak, nil
}

// MarkArticleRead adds articleID to the read set of the profile. Reading a
// new article counts as activity for the streak. It reports whether the
// article was new.
func (s *ProfileService) MarkArticleRead(ctx context.Context, profileID, articleID string) (bool, error) {
	articleID = strings.TrimSpace(articleID)
	if articleID == "" {
		return false, errors.New("article id is required")
	}

	added := false
	_, err := s.profiles.Update(ctx, profileID, func(p *entities.Profile) error {
		if !p.MarkArticleRead(articleID) {
			return nil
		}
		added = true
		stats.UpdateStreak(p, s.today())
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("mark article read: %w", err)
	}

	if added {
		s.logger.Debug("article marked as read",
			zap.String("profile_id", profileID),
			zap.String("article_id", articleID),
		)
	}

	return added, nil
}

// IsArticleRead reports whether the profile has read articleID.
func (s *ProfileService) IsArticleRead(ctx context.Context, profileID, articleID string) (bool, error) {
	p, err := s.Get(ctx, profileID)
	if err != nil {
		return false, err
	}
	return p.HasReadArticle(strings.TrimSpace(articleID)), nil
}

// SetDailyGoal changes the daily word goal. Non-positive values restore the default.
func (s *ProfileService) SetDailyGoal(ctx context.Context, profileID string, goal int) error {
	_, err := s.profiles.Update(ctx, profileID, func(p *entities.Profile) error {
		if goal <= 0 {
			goal = entities.DefaultDailyGoal
		}
		p.DailyGoal = goal
		return nil
	})
	if err != nil {
		return fmt.Errorf("set daily goal: %w", err)
	}
	return nil
}

func (s *ProfileService) today() time.Time {
	return s.now().In(s.loc)
}
