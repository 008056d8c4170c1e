package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
	"github.com/aliskhannn/vocab-companion/internal/domain/progression"
	"github.com/aliskhannn/vocab-companion/internal/domain/stats"
)

// LevelUp describes a promotion that has been persisted.
type LevelUp struct {
	From entities.SkillTier
	To   entities.SkillTier
}

// ProgressService computes learner statistics and applies promotions.
type ProgressService struct {
	profiles ProfileRepository
	words    WordRepository
	now      Clock
	logger   *zap.Logger
}

func NewProgressService(profiles ProfileRepository, words WordRepository, now Clock, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		profiles: profiles,
		words:    words,
		now:      now,
		logger:   logger,
	}
}

// CompleteStats returns the display statistics of a profile.
func (s *ProgressService) CompleteStats(ctx context.Context, profileID string) (entities.CompleteStats, error) {
	profile, items, err := s.load(ctx, profileID)
	if err != nil {
		return entities.CompleteStats{}, err
	}
	return stats.CompleteStats(items, profile, s.now()), nil
}

// LearnerStats returns the progression engine input of a profile.
func (s *ProgressService) LearnerStats(ctx context.Context, profileID string) (entities.LearnerStats, error) {
	profile, items, err := s.load(ctx, profileID)
	if err != nil {
		return entities.LearnerStats{}, err
	}
	return stats.LearnerStats(items, profile, s.now()), nil
}

// ProgressToNextLevel reports how close the learner is to the next tier. The
// boolean is false when the learner is already at the top tier.
func (s *ProgressService) ProgressToNextLevel(ctx context.Context, profileID string) (*entities.Profile, progression.Summary, bool, error) {
	profile, items, err := s.load(ctx, profileID)
	if err != nil {
		return nil, progression.Summary{}, false, err
	}

	learner := stats.LearnerStats(items, profile, s.now())
	summary, ok := progression.ProgressToNextLevel(profile.Level(), learner)
	return profile, summary, ok, nil
}

// CheckLevelUp evaluates promotion eligibility and persists the new tier
// when the learner qualifies. It returns nil when nothing changed.
//
// A failure to load statistics skips the check for this cycle and is only
// logged. A failure to persist the promotion is returned.
func (s *ProgressService) CheckLevelUp(ctx context.Context, profileID string) (*LevelUp, error) {
	profile, items, err := s.load(ctx, profileID)
	if err != nil {
		s.logger.Warn("skipping level-up check",
			zap.String("profile_id", profileID),
			zap.Error(err),
		)
		return nil, nil
	}

	report, ok := progression.CheckEligibility(profile.Level(), stats.LearnerStats(items, profile, s.now()))
	if !ok || !report.Eligible {
		return nil, nil
	}

	promoted := false
	_, err = s.profiles.Update(ctx, profileID, func(p *entities.Profile) error {
		promoted = progression.Promote(p, report)
		return nil
	})
	if err != nil {
		return nil, &SaveError{Op: "level up", Err: err}
	}
	if !promoted {
		return nil, nil
	}

	s.logger.Info("learner promoted",
		zap.String("profile_id", profileID),
		zap.Stringer("from", report.From),
		zap.Stringer("to", report.NextTier),
	)

	return &LevelUp{From: report.From, To: report.NextTier}, nil
}

func (s *ProgressService) load(ctx context.Context, profileID string) (*entities.Profile, []entities.VocabularyItem, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, nil, fmt.Errorf("load profile: %w", err)
	}

	items, err := s.words.List(ctx, profileID)
	if err != nil {
		return nil, nil, fmt.Errorf("load words: %w", err)
	}

	return profile, items, nil
}
