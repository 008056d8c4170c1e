package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
	"github.com/aliskhannn/vocab-companion/internal/domain/progression"
	"github.com/aliskhannn/vocab-companion/internal/repository"
)

func TestProgressService_CompleteStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.newProfile(t, 1)
	f.seedWords(t, p.ID, 12, 3)

	_, err := f.profileSvc.RecordActivity(ctx, p.ID)
	require.NoError(t, err)

	cs, err := f.progressSvc.CompleteStats(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, 12, cs.TotalWords)
	assert.Equal(t, 12, cs.WellKnownWords)
	assert.Equal(t, 0, cs.RecentlyAdded)
	assert.InDelta(t, 3.0, cs.AvgReviewCount, 1e-9)
	assert.Equal(t, 1, cs.CurrentStreak)
	assert.Equal(t, "2025-06-15", cs.LastActivityDate)
	assert.Equal(t, entities.Achievements{
		entities.AchievementFirst10Words,
		entities.AchievementQuickLearner,
	}, cs.Achievements)
}

func TestProgressService_CompleteStatsUnknownProfile(t *testing.T) {
	f := newFixture(t)

	_, err := f.progressSvc.CompleteStats(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProgressService_CheckLevelUp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.newProfile(t, 1)

	up, err := f.progressSvc.CheckLevelUp(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, up)

	f.seedWords(t, p.ID, 5, 3)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		_, err := f.profileSvc.MarkArticleRead(ctx, p.ID, id)
		require.NoError(t, err)
	}

	up, err = f.progressSvc.CheckLevelUp(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, up)
	assert.Equal(t, entities.TierBeginner, up.From)
	assert.Equal(t, entities.TierElementary, up.To)

	up, err = f.progressSvc.CheckLevelUp(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, up)
}

func TestProgressService_CheckLevelUpSkipsOnLoadFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.newProfile(t, 1)
	f.seedWords(t, p.ID, 5, 3)

	f.store.loadFunc = func(key string) error {
		if key == repository.KeySavedWords {
			return errBoom
		}
		return nil
	}

	up, err := f.progressSvc.CheckLevelUp(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, up)

	f.store.loadFunc = nil
	stored, err := f.profileSvc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TierBeginner, stored.Level())
}

func TestProgressService_ProgressToNextLevel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.newProfile(t, 1)
	f.seedWords(t, p.ID, 5, 0)

	profile, summary, ok, err := f.progressSvc.ProgressToNextLevel(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, p.ID, profile.ID)
	assert.Equal(t, entities.TierElementary, summary.NextTier)
	assert.Equal(t, 1, summary.MetCount)
	assert.True(t, summary.Progress[progression.CriterionVocabulary].Met)
	assert.False(t, summary.Progress[progression.CriterionAverageReviews].Met)
	assert.InDelta(t, 20.0, summary.OverallProgress, 1e-9)
}

func TestProgressService_ProgressAtTopTier(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.newProfile(t, 1)

	_, err := f.profiles.Update(ctx, p.ID, func(p *entities.Profile) error {
		p.CurrentLevel = entities.TierAdvanced
		return nil
	})
	require.NoError(t, err)

	_, _, ok, err := f.progressSvc.ProgressToNextLevel(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	up, err := f.progressSvc.CheckLevelUp(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, up)
}
