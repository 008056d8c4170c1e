package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
	"github.com/aliskhannn/vocab-companion/internal/repository"
)

func TestVocabularyService_SaveWordMergesByText(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.newProfile(t, 1)

	first, created, err := f.vocabSvc.SaveWord(ctx, p.ID, WordInput{Word: "你好", Translation: "hello"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, entities.DefaultEaseFactor, first.EaseFactor)
	require.NotNil(t, first.NextReviewDate)
	assert.True(t, first.NextReviewDate.Equal(t0))

	f.clock.Advance(time.Hour)
	merged, created, err := f.vocabSvc.SaveWord(ctx, p.ID, WordInput{Word: " 你好 ", Translation: "hi", Context: "你好，世界"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, "hi", merged.Translation)
	assert.Equal(t, "你好，世界", merged.Context)
	assert.True(t, merged.AddedAt.Equal(t0))

	items, err := f.vocabSvc.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestVocabularyService_SaveWordRequiresText(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.vocabSvc.SaveWord(context.Background(), "p", WordInput{Word: " ", Translation: "x"})
	assert.ErrorIs(t, err, ErrEmptyWord)
}

func TestVocabularyService_ImportWords(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.newProfile(t, 1)

	_, _, err := f.vocabSvc.SaveWord(ctx, p.ID, WordInput{Word: "书", Translation: "book"})
	require.NoError(t, err)

	created, merged, err := f.vocabSvc.ImportWords(ctx, p.ID, []WordInput{
		{Word: "书", Translation: "books"},
		{Word: "猫", Translation: "cat"},
		{Word: "", Translation: "skipped"},
		{Word: "狗", Translation: "dog", Pronunciation: "gǒu"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 1, merged)

	items, err := f.vocabSvc.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "books", items[0].Translation)
	assert.Equal(t, "gǒu", items[2].Pronunciation)
}

func TestVocabularyService_DeleteWord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.newProfile(t, 1)
	f.seedWords(t, p.ID, 2, 0)

	require.NoError(t, f.vocabSvc.DeleteWord(ctx, p.ID, "word-0"))
	assert.ErrorIs(t, f.vocabSvc.DeleteWord(ctx, p.ID, "word-0"), ErrWordNotFound)

	items, err := f.vocabSvc.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "word-1", items[0].Word)
}

func TestVocabularyService_Review(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.newProfile(t, 1)

	item, _, err := f.vocabSvc.SaveWord(ctx, p.ID, WordInput{Word: "谢谢", Translation: "thanks"})
	require.NoError(t, err)

	res, err := f.vocabSvc.Review(ctx, p.ID, item.ID, entities.GradeGood)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Item.Interval)
	assert.Equal(t, 1, res.Item.Repetitions)
	assert.InDelta(t, 2.36, res.Item.EaseFactor, 1e-9)
	assert.True(t, res.Item.NextReviewDate.Equal(t0.AddDate(0, 0, 1)))
	assert.True(t, res.Item.LastReviewed.Equal(t0))
	assert.Equal(t, 1, res.Streak)
	assert.Nil(t, res.LevelUp)

	stored, err := f.vocabSvc.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Item, stored[0])

	due, total, err := f.vocabSvc.DueQueue(ctx, p.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, due)
	assert.Zero(t, total)
}

func TestVocabularyService_ReviewAgainIsDueInAMinute(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.newProfile(t, 1)
	items := f.seedWords(t, p.ID, 1, 4)

	res, err := f.vocabSvc.Review(ctx, p.ID, items[0].ID, entities.GradeAgain)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Item.Repetitions)
	assert.Equal(t, 1, res.Item.Interval)

	f.clock.Advance(time.Minute)
	due, total, err := f.vocabSvc.DueQueue(ctx, p.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, items[0].ID, due[0].ID)
}

func TestVocabularyService_ReviewErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.newProfile(t, 1)
	items := f.seedWords(t, p.ID, 1, 0)

	_, err := f.vocabSvc.Review(ctx, p.ID, items[0].ID, entities.ReviewGrade(9))
	assert.ErrorIs(t, err, ErrInvalidGrade)

	_, err = f.vocabSvc.Review(ctx, p.ID, "missing", entities.GradeGood)
	assert.ErrorIs(t, err, ErrWordNotFound)
	assert.False(t, IsSaveWarning(err))

	stored, err := f.vocabSvc.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, items[0].Repetitions, stored[0].Repetitions)
}

func TestVocabularyService_ReviewRejectsCardNotDue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.newProfile(t, 1)
	items := f.seedWords(t, p.ID, 1, 0)

	first, err := f.vocabSvc.Review(ctx, p.ID, items[0].ID, entities.GradeGood)
	require.NoError(t, err)
	require.Equal(t, 1, first.Item.Interval)

	tests := []struct {
		name    string
		advance time.Duration
		wantErr error
	}{
		{name: "same moment", wantErr: ErrNotDue},
		{name: "an hour later", advance: time.Hour, wantErr: ErrNotDue},
		{name: "next day", advance: 23 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.clock.Advance(tt.advance)

			res, err := f.vocabSvc.Review(ctx, p.ID, items[0].ID, entities.GradeGood)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, IsSaveWarning(err))

				stored, err := f.vocabSvc.List(ctx, p.ID)
				require.NoError(t, err)
				assert.Equal(t, first.Item, stored[0])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2, res.Item.Repetitions)
			assert.Equal(t, 6, res.Item.Interval)
		})
	}
}

func TestVocabularyService_ReviewSaveFailureKeepsComputedState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.newProfile(t, 1)
	items := f.seedWords(t, p.ID, 1, 0)

	f.store.updateFunc = func(key string) error {
		if key == repository.KeySavedWords {
			return errBoom
		}
		return nil
	}

	res, err := f.vocabSvc.Review(ctx, p.ID, items[0].ID, entities.GradeEasy)
	require.Error(t, err)
	assert.True(t, IsSaveWarning(err))
	assert.ErrorIs(t, err, errBoom)

	assert.Equal(t, 1, res.Item.Repetitions)
	assert.True(t, res.Item.NextReviewDate.Equal(t0.AddDate(0, 0, 4)))

	f.store.updateFunc = nil
	stored, err := f.vocabSvc.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored[0].Repetitions)
}

func TestVocabularyService_ReviewTriggersLevelUp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.newProfile(t, 1)
	items := f.seedWords(t, p.ID, 5, 3)

	_, err := f.profiles.Update(ctx, p.ID, func(p *entities.Profile) error {
		for _, id := range []string{"a", "b", "c", "d", "e"} {
			p.MarkArticleRead(id)
		}
		return nil
	})
	require.NoError(t, err)

	res, err := f.vocabSvc.Review(ctx, p.ID, items[0].ID, entities.GradeGood)
	require.NoError(t, err)

	require.NotNil(t, res.LevelUp)
	assert.Equal(t, LevelUp{From: entities.TierBeginner, To: entities.TierElementary}, *res.LevelUp)

	stored, err := f.profileSvc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TierElementary, stored.CurrentLevel)

	// the next review does not promote again
	res, err = f.vocabSvc.Review(ctx, p.ID, items[1].ID, entities.GradeGood)
	require.NoError(t, err)
	assert.Nil(t, res.LevelUp)
}
