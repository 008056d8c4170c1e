package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestProfileRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(newMemStore(t))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	p := entities.NewProfile("Ann", t0)
	p.ChatID = 42
	require.NoError(t, repo.Save(ctx, p))
	require.NoError(t, repo.Save(ctx, entities.NewProfile("Bob", t0)))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, entities.TierBeginner, got.CurrentLevel)

	byChat, err := repo.GetByChatID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, p.ID, byChat.ID)

	_, err = repo.GetByChatID(ctx, 7)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestProfileRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(newMemStore(t))

	p := entities.NewProfile("Ann", t0)
	require.NoError(t, repo.Save(ctx, p))

	updated, err := repo.Update(ctx, p.ID, func(p *entities.Profile) error {
		p.CurrentLevel = entities.TierElementary
		p.MarkArticleRead("a1")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, entities.TierElementary, updated.CurrentLevel)

	stored, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TierElementary, stored.CurrentLevel)
	assert.Equal(t, 1, stored.Stats.ArticlesRead)

	boom := errors.New("boom")
	_, err = repo.Update(ctx, p.ID, func(p *entities.Profile) error {
		p.CurrentLevel = entities.TierAdvanced
		return boom
	})
	require.ErrorIs(t, err, boom)

	stored, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TierElementary, stored.CurrentLevel)

	_, err = repo.Update(ctx, "missing", func(*entities.Profile) error { return nil })
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileRepository_ProfileWithoutLevel(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)
	require.NoError(t, s.Save(ctx, KeyProfiles, []byte(`[
		{"id":"legacy","name":"Old","stats":{"articlesRead":2,"currentStreak":1},"createdAt":"2025-01-01T00:00:00Z"},
		{"id":"p2","name":"New","currentLevel":"Elementary","stats":{"articlesRead":0,"currentStreak":0},"createdAt":"2025-06-01T00:00:00Z"}
	]`)))
	repo := NewProfileRepository(s)

	tests := []struct {
		name string
		fn   func(p *entities.Profile) error
	}{
		{
			name: "record activity",
			fn: func(p *entities.Profile) error {
				p.Stats.CurrentStreak = 1
				p.Stats.LastActivityDate = "2025-06-15"
				return nil
			},
		},
		{
			name: "mark article read",
			fn: func(p *entities.Profile) error {
				p.MarkArticleRead("a1")
				return nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Update(ctx, "p2", tt.fn)
			require.NoError(t, err)

			legacy, err := repo.GetByID(ctx, "legacy")
			require.NoError(t, err)
			assert.Equal(t, entities.TierBeginner, legacy.CurrentLevel)
			assert.Equal(t, 2, legacy.Stats.ArticlesRead)

			other, err := repo.GetByID(ctx, "p2")
			require.NoError(t, err)
			assert.Equal(t, entities.TierElementary, other.CurrentLevel)
		})
	}

	require.NoError(t, repo.Save(ctx, &entities.Profile{ID: "bare", Name: "Bare"}))
	bare, err := repo.GetByID(ctx, "bare")
	require.NoError(t, err)
	assert.Equal(t, entities.TierBeginner, bare.CurrentLevel)
}

func TestWordRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewWordRepository(newSQLiteStore(t))

	items, err := repo.List(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, items)

	w := entities.NewVocabularyItem("你好", "hello", t0)
	require.NoError(t, repo.Replace(ctx, "p1", []entities.VocabularyItem{w}))
	require.NoError(t, repo.Replace(ctx, "p2", []entities.VocabularyItem{entities.NewVocabularyItem("谢谢", "thanks", t0)}))

	items, err = repo.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, w.ID, items[0].ID)
	assert.True(t, items[0].NextReviewDate.Equal(t0))
	assert.Nil(t, items[0].LastReviewed)

	updated, err := repo.Update(ctx, "p1", func(items []entities.VocabularyItem) ([]entities.VocabularyItem, error) {
		items[0].Repetitions = 3
		return items, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, updated[0].Repetitions)

	items, err = repo.List(ctx, "p2")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "谢谢", items[0].Word)
}

func TestWordRepository_ReadsLegacyZeroFields(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t)
	require.NoError(t, s.Save(ctx, KeySavedWords, []byte(`{"p1":[{"id":"x","word":"书","translation":"book","addedAt":"2025-06-01T00:00:00Z"}]}`)))

	items, err := NewWordRepository(s).List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, items, 1)

	n := items[0].Normalized()
	assert.Equal(t, entities.DefaultEaseFactor, n.EaseFactor)
	assert.Equal(t, entities.DefaultInterval, n.Interval)
}

func TestAppStateRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAppStateRepository(newMemStore(t))

	state, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.LastReminderAt)

	require.NoError(t, repo.Update(ctx, func(s *entities.AppState) error {
		s.MarkReminded("p1", t0)
		return nil
	}))

	state, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.True(t, state.LastReminderAt["p1"].Equal(t0))
}

func TestPreferencesRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPreferencesRepository(newMemStore(t))

	_, err := repo.CurrentProfileID(ctx)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	require.NoError(t, repo.SetCurrentProfileID(ctx, "p1"))

	id, err := repo.CurrentProfileID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "p1", id)

	require.NoError(t, repo.SetCurrentProfileID(ctx, ""))
	_, err = repo.CurrentProfileID(ctx)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
