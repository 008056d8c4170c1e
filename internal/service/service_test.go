package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
	"github.com/aliskhannn/vocab-companion/internal/repository"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// mockStore wraps a real store and lets tests fail selected operations.
type mockStore struct {
	repository.KVStore
	loadFunc   func(key string) error
	updateFunc func(key string) error // called after fn succeeded, before the write
}

func (m *mockStore) Load(ctx context.Context, key string) ([]byte, error) {
	if m.loadFunc != nil {
		if err := m.loadFunc(key); err != nil {
			return nil, err
		}
	}
	return m.KVStore.Load(ctx, key)
}

func (m *mockStore) Update(ctx context.Context, key string, fn repository.UpdateFunc) error {
	return m.KVStore.Update(ctx, key, func(cur []byte) ([]byte, error) {
		next, err := fn(cur)
		if err != nil {
			return nil, err
		}
		if m.updateFunc != nil {
			if err := m.updateFunc(key); err != nil {
				return nil, err
			}
		}
		return next, nil
	})
}

type mockNotifier struct {
	mu       sync.Mutex
	sendFunc func(chatID int64, payload entities.ReminderPayload) error
	sent     map[int64]entities.ReminderPayload
}

func (m *mockNotifier) SendReminder(chatID int64, payload entities.ReminderPayload) error {
	if m.sendFunc != nil {
		if err := m.sendFunc(chatID, payload); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sent == nil {
		m.sent = make(map[int64]entities.ReminderPayload)
	}
	m.sent[chatID] = payload
	return nil
}

type fixture struct {
	store    *mockStore
	clock    *fakeClock
	profiles *repository.ProfileRepository
	words    *repository.WordRepository
	state    *repository.AppStateRepository
	prefs    *repository.PreferencesRepository

	profileSvc  *ProfileService
	progressSvc *ProgressService
	vocabSvc    *VocabularyService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fs, err := repository.NewFileStore(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)

	store := &mockStore{KVStore: fs}
	clock := &fakeClock{now: t0}
	logger := zap.NewNop()

	f := &fixture{
		store:    store,
		clock:    clock,
		profiles: repository.NewProfileRepository(store),
		words:    repository.NewWordRepository(store),
		state:    repository.NewAppStateRepository(store),
		prefs:    repository.NewPreferencesRepository(store),
	}

	f.profileSvc = NewProfileService(f.profiles, f.prefs, clock.Now, time.UTC, logger)
	f.progressSvc = NewProgressService(f.profiles, f.words, clock.Now, logger)
	f.vocabSvc = NewVocabularyService(f.words, f.profileSvc, f.progressSvc, clock.Now, logger)

	return f
}

func (f *fixture) newProfile(t *testing.T, chatID int64) *entities.Profile {
	t.Helper()
	p, err := f.profileSvc.Create(context.Background(), "learner", chatID)
	require.NoError(t, err)
	return p
}

// seedWords stores n words that have each been recalled reps times.
func (f *fixture) seedWords(t *testing.T, profileID string, n, reps int) []entities.VocabularyItem {
	t.Helper()

	items := make([]entities.VocabularyItem, 0, n)
	for i := 0; i < n; i++ {
		it := entities.NewVocabularyItem(fmt.Sprintf("word-%d", i), fmt.Sprintf("translation-%d", i), t0.AddDate(0, 0, -30))
		it.Repetitions = reps
		items = append(items, it)
	}

	require.NoError(t, f.words.Replace(context.Background(), profileID, items))
	return items
}

var errBoom = errors.New("boom")
