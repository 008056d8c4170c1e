package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
)

func newReminderService(f *fixture, window entities.ReminderWindow) (*ReminderService, *mockNotifier) {
	svc := NewReminderService(f.profiles, f.words, f.state, ReminderConfig{
		MaxConcurrent: 2,
		Window:        window,
		Location:      time.UTC,
	}, f.clock.Now, zap.NewNop())

	n := &mockNotifier{}
	svc.SetNotifier(n)
	return svc, n
}

func TestReminderService_SendDueReminders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	due := f.newProfile(t, 10)
	f.seedWords(t, due.ID, 3, 0)

	nothingDue := f.newProfile(t, 20)
	items := f.seedWords(t, nothingDue.ID, 1, 2)
	items[0].NextReviewDate = ptr(t0.AddDate(0, 0, 3))
	require.NoError(t, f.words.Replace(ctx, nothingDue.ID, items))

	noChat := f.newProfile(t, 0)
	f.seedWords(t, noChat.ID, 1, 0)

	activeToday := f.newProfile(t, 30)
	f.seedWords(t, activeToday.ID, 1, 0)
	_, err := f.profileSvc.RecordActivity(ctx, activeToday.ID)
	require.NoError(t, err)

	svc, n := newReminderService(f, entities.ReminderWindow{})

	sent, err := svc.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Contains(t, n.sent, int64(10))
	assert.Equal(t, 3, n.sent[10].DueCount)
	assert.Equal(t, "word-0", n.sent[10].NextWord)

	// at most one reminder per day
	f.clock.Advance(time.Hour)
	sent, err = svc.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)

	// the next day both learners with due cards are reminded
	f.clock.Advance(24 * time.Hour)
	sent, err = svc.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Contains(t, n.sent, int64(30))
}

func TestReminderService_OutsideWindow(t *testing.T) {
	f := newFixture(t)
	p := f.newProfile(t, 10)
	f.seedWords(t, p.ID, 1, 0)

	svc, n := newReminderService(f, entities.ReminderWindow{StartHour: 18, EndHour: 21})

	sent, err := svc.SendDueReminders(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, n.sent)
}

func TestReminderService_NotifierFailureIsNotRecorded(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.newProfile(t, 10)
	f.seedWords(t, p.ID, 1, 0)

	svc, n := newReminderService(f, entities.ReminderWindow{})
	n.sendFunc = func(int64, entities.ReminderPayload) error { return errBoom }

	sent, err := svc.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)

	state, err := f.state.Get(ctx)
	require.NoError(t, err)
	assert.NotContains(t, state.LastReminderAt, p.ID)
}

func TestReminderService_RequiresNotifier(t *testing.T) {
	f := newFixture(t)
	svc := NewReminderService(f.profiles, f.words, f.state, ReminderConfig{}, f.clock.Now, zap.NewNop())

	_, err := svc.SendDueReminders(context.Background())
	assert.Error(t, err)
}

func ptr[T any](v T) *T { return &v }
