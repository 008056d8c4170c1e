package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
	"github.com/aliskhannn/vocab-companion/internal/domain/srs"
)

// ReminderConfig controls the review reminder job.
type ReminderConfig struct {
	Schedule      string // cron spec, e.g. "0 * * * *"
	MaxConcurrent int
	Window        entities.ReminderWindow
	Location      *time.Location
}

// ReminderService periodically reminds learners who have cards due.
type ReminderService struct {
	profiles ProfileRepository
	words    WordRepository
	state    AppStateRepository
	notifier ReminderNotifier
	cfg      ReminderConfig
	now      Clock
	logger   *zap.Logger
}

// NewReminderService creates a new reminder service.
func NewReminderService(
	profiles ProfileRepository,
	words WordRepository,
	state AppStateRepository,
	cfg ReminderConfig,
	now Clock,
	logger *zap.Logger,
) *ReminderService {
	if cfg.Schedule == "" {
		cfg.Schedule = "0 * * * *"
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 10
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &ReminderService{
		profiles: profiles,
		words:    words,
		state:    state,
		cfg:      cfg,
		now:      now,
		logger:   logger,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Start runs the reminder schedule until ctx is cancelled.
func (s *ReminderService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(s.cfg.Location))

	_, err := c.AddFunc(s.cfg.Schedule, func() {
		s.logger.Debug("cron triggered: processing reminders")
		if _, err := s.SendDueReminders(ctx); err != nil {
			s.logger.Error("failed to send reminders", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	c.Start()
	s.logger.Info("reminder service started", zap.String("schedule", s.cfg.Schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("reminder service stopped")
	return nil
}

// SendDueReminders sends one reminder to every eligible learner and returns
// how many were sent.
func (s *ReminderService) SendDueReminders(ctx context.Context) (int, error) {
	if s.notifier == nil {
		return 0, errors.New("notifier not initialized")
	}

	now := s.now()
	if !s.cfg.Window.Contains(now.In(s.cfg.Location)) {
		s.logger.Debug("outside reminder window", zap.Time("now", now))
		return 0, nil
	}

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list profiles: %w", err)
	}

	state, err := s.state.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("get app state: %w", err)
	}

	candidates := make([]*entities.Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.ChatID != 0 && state.CanRemind(p, now, s.cfg.Location) {
			candidates = append(candidates, p)
		}
	}

	sent := s.processBatch(ctx, candidates, now)

	s.logger.Info("reminders processed",
		zap.Int("candidates", len(candidates)),
		zap.Int("total_sent", sent),
	)

	return sent, nil
}

// processBatch processes profiles concurrently.
func (s *ReminderService) processBatch(ctx context.Context, profiles []*entities.Profile, now time.Time) int {
	sem := make(chan struct{}, s.cfg.MaxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex
	sent := 0

	for _, p := range profiles {
		p := p
		wg.Add(1)
		sem <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			ok, err := s.processProfile(ctx, p, now)
			if err != nil {
				s.logger.Error("failed to process reminder",
					zap.String("profile_id", p.ID),
					zap.Error(err))
			}
			if ok {
				mu.Lock()
				sent++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return sent
}

// processProfile sends a reminder if the learner has due cards.
func (s *ReminderService) processProfile(ctx context.Context, p *entities.Profile, now time.Time) (bool, error) {
	items, err := s.words.List(ctx, p.ID)
	if err != nil {
		return false, fmt.Errorf("list words: %w", err)
	}

	due := srs.DueItems(items, now, 1)
	if len(due) == 0 {
		return false, nil
	}

	payload := entities.ReminderPayload{
		Profile:  p,
		DueCount: srs.CountDue(items, now),
		NextWord: due[0].Word,
	}

	if err := s.notifier.SendReminder(p.ChatID, payload); err != nil {
		return false, fmt.Errorf("send notification: %w", err)
	}

	err = s.state.Update(ctx, func(st *entities.AppState) error {
		st.MarkReminded(p.ID, now)
		return nil
	})
	if err != nil {
		return true, fmt.Errorf("mark reminded: %w", err)
	}

	s.logger.Debug("reminder sent",
		zap.String("profile_id", p.ID),
		zap.Int("due", payload.DueCount),
	)

	return true, nil
}
