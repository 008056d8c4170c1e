// Package stats derives learner statistics from a vocabulary collection and profile.
package stats

import (
	"math"
	"time"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
)

const recentDays = 7

// achievementRules are evaluated in order; each is a fixed threshold test.
var achievementRules = []struct {
	achievement entities.Achievement
	earned      func(entities.ProgressStats) bool
}{
	{entities.AchievementFirst10Words, func(s entities.ProgressStats) bool { return s.TotalWords >= 10 }},
	{entities.AchievementVocabularyBuilder, func(s entities.ProgressStats) bool { return s.TotalWords >= 50 }},
	{entities.AchievementQuickLearner, func(s entities.ProgressStats) bool { return s.WellKnownWords >= 5 }},
	{entities.AchievementWeekWarrior, func(s entities.ProgressStats) bool { return s.CurrentStreak >= 7 }},
}

// WordStats summarizes items at time now.
func WordStats(items []entities.VocabularyItem, now time.Time) entities.WordStats {
	var ws entities.WordStats
	ws.TotalWords = len(items)
	ws.WellKnownWords = countWellKnown(items)
	ws.AvgReviewCount = roundOne(averageRepetitions(items))

	for _, it := range items {
		if isRecent(it.AddedAt, now) {
			ws.RecentlyAdded++
		}
	}

	return ws
}

// ProgressStats merges WordStats with the counters kept on profile.
// A nil profile contributes zero counters and the default daily goal.
func ProgressStats(items []entities.VocabularyItem, profile *entities.Profile, now time.Time) entities.ProgressStats {
	ps := entities.ProgressStats{
		WordStats: WordStats(items, now),
		DailyGoal: entities.DefaultDailyGoal,
	}
	if profile != nil {
		ps.CurrentStreak = profile.Stats.CurrentStreak
		ps.ArticlesRead = profile.Stats.ArticlesRead
		ps.LastActivityDate = profile.Stats.LastActivityDate
		ps.DailyGoal = profile.Goal()
	}
	return ps
}

// Achievements returns the badges earned by the learner. They are recomputed
// on every call and never persisted.
func Achievements(items []entities.VocabularyItem, profile *entities.Profile, now time.Time) entities.Achievements {
	return achievementsFor(ProgressStats(items, profile, now))
}

// CompleteStats returns ProgressStats together with the achievements.
func CompleteStats(items []entities.VocabularyItem, profile *entities.Profile, now time.Time) entities.CompleteStats {
	ps := ProgressStats(items, profile, now)
	return entities.CompleteStats{
		ProgressStats: ps,
		Achievements:  achievementsFor(ps),
	}
}

// LearnerStats builds the progression engine input. AverageReviews keeps
// full precision.
func LearnerStats(items []entities.VocabularyItem, profile *entities.Profile, now time.Time) entities.LearnerStats {
	ps := ProgressStats(items, profile, now)
	return entities.LearnerStats{
		TotalVocabulary:  ps.TotalWords,
		WellKnownWords:   ps.WellKnownWords,
		RecentlyAdded:    ps.RecentlyAdded,
		AverageReviews:   averageRepetitions(items),
		CurrentStreak:    ps.CurrentStreak,
		ArticlesRead:     ps.ArticlesRead,
		LastActivityDate: ps.LastActivityDate,
		Achievements:     achievementsFor(ps),
	}
}

func achievementsFor(ps entities.ProgressStats) entities.Achievements {
	out := entities.Achievements{}
	for _, rule := range achievementRules {
		if rule.earned(ps) {
			out = append(out, rule.achievement)
		}
	}
	return out
}

func countWellKnown(items []entities.VocabularyItem) int {
	n := 0
	for _, it := range items {
		if it.IsWellKnown() {
			n++
		}
	}
	return n
}

func averageRepetitions(items []entities.VocabularyItem) float64 {
	if len(items) == 0 {
		return 0
	}
	sum := 0
	for _, it := range items {
		sum += max(it.Repetitions, 0)
	}
	return float64(sum) / float64(len(items))
}

// isRecent counts whole elapsed days, so an item added 7 days and 23 hours
// ago is still recent.
func isRecent(addedAt, now time.Time) bool {
	days := int(now.Sub(addedAt) / (24 * time.Hour))
	return days <= recentDays
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
