package entities

import "slices"

// Achievement is a named badge earned by crossing a fixed threshold.
type Achievement string

const (
	AchievementFirst10Words      Achievement = "first10Words"
	AchievementVocabularyBuilder Achievement = "vocabularyBuilder"
	AchievementQuickLearner      Achievement = "quickLearner"
	AchievementWeekWarrior       Achievement = "weekWarrior"
)

// Achievements is the set of badges a learner currently holds.
type Achievements []Achievement

// Has reports whether a is in the set.
func (as Achievements) Has(a Achievement) bool {
	return slices.Contains(as, a)
}

// WordStats summarizes a vocabulary collection.
type WordStats struct {
	TotalWords     int     `json:"totalWords"`
	WellKnownWords int     `json:"wellKnownWords"`
	RecentlyAdded  int     `json:"recentlyAdded"`
	AvgReviewCount float64 `json:"avgReviewCount"` // rounded to one decimal
}

// ProgressStats is WordStats merged with the profile counters.
type ProgressStats struct {
	WordStats
	CurrentStreak    int    `json:"currentStreak"`
	ArticlesRead     int    `json:"articlesRead"`
	LastActivityDate string `json:"lastActivityDate,omitempty"`
	DailyGoal        int    `json:"dailyGoal"`
}

// CompleteStats is ProgressStats plus the achievements derived from it.
type CompleteStats struct {
	ProgressStats
	Achievements Achievements `json:"achievements"`
}

// LearnerStats is the input of the progression engine. It is always derived
// from the vocabulary collection and profile, never stored.
type LearnerStats struct {
	TotalVocabulary  int
	WellKnownWords   int
	RecentlyAdded    int
	AverageReviews   float64 // full precision
	CurrentStreak    int
	ArticlesRead     int
	LastActivityDate string
	Achievements     Achievements
}
