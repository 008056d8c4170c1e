package entities

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format of Profile activity dates.
const DateLayout = "2006-01-02"

// DefaultDailyGoal is the daily word goal of a profile that never set one.
const DefaultDailyGoal = 30

// ProfileStats holds the learner counters owned by the stats collaborator.
type ProfileStats struct {
	ArticlesRead     int    `json:"articlesRead"`
	CurrentStreak    int    `json:"currentStreak"`
	LastActivityDate string `json:"lastActivityDate,omitempty"` // YYYY-MM-DD, empty before any activity
}

// Profile is a learner.
type Profile struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	ChatID         int64        `json:"chatId,omitempty"` // Telegram chat bound to the profile
	CurrentLevel   SkillTier    `json:"currentLevel"`
	DailyGoal      int          `json:"dailyGoal,omitempty"`
	Stats          ProfileStats `json:"stats"`
	ReadArticleIDs []string     `json:"readArticleIds,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// NewProfile creates a Beginner profile with the default daily goal.
func NewProfile(name string, now time.Time) *Profile {
	return &Profile{
		ID:           uuid.NewString(),
		Name:         name,
		CurrentLevel: TierBeginner,
		DailyGoal:    DefaultDailyGoal,
		CreatedAt:    now,
	}
}

// Level returns the current tier, treating a missing level as Beginner.
func (p *Profile) Level() SkillTier {
	if p.CurrentLevel == 0 {
		return TierBeginner
	}
	return p.CurrentLevel
}

// UnmarshalJSON decodes a profile, setting a missing level to Beginner.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type profile Profile
	var v profile
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.CurrentLevel == 0 {
		v.CurrentLevel = TierBeginner
	}
	*p = Profile(v)
	return nil
}

// Goal returns the daily goal, falling back to DefaultDailyGoal.
func (p *Profile) Goal() int {
	if p.DailyGoal <= 0 {
		return DefaultDailyGoal
	}
	return p.DailyGoal
}

// HasReadArticle reports whether articleID is in the read set.
func (p *Profile) HasReadArticle(articleID string) bool {
	return slices.Contains(p.ReadArticleIDs, articleID)
}

// MarkArticleRead adds articleID to the read set and keeps ArticlesRead in
// sync with its size. It returns false if the article was already read.
func (p *Profile) MarkArticleRead(articleID string) bool {
	if p.HasReadArticle(articleID) {
		return false
	}
	p.ReadArticleIDs = append(p.ReadArticleIDs, articleID)
	p.Stats.ArticlesRead = len(p.ReadArticleIDs)
	return true
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	out := *p
	out.ReadArticleIDs = slices.Clone(p.ReadArticleIDs)
	return &out
}
