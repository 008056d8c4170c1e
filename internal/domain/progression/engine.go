// Package progression decides when a learner may advance to the next skill tier.
package progression

import (
	"fmt"
	"math"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
)

// Criterion names one promotion requirement.
type Criterion string

const (
	CriterionVocabulary     Criterion = "vocabulary"
	CriterionWellKnownWords Criterion = "wellKnownWords"
	CriterionArticlesRead   Criterion = "articlesRead"
	CriterionAverageReviews Criterion = "averageReviews"
	CriterionCurrentStreak  Criterion = "currentStreak"
)

// Criteria lists every criterion in display order.
var Criteria = []Criterion{
	CriterionVocabulary,
	CriterionWellKnownWords,
	CriterionArticlesRead,
	CriterionAverageReviews,
	CriterionCurrentStreak,
}

// CriterionProgress compares one learner statistic with its requirement.
type CriterionProgress struct {
	Current  float64 `json:"current"`
	Required float64 `json:"required"`
	Met      bool    `json:"met"`
}

// Display formats the current value. Fractional values are rounded to one
// decimal for display only.
func (p CriterionProgress) Display() string {
	if p.Current == math.Trunc(p.Current) {
		return fmt.Sprintf("%d", int64(p.Current))
	}
	return fmt.Sprintf("%.1f", p.Current)
}

// Report is the eligibility of a learner for the tier after From.
type Report struct {
	From     entities.SkillTier
	Eligible bool
	NextTier entities.SkillTier
	Criteria entities.PromotionCriteria
	Progress map[Criterion]CriterionProgress
}

// Summary extends Report with an aggregate view of met criteria.
type Summary struct {
	Report
	MetCount        int
	Total           int
	OverallProgress float64 // percentage of met criteria
}

// CheckEligibility evaluates stats against the criteria of the tier after
// current. It returns false when current is terminal or unrecognized.
func CheckEligibility(current entities.SkillTier, stats entities.LearnerStats) (Report, bool) {
	next, ok := current.Next()
	if !ok {
		return Report{}, false
	}
	c, ok := next.Criteria()
	if !ok {
		return Report{}, false
	}

	progress := map[Criterion]CriterionProgress{
		CriterionVocabulary:     atLeast(float64(stats.TotalVocabulary), float64(c.MinVocabulary)),
		CriterionWellKnownWords: atLeast(float64(stats.WellKnownWords), float64(c.MinWellKnownWords)),
		CriterionArticlesRead:   atLeast(float64(stats.ArticlesRead), float64(c.MinArticlesRead)),
		CriterionAverageReviews: atLeast(stats.AverageReviews, c.MinAverageReviews),
		CriterionCurrentStreak:  atLeast(float64(stats.CurrentStreak), float64(c.MinStreak)),
	}

	eligible := true
	for _, p := range progress {
		eligible = eligible && p.Met
	}

	return Report{
		From:     current,
		Eligible: eligible,
		NextTier: next,
		Criteria: c,
		Progress: progress,
	}, true
}

// ProgressToNextLevel is CheckEligibility plus the share of criteria met.
func ProgressToNextLevel(current entities.SkillTier, stats entities.LearnerStats) (Summary, bool) {
	r, ok := CheckEligibility(current, stats)
	if !ok {
		return Summary{}, false
	}

	met := 0
	for _, p := range r.Progress {
		if p.Met {
			met++
		}
	}
	total := len(Criteria)

	return Summary{
		Report:          r,
		MetCount:        met,
		Total:           total,
		OverallProgress: float64(met) / float64(total) * 100,
	}, true
}

// Promote advances profile to r.NextTier when r is eligible and the profile
// is still on the tier the report was computed for. It reports whether the
// level changed, so a repeated call with the same report is a no-op.
func Promote(profile *entities.Profile, r Report) bool {
	if !r.Eligible || profile.Level() != r.From {
		return false
	}
	profile.CurrentLevel = r.NextTier
	return true
}

func atLeast(current, required float64) CriterionProgress {
	return CriterionProgress{
		Current:  current,
		Required: required,
		Met:      current >= required,
	}
}
