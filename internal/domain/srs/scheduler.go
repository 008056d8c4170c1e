// Package srs implements the SM-2 variant used to schedule vocabulary reviews.
//
// All functions are pure: the caller passes the current time and persists
// the result.
package srs

import (
	"math"
	"time"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
)

const (
	passQuality     = 3
	easyMultiplier  = 1.3
	easyMinimumDays = 4
)

// ScheduleUpdate holds the replacement SRS fields of a reviewed item.
type ScheduleUpdate struct {
	EaseFactor     float64
	Interval       int
	Repetitions    int
	NextReviewDate time.Time
	LastReviewed   time.Time
}

// Apply returns item with its SRS fields replaced by u. Display data, ID and
// AddedAt are kept.
func (u ScheduleUpdate) Apply(item entities.VocabularyItem) entities.VocabularyItem {
	next, last := u.NextReviewDate, u.LastReviewed
	item.EaseFactor = u.EaseFactor
	item.Interval = u.Interval
	item.Repetitions = u.Repetitions
	item.NextReviewDate = &next
	item.LastReviewed = &last
	return item
}

// ComputeNextReview applies one grade to item at time now.
//
// grade must be valid (see entities.ParseGrade); an invalid grade is
// scheduled like GradeAgain.
func ComputeNextReview(item entities.VocabularyItem, grade entities.ReviewGrade, now time.Time) ScheduleUpdate {
	item = item.Normalized()
	quality := grade.Quality()

	interval := item.Interval
	repetitions := item.Repetitions

	if quality >= passQuality {
		switch repetitions {
		case 0:
			interval = 1
		case 1:
			interval = 6
		default:
			interval = int(math.Round(float64(interval) * item.EaseFactor))
		}
		repetitions++
	} else {
		repetitions = 0
		interval = 1
	}

	return ScheduleUpdate{
		EaseFactor:     nextEaseFactor(item.EaseFactor, quality),
		Interval:       interval,
		Repetitions:    repetitions,
		NextReviewDate: nextReviewDate(grade, interval, now),
		LastReviewed:   now,
	}
}

// Review grades item and returns the updated copy.
func Review(item entities.VocabularyItem, grade entities.ReviewGrade, now time.Time) entities.VocabularyItem {
	return ComputeNextReview(item, grade, now).Apply(item)
}

// IsDue reports whether item should be reviewed at now.
func IsDue(item entities.VocabularyItem, now time.Time) bool {
	if item.NextReviewDate == nil {
		return true
	}
	return !now.Before(*item.NextReviewDate)
}

func nextEaseFactor(ef float64, quality int) float64 {
	q := float64(5 - quality)
	ef += 0.1 - q*(0.08+q*0.02)
	ef = max(entities.MinEaseFactor, ef)
	return math.Round(ef*100) / 100
}

func nextReviewDate(grade entities.ReviewGrade, interval int, now time.Time) time.Time {
	switch grade {
	case entities.GradeGood:
		return now.AddDate(0, 0, interval)
	case entities.GradeEasy:
		// Fractional days are truncated.
		days := int(max(float64(interval)*easyMultiplier, easyMinimumDays))
		return now.AddDate(0, 0, days)
	case entities.GradeHard:
		return now.Add(grade.ShortInterval())
	default:
		return now.Add(entities.GradeAgain.ShortInterval())
	}
}
