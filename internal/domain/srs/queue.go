package srs

import (
	"cmp"
	"slices"
	"time"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
)

// DueItems returns the review queue: items due at now ordered by priority.
//  1. Words that have never been reviewed.
//  2. Words with the lowest ease factor (hardest words).
//  3. Words that are most overdue.
//
// limit <= 0 returns every due item. The input slice is not modified.
func DueItems(items []entities.VocabularyItem, now time.Time, limit int) []entities.VocabularyItem {
	due := make([]entities.VocabularyItem, 0, len(items))
	for _, it := range items {
		if IsDue(it, now) {
			due = append(due, it)
		}
	}

	slices.SortStableFunc(due, func(a, b entities.VocabularyItem) int {
		aNew, bNew := a.LastReviewed == nil, b.LastReviewed == nil
		if aNew != bNew {
			if aNew {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(a.Normalized().EaseFactor, b.Normalized().EaseFactor); c != 0 {
			return c
		}
		return reviewTime(a).Compare(reviewTime(b))
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due
}

// CountDue returns the number of items due at now.
func CountDue(items []entities.VocabularyItem, now time.Time) int {
	n := 0
	for _, it := range items {
		if IsDue(it, now) {
			n++
		}
	}
	return n
}

func reviewTime(it entities.VocabularyItem) time.Time {
	if it.NextReviewDate == nil {
		return time.Time{}
	}
	return *it.NextReviewDate
}
