package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Default scheduling parameters of a freshly saved word.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
	DefaultInterval   = 1
)

// VocabularyItem is a saved word under review.
type VocabularyItem struct {
	ID            string `json:"id"`
	Word          string `json:"word"`
	Translation   string `json:"translation"`
	Context       string `json:"context,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`

	// SRS fields.
	EaseFactor     float64    `json:"easeFactor"`
	Interval       int        `json:"interval"`    // days until the next review after a success
	Repetitions    int        `json:"repetitions"` // consecutive successful recalls
	NextReviewDate *time.Time `json:"nextReviewDate"`
	LastReviewed   *time.Time `json:"lastReviewed"`

	AddedAt time.Time `json:"addedAt"`
}

// NewVocabularyItem creates an item with default SRS parameters that is due immediately.
func NewVocabularyItem(word, translation string, now time.Time) VocabularyItem {
	next := now
	return VocabularyItem{
		ID:             uuid.NewString(),
		Word:           word,
		Translation:    translation,
		EaseFactor:     DefaultEaseFactor,
		Interval:       DefaultInterval,
		Repetitions:    0,
		NextReviewDate: &next,
		AddedAt:        now,
	}
}

// UnmarshalJSON decodes an item. Items saved before addedAt existed carry
// the date under dateAdded.
func (v *VocabularyItem) UnmarshalJSON(data []byte) error {
	type item VocabularyItem
	aux := struct {
		*item
		DateAdded *time.Time `json:"dateAdded"`
	}{item: (*item)(v)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if v.AddedAt.IsZero() && aux.DateAdded != nil {
		v.AddedAt = *aux.DateAdded
	}
	return nil
}

// Normalized returns a copy with zero-valued SRS fields replaced by defaults.
// Items written by older clients may omit them.
func (v VocabularyItem) Normalized() VocabularyItem {
	if v.EaseFactor == 0 {
		v.EaseFactor = DefaultEaseFactor
	}
	if v.Interval == 0 {
		v.Interval = DefaultInterval
	}
	if v.Repetitions < 0 {
		v.Repetitions = 0
	}
	return v
}

// Merge copies the display data of other onto v. Scheduling state, ID and
// AddedAt are left untouched. Empty fields in other do not overwrite.
func (v VocabularyItem) Merge(other VocabularyItem) VocabularyItem {
	if other.Translation != "" {
		v.Translation = other.Translation
	}
	if other.Context != "" {
		v.Context = other.Context
	}
	if other.Pronunciation != "" {
		v.Pronunciation = other.Pronunciation
	}
	return v
}

// IsWellKnown reports whether the word was recalled successfully at least three times in a row.
func (v VocabularyItem) IsWellKnown() bool {
	return v.Repetitions >= 3
}
