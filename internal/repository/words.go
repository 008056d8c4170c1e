package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
)

var ErrWordNotFound = errors.New("word not found")

// savedWords maps profile ID to that profile's collection.
type savedWords map[string][]entities.VocabularyItem

// WordRepository provides access to the saved vocabulary of every profile,
// stored under the saved-words key.
type WordRepository struct {
	store KVStore
}

// NewWordRepository creates a new WordRepository backed by store.
func NewWordRepository(store KVStore) *WordRepository {
	return &WordRepository{store: store}
}

// List returns the collection of a profile. Missing data yields an empty
// collection.
func (r *WordRepository) List(ctx context.Context, profileID string) ([]entities.VocabularyItem, error) {
	var all savedWords
	if err := loadJSON(ctx, r.store, KeySavedWords, &all); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list words: %w", err)
	}
	return all[profileID], nil
}

// Replace overwrites the whole collection of a profile.
func (r *WordRepository) Replace(ctx context.Context, profileID string, items []entities.VocabularyItem) error {
	_, err := r.Update(ctx, profileID, func([]entities.VocabularyItem) ([]entities.VocabularyItem, error) {
		return items, nil
	})
	return err
}

// Update applies fn to the collection of a profile and writes the result
// back in a single store update. fn receives a copy it may modify freely.
func (r *WordRepository) Update(
	ctx context.Context,
	profileID string,
	fn func([]entities.VocabularyItem) ([]entities.VocabularyItem, error),
) ([]entities.VocabularyItem, error) {
	var updated []entities.VocabularyItem

	err := updateJSON(ctx, r.store, KeySavedWords, func(all *savedWords) error {
		if *all == nil {
			*all = make(savedWords)
		}

		current := append([]entities.VocabularyItem(nil), (*all)[profileID]...)
		next, err := fn(current)
		if err != nil {
			return err
		}

		if next == nil {
			next = []entities.VocabularyItem{}
		}
		(*all)[profileID] = next
		updated = next
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update words: %w", err)
	}

	return updated, nil
}
