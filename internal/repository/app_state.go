package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
)

// AppStateRepository provides access to the app-state document.
type AppStateRepository struct {
	store KVStore
}

func NewAppStateRepository(store KVStore) *AppStateRepository {
	return &AppStateRepository{store: store}
}

// Get returns the stored state, or an empty one if none was saved yet.
func (r *AppStateRepository) Get(ctx context.Context) (*entities.AppState, error) {
	var state entities.AppState
	if err := loadJSON(ctx, r.store, KeyAppState, &state); err != nil {
		if errors.Is(err, ErrNotFound) {
			return &state, nil
		}
		return nil, fmt.Errorf("get app state: %w", err)
	}
	return &state, nil
}

// Update applies fn to the state and stores the result.
func (r *AppStateRepository) Update(ctx context.Context, fn func(*entities.AppState) error) error {
	if err := updateJSON(ctx, r.store, KeyAppState, fn); err != nil {
		return fmt.Errorf("update app state: %w", err)
	}
	return nil
}
