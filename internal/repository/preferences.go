package repository

import (
	"context"
	"errors"
	"fmt"
)

// PreferencesRepository stores the ID of the current profile as a JSON string.
type PreferencesRepository struct {
	store KVStore
}

func NewPreferencesRepository(store KVStore) *PreferencesRepository {
	return &PreferencesRepository{store: store}
}

// CurrentProfileID returns ErrProfileNotFound if no profile was selected.
func (r *PreferencesRepository) CurrentProfileID(ctx context.Context) (string, error) {
	var id string
	if err := loadJSON(ctx, r.store, KeyCurrentProfile, &id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrProfileNotFound
		}
		return "", fmt.Errorf("get current profile: %w", err)
	}
	if id == "" {
		return "", ErrProfileNotFound
	}
	return id, nil
}

func (r *PreferencesRepository) SetCurrentProfileID(ctx context.Context, id string) error {
	return r.saveString(ctx, KeyCurrentProfile, id)
}

func (r *PreferencesRepository) saveString(ctx context.Context, key, value string) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	if err := r.store.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
