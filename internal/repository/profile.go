package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository provides access to the profile list stored under
// the profiles key.
type ProfileRepository struct {
	store KVStore
}

// NewProfileRepository creates a new ProfileRepository backed by store.
func NewProfileRepository(store KVStore) *ProfileRepository {
	return &ProfileRepository{store: store}
}

// List returns every profile in stored order. A store that has never saved
// profiles yields an empty list.
func (r *ProfileRepository) List(ctx context.Context) ([]*entities.Profile, error) {
	var profiles []*entities.Profile
	if err := loadJSON(ctx, r.store, KeyProfiles, &profiles); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// GetByID retrieves a profile by ID.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*entities.Profile, error) {
	profiles, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	i := slices.IndexFunc(profiles, func(p *entities.Profile) bool { return p.ID == id })
	if i < 0 {
		return nil, ErrProfileNotFound
	}
	return profiles[i], nil
}

// GetByChatID retrieves the profile bound to a Telegram chat.
func (r *ProfileRepository) GetByChatID(ctx context.Context, chatID int64) (*entities.Profile, error) {
	profiles, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	i := slices.IndexFunc(profiles, func(p *entities.Profile) bool { return p.ChatID != 0 && p.ChatID == chatID })
	if i < 0 {
		return nil, ErrProfileNotFound
	}
	return profiles[i], nil
}

// Save inserts a new profile or replaces the one with the same ID.
func (r *ProfileRepository) Save(ctx context.Context, profile *entities.Profile) error {
	err := updateJSON(ctx, r.store, KeyProfiles, func(profiles *[]*entities.Profile) error {
		i := slices.IndexFunc(*profiles, func(p *entities.Profile) bool { return p.ID == profile.ID })
		if i < 0 {
			*profiles = append(*profiles, profile)
		} else {
			(*profiles)[i] = profile
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Update loads the profile with the given ID, applies fn to a copy of it
// and stores the result in a single store update. If fn fails nothing is
// written. The updated profile is returned.
func (r *ProfileRepository) Update(ctx context.Context, id string, fn func(*entities.Profile) error) (*entities.Profile, error) {
	var updated *entities.Profile

	err := updateJSON(ctx, r.store, KeyProfiles, func(profiles *[]*entities.Profile) error {
		i := slices.IndexFunc(*profiles, func(p *entities.Profile) bool { return p.ID == id })
		if i < 0 {
			return ErrProfileNotFound
		}

		p := (*profiles)[i].Clone()
		if err := fn(p); err != nil {
			return err
		}

		(*profiles)[i] = p
		updated = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return updated, nil
}
