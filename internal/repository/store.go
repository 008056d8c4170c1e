// Package repository persists application data as JSON documents in a
// key/value store and exposes typed repositories on top of it.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Fixed logical keys of the store.
const (
	KeyProfiles       = "profiles"
	KeyCurrentProfile = "current-profile"
	KeyAppState       = "app-state"
	KeySavedWords     = "saved-words"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("key not found")

// UpdateFunc transforms the current value of a key. current is nil when the
// key does not exist yet. Returning an error aborts the update and leaves
// the stored value untouched.
type UpdateFunc func(current []byte) ([]byte, error)

// KVStore is a key/value store of JSON documents.
type KVStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	// Update runs fn and writes its result atomically with respect to other
	// Update and Save calls on the same key.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}

func loadJSON[T any](ctx context.Context, s KVStore, key string, dst *T) error {
	data, err := s.Load(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// updateJSON decodes the value of key into a T (zero value if missing),
// applies fn and stores the result.
func updateJSON[T any](ctx context.Context, s KVStore, key string, fn func(*T) error) error {
	return s.Update(ctx, key, func(current []byte) ([]byte, error) {
		var v T
		if len(current) > 0 {
			if err := json.Unmarshal(current, &v); err != nil {
				return nil, fmt.Errorf("decode %s: %w", key, err)
			}
		}
		if err := fn(&v); err != nil {
			return nil, err
		}
		return encode(v)
	})
}

func encode(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
