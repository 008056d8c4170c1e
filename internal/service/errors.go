package service

import (
	"errors"
	"fmt"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
	"github.com/aliskhannn/vocab-companion/internal/repository"
)

// Re-exported so callers of this package need not import repository.
var (
	ErrProfileNotFound = repository.ErrProfileNotFound
	ErrWordNotFound    = repository.ErrWordNotFound
	ErrInvalidGrade    = entities.ErrInvalidGrade
	ErrEmptyWord       = errors.New("word and translation are required")
	ErrNotDue          = errors.New("card is not due for review")
)

// SaveError reports that a result was computed but could not be persisted.
// The result returned alongside it is still valid for display.
type SaveError struct {
	Op  string
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("%s: changes not saved: %v", e.Op, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// IsSaveWarning reports whether err only signals a failed save.
func IsSaveWarning(err error) bool {
	var se *SaveError
	return errors.As(err, &se)
}
