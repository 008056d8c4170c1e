package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
)

func scheduled(id string, ef float64, next time.Time, reviewed bool) entities.VocabularyItem {
	it := item(ef, 1, 0)
	it.ID = id
	it.NextReviewDate = &next
	if reviewed {
		last := next.Add(-24 * time.Hour)
		it.LastReviewed = &last
	}
	return it
}

func ids(items []entities.VocabularyItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestDueItems_Priority(t *testing.T) {
	items := []entities.VocabularyItem{
		scheduled("future", 1.5, t0.Add(time.Hour), true),
		scheduled("easy-old", 2.5, t0.Add(-48*time.Hour), true),
		scheduled("hard", 1.7, t0.Add(-time.Hour), true),
		scheduled("new", 2.5, t0, false),
		scheduled("easy-recent", 2.5, t0.Add(-time.Hour), true),
	}

	got := DueItems(items, t0, 0)

	assert.Equal(t, []string{"new", "hard", "easy-old", "easy-recent"}, ids(got))
	assert.Equal(t, "future", items[0].ID, "input order must be preserved")
}

func TestDueItems_Limit(t *testing.T) {
	items := []entities.VocabularyItem{
		scheduled("a", 2.5, t0.Add(-time.Hour), true),
		scheduled("b", 2.0, t0.Add(-time.Hour), true),
		scheduled("c", 1.4, t0.Add(-time.Hour), true),
	}

	got := DueItems(items, t0, 2)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"c", "b"}, ids(got))
}

func TestDueItems_NothingDue(t *testing.T) {
	items := []entities.VocabularyItem{
		scheduled("a", 2.5, t0.Add(time.Minute), true),
	}

	assert.Empty(t, DueItems(items, t0, 10))
	assert.Equal(t, 0, CountDue(items, t0))
	assert.Equal(t, 1, CountDue(items, t0.Add(time.Minute)))
}
