package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabularyItem_UnmarshalJSON_AddedAt(t *testing.T) {
	added := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	legacy := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			name: "addedAt",
			in:   `{"id":"x","word":"书","addedAt":"2025-06-01T00:00:00Z"}`,
			want: added,
		},
		{
			name: "dateAdded only",
			in:   `{"id":"x","word":"书","dateAdded":"2024-03-02T00:00:00Z"}`,
			want: legacy,
		},
		{
			name: "addedAt wins over dateAdded",
			in:   `{"id":"x","word":"书","addedAt":"2025-06-01T00:00:00Z","dateAdded":"2024-03-02T00:00:00Z"}`,
			want: added,
		},
		{
			name: "neither",
			in:   `{"id":"x","word":"书"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item VocabularyItem
			require.NoError(t, json.Unmarshal([]byte(tt.in), &item))
			assert.Equal(t, "x", item.ID)
			assert.Equal(t, "书", item.Word)
			assert.True(t, item.AddedAt.Equal(tt.want), "got %s", item.AddedAt)
		})
	}
}

func TestVocabularyItem_JSONKeepsSchedule(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	item := NewVocabularyItem("你好", "hello", now)
	item.Repetitions = 2
	item.Interval = 6

	data, err := json.Marshal(item)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dateAdded")

	var got VocabularyItem
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, 6, got.Interval)
	assert.Equal(t, 2, got.Repetitions)
	require.NotNil(t, got.NextReviewDate)
	assert.True(t, got.NextReviewDate.Equal(now))
	assert.True(t, got.AddedAt.Equal(now))
}
