package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in     string
		offset int
	}{
		{"", 0},
		{"utc", 0},
		{"UTC+3", 3 * 3600},
		{"UTC-3:30", -(3*3600 + 30*60)},
		{"+08:00", 8 * 3600},
		{"-7", -7 * 3600},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			loc, err := ParseLocation(tt.in)
			require.NoError(t, err)

			_, offset := time.Date(2025, 1, 1, 0, 0, 0, 0, loc).Zone()
			assert.Equal(t, tt.offset, offset)
		})
	}
}

func TestParseLocation_IANA(t *testing.T) {
	loc, err := ParseLocation("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())
}

func TestParseLocation_Invalid(t *testing.T) {
	for _, in := range []string{"Mars/Olympus", "UTC+15", "+3:75", "abc"} {
		_, err := ParseLocation(in)
		assert.Error(t, err, in)
	}
}

func TestCalendarDay(t *testing.T) {
	ts := time.Date(2025, 6, 15, 22, 30, 0, 0, time.UTC)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	assert.Equal(t, "2025-06-15", CalendarDay(ts, nil))
	assert.Equal(t, "2025-06-16", CalendarDay(ts, tokyo))
}
