package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alloylab/apperrors"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"2024-01-10", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{"2024-01-10T08:30", time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)},
		{"2024-01-10T08:30:15", time.Date(2024, 1, 10, 8, 30, 15, 0, time.UTC)},
		{"2024-01-10T08:30:15+03:00", time.Date(2024, 1, 10, 5, 30, 15, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "got %s", got)
		})
	}

	_, err := ParseTimestamp("10/01/2024")
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestResolveWindow_Defaults(t *testing.T) {
	now := time.Date(2024, 2, 15, 9, 0, 0, 0, time.UTC)

	start, end, err := ResolveWindow("", "", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-30*24*time.Hour), start)
	assert.Equal(t, now, end)
}

func TestResolveWindow_EndCoversWholeDay(t *testing.T) {
	now := time.Date(2024, 2, 15, 9, 0, 0, 0, time.UTC)

	start, end, err := ResolveWindow("2024-01-01", "2024-01-10", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC), end)
}

func TestResolveWindow_Invalid(t *testing.T) {
	now := time.Date(2024, 2, 15, 9, 0, 0, 0, time.UTC)

	_, _, err := ResolveWindow("yesterday", "", now)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, _, err = ResolveWindow("", "2024-13-40", now)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, _, err = ResolveWindow("2024-02-01", "2024-01-01", now)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, percent(0, 0, 2))
	assert.Equal(t, 70.0, percent(7, 10, 2))
	assert.Equal(t, 66.67, percent(2, 3, 2))
	assert.Equal(t, 66.7, percent(2, 3, 1))
	assert.Equal(t, 33.3, percent(1, 3, 1))
}
