package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSlotLabel(t *testing.T) {
	tests := []struct {
		start, end string
		want       string
	}{
		{"09:00", "09:30", "9:00 AM - 9:30 AM"},
		{"13:00", "13:30", "1:00 PM - 1:30 PM"},
		{"00:00", "00:30", "12:00 AM - 12:30 AM"},
		{"12:00", "12:30", "12:00 PM - 12:30 PM"},
		{"09:00:00", "09:30:00", "9:00 AM - 9:30 AM"},
		{"23:45", "23:59", "11:45 PM - 11:59 PM"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSlotLabel(tt.start, tt.end), "label for %s-%s", tt.start, tt.end)
	}
}

func TestFormatClock_PassesMinutesThrough(t *testing.T) {
	// Minutes are not re-padded beyond their source format.
	assert.Equal(t, "9:5 AM", FormatClock("09:5"))
	assert.Equal(t, "bogus", FormatClock("bogus"))
}

func TestDayOfWeek(t *testing.T) {
	// 2024-01-15 is a Monday regardless of the runtime timezone.
	dow, err := DayOfWeek("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 1, dow)

	dow, err = DayOfWeek("2024-01-14")
	require.NoError(t, err)
	assert.Equal(t, 0, dow)

	_, err = DayOfWeek("15-01-2024")
	assert.Error(t, err)
}

func TestNormalizeClock(t *testing.T) {
	assert.Equal(t, "09:00:00", NormalizeClock("09:00"))
	assert.Equal(t, "09:00:00", NormalizeClock("09:00:00"))
	assert.Equal(t, "09:00:00", NormalizeClock("9:00"))
	assert.Equal(t, "09:05:00", NormalizeClock("9:5"))
	assert.Equal(t, "bogus", NormalizeClock("bogus"))
}
