package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceMinuteMode(t *testing.T) {
	calc := NewCalculator(ModeMinute)

	tests := []struct {
		name       string
		price      float64
		start, end string
		want       float64
	}{
		{"two hours downtown", 5, "08:00", "10:00", 10},
		{"airport evening", 8, "18:00", "20:00", 16},
		{"half hour boundary", 5, "08:30", "10:00", 7.5},
		{"free area", 0, "10:00", "12:00", 0},
		{"empty window", 3, "12:00", "12:00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Price(tt.price, tt.start, tt.end)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestPriceHourModeTruncatesMinutes(t *testing.T) {
	calc := NewCalculator(ModeHour)

	got, err := calc.Price(5, "08:30", "10:00")
	require.NoError(t, err)
	assert.Equal(t, 10.0, got)

	got, err = calc.Price(5, "08:00", "10:45")
	require.NoError(t, err)
	assert.Equal(t, 10.0, got)
}

func TestHoursRejectsMalformedTimes(t *testing.T) {
	calc := NewCalculator(ModeMinute)

	for _, bad := range []string{"", "8:00", "08-00", "24:00", "12:60", "ab:cd"} {
		_, err := calc.Hours(bad, "10:00")
		assert.ErrorIs(t, err, ErrInvalidTime, bad)
	}
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeHour, ParseMode("HOUR"))
	assert.Equal(t, ModeMinute, ParseMode("minute"))
	assert.Equal(t, ModeMinute, ParseMode("whatever"))
}

func TestBefore(t *testing.T) {
	assert.True(t, Before("08:00", "10:00"))
	assert.False(t, Before("10:00", "10:00"))
	assert.False(t, Before("12:00", "10:00"))
	assert.False(t, Before("x", "10:00"))
}
