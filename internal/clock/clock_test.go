package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/toolrent/internal/clock"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		to   time.Time
		want int
	}{
		{name: "SameDay", to: base.Add(2 * time.Hour), want: 0},
		{name: "ThreeDays", to: time.Date(2025, 3, 13, 1, 0, 0, 0, time.UTC), want: 3},
		{name: "Backwards", to: time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC), want: -1},
		{name: "AcrossMonth", to: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), want: 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clock.DaysBetween(base, tt.to))
		})
	}
}

func TestClock_Today(t *testing.T) {
	c := clock.Fixed(time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), c.Today())
}

func TestDateAndDay_WestOfUTC(t *testing.T) {
	saved := clock.Location
	clock.Location = time.FixedZone("CLT", -3*60*60)
	t.Cleanup(func() { clock.Location = saved })

	parsed, err := clock.ParseDate("2025-03-13")
	require.NoError(t, err)

	tests := []struct {
		name string
		got  time.Time
		want time.Time
	}{
		{name: "ParsedDateKeepsItsDay", got: clock.Day(parsed), want: time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)},
		{name: "EveningInstantIsLocalDay", got: clock.Date(time.Date(2025, 3, 14, 1, 0, 0, 0, time.UTC)), want: time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)},
		{name: "TodayUsesLocation", got: clock.Fixed(time.Date(2025, 3, 14, 2, 59, 0, 0, time.UTC)).Today(), want: time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)},
		{name: "StartOfIsLocalMidnight", got: clock.StartOf(parsed), want: time.Date(2025, 3, 13, 3, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.got), "want %s, got %s", tt.want, tt.got)
		})
	}

	assert.Equal(t, 3, clock.DaysBetween(clock.Fixed(time.Date(2025, 3, 10, 22, 0, 0, 0, clock.Location)).Today(), parsed))
}
