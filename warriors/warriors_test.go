package warriors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		points  int
		percent float64
		toNext  int
	}{
		{2847, 69.4, 153},
		{0, 0, 500},
		{500, 0, 500},
		{499, 99.8, 1},
		{1250, 50, 250},
	}

	for _, tt := range tests {
		got, err := Progress(Profile{Points: tt.points, Level: 7})
		require.NoError(t, err)
		assert.InDelta(t, tt.percent, got.Percent, 1e-9, "points %d", tt.points)
		assert.Equal(t, tt.toNext, got.PointsToNext, "points %d", tt.points)
		assert.Equal(t, 8, got.NextLevel)
	}

	_, err := Progress(Profile{ID: "u1", Points: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMissionStatus(t *testing.T) {
	st, err := Mission{ID: "m1", Progress: 3, Total: 5}.Status()
	require.NoError(t, err)
	assert.Equal(t, 60.0, st.Percent)
	assert.False(t, st.Claimable)

	st, err = Mission{ID: "m2", Progress: 1, Total: 1}.Status()
	require.NoError(t, err)
	assert.Equal(t, 100.0, st.Percent)
	assert.True(t, st.Claimable)

	for _, m := range []Mission{
		{ID: "zero", Progress: 0, Total: 0},
		{ID: "over", Progress: 6, Total: 5},
		{ID: "neg", Progress: -1, Total: 5},
	} {
		_, err := m.Status()
		assert.ErrorIs(t, err, ErrInvalidInput, m.ID)
	}
}

func TestLeaderboardEntry(t *testing.T) {
	assert.Equal(t, "up", LeaderboardEntry{WeeklyChange: 145}.Trend())
	assert.Equal(t, "down", LeaderboardEntry{WeeklyChange: -23}.Trend())
	assert.Equal(t, "down", LeaderboardEntry{WeeklyChange: 0}.Trend())

	assert.True(t, LeaderboardEntry{Rank: 3}.Podium())
	assert.False(t, LeaderboardEntry{Rank: 4}.Podium())
}

func TestReportTimestamp(t *testing.T) {
	now := time.Date(2024, 11, 3, 6, 0, 0, 0, time.UTC)
	r := Report{Age: 2 * time.Hour}
	assert.Equal(t, time.Date(2024, 11, 3, 4, 0, 0, 0, time.UTC), r.Timestamp(now))
}
