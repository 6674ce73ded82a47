package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pridkett/airsense/aqi"
	"github.com/pridkett/airsense/policy"
	"github.com/pridkett/airsense/warriors"
)

func TestCityByID(t *testing.T) {
	c, ok := CityByID("del")
	require.True(t, ok)
	assert.Equal(t, "Delhi", c.Name)
	assert.Equal(t, 387.0, c.CurrentAQI)

	_, ok = CityByID("nyc")
	assert.False(t, ok)
}

func TestSensorsForCity(t *testing.T) {
	assert.Len(t, SensorsForCity("hyd"), 6)
	assert.Empty(t, SensorsForCity("del"))
}

func TestMeanReadings(t *testing.T) {
	_, ok := MeanReadings(nil)
	assert.False(t, ok)

	r, ok := MeanReadings([]Sensor{
		{Readings: aqi.Readings{PM25: 80, PM10: 100, CO: 1}},
		{Readings: aqi.Readings{PM25: 100, PM10: 200, CO: 2}},
	})
	require.True(t, ok)
	assert.Equal(t, aqi.Readings{PM25: 90, PM10: 150, CO: 1.5}, r)
}

func TestFixturesAreValid(t *testing.T) {
	for _, c := range Cities {
		_, err := aqi.Classify(c.CurrentAQI)
		assert.NoError(t, err, c.ID)
	}
	for _, s := range Sensors {
		_, err := aqi.DominantPollutant(s.Readings)
		assert.NoError(t, err, s.ID)
	}
	for _, p := range Policies {
		_, err := policy.Impact(p)
		assert.NoError(t, err, p.Name)
	}
}

func TestWarriorFixturesAreValid(t *testing.T) {
	_, err := warriors.Progress(User)
	assert.NoError(t, err)

	for i, e := range Leaderboard {
		assert.Equal(t, i+1, e.Rank, e.UserID)
		if i > 0 {
			assert.LessOrEqual(t, e.Points, Leaderboard[i-1].Points, e.UserID)
		}
	}
	for _, m := range Missions {
		_, err := m.Status()
		assert.NoError(t, err, m.ID)
	}
	for _, r := range Reports {
		assert.True(t, r.Severity >= 1 && r.Severity <= 5, r.ID)
	}
}
