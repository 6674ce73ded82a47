package aqi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDominantPollutant(t *testing.T) {
	tests := []struct {
		name     string
		readings Readings
		want     Pollutant
	}{
		{"all zero", Readings{}, PM25},
		{"pm25 at threshold", Readings{PM25: 60}, PM25},
		{"co at threshold", Readings{CO: 2}, CO},
		{"tie goes to earlier", Readings{NO2: 80, SO2: 80}, NO2},
		{"pm10 vs pm25 tie", Readings{PM25: 60, PM10: 100}, PM25},
		{"o3 highest", Readings{PM25: 30, O3: 120}, O3},
		{"banjara hills", Readings{PM25: 87, PM10: 156, NO2: 45, SO2: 12, CO: 0.8, O3: 34}, PM10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DominantPollutant(tt.readings)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDominantPollutantRejectsInvalid(t *testing.T) {
	for _, r := range []Readings{
		{PM25: -1},
		{CO: -0.1},
		{O3: math.NaN()},
		{SO2: math.Inf(1)},
	} {
		_, err := DominantPollutant(r)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestRatios(t *testing.T) {
	ratios, err := Ratios(Readings{PM25: 30, PM10: 100, NO2: 40, SO2: 20, CO: 1, O3: 50})
	require.NoError(t, err)
	require.Len(t, ratios, 6)

	want := []Ratio{
		{PM25, 0.5}, {PM10, 1}, {NO2, 0.5}, {SO2, 0.25}, {CO, 0.5}, {O3, 0.5},
	}
	for i := range want {
		assert.Equal(t, want[i].Pollutant, ratios[i].Pollutant)
		assert.InDelta(t, want[i].Ratio, ratios[i].Ratio, 1e-9)
	}
}
