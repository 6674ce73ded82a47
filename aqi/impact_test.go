package aqi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateImpactCleanAirIgnoresExposure(t *testing.T) {
	for _, aqi := range []float64{30, 90} {
		for _, hours := range []float64{0, 1, 8, 24, 1000} {
			msg, err := EstimateImpact(aqi, hours)
			require.NoError(t, err)
			assert.Equal(t, MinimalImpact, msg, "aqi %v hours %v", aqi, hours)
		}
	}
}

func TestEstimateImpact(t *testing.T) {
	tests := []struct {
		aqi   float64
		hours float64
		want  string
	}{
		{150, 2, "2h exposure may cause minor respiratory discomfort for sensitive individuals"},
		{250, 8, "8h exposure likely to cause breathing discomfort and increased respiratory issues"},
		{350, 1.5, "1.5h exposure poses serious health risks. Respiratory and cardiovascular effects expected"},
		{500, 0, "0h exposure causes severe health emergency. Immediate protection needed"},
		{150, 1e6, "1000000h exposure may cause minor respiratory discomfort for sensitive individuals"},
		{150, 0.00001, "0.00001h exposure may cause minor respiratory discomfort for sensitive individuals"},
	}

	for _, tt := range tests {
		msg, err := EstimateImpact(tt.aqi, tt.hours)
		require.NoError(t, err)
		assert.Equal(t, tt.want, msg)
	}
}

func TestEstimateImpactRejectsInvalid(t *testing.T) {
	_, err := EstimateImpact(150, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = EstimateImpact(150, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = EstimateImpact(math.Inf(1), 4)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
