package aqi

import (
	"fmt"
	"math"
)

// Pollutant identifies one of the six tracked pollutants
type Pollutant string

const (
	PM25 Pollutant = "PM2.5"
	PM10 Pollutant = "PM10"
	NO2  Pollutant = "NO2"
	SO2  Pollutant = "SO2"
	CO   Pollutant = "CO"
	O3   Pollutant = "O3"
)

// Readings holds the concentration of each tracked pollutant
type Readings struct {
	PM25 float64 `json:"pm25"`
	PM10 float64 `json:"pm10"`
	NO2  float64 `json:"no2"`
	SO2  float64 `json:"so2"`
	CO   float64 `json:"co"`
	O3   float64 `json:"o3"`
}

// Threshold is a fixed regulatory limit for a pollutant
type Threshold struct {
	Pollutant Pollutant
	Limit     float64
}

// Thresholds in enumeration order. Ties in DominantPollutant resolve to the
// earliest entry.
var Thresholds = [...]Threshold{
	{PM25, 60},
	{PM10, 100},
	{NO2, 80},
	{SO2, 80},
	{CO, 2},
	{O3, 100},
}

func (r Readings) values() [len(Thresholds)]float64 {
	return [...]float64{r.PM25, r.PM10, r.NO2, r.SO2, r.CO, r.O3}
}

// Ratio is a concentration divided by its threshold
type Ratio struct {
	Pollutant Pollutant `json:"pollutant"`
	Ratio     float64   `json:"ratio"`
}

// Ratios returns the concentration to threshold ratio for each pollutant in
// enumeration order
func Ratios(r Readings) ([]Ratio, error) {
	values := r.values()
	ratios := make([]Ratio, 0, len(values))
	for i, v := range values {
		th := Thresholds[i]
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("aqi: %s concentration %v: %w", th.Pollutant, v, ErrInvalidInput)
		}
		ratios = append(ratios, Ratio{Pollutant: th.Pollutant, Ratio: v / th.Limit})
	}
	return ratios, nil
}

// DominantPollutant returns the pollutant that is proportionally furthest
// above its threshold. All-zero readings resolve to PM2.5.
func DominantPollutant(r Readings) (Pollutant, error) {
	ratios, err := Ratios(r)
	if err != nil {
		return "", err
	}
	best := ratios[0]
	for _, ratio := range ratios[1:] {
		if ratio.Ratio > best.Ratio {
			best = ratio
		}
	}
	return best.Pollutant, nil
}
