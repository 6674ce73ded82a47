package aqi

import (
	"fmt"
	"math"
)

// Breakpoint maps a concentration range onto an AQI range
type Breakpoint struct {
	CpLow   float64 // Lower bound of concentration
	CpHigh  float64 // Upper bound of concentration
	AqiLow  int     // Lower bound of AQI
	AqiHigh int     // Upper bound of AQI
}

// CPCB 24-hour PM2.5 breakpoints in µg/m³, one per category
var pm25Breakpoints = []Breakpoint{
	{0, 30, 0, 50},
	{30, 60, 50, 100},
	{60, 90, 100, 200},
	{90, 120, 200, 300},
	{120, 250, 300, 400},
	{250, 380, 400, 500},
}

// CPCB 24-hour PM10 breakpoints in µg/m³
var pm10Breakpoints = []Breakpoint{
	{0, 50, 0, 50},
	{50, 100, 50, 100},
	{100, 250, 100, 200},
	{250, 350, 200, 300},
	{350, 430, 300, 400},
	{430, 510, 400, 500},
}

// subIndex linearly interpolates within the first band whose upper bound is
// not below the concentration. Concentrations past the last band cap at its
// AqiHigh.
func subIndex(concentration float64, breakpoints []Breakpoint) (int, error) {
	if math.IsNaN(concentration) || math.IsInf(concentration, 0) || concentration < 0 {
		return 0, fmt.Errorf("aqi: concentration %v: %w", concentration, ErrInvalidInput)
	}
	for _, bp := range breakpoints {
		if concentration <= bp.CpHigh {
			return int(math.Round(((float64(bp.AqiHigh)-float64(bp.AqiLow))/(bp.CpHigh-bp.CpLow))*(concentration-bp.CpLow) + float64(bp.AqiLow))), nil
		}
	}
	return breakpoints[len(breakpoints)-1].AqiHigh, nil
}

// PM25SubIndex converts a PM2.5 concentration to its AQI sub-index
func PM25SubIndex(concentration float64) (int, error) {
	return subIndex(concentration, pm25Breakpoints)
}

// PM10SubIndex converts a PM10 concentration to its AQI sub-index
func PM10SubIndex(concentration float64) (int, error) {
	return subIndex(concentration, pm10Breakpoints)
}
