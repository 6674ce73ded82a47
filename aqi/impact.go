package aqi

import (
	"fmt"
	"math"
	"strconv"
)

// MinimalImpact is reported for Good and Satisfactory air regardless of exposure
const MinimalImpact = "Minimal health impact expected"

var impactTemplates = map[Category]string{
	Moderate: "%sh exposure may cause minor respiratory discomfort for sensitive individuals",
	Poor:     "%sh exposure likely to cause breathing discomfort and increased respiratory issues",
	VeryPoor: "%sh exposure poses serious health risks. Respiratory and cardiovascular effects expected",
	Severe:   "%sh exposure causes severe health emergency. Immediate protection needed",
}

// EstimateImpact describes the expected health impact of spending
// exposureHours in air of the given AQI
func EstimateImpact(aqi, exposureHours float64) (string, error) {
	if math.IsNaN(exposureHours) || math.IsInf(exposureHours, 0) || exposureHours < 0 {
		return "", fmt.Errorf("aqi: exposure hours %v: %w", exposureHours, ErrInvalidInput)
	}
	c, err := CategoryOf(aqi)
	if err != nil {
		return "", err
	}
	tmpl, ok := impactTemplates[c]
	if !ok {
		return MinimalImpact, nil
	}
	// plain decimal, never exponent form
	return fmt.Sprintf(tmpl, strconv.FormatFloat(exposureHours, 'f', -1, 64)), nil
}
