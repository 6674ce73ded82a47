// Package policy measures the effect of air quality interventions.
package policy

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidInput = errors.New("invalid intervention")

// Intervention is a policy measure with its before and after AQI
type Intervention struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	City              string    `json:"city"`
	ImplementedDate   time.Time `json:"implementedDate"`
	BeforeAQI         float64   `json:"beforeAQI"`
	AfterAQI          float64   `json:"afterAQI"`
	Cost              float64   `json:"cost"`              // rupees
	HealthcareSavings float64   `json:"healthcareSavings"` // rupees
	Status            string    `json:"status"`
}

// Result is the computed effect of an intervention
type Result struct {
	ReductionPercent float64 `json:"reductionPercent"`
	ROI              float64 `json:"roi"`
}

// Impact returns the AQI reduction percent and the healthcare savings to cost
// ratio, both rounded to one decimal
func Impact(in Intervention) (Result, error) {
	if !(in.BeforeAQI > 0) || math.IsInf(in.BeforeAQI, 0) {
		return Result{}, fmt.Errorf("policy %q: before AQI %v: %w", in.Name, in.BeforeAQI, ErrInvalidInput)
	}
	if !(in.Cost > 0) || math.IsInf(in.Cost, 0) {
		return Result{}, fmt.Errorf("policy %q: cost %v: %w", in.Name, in.Cost, ErrInvalidInput)
	}
	return Result{
		ReductionPercent: round1((in.BeforeAQI - in.AfterAQI) / in.BeforeAQI * 100),
		ROI:              round1(in.HealthcareSavings / in.Cost),
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
