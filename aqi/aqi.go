// Package aqi classifies Indian National AQI values and derives health
// advisories and pollutant dominance from them.
package aqi

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned for non-finite or out-of-domain inputs
var ErrInvalidInput = errors.New("invalid input")

// Category is one of the six AQI bands, ordered from cleanest to dirtiest
type Category int

const (
	Good Category = iota
	Satisfactory
	Moderate
	Poor
	VeryPoor
	Severe
)

// categoryBand holds the inclusive upper bound of a band and its display values
type categoryBand struct {
	Upper      float64
	Name       string
	Label      string
	ColorToken string
}

// bands are contiguous; Severe is unbounded above
var bands = []categoryBand{
	Good:         {50, "good", "Good", "aqi-good"},
	Satisfactory: {100, "satisfactory", "Satisfactory", "aqi-satisfactory"},
	Moderate:     {200, "moderate", "Moderate", "aqi-moderate"},
	Poor:         {300, "poor", "Poor", "aqi-poor"},
	VeryPoor:     {400, "very-poor", "Very Poor", "aqi-very-poor"},
	Severe:       {math.Inf(1), "severe", "Severe", "aqi-severe"},
}

// Categories returns all categories in band order
func Categories() []Category {
	return []Category{Good, Satisfactory, Moderate, Poor, VeryPoor, Severe}
}

func (c Category) valid() bool {
	return c >= Good && c <= Severe
}

func (c Category) String() string {
	if !c.valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return bands[c].Name
}

// Label is the human readable name of the category
func (c Category) Label() string {
	if !c.valid() {
		return "Unknown"
	}
	return bands[c].Label
}

// ColorToken is the theme palette reference for the category
func (c Category) ColorToken() string {
	if !c.valid() {
		return ""
	}
	return bands[c].ColorToken
}

// MarshalText encodes the category as its kebab-case name
func (c Category) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("aqi: category %d: %w", int(c), ErrInvalidInput)
	}
	return []byte(c.String()), nil
}

// Classification is the result of classifying a single AQI value
type Classification struct {
	Category   Category `json:"category"`
	Label      string   `json:"label"`
	ColorToken string   `json:"colorToken"`
}

// CategoryOf returns the band an AQI value falls into. Boundaries belong to
// the lower band, so 50 is Good and 51 is Satisfactory.
func CategoryOf(aqi float64) (Category, error) {
	if math.IsNaN(aqi) || math.IsInf(aqi, 0) {
		return 0, fmt.Errorf("aqi: value %v: %w", aqi, ErrInvalidInput)
	}
	for _, c := range Categories() {
		if aqi <= bands[c].Upper {
			return c, nil
		}
	}
	return Severe, nil
}

// Classify maps an AQI value to its category, label and color token
func Classify(aqi float64) (Classification, error) {
	c, err := CategoryOf(aqi)
	if err != nil {
		return Classification{}, err
	}
	return Classification{
		Category:   c,
		Label:      c.Label(),
		ColorToken: c.ColorToken(),
	}, nil
}

// Formatted is an AQI value rounded for display with its label and token
type Formatted struct {
	Value      int    `json:"value"`
	Label      string `json:"label"`
	ColorToken string `json:"colorToken"`
}

// FormatAQI rounds the value and attaches display information for badges
func FormatAQI(aqi float64) (Formatted, error) {
	cl, err := Classify(aqi)
	if err != nil {
		return Formatted{}, err
	}
	return Formatted{
		Value:      int(math.Round(aqi)),
		Label:      cl.Label,
		ColorToken: cl.ColorToken,
	}, nil
}
