// Package forecast synthesizes hourly predicted AQI series.
//
// The series are not modelled: each point is a sinusoidal skeleton around a
// base AQI plus uniform noise, with pollutant components derived from the
// predicted AQI by fixed ratios.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

const (
	DefaultHorizon = 72
	DefaultBaseAQI = 156

	MinAQI = 50
	MaxAQI = 400

	varianceAmplitude = 30
	variancePeriodDiv = 12
	noiseSpan         = 20
	baseConfidence    = 0.85
	confidenceSpan    = 0.1
)

// maxConfidence keeps confidence below 0.95 when rounding of the noise would
// otherwise land on it
var maxConfidence = math.Nextafter(baseConfidence+confidenceSpan, 0)

// ErrInvalidHorizon is returned when the requested horizon is not positive
var ErrInvalidHorizon = errors.New("forecast horizon must be positive")

// ErrInvalidBase is returned for a NaN or infinite base AQI
var ErrInvalidBase = errors.New("forecast base AQI must be finite")

// Components are pollutant estimates derived from the predicted AQI
type Components struct {
	PM25 int `json:"PM25"`
	PM10 int `json:"PM10"`
	NO2  int `json:"NO2"`
}

// Point is one hourly prediction
type Point struct {
	Timestamp    time.Time  `json:"timestamp"`
	PredictedAQI int        `json:"predictedAQI"`
	Confidence   float64    `json:"confidence"`
	Components   Components `json:"components"`
}

// RandSource yields uniform values in [0, 1)
type RandSource interface {
	Float64() float64
}

// lockedRand makes a *rand.Rand safe to share between goroutines
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// NewEntropySource returns a RandSource seeded from the clock
func NewEntropySource() RandSource {
	return &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Synthesizer produces forecast series
type Synthesizer struct {
	Horizon int
	BaseAQI float64
	rand    RandSource
}

// Option configures a Synthesizer
type Option func(*Synthesizer)

// WithRand replaces the entropy source, e.g. with a fixed stream in tests
func WithRand(r RandSource) Option {
	return func(s *Synthesizer) { s.rand = r }
}

// WithHorizon sets the number of hourly points
func WithHorizon(hours int) Option {
	return func(s *Synthesizer) { s.Horizon = hours }
}

// WithBaseAQI sets the AQI the series oscillates around
func WithBaseAQI(base float64) Option {
	return func(s *Synthesizer) { s.BaseAQI = base }
}

// New returns a Synthesizer with the default horizon and base AQI
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		Horizon: DefaultHorizon,
		BaseAQI: DefaultBaseAQI,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rand == nil {
		s.rand = NewEntropySource()
	}
	return s
}

// Synthesize returns Horizon hourly points starting at now
func (s *Synthesizer) Synthesize(now time.Time) ([]Point, error) {
	if s.Horizon <= 0 {
		return nil, fmt.Errorf("forecast: horizon %d: %w", s.Horizon, ErrInvalidHorizon)
	}
	if math.IsNaN(s.BaseAQI) || math.IsInf(s.BaseAQI, 0) {
		return nil, fmt.Errorf("forecast: base %v: %w", s.BaseAQI, ErrInvalidBase)
	}

	points := make([]Point, 0, s.Horizon)
	for i := 0; i < s.Horizon; i++ {
		variance := math.Sin(float64(i)/variancePeriodDiv)*varianceAmplitude + s.rand.Float64()*noiseSpan
		// clamp before converting so huge bases cannot overflow int
		predicted := int(math.Round(math.Max(MinAQI, math.Min(MaxAQI, s.BaseAQI+variance))))

		points = append(points, Point{
			Timestamp:    now.Add(time.Duration(i) * time.Hour),
			PredictedAQI: predicted,
			Confidence:   math.Min(maxConfidence, baseConfidence+s.rand.Float64()*confidenceSpan),
			Components:   componentsFor(predicted),
		})
	}
	return points, nil
}

func componentsFor(predicted int) Components {
	p := float64(predicted)
	return Components{
		PM25: int(math.Round(p * 0.6)),
		PM10: int(math.Round(p * 1.1)),
		NO2:  int(math.Round(p * 0.3)),
	}
}
