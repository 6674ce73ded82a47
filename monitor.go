package main

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pridkett/airsense/aqi"
	"github.com/pridkett/airsense/fixtures"
	"github.com/pridkett/airsense/forecast"
)

// drift applied per tick is uniform in [-driftSpan/2, driftSpan/2)
const driftSpan = 10

// cityStatus is the published view of a city. Tags pick the field name per
// sink; "-" keeps a field out of that sink.
type cityStatus struct {
	City              string    `json:"city" mqtt:"-" hass:"-" influx:"-"`
	Name              string    `json:"name" mqtt:"-" hass:"-" influx:"-"`
	AQI               int       `json:"aqi" mqtt:"aqi" hass:"aqi,AQI,aqi" influx:"aqi"`
	Category          string    `json:"category" mqtt:"category" hass:"category" influx:"category"`
	Label             string    `json:"label" mqtt:"label" hass:"-" influx:"-"`
	ColorToken        string    `json:"colorToken" mqtt:"color_token" hass:"-" influx:"-"`
	DominantPollutant string    `json:"dominantPollutant,omitempty" mqtt:"dominant_pollutant" hass:"dominant_pollutant" influx:"dominant_pollutant"`
	PM25SubIndex      int       `json:"pm25SubIndex,omitempty" mqtt:"pm25_sub_index" hass:"pm25_sub_index,AQI" influx:"pm25_sub_index"`
	PM10SubIndex      int       `json:"pm10SubIndex,omitempty" mqtt:"pm10_sub_index" hass:"pm10_sub_index,AQI" influx:"pm10_sub_index"`
	Advice            string    `json:"advice" mqtt:"advice" hass:"-" influx:"-"`
	ProfileAdvice     string    `json:"profileAdvice" mqtt:"profile_advice" hass:"-" influx:"-"`
	NextHourAQI       int       `json:"nextHourAQI" mqtt:"next_hour_aqi" hass:"next_hour_aqi,AQI,aqi" influx:"next_hour_aqi"`
	Confidence        float64   `json:"confidence" mqtt:"confidence" hass:"-" influx:"confidence"`
	Updated           time.Time `json:"updated" mqtt:"-" hass:"-" influx:"-"`
}

// monitor keeps a drifting AQI per city, the way the dashboard refreshes
// its live reading, and fans every refreshed status out to the sinks
type monitor struct {
	cfg     tomlConfigMonitor
	profile aqi.HealthProfile
	rand    forecast.RandSource
	sinks   []sink
	now     func() time.Time

	mu       sync.RWMutex
	cities   []fixtures.City
	current  map[string]float64
	statuses map[string]cityStatus

	cron *cron.Cron
}

func newMonitor(cfg tomlConfigMonitor, sinks []sink, rand forecast.RandSource) (*monitor, error) {
	profile, err := aqi.ParseHealthProfile(cfg.HealthProfile)
	if err != nil {
		return nil, err
	}
	m := &monitor{
		cfg:      cfg,
		profile:  profile,
		rand:     rand,
		sinks:    sinks,
		now:      time.Now,
		current:  make(map[string]float64),
		statuses: make(map[string]cityStatus),
	}
	for _, id := range cfg.Cities {
		city, ok := fixtures.CityByID(id)
		if !ok {
			return nil, fmt.Errorf("unknown city %q", id)
		}
		m.cities = append(m.cities, city)
		m.current[id] = city.CurrentAQI
	}
	return m, nil
}

// start publishes the initial readings and schedules a drift every PollRate
// seconds
func (m *monitor) start() error {
	m.refresh()

	m.cron = cron.New(cron.WithLogger(cronLogger{}))
	schedule := fmt.Sprintf("@every %ds", m.cfg.PollRate)
	if _, err := m.cron.AddJob(schedule, m.job()); err != nil {
		return fmt.Errorf("scheduling monitor: %w", err)
	}
	m.cron.Start()
	logger.Infof("Monitoring %d cities every %d seconds", len(m.cities), m.cfg.PollRate)
	return nil
}

// job wraps step so a tick that fires while a slow sink is still publishing
// is skipped rather than run alongside it
func (m *monitor) job() cron.Job {
	return cron.NewChain(cron.SkipIfStillRunning(cronLogger{})).Then(cron.FuncJob(m.step))
}

func (m *monitor) stop() {
	if m.cron == nil {
		return
	}
	<-m.cron.Stop().Done()
}

// step drifts each city's AQI and republishes
func (m *monitor) step() {
	m.mu.Lock()
	for _, c := range m.cities {
		next := m.current[c.ID] + (m.rand.Float64()-0.5)*driftSpan
		m.current[c.ID] = math.Max(forecast.MinAQI, math.Min(forecast.MaxAQI, next))
	}
	m.mu.Unlock()

	m.refresh()
}

// refresh rebuilds every city status from the current readings and
// publishes them. Sink failures are logged and do not stop the others.
func (m *monitor) refresh() {
	now := m.now()
	for _, c := range m.cities {
		m.mu.RLock()
		current := m.current[c.ID]
		m.mu.RUnlock()

		status, err := m.buildStatus(c, current, now)
		if err != nil {
			logger.Errorf("Building status for %s: %v", c.ID, err)
			continue
		}

		m.mu.Lock()
		m.statuses[c.ID] = status
		m.mu.Unlock()

		for _, s := range m.sinks {
			if err := s.Publish(&status); err != nil {
				logger.Errorf("Publishing %s to %s: %v", c.ID, s.Name(), err)
			}
		}
	}
}

func (m *monitor) buildStatus(c fixtures.City, current float64, now time.Time) (cityStatus, error) {
	formatted, err := aqi.FormatAQI(current)
	if err != nil {
		return cityStatus{}, err
	}
	category, err := aqi.CategoryOf(current)
	if err != nil {
		return cityStatus{}, err
	}
	advice, err := aqi.GenericAdvice(current)
	if err != nil {
		return cityStatus{}, err
	}
	profileAdvice, err := aqi.Advise(current, m.profile)
	if err != nil {
		return cityStatus{}, err
	}

	status := cityStatus{
		City:          c.ID,
		Name:          c.Name,
		AQI:           formatted.Value,
		Category:      category.String(),
		Label:         formatted.Label,
		ColorToken:    formatted.ColorToken,
		Advice:        advice,
		ProfileAdvice: profileAdvice,
		Updated:       now,
	}

	if readings, ok := fixtures.MeanReadings(fixtures.SensorsForCity(c.ID)); ok {
		dominant, err := aqi.DominantPollutant(readings)
		if err != nil {
			return cityStatus{}, err
		}
		status.DominantPollutant = string(dominant)
		if status.PM25SubIndex, err = aqi.PM25SubIndex(readings.PM25); err != nil {
			return cityStatus{}, err
		}
		if status.PM10SubIndex, err = aqi.PM10SubIndex(readings.PM10); err != nil {
			return cityStatus{}, err
		}
	}

	synth := forecast.New(
		forecast.WithBaseAQI(current),
		forecast.WithHorizon(m.cfg.ForecastHorizon),
		forecast.WithRand(m.rand),
	)
	points, err := synth.Synthesize(now)
	if err != nil {
		return cityStatus{}, err
	}
	next := points[0]
	if len(points) > 1 {
		next = points[1]
	}
	status.NextHourAQI = next.PredictedAQI
	status.Confidence = next.Confidence

	return status, nil
}

// Statuses returns the latest status of every monitored city in config order
func (m *monitor) Statuses() []cityStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]cityStatus, 0, len(m.cities))
	for _, c := range m.cities {
		if s, ok := m.statuses[c.ID]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Status returns the latest status of one city
func (m *monitor) Status(id string) (cityStatus, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.statuses[id]
	return s, ok
}

// cronLogger routes scheduler messages to the global logger
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debugf("cron: %s %v", msg, keysAndValues)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Errorf("cron: %s: %v %v", msg, err, keysAndValues)
}
