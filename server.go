package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pridkett/airsense/aqi"
	"github.com/pridkett/airsense/fixtures"
	"github.com/pridkett/airsense/forecast"
	"github.com/pridkett/airsense/policy"
	"github.com/pridkett/airsense/warriors"
)

// statusSource is what the API needs from the monitor
type statusSource interface {
	Statuses() []cityStatus
	Status(id string) (cityStatus, bool)
}

type server struct {
	mux      *http.ServeMux
	limiter  *rate.Limiter
	statuses statusSource
	monitor  tomlConfigMonitor
	rand     forecast.RandSource
	now      func() time.Time
}

func newServer(statuses statusSource, cfg tomlConfig, rand forecast.RandSource) *server {
	s := &server{
		mux:      http.NewServeMux(),
		limiter:  rate.NewLimiter(rate.Limit(cfg.Http.RateLimit), cfg.Http.Burst),
		statuses: statuses,
		monitor:  cfg.Monitor,
		rand:     rand,
		now:      time.Now,
	}

	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/classify", s.handleClassify)
	s.mux.HandleFunc("/api/advise", s.handleAdvise)
	s.mux.HandleFunc("/api/dominant", s.handleDominant)
	s.mux.HandleFunc("/api/impact", s.handleImpact)
	s.mux.HandleFunc("/api/forecast", s.handleForecast)
	s.mux.HandleFunc("/api/cities", s.handleCities)
	s.mux.HandleFunc("/api/cities/", s.handleCity)
	s.mux.HandleFunc("/api/policies", s.handlePolicies)
	s.mux.HandleFunc("/api/warriors", s.handleWarriors)
	s.mux.HandleFunc("/api/leaderboard", s.handleLeaderboard)

	return s
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	logger.Debugf("%s %s", r.Method, r.URL)
	s.mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("Encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeInputError maps core validation failures to 400 and anything else to 500
func writeInputError(w http.ResponseWriter, err error) {
	if errors.Is(err, aqi.ErrInvalidInput) || errors.Is(err, forecast.ErrInvalidHorizon) ||
		errors.Is(err, forecast.ErrInvalidBase) || errors.Is(err, errBadParam) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

var errBadParam = errors.New("bad query parameter")

// two weeks of hourly points
const maxForecastHours = 336

// floatParam parses a query parameter, returning def when it is absent
func floatParam(r *http.Request, name string, def float64, required bool) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		if required {
			return 0, fmt.Errorf("%s is required: %w", name, errBadParam)
		}
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number: %w", name, raw, errBadParam)
	}
	return v, nil
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleClassify(w http.ResponseWriter, r *http.Request) {
	value, err := floatParam(r, "aqi", 0, true)
	if err != nil {
		writeInputError(w, err)
		return
	}
	cl, err := aqi.Classify(value)
	if err != nil {
		writeInputError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cl)
}

func (s *server) handleAdvise(w http.ResponseWriter, r *http.Request) {
	value, err := floatParam(r, "aqi", 0, true)
	if err != nil {
		writeInputError(w, err)
		return
	}

	resp := map[string]string{}
	if name := r.URL.Query().Get("profile"); name != "" {
		profile, err := aqi.ParseHealthProfile(name)
		if err != nil {
			writeInputError(w, err)
			return
		}
		advice, err := aqi.Advise(value, profile)
		if err != nil {
			writeInputError(w, err)
			return
		}
		resp["profile"] = profile.String()
		resp["advice"] = advice
	} else {
		advice, err := aqi.GenericAdvice(value)
		if err != nil {
			writeInputError(w, err)
			return
		}
		resp["advice"] = advice
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDominant treats an absent concentration as zero
func (s *server) handleDominant(w http.ResponseWriter, r *http.Request) {
	var readings aqi.Readings
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"pm25", &readings.PM25},
		{"pm10", &readings.PM10},
		{"no2", &readings.NO2},
		{"so2", &readings.SO2},
		{"co", &readings.CO},
		{"o3", &readings.O3},
	} {
		v, err := floatParam(r, p.name, 0, false)
		if err != nil {
			writeInputError(w, err)
			return
		}
		*p.dst = v
	}

	dominant, err := aqi.DominantPollutant(readings)
	if err != nil {
		writeInputError(w, err)
		return
	}
	ratios, err := aqi.Ratios(readings)
	if err != nil {
		writeInputError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dominant": dominant,
		"ratios":   ratios,
	})
}

func (s *server) handleImpact(w http.ResponseWriter, r *http.Request) {
	value, err := floatParam(r, "aqi", 0, true)
	if err != nil {
		writeInputError(w, err)
		return
	}
	hours, err := floatParam(r, "hours", 0, true)
	if err != nil {
		writeInputError(w, err)
		return
	}
	msg, err := aqi.EstimateImpact(value, hours)
	if err != nil {
		writeInputError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"impact": msg})
}

func (s *server) handleForecast(w http.ResponseWriter, r *http.Request) {
	hours, err := floatParam(r, "hours", float64(s.monitor.ForecastHorizon), false)
	if err != nil {
		writeInputError(w, err)
		return
	}
	if hours > maxForecastHours || hours != float64(int(hours)) {
		writeInputError(w, fmt.Errorf("hours must be a whole number up to %d: %w", maxForecastHours, errBadParam))
		return
	}
	base, err := floatParam(r, "base", s.monitor.BaseAQI, false)
	if err != nil {
		writeInputError(w, err)
		return
	}

	synth := forecast.New(
		forecast.WithHorizon(int(hours)),
		forecast.WithBaseAQI(base),
		forecast.WithRand(s.rand),
	)
	points, err := synth.Synthesize(s.now())
	if err != nil {
		writeInputError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *server) handleCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.statuses.Statuses())
}

func (s *server) handleCity(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/cities/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "city not specified")
		return
	}
	status, ok := s.statuses.Status(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no data for city: %s", id))
		return
	}
	writeJSON(w, http.StatusOK, status)
}

type policyResponse struct {
	policy.Intervention
	Impact policy.Result `json:"impact"`
}

func (s *server) handlePolicies(w http.ResponseWriter, r *http.Request) {
	out := make([]policyResponse, 0, len(fixtures.Policies))
	for _, p := range fixtures.Policies {
		res, err := policy.Impact(p)
		if err != nil {
			writeInputError(w, err)
			return
		}
		out = append(out, policyResponse{Intervention: p, Impact: res})
	}
	writeJSON(w, http.StatusOK, out)
}

type missionResponse struct {
	warriors.Mission
	Status warriors.MissionStatus `json:"status"`
}

type reportResponse struct {
	warriors.Report
	Timestamp time.Time `json:"timestamp"`
}

type warriorsResponse struct {
	Profile  warriors.Profile       `json:"profile"`
	Progress warriors.LevelProgress `json:"progress"`
	Missions []missionResponse      `json:"missions"`
	Reports  []reportResponse       `json:"reports"`
}

func (s *server) handleWarriors(w http.ResponseWriter, r *http.Request) {
	progress, err := warriors.Progress(fixtures.User)
	if err != nil {
		writeInputError(w, err)
		return
	}
	resp := warriorsResponse{
		Profile:  fixtures.User,
		Progress: progress,
		Missions: make([]missionResponse, 0, len(fixtures.Missions)),
		Reports:  make([]reportResponse, 0, len(fixtures.Reports)),
	}
	for _, m := range fixtures.Missions {
		st, err := m.Status()
		if err != nil {
			writeInputError(w, err)
			return
		}
		resp.Missions = append(resp.Missions, missionResponse{Mission: m, Status: st})
	}
	now := s.now()
	for _, rep := range fixtures.Reports {
		resp.Reports = append(resp.Reports, reportResponse{Report: rep, Timestamp: rep.Timestamp(now)})
	}
	writeJSON(w, http.StatusOK, resp)
}

type leaderboardResponse struct {
	warriors.LeaderboardEntry
	Trend  string `json:"trend"`
	Podium bool   `json:"podium"`
}

func (s *server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	out := make([]leaderboardResponse, 0, len(fixtures.Leaderboard))
	for _, e := range fixtures.Leaderboard {
		out = append(out, leaderboardResponse{LeaderboardEntry: e, Trend: e.Trend(), Podium: e.Podium()})
	}
	writeJSON(w, http.StatusOK, out)
}
