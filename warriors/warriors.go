// Package warriors scores citizen engagement: level progress from points,
// mission completion and leaderboard movement.
package warriors

import (
	"errors"
	"fmt"
	"time"
)

// PointsPerLevel is the number of points between consecutive levels
const PointsPerLevel = 500

var ErrInvalidInput = errors.New("invalid engagement data")

type Profile struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Avatar        string    `json:"avatar"`
	Level         int       `json:"level"`
	LevelName     string    `json:"levelName"`
	Points        int       `json:"points"`
	Achievements  []string  `json:"achievements"`
	City          string    `json:"city"`
	HealthProfile string    `json:"healthProfile"`
	JoinedDate    time.Time `json:"joinedDate"`
}

type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Points       int    `json:"points"`
	WeeklyChange int    `json:"weeklyChange"`
	Avatar       string `json:"avatar"`
}

// Trend is "up" for a positive weekly change and "down" otherwise
func (e LeaderboardEntry) Trend() string {
	if e.WeeklyChange > 0 {
		return "up"
	}
	return "down"
}

// Podium reports whether the entry is in the top three
func (e LeaderboardEntry) Podium() bool {
	return e.Rank >= 1 && e.Rank <= 3
}

type Mission struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Progress    int    `json:"progress"`
	Total       int    `json:"total"`
	Reward      string `json:"reward"`
	Icon        string `json:"icon"`
}

// Report is a community pollution report. Age is how long before the
// reference time it was filed.
type Report struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	Type        string        `json:"type"`
	Severity    int           `json:"severity"`
	Location    string        `json:"location"`
	Coordinates [2]float64    `json:"coordinates"`
	ImageURL    string        `json:"imageUrl"`
	Description string        `json:"description"`
	Verified    bool          `json:"verified"`
	Age         time.Duration `json:"-"`
	Upvotes     int           `json:"upvotes"`
}

// Timestamp is when the report was filed relative to now
func (r Report) Timestamp(now time.Time) time.Time {
	return now.Add(-r.Age)
}

// LevelProgress is how far a user is through their current level
type LevelProgress struct {
	Percent      float64 `json:"percent"`
	PointsToNext int     `json:"pointsToNext"`
	NextLevel    int     `json:"nextLevel"`
}

// Progress returns the percentage through the current level, computed as
// (points % 500) / 5, and the points still needed for the next one
func Progress(p Profile) (LevelProgress, error) {
	if p.Points < 0 {
		return LevelProgress{}, fmt.Errorf("warriors: %s has %d points: %w", p.ID, p.Points, ErrInvalidInput)
	}
	into := p.Points % PointsPerLevel
	return LevelProgress{
		Percent:      float64(into) / (PointsPerLevel / 100),
		PointsToNext: PointsPerLevel - into,
		NextLevel:    p.Level + 1,
	}, nil
}

// MissionStatus is a mission's completion state
type MissionStatus struct {
	Percent   float64 `json:"percent"`
	Claimable bool    `json:"claimable"`
}

// Status returns the completion percentage. A mission is claimable once
// progress reaches its total.
func (m Mission) Status() (MissionStatus, error) {
	if m.Total <= 0 || m.Progress < 0 || m.Progress > m.Total {
		return MissionStatus{}, fmt.Errorf("warriors: mission %s at %d/%d: %w", m.ID, m.Progress, m.Total, ErrInvalidInput)
	}
	return MissionStatus{
		Percent:   float64(m.Progress) / float64(m.Total) * 100,
		Claimable: m.Progress == m.Total,
	}, nil
}
