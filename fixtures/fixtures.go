// Package fixtures holds the static city, sensor, policy and citizen
// engagement data the daemon simulates readings from.
package fixtures

import (
	"strings"
	"time"

	"github.com/pridkett/airsense/aqi"
	"github.com/pridkett/airsense/policy"
)

type Trend string

const (
	Increasing Trend = "increasing"
	Decreasing Trend = "decreasing"
	Stable     Trend = "stable"
)

type City struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	State       string     `json:"state"`
	Coordinates [2]float64 `json:"coordinates"`
	CurrentAQI  float64    `json:"currentAQI"`
	Sensors     int        `json:"sensors"`
	Population  int        `json:"population"`
	Trend       Trend      `json:"trend"`
}

type Sensor struct {
	ID          string       `json:"id"`
	Location    string       `json:"location"`
	Coordinates [2]float64   `json:"coordinates"`
	CurrentAQI  float64      `json:"currentAQI"`
	Readings    aqi.Readings `json:"readings"`
	Active      bool         `json:"active"`
}

var Cities = []City{
	{"hyd", "Hyderabad", "Telangana", [2]float64{17.385, 78.486}, 156, 127, 10000000, Stable},
	{"del", "Delhi", "Delhi", [2]float64{28.7041, 77.1025}, 387, 245, 19000000, Increasing},
	{"mum", "Mumbai", "Maharashtra", [2]float64{19.0760, 72.8777}, 142, 189, 20000000, Decreasing},
	{"blr", "Bangalore", "Karnataka", [2]float64{12.9716, 77.5946}, 98, 156, 12000000, Stable},
	{"che", "Chennai", "Tamil Nadu", [2]float64{13.0827, 80.2707}, 87, 134, 10000000, Decreasing},
	{"kol", "Kolkata", "West Bengal", [2]float64{22.5726, 88.3639}, 234, 167, 14000000, Increasing},
	{"pun", "Pune", "Maharashtra", [2]float64{18.5204, 73.8567}, 124, 98, 6500000, Stable},
	{"ahm", "Ahmedabad", "Gujarat", [2]float64{23.0225, 72.5714}, 198, 112, 8000000, Increasing},
	{"jai", "Jaipur", "Rajasthan", [2]float64{26.9124, 75.7873}, 176, 87, 3900000, Stable},
	{"lko", "Lucknow", "Uttar Pradesh", [2]float64{26.8467, 80.9462}, 289, 94, 3400000, Increasing},
}

var Sensors = []Sensor{
	{"HYD-001", "Banjara Hills", [2]float64{17.4239, 78.4738}, 142, aqi.Readings{PM25: 87, PM10: 156, NO2: 45, SO2: 12, CO: 0.8, O3: 34}, true},
	{"HYD-002", "Madhapur", [2]float64{17.4485, 78.3908}, 178, aqi.Readings{PM25: 98, PM10: 187, NO2: 52, SO2: 18, CO: 1.2, O3: 41}, true},
	{"HYD-003", "Gachibowli", [2]float64{17.4399, 78.3482}, 134, aqi.Readings{PM25: 79, PM10: 142, NO2: 39, SO2: 9, CO: 0.6, O3: 28}, true},
	{"HYD-004", "Secunderabad", [2]float64{17.4399, 78.4983}, 167, aqi.Readings{PM25: 92, PM10: 169, NO2: 48, SO2: 15, CO: 0.9, O3: 37}, true},
	{"HYD-005", "Kukatpally", [2]float64{17.4948, 78.3985}, 189, aqi.Readings{PM25: 104, PM10: 201, NO2: 56, SO2: 21, CO: 1.4, O3: 44}, true},
	{"HYD-006", "Begumpet", [2]float64{17.4435, 78.4677}, 145, aqi.Readings{PM25: 85, PM10: 151, NO2: 42, SO2: 11, CO: 0.7, O3: 31}, true},
}

var Policies = []policy.Intervention{
	{
		ID:                1,
		Name:              "Odd-Even Vehicle Scheme",
		City:              "Delhi",
		ImplementedDate:   date(2024, time.January, 15),
		BeforeAQI:         387,
		AfterAQI:          341,
		Cost:              50000000,
		HealthcareSavings: 280000000,
		Status:            "active",
	},
	{
		ID:                2,
		Name:              "Construction Dust Control",
		City:              "Mumbai",
		ImplementedDate:   date(2024, time.March, 1),
		BeforeAQI:         156,
		AfterAQI:          132,
		Cost:              35000000,
		HealthcareSavings: 180000000,
		Status:            "active",
	},
	{
		ID:                3,
		Name:              "Industrial Emission Standards (BS-VI)",
		City:              "All Major Cities",
		ImplementedDate:   date(2023, time.April, 1),
		BeforeAQI:         245,
		AfterAQI:          198,
		Cost:              500000000,
		HealthcareSavings: 2500000000,
		Status:            "active",
	},
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CityByID finds a city by its short id such as "hyd"
func CityByID(id string) (City, bool) {
	for _, c := range Cities {
		if c.ID == id {
			return c, true
		}
	}
	return City{}, false
}

// SensorsForCity returns the active sensors whose id carries the city prefix
func SensorsForCity(id string) []Sensor {
	prefix := strings.ToUpper(id) + "-"
	var out []Sensor
	for _, s := range Sensors {
		if s.Active && strings.HasPrefix(s.ID, prefix) {
			out = append(out, s)
		}
	}
	return out
}

// MeanReadings averages pollutant concentrations across sensors. ok is false
// when there are no sensors.
func MeanReadings(sensors []Sensor) (r aqi.Readings, ok bool) {
	if len(sensors) == 0 {
		return aqi.Readings{}, false
	}
	for _, s := range sensors {
		r.PM25 += s.Readings.PM25
		r.PM10 += s.Readings.PM10
		r.NO2 += s.Readings.NO2
		r.SO2 += s.Readings.SO2
		r.CO += s.Readings.CO
		r.O3 += s.Readings.O3
	}
	n := float64(len(sensors))
	r.PM25 /= n
	r.PM10 /= n
	r.NO2 /= n
	r.SO2 /= n
	r.CO /= n
	r.O3 /= n
	return r, true
}
