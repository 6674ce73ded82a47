package main

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/naoina/toml"

	"github.com/pridkett/airsense/aqi"
	"github.com/pridkett/airsense/fixtures"
	"github.com/pridkett/airsense/forecast"
)

// Simulation settings
type tomlConfigMonitor struct {
	Cities          []string
	PollRate        int
	HealthProfile   string
	ForecastHorizon int
	BaseAQI         float64
}

// MQTT settings for overall configuration
type tomlConfigMQTT struct {
	BrokerHost     string
	BrokerPort     int
	BrokerUsername string
	BrokerPassword string
	ClientId       string
	TopicPrefix    string
}

type tomlConfigHass struct {
	DiscoveryPrefix string
	DeviceModel     string
	DeviceName      string
	Manufacturer    string
}

type tomlConfigInflux struct {
	Hostname    string
	Port        int
	Database    string
	Username    string
	Password    string
	Measurement string
}

type tomlConfigHttp struct {
	Listen    string
	RateLimit float64
	Burst     int
}

type tomlConfig struct {
	Monitor tomlConfigMonitor
	Mqtt    tomlConfigMQTT
	Hass    tomlConfigHass
	Influx  tomlConfigInflux
	Http    tomlConfigHttp
}

const (
	envMqttPassword   = "AIRSENSE_MQTT_PASSWORD"
	envInfluxPassword = "AIRSENSE_INFLUX_PASSWORD"
)

// loadConfig decodes a TOML configuration, fills in defaults and validates it
func loadConfig(r io.Reader) (tomlConfig, error) {
	var cfg tomlConfig
	if err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyDefaults(cfg *tomlConfig) {
	m := &cfg.Monitor
	if len(m.Cities) == 0 {
		for _, c := range fixtures.Cities {
			m.Cities = append(m.Cities, c.ID)
		}
	}
	if m.PollRate == 0 {
		m.PollRate = 30
	}
	if m.HealthProfile == "" {
		m.HealthProfile = aqi.Adult.String()
	}
	if m.ForecastHorizon == 0 {
		m.ForecastHorizon = forecast.DefaultHorizon
	}
	if m.BaseAQI == 0 {
		m.BaseAQI = forecast.DefaultBaseAQI
	}

	// only fill in sinks that were configured; an empty section disables them
	if cfg.Mqtt != (tomlConfigMQTT{}) {
		if cfg.Mqtt.BrokerPort == 0 {
			cfg.Mqtt.BrokerPort = 1883
		}
		if cfg.Mqtt.TopicPrefix == "" {
			cfg.Mqtt.TopicPrefix = "airsense"
		}
		if cfg.Mqtt.ClientId == "" {
			cfg.Mqtt.ClientId = "airsense-" + uuid.NewString()[:8]
		}
	}
	if cfg.Hass != (tomlConfigHass{}) {
		if cfg.Hass.DiscoveryPrefix == "" {
			cfg.Hass.DiscoveryPrefix = "homeassistant"
		}
		if cfg.Hass.DeviceName == "" {
			cfg.Hass.DeviceName = "AirSense"
		}
		if cfg.Hass.DeviceModel == "" {
			cfg.Hass.DeviceModel = "Simulated Monitor"
		}
		if cfg.Hass.Manufacturer == "" {
			cfg.Hass.Manufacturer = "AirSense India"
		}
	}
	if cfg.Influx != (tomlConfigInflux{}) {
		if cfg.Influx.Port == 0 {
			cfg.Influx.Port = 8086
		}
		if cfg.Influx.Measurement == "" {
			cfg.Influx.Measurement = "airsense"
		}
	}

	if cfg.Http.Listen == "" {
		cfg.Http.Listen = ":8080"
	}
	if cfg.Http.RateLimit == 0 {
		cfg.Http.RateLimit = 10
	}
	if cfg.Http.Burst == 0 {
		cfg.Http.Burst = 20
	}
}

func validateConfig(cfg *tomlConfig) error {
	m := cfg.Monitor
	if m.PollRate < 0 {
		return fmt.Errorf("monitor.pollrate must be positive, got %d", m.PollRate)
	}
	if m.ForecastHorizon < 0 {
		return fmt.Errorf("monitor.forecasthorizon must be positive, got %d", m.ForecastHorizon)
	}
	if _, err := aqi.ParseHealthProfile(m.HealthProfile); err != nil {
		return fmt.Errorf("monitor.healthprofile: %w", err)
	}
	for _, id := range m.Cities {
		if _, ok := fixtures.CityByID(id); !ok {
			return fmt.Errorf("monitor.cities: unknown city %q", id)
		}
	}
	if cfg.Hass != (tomlConfigHass{}) && cfg.Mqtt == (tomlConfigMQTT{}) {
		return fmt.Errorf("hass configuration found but no MQTT configuration found - please configure MQTT broker")
	}
	if cfg.Influx != (tomlConfigInflux{}) && (cfg.Influx.Hostname == "" || cfg.Influx.Database == "") {
		return fmt.Errorf("influx configuration requires hostname and database")
	}
	if cfg.Http.RateLimit < 0 || cfg.Http.Burst < 0 {
		return fmt.Errorf("http rate limit and burst must be positive")
	}
	return nil
}

// applyEnv lets secrets come from the environment (or a .env file) rather
// than the config file
func applyEnv(cfg *tomlConfig, getenv func(string) string) {
	if cfg.Mqtt != (tomlConfigMQTT{}) {
		if pw := getenv(envMqttPassword); pw != "" {
			cfg.Mqtt.BrokerPassword = pw
		}
	}
	if cfg.Influx != (tomlConfigInflux{}) {
		if pw := getenv(envInfluxPassword); pw != "" {
			cfg.Influx.Password = pw
		}
	}
}
