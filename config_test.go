package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pridkett/airsense/fixtures"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig(strings.NewReader(""))
		require.NoError(t, err)

		assert.Len(t, cfg.Monitor.Cities, len(fixtures.Cities))
		assert.Equal(t, 30, cfg.Monitor.PollRate)
		assert.Equal(t, "adult", cfg.Monitor.HealthProfile)
		assert.Equal(t, 72, cfg.Monitor.ForecastHorizon)
		assert.Equal(t, 156.0, cfg.Monitor.BaseAQI)
		assert.Equal(t, ":8080", cfg.Http.Listen)
		assert.Equal(t, 10.0, cfg.Http.RateLimit)
		assert.Equal(t, 20, cfg.Http.Burst)

		// unconfigured sinks stay empty so they remain disabled
		assert.Equal(t, tomlConfigMQTT{}, cfg.Mqtt)
		assert.Equal(t, tomlConfigHass{}, cfg.Hass)
		assert.Equal(t, tomlConfigInflux{}, cfg.Influx)
	})

	t.Run("full", func(t *testing.T) {
		cfg, err := loadConfig(strings.NewReader(`
[monitor]
cities = ["hyd", "del"]
poll_rate = 10
health_profile = "asthma"

[mqtt]
broker_host = "localhost"
broker_username = "airsense"

[hass]
device_name = "Sensors"

[influx]
hostname = "influx.local"
database = "air"
`))
		require.NoError(t, err)

		assert.Equal(t, []string{"hyd", "del"}, cfg.Monitor.Cities)
		assert.Equal(t, 10, cfg.Monitor.PollRate)
		assert.Equal(t, "asthma", cfg.Monitor.HealthProfile)

		assert.Equal(t, 1883, cfg.Mqtt.BrokerPort)
		assert.Equal(t, "airsense", cfg.Mqtt.TopicPrefix)
		assert.True(t, strings.HasPrefix(cfg.Mqtt.ClientId, "airsense-"))

		assert.Equal(t, "homeassistant", cfg.Hass.DiscoveryPrefix)
		assert.Equal(t, "Sensors", cfg.Hass.DeviceName)

		assert.Equal(t, 8086, cfg.Influx.Port)
		assert.Equal(t, "airsense", cfg.Influx.Measurement)
	})

	t.Run("invalid", func(t *testing.T) {
		for name, doc := range map[string]string{
			"unknown city":    "[monitor]\ncities = [\"nyc\"]\n",
			"unknown profile": "[monitor]\nhealth_profile = \"teenager\"\n",
			"negative poll":   "[monitor]\npoll_rate = -5\n",
			"hass no mqtt":    "[hass]\ndevice_name = \"x\"\n",
			"influx no db":    "[influx]\nhostname = \"x\"\n",
			"unknown key":     "[monitor]\nbogus = 1\n",
			"bad toml":        "[monitor\n",
		} {
			_, err := loadConfig(strings.NewReader(doc))
			assert.Error(t, err, name)
		}
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		envMqttPassword:   "mqtt-secret",
		envInfluxPassword: "influx-secret",
	}
	getenv := func(k string) string { return env[k] }

	t.Run("configured sections", func(t *testing.T) {
		cfg := tomlConfig{
			Mqtt:   tomlConfigMQTT{BrokerHost: "localhost", BrokerPassword: "file"},
			Influx: tomlConfigInflux{Hostname: "localhost"},
		}
		applyEnv(&cfg, getenv)
		assert.Equal(t, "mqtt-secret", cfg.Mqtt.BrokerPassword)
		assert.Equal(t, "influx-secret", cfg.Influx.Password)
	})

	t.Run("unconfigured sections stay disabled", func(t *testing.T) {
		var cfg tomlConfig
		applyEnv(&cfg, getenv)
		assert.Equal(t, tomlConfigMQTT{}, cfg.Mqtt)
		assert.Equal(t, tomlConfigInflux{}, cfg.Influx)
	})
}
