package main

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStatus() *cityStatus {
	return &cityStatus{
		City:              "hyd",
		Name:              "Hyderabad",
		AQI:               156,
		Category:          "moderate",
		Label:             "Moderate",
		ColorToken:        "aqi-moderate",
		DominantPollutant: "PM10",
		PM25SubIndex:      203,
		PM10SubIndex:      145,
		Advice:            "Members of sensitive groups may experience health effects.",
		ProfileAdvice:     "Reduce prolonged or heavy outdoor exertion.",
		NextHourAQI:       160,
		Confidence:        0.9,
		Updated:           time.Date(2024, 11, 3, 6, 0, 0, 0, time.UTC),
	}
}

func TestGetFieldTags(t *testing.T) {
	type tagged struct {
		Plain    int `mqtt:"plain"`
		Labelled int `mqtt:"name:renamed,unit:ppm"`
		Mixed    int `mqtt:"first,unit:x"`
		Untagged int
	}
	typ := reflect.TypeOf(tagged{})

	field, _ := typ.FieldByName("Plain")
	assert.Equal(t, map[string]string{"name": "plain"}, getFieldTags(field, "mqtt", mqttTagLabels))

	field, _ = typ.FieldByName("Labelled")
	assert.Equal(t, map[string]string{"name": "renamed", "unit": "ppm"}, getFieldTags(field, "mqtt", mqttTagLabels))

	field, _ = typ.FieldByName("Mixed")
	assert.Equal(t, map[string]string{"name": "first", "unit": "x"}, getFieldTags(field, "mqtt", mqttTagLabels))

	field, _ = typ.FieldByName("Untagged")
	assert.Empty(t, getFieldTags(field, "mqtt", mqttTagLabels))
}

func TestTaggedFields(t *testing.T) {
	fields := taggedFields(sampleStatus(), "mqtt", mqttTagLabels)

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"aqi", "category", "label", "color_token", "dominant_pollutant", "pm25_sub_index",
		"pm10_sub_index", "advice", "profile_advice", "next_hour_aqi", "confidence",
	}, names)
	assert.Equal(t, 156, fields[0].Value)
}

func TestMqttSink(t *testing.T) {
	pub := &fakePublisher{}
	s := &mqttSink{pub: pub, prefix: "airsense"}

	require.NoError(t, s.Publish(sampleStatus()))

	msgs := pub.byTopic()
	assert.Len(t, msgs, 11)
	assert.Equal(t, "156", msgs["airsense/hyd/aqi"].Payload)
	assert.Equal(t, "145", msgs["airsense/hyd/pm10_sub_index"].Payload)
	assert.Equal(t, "PM10", msgs["airsense/hyd/dominant_pollutant"].Payload)
	assert.Equal(t, "0.9", msgs["airsense/hyd/confidence"].Payload)
	assert.NotContains(t, msgs, "airsense/hyd/City")
	assert.NotContains(t, msgs, "airsense/hyd/Updated")
}

func TestMqttSinkError(t *testing.T) {
	s := &mqttSink{pub: &fakePublisher{err: errBroker}, prefix: "airsense"}
	err := s.Publish(sampleStatus())
	assert.ErrorIs(t, err, errBroker)
}

func TestInfluxSink(t *testing.T) {
	w := &fakeWriter{}
	s := &influxSink{client: w, database: "air", measurement: "airsense"}

	status := sampleStatus()
	require.NoError(t, s.Publish(status))
	require.Len(t, w.batches, 1)

	bp := w.batches[0]
	assert.Equal(t, "air", bp.Database())
	require.Len(t, bp.Points(), 1)

	point := bp.Points()[0]
	assert.Equal(t, "airsense", point.Name())
	assert.Equal(t, map[string]string{"city": "hyd", "name": "Hyderabad"}, point.Tags())
	assert.True(t, status.Updated.Equal(point.Time()))

	fields, err := point.Fields()
	require.NoError(t, err)
	assert.EqualValues(t, 156, fields["aqi"])
	assert.Equal(t, "moderate", fields["category"])
	assert.Equal(t, "PM10", fields["dominant_pollutant"])
	assert.Equal(t, 0.9, fields["confidence"])
	assert.EqualValues(t, 145, fields["pm10_sub_index"])
	assert.NotContains(t, fields, "advice")
	assert.NotContains(t, fields, "label")
}

func TestInfluxSinkError(t *testing.T) {
	s := &influxSink{client: &fakeWriter{err: errBroker}, database: "air", measurement: "airsense"}
	assert.ErrorIs(t, s.Publish(sampleStatus()), errBroker)
}

func TestHassSink(t *testing.T) {
	pub := &fakePublisher{}
	s := &hassSink{
		pub: pub,
		cfg: tomlConfigHass{
			DiscoveryPrefix: "homeassistant",
			DeviceName:      "AirSense",
			DeviceModel:     "Simulated Monitor",
			Manufacturer:    "AirSense India",
		},
		version: "test",
	}

	require.NoError(t, s.Publish(sampleStatus()))

	msgs := pub.byTopic()
	// aqi, category, dominant_pollutant, pm25_sub_index, pm10_sub_index, next_hour_aqi
	assert.Len(t, msgs, 18)

	base := "homeassistant/sensor/airsense_hyd/aqi"
	assert.Equal(t, "online", msgs[base+"/availability"].Payload)
	assert.Equal(t, "156", msgs[base+"/state"].Payload)

	cfgMsg := msgs[base+"/config"]
	assert.True(t, cfgMsg.Retained)
	payload, ok := cfgMsg.Payload.([]byte)
	require.True(t, ok)

	var hc hassMqttConfig
	require.NoError(t, json.Unmarshal(payload, &hc))
	assert.Equal(t, "AQI", hc.Name)
	assert.Equal(t, "AQI", hc.UnitOfMeasurement)
	assert.Equal(t, "aqi", hc.DeviceClass)
	assert.Equal(t, "airsense_hyd_aqi", hc.UniqueId)
	assert.Equal(t, base+"/state", hc.StateTopic)
	assert.Equal(t, []string{"airsense_hyd"}, hc.Device.Identifiers)
	assert.Equal(t, "AirSense Hyderabad", hc.Device.Name)
	assert.Equal(t, "test", hc.Device.SWVersion)

	assert.NotContains(t, msgs, "homeassistant/sensor/airsense_hyd/advice/state")
}
