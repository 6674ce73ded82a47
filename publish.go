package main

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	_ "github.com/influxdata/influxdb1-client" // this is important because of the bug in go mod
	influxclient "github.com/influxdata/influxdb1-client/v2"
)

var mqttTagLabels = []string{"name"}
var influxTagLabels = []string{"name"}

// publisher is the slice of an MQTT client the sinks need
type publisher interface {
	Publish(topic string, retained bool, payload interface{}) error
}

// sink receives every refreshed city status
type sink interface {
	Name() string
	Publish(status *cityStatus) error
}

type mqttPublisher struct {
	client mqtt.Client
}

func (p *mqttPublisher) Publish(topic string, retained bool, payload interface{}) error {
	token := p.client.Publish(topic, 0, retained, payload)
	token.Wait()
	return token.Error()
}

func getFieldTags(field reflect.StructField, lookupKey string, defaultLabels []string) map[string]string {
	tags := make(map[string]string)
	labellessTagsValid := true

	if tag, ok := field.Tag.Lookup(lookupKey); ok {
		tagParts := strings.Split(tag, ",")
		for i, tag := range tagParts {
			splitTag := strings.Split(tag, ":")
			if len(splitTag) == 1 {
				if labellessTagsValid {
					if i < len(defaultLabels) {
						tags[defaultLabels[i]] = splitTag[0]
					} else {
						logger.Errorf("Invalid tag - too many labelless tags: %s", tag)
					}
				} else {
					logger.Errorf("Invalid tag - labelless tags not allowed after labeled tag: %s", tag)
				}
			} else if len(splitTag) == 2 {
				labellessTagsValid = false
				tags[splitTag[0]] = splitTag[1]
			} else {
				logger.Errorf("Invalid tag - too many parts: %s", tag)
			}
		}
	}
	return tags
}

type taggedField struct {
	Name  string
	Value interface{}
}

// taggedFields walks the exported fields of a struct pointer, renaming them
// by the "name" label of lookupKey and skipping fields named "-"
func taggedFields(status interface{}, lookupKey string, defaultLabels []string) []taggedField {
	v := reflect.ValueOf(status).Elem()
	typeOfStatus := v.Type()

	fields := make([]taggedField, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		field := typeOfStatus.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name

		tags := getFieldTags(field, lookupKey, defaultLabels)
		if tagName, ok := tags["name"]; ok {
			if tagName == "-" {
				logger.Debugf("Ignoring field %s for %s", field.Name, lookupKey)
				continue
			}
			name = tagName
		}
		fields = append(fields, taggedField{Name: name, Value: v.Field(i).Interface()})
	}
	return fields
}

type mqttSink struct {
	pub    publisher
	prefix string
}

func (s *mqttSink) Name() string { return "mqtt" }

// Publish sends each field to <prefix>/<city>/<field>
func (s *mqttSink) Publish(status *cityStatus) error {
	var errs []error
	for _, f := range taggedFields(status, "mqtt", mqttTagLabels) {
		topic := fmt.Sprintf("%s/%s/%s", s.prefix, status.City, f.Name)
		logger.Debugf("topic = %s, value = [%v]", topic, f.Value)
		if err := s.pub.Publish(topic, false, fmt.Sprintf("%v", f.Value)); err != nil {
			errs = append(errs, fmt.Errorf("publishing %s: %w", topic, err))
		}
	}
	return errors.Join(errs...)
}

// pointWriter is the part of an InfluxDB client used for writes
type pointWriter interface {
	Write(bp influxclient.BatchPoints) error
}

type influxSink struct {
	client      pointWriter
	database    string
	measurement string
}

func newInfluxClient(cfg tomlConfigInflux) (influxclient.Client, error) {
	httpConfig := influxclient.HTTPConfig{
		Addr:    fmt.Sprintf("http://%s:%d", cfg.Hostname, cfg.Port),
		Timeout: 10 * time.Second,
	}
	if cfg.Username != "" && cfg.Password != "" {
		httpConfig.Username = cfg.Username
		httpConfig.Password = cfg.Password
	}
	return influxclient.NewHTTPClient(httpConfig)
}

func (s *influxSink) Name() string { return "influx" }

// Publish writes one point per status, tagged with the city
func (s *influxSink) Publish(status *cityStatus) error {
	bp, err := influxclient.NewBatchPoints(influxclient.BatchPointsConfig{
		Database:  s.database,
		Precision: "s",
	})
	if err != nil {
		return fmt.Errorf("creating batchpoints: %w", err)
	}

	values := map[string]interface{}{}
	for _, f := range taggedFields(status, "influx", influxTagLabels) {
		values[f.Name] = f.Value
	}

	tags := map[string]string{
		"city": status.City,
		"name": status.Name,
	}
	point, err := influxclient.NewPoint(s.measurement, tags, values, status.Updated)
	if err != nil {
		return fmt.Errorf("creating new point: %w", err)
	}
	bp.AddPoint(point)

	if err := s.client.Write(bp); err != nil {
		return fmt.Errorf("writing to influx: %w", err)
	}
	logger.Debugf("Record for %s published to InfluxDB", status.City)
	return nil
}
