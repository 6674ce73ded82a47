package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Types for Home Assistant MQTT Discovery
type hassMqttConfigDevice struct {
	Identifiers  []string `json:"identifiers"`
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model"`
	Name         string   `json:"name"`
	SWVersion    string   `json:"sw_version,omitempty"`
}

type hassMqttConfig struct {
	AvailabilityTopic string               `json:"availability_topic"`
	Device            hassMqttConfigDevice `json:"device"`
	DeviceClass       string               `json:"device_class,omitempty"`
	Name              string               `json:"name"`
	Qos               int                  `json:"qos"`
	StateTopic        string               `json:"state_topic"`
	UniqueId          string               `json:"unique_id"`
	Icon              string               `json:"icon,omitempty"`
	UnitOfMeasurement string               `json:"unit_of_measurement,omitempty"`
}

type hassSink struct {
	pub     publisher
	cfg     tomlConfigHass
	version string
}

func (s *hassSink) Name() string { return "hass" }

// Publish announces every hass-tagged field of the status as a sensor of a
// per-city device, then sends availability and state.
//
// The hass tag is "name,unit,device_class"; "-" skips the field or a part.
func (s *hassSink) Publish(status *cityStatus) error {
	v := reflect.ValueOf(status).Elem()
	typeOfStatus := v.Type()

	identifier := "airsense_" + status.City
	deviceName := fmt.Sprintf("%s %s", s.cfg.DeviceName, status.Name)

	var errs []error
	for i := 0; i < v.NumField(); i++ {
		field := typeOfStatus.Field(i)
		fieldName := field.Name
		mqttFieldName := fieldName

		unitOfMeasurement := ""
		deviceClass := ""

		hassTag, ok := field.Tag.Lookup("hass")
		if !ok {
			continue
		}
		tagParts := strings.Split(hassTag, ",")
		if tagParts[0] == "-" {
			logger.Debugf("Ignoring sending field %s to HomeAssistant", fieldName)
			continue
		}
		mqttFieldName = tagParts[0]
		if len(tagParts) > 1 && tagParts[1] != "-" {
			unitOfMeasurement = tagParts[1]
		}
		if len(tagParts) > 2 && tagParts[2] != "-" {
			deviceClass = tagParts[2]
		}

		// generate the topic name
		topic := fmt.Sprintf("%s/%s/%s/%s", s.cfg.DiscoveryPrefix, "sensor", identifier, mqttFieldName)

		hassConfig := hassMqttConfig{
			AvailabilityTopic: topic + "/availability",
			Device: hassMqttConfigDevice{
				Identifiers:  []string{identifier},
				Manufacturer: s.cfg.Manufacturer,
				Model:        s.cfg.DeviceModel,
				Name:         deviceName,
				SWVersion:    s.version,
			},
			DeviceClass:       deviceClass,
			Name:              fieldName,
			Qos:               0,
			StateTopic:        topic + "/state",
			UniqueId:          fmt.Sprintf("%s_%s", identifier, mqttFieldName),
			UnitOfMeasurement: unitOfMeasurement,
		}

		configPayload, err := json.Marshal(hassConfig)
		if err != nil {
			errs = append(errs, fmt.Errorf("marshalling hass config for %s: %w", mqttFieldName, err))
			continue
		}

		// config first so Home Assistant knows the entity before state arrives
		if err := s.pub.Publish(topic+"/config", true, configPayload); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.pub.Publish(topic+"/availability", false, "online"); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.pub.Publish(topic+"/state", false, fmt.Sprintf("%v", v.Field(i).Interface())); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
