package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/joho/godotenv"
	"github.com/withmandala/go-log"

	"github.com/pridkett/airsense/forecast"
)

const version = "0.3.0"

// set up a global logger...
// see: https://stackoverflow.com/a/43827612/57626
var logger *log.Logger

var config tomlConfig

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	r := client.OptionsReader()
	logger.Infof("Connected to MQTT at %s", r.Servers())
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	logger.Errorf("MQTT Connection lost: %v", err)
}

func main() {
	logger = log.New(os.Stderr).WithColor()

	configFile := flag.String("config", "", "Filename with configuration")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *debug {
		logger = logger.WithDebug()
	}

	if err := godotenv.Load(); err != nil {
		logger.Debugf("No .env file loaded: %v", err)
	}

	if *configFile == "" {
		logger.Fatal("Must specify configuration file with -config FILENAME")
	}
	f, err := os.Open(*configFile)
	if err != nil {
		logger.Fatal(err)
	}
	config, err = loadConfig(f)
	f.Close()
	if err != nil {
		logger.Fatal(err)
	}
	applyEnv(&config, os.Getenv)

	var sinks []sink
	var client mqtt.Client
	if config.Mqtt != (tomlConfigMQTT{}) {
		client, err = mqttConnect(config.Mqtt)
		if err != nil {
			logger.Fatal(err)
		}
		pub := &mqttPublisher{client: client}
		sinks = append(sinks, &mqttSink{pub: pub, prefix: config.Mqtt.TopicPrefix})
		if config.Hass != (tomlConfigHass{}) {
			sinks = append(sinks, &hassSink{pub: pub, cfg: config.Hass, version: version})
		}
	} else {
		logger.Info("No MQTT configuration found - not publishing to MQTT broker")
	}

	if config.Influx != (tomlConfigInflux{}) {
		c, err := newInfluxClient(config.Influx)
		if err != nil {
			logger.Fatalf("Error creating InfluxDB Client: %v", err)
		}
		defer c.Close()
		sinks = append(sinks, &influxSink{
			client:      c,
			database:    config.Influx.Database,
			measurement: config.Influx.Measurement,
		})
	}

	entropy := forecast.NewEntropySource()
	mon, err := newMonitor(config.Monitor, sinks, entropy)
	if err != nil {
		logger.Fatal(err)
	}
	if err := mon.start(); err != nil {
		logger.Fatal(err)
	}

	httpServer := &http.Server{
		Addr:              config.Http.Listen,
		Handler:           newServer(mon, config, entropy),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("Starting API server on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("API server stopped: %v", err)
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-shutdownChan
	logger.Infof("Shutting down due to %s signal", sig)

	mon.stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("Error shutting down API server: %v", err)
	}
	if client != nil {
		client.Disconnect(250)
	}
	logger.Info("Shutdown complete")
}

func mqttConnect(cfg tomlConfigMQTT) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()

	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.BrokerHost, cfg.BrokerPort))
	if cfg.BrokerPassword != "" && cfg.BrokerUsername != "" {
		opts.SetUsername(cfg.BrokerUsername)
		opts.SetPassword(cfg.BrokerPassword)
	}
	opts.SetClientID(cfg.ClientId)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}
	return client, nil
}
