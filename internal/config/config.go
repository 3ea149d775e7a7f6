// Package config provides hierarchical configuration loading for meritd.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the meritd service.
type Config struct {
	Server    Server    `yaml:"server"`
	NATS      NATS      `yaml:"nats"`
	Logging   Logging   `yaml:"logging"`
	Cache     Cache     `yaml:"cache"`
	Telemetry Telemetry `yaml:"telemetry"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// NATS holds the JetStream event relay configuration. An empty URL disables
// the relay.
type NATS struct {
	URL string `yaml:"url"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// Cache holds the read-side response cache configuration.
type Cache struct {
	MaxCostBytes int64         `yaml:"max_cost_bytes"`
	TTL          time.Duration `yaml:"ttl"`
}

// Telemetry holds OpenTelemetry exporter configuration. An empty endpoint
// disables export.
type Telemetry struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// Defaults returns a Config with sensible default values for local development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:       "8080",
			CORSOrigin: "http://localhost:3000",
		},
		NATS: NATS{
			URL: "",
		},
		Logging: Logging{
			Level:   "info",
			Service: "meritd",
		},
		Cache: Cache{
			MaxCostBytes: 32 << 20,
			TTL:          5 * time.Second,
		},
		Telemetry: Telemetry{
			OTLPEndpoint: "",
		},
	}
}
