package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/teedup/courseside/internal/domain"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Printer  PrinterConfig  `yaml:"printer"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// PrinterConfig seeds the printer settings store. Delays are in
// milliseconds to match the kitchen display's settings screen.
type PrinterConfig struct {
	SimulateDelays       bool         `yaml:"simulate_delays"`
	NotificationsEnabled bool         `yaml:"notifications_enabled"`
	StatusDelays         DelaysConfig `yaml:"status_delays"`
}

type DelaysConfig struct {
	PreparingMS int `yaml:"preparing_ms"`
	ReadyMS     int `yaml:"ready_ms"`
	EnRouteMS   int `yaml:"en_route_ms"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	settings := domain.DefaultPrinterSettings()
	return &Config{
		Database: DatabaseConfig{
			Host: "localhost",
			Port: 5432,
		},
		RabbitMQ: RabbitMQConfig{
			Host: "localhost",
			Port: 5672,
		},
		Printer: PrinterConfig{
			SimulateDelays:       settings.SimulateDelays,
			NotificationsEnabled: settings.NotificationsEnabled,
			StatusDelays: DelaysConfig{
				PreparingMS: int(settings.Delays.Preparing / time.Millisecond),
				ReadyMS:     int(settings.Delays.Ready / time.Millisecond),
				EnRouteMS:   int(settings.Delays.EnRoute / time.Millisecond),
			},
		},
	}
}

// Settings converts the printer section into the domain representation.
func (c PrinterConfig) Settings() domain.PrinterSettings {
	return domain.PrinterSettings{
		SimulateDelays:       c.SimulateDelays,
		NotificationsEnabled: c.NotificationsEnabled,
		Delays: domain.StatusDelays{
			Preparing: time.Duration(c.StatusDelays.PreparingMS) * time.Millisecond,
			Ready:     time.Duration(c.StatusDelays.ReadyMS) * time.Millisecond,
			EnRoute:   time.Duration(c.StatusDelays.EnRouteMS) * time.Millisecond,
		},
	}
}
