// Package config internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the service configuration, populated from the environment
type Config struct {
	// ListenAddr is the HTTP listen address
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// DBPath is the directory holding the BadgerDB files
	DBPath string `env:"DB_PATH" envDefault:"./data"`

	// NotificationURL is the base URL of the notification gateway
	NotificationURL string `env:"NOTIFICATION_URL" envDefault:"http://localhost:9091"`

	// PaymentURL is the base URL of the payment gateway
	PaymentURL string `env:"PAYMENT_URL" envDefault:"http://localhost:9092"`

	// GatewayTimeout bounds each outbound gateway call
	GatewayTimeout time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"10s"`

	// LogLevel is one of debug/info/warn/error
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}
