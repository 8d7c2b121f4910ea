package domain

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the complete Shieldcall configuration.
type Config struct {
	// Server settings
	Server ServerConfig `yaml:"server"`

	// Text-generation collaborator
	Generator GeneratorConfig `yaml:"generator"`

	// Call outcome events
	EventBus EventBusConfig `yaml:"eventBus"`

	// Alert rules evaluated against finished reports
	Alerts AlertConfig `yaml:"alerts"`

	// Observability
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`  // seconds
	WriteTimeout int    `yaml:"writeTimeout"` // seconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// AlertConfig holds the alert rules applied to completed call reports.
type AlertConfig struct {
	Rules []AlertRule `yaml:"rules"`
}

// AlertRule is a CEL expression over a finished report. When the
// expression evaluates true the report is published to the alert topic.
type AlertRule struct {
	ID         string `yaml:"id"`
	Expression string `yaml:"expression"`
}

// MaxCallDuration is the decoy call budget in seconds (5 minutes).
const MaxCallDuration = 300

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30,
			WriteTimeout: 30,
		},
		Generator: GeneratorConfig{
			Enabled:     false,
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-3.5-turbo",
			Timeout:     10,
			MaxTokens:   200,
			Temperature: 0.8,
		},
		EventBus: EventBusConfig{
			Type:              "channel",
			ChannelBufferSize: 1000,
		},
		Alerts: AlertConfig{
			Rules: []AlertRule{
				{ID: "high-risk-call", Expression: `risk == "high"`},
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}
