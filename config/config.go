package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppName    string `envconfig:"APP_NAME" yaml:"app_name" default:"stargazer-api"`
	AppVersion string `envconfig:"APP_VERSION" yaml:"app_version" default:"1.0.0"`
	AppEnv     string `envconfig:"APP_ENV" yaml:"app_env" default:"development"`
	Port       string `envconfig:"PORT" yaml:"port" default:"8080"`

	DatabaseURL string `envconfig:"DATABASE_URL" yaml:"database_url"`

	DarkSkyBaseURL string `envconfig:"DARKSKY_BASE_URL" yaml:"darksky_base_url"`
	DarkSkyAPIKey  string `envconfig:"DARKSKY_API_KEY" yaml:"darksky_api_key"`
	GoogleAPIKey   string `envconfig:"GOOGLE_API_KEY" yaml:"google_api_key"`

	RequestTimeoutSeconds int `envconfig:"REQUEST_TIMEOUT_SECONDS" yaml:"request_timeout_seconds" default:"30"`

	SentryDSN string `envconfig:"SENTRY_DSN" yaml:"sentry_dsn"`
}

func NewConfig() *Config {
	return NewConfigFromFile("config/config.yaml")
}

func NewConfigFromFile(path string) *Config {
	var cnf Config

	// Read from YAML file first
	if yamlData, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(yamlData, &cnf); err != nil {
			panic(fmt.Sprintf("Warning: failed to parse YAML config: %v\n", err))
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", &cnf); err != nil {
		panic(fmt.Errorf("error environment variable parsing: %w", err))
	}

	return &cnf
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
