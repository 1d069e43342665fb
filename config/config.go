// Package config loads runtime settings from the environment, with optional
// .env file support for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the runtime settings for the desk. All fields have sensible
// defaults; set SKYDESK_* environment variables to override them.
type Config struct {
	OracleProvider string        `split_words:"true" default:"openai"`
	OracleModel    string        `split_words:"true"`
	OracleTimeout  time.Duration `split_words:"true" default:"30s"`
	HopLimit       int           `split_words:"true" default:"5"`
	LogLevel       string        `split_words:"true" default:"info"`
	LogFormat      string        `split_words:"true" default:"json"`
	HTTPAddr       string        `envconfig:"HTTP_ADDR" default:":8001"`
}

// Load reads configuration from the environment under the given prefix. A
// .env file in the working directory is loaded first when present; a
// missing file is not an error.
func Load(prefix string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load that panics on error, for use in main functions.
func MustLoad(prefix string) *Config {
	cfg, err := Load(prefix)
	if err != nil {
		panic(err)
	}
	return cfg
}
