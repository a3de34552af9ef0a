// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Solo picker names accepted in SOLO_PICKER.
const (
	PickerRandom = "random"
	PickerDaily  = "daily"
)

// Config holds every tunable of the server and terminal client.
type Config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// WordsFile overrides the embedded word list.
	WordsFile string `env:"WORDS_FILE"`

	ClientOrigin  string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	SessionSecret string        `env:"SESSION_SECRET" envDefault:"dev_secret_change_me"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"2h"`

	// RevealStep is the delay between two revealed letters. Zero reveals a
	// row at once.
	RevealStep time.Duration `env:"REVEAL_STEP" envDefault:"180ms"`

	SoloPicker string `env:"SOLO_PICKER" envDefault:"random"`
	DailySalt  string `env:"DAILY_SALT" envDefault:"local_dev_salt"`

	OTelEnabled bool `env:"OTEL_ENABLED" envDefault:"false"`
}

// Load reads an optional .env file and parses the environment into Config.
func Load() (Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.SoloPicker {
	case PickerRandom, PickerDaily:
	default:
		return fmt.Errorf("SOLO_PICKER: unknown picker %q", c.SoloPicker)
	}
	if c.RevealStep < 0 {
		return fmt.Errorf("REVEAL_STEP: must not be negative")
	}
	return nil
}
