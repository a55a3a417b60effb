// Package config loads the service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds the full service configuration.
type Config struct {
	ServerAddr    string        `env:"SERVER_ADDR"    envDefault:":8080"`
	DatabaseURL   string        `env:"DATABASE_URL"   envDefault:"mongodb://localhost:27017"`
	DatabaseName  string        `env:"DATABASE_NAME"  envDefault:"emma_advisor_db"`
	StoreTimeout  time.Duration `env:"STORE_TIMEOUT"  envDefault:"5s"`
	AllowedOrigin string        `env:"ALLOWED_ORIGIN"`

	Token TokenConfig `envPrefix:"TOKEN_"`
	SMTP  SMTPConfig  `envPrefix:"SMTP_"`
}

// TokenConfig configures bearer token issuance.
type TokenConfig struct {
	Secret    string        `env:"SECRET"`
	ExpiresIn time.Duration `env:"EXPIRES_IN" envDefault:"12h"`
	Issuer    string        `env:"ISSUER"     envDefault:"family-advisor-api"`
}

// SMTPConfig configures outbound invite mail. Mail delivery is optional and
// disabled when Host is empty.
type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

// Enabled reports whether invite mail delivery is configured.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

// New creates a Config instance from environment variables.
func New(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate configuration")
	}

	return &cfg
}

// validate checks if the configuration is valid.
func (c *Config) validate() error {
	if c.Token.Secret == "" {
		return fmt.Errorf("missing TOKEN_SECRET environment variable")
	}
	if c.SMTP.Enabled() && c.SMTP.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}

	return nil
}
