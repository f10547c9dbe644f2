// Package config for the sendgate service
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Config contains this application's runtime configuration.
type Config struct {
	ServerAddress  string `env:"SERVER_ADDRESS" envDefault:":8080"`
	EnableHTTPS    bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	HTTPSCertFile  string `env:"HTTPS_CERT_FILE" envDefault:""`
	HTTPSKeyFile   string `env:"HTTPS_KEY_FILE" envDefault:""`
	MetricsAddress string `env:"METRICS_ADDRESS" envDefault:":9090"`

	AuthSecret         string   `env:"AUTH_JWT_SECRET"`
	AuthAllowedIssuers []string `env:"AUTH_ALLOWED_ISSUERS" envSeparator:","`

	EmailProvider      string        `env:"EMAIL_PROVIDER" envDefault:"AWS_SES"`
	SesMaxBackoffDelay time.Duration `env:"SES_MAX_BACKOFF_DELAY" envDefault:"5s"`
	SesMaxAttempts     int           `env:"SES_MAX_ATTEMPTS" envDefault:"3"`

	PlanCatalogFile string `env:"PLAN_CATALOG_FILE" envDefault:""`

	PacingMinDelayMs int `env:"PACING_MIN_DELAY_MS" envDefault:"3000"`
	PacingMaxDelayMs int `env:"PACING_MAX_DELAY_MS" envDefault:"12000"`

	CounterCleanupPeriod time.Duration `env:"COUNTER_CLEANUP_PERIOD" envDefault:"6h"`
	CounterRetentionDays int           `env:"COUNTER_RETENTION_DAYS" envDefault:"62"`

	DatabaseConfig DbConfig
}

// DbConfig holds the Postgres connection settings.
type DbConfig struct {
	Host               string `env:"DATABASE_HOST" envDefault:"localhost"`
	Port               int    `env:"DATABASE_PORT" envDefault:"5432"`
	Name               string `env:"DATABASE_NAME" envDefault:"postgres"`
	User               string `env:"DATABASE_USER" envDefault:"postgres"`
	Password           string `env:"DATABASE_PASSWORD" envDefault:"postgres"`
	SSLMode            string `env:"DATABASE_SSL_MODE" envDefault:"disable"`
	MaxOpenConnections int    `env:"DATABASE_MAX_CONNECTIONS" envDefault:"50"`
}

// GetConfig retrieves the current runtime configuration from the environment and returns it.
func GetConfig() (*Config, error) {
	c := Config{}
	var configErrors *multierror.Error

	if err := env.Parse(&c); err != nil {
		return nil, errors.Wrap(err, "unable to parse runtime configuration from environment")
	}

	if c.EnableHTTPS {
		if c.HTTPSCertFile == "" || c.HTTPSKeyFile == "" {
			configErrors = multierror.Append(configErrors,
				errors.New("ENABLE_HTTPS is true but required variables HTTPS_CERT_FILE or HTTPS_KEY_FILE are empty"))
		}
	}

	if c.AuthSecret == "" {
		configErrors = multierror.Append(configErrors, errors.New("AUTH_JWT_SECRET environment variable is not set"))
	}

	if c.PacingMinDelayMs < 0 || c.PacingMaxDelayMs < c.PacingMinDelayMs {
		configErrors = multierror.Append(configErrors,
			errors.New("PACING_MIN_DELAY_MS and PACING_MAX_DELAY_MS must describe a non-empty range"))
	}

	if cfgErr := configErrors.ErrorOrNil(); cfgErr != nil {
		return nil, errors.Wrap(cfgErr, "invalid configuration settings")
	}
	return &c, nil
}
