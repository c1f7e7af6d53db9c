package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name      string `envconfig:"APP_NAME" default:"ToolRent"`
		Port      int    `envconfig:"PORT" default:"8090"`
		LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
		LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
		Timezone  string `envconfig:"APP_TIMEZONE" default:"America/Santiago"`
	}

	// Store selects the persistence backend: "postgres" or "memory".
	Store string `envconfig:"STORE" default:"postgres"`

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"toolrent"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`
	}

	Server struct {
		ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
		WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
		IdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
	}

	Auth struct {
		// Secret verifies HS256 tokens. PublicKeyPEM, when set, switches to RS256.
		Secret       string `envconfig:"AUTH_SECRET"`
		PublicKeyPEM string `envconfig:"AUTH_PUBLIC_KEY"`
		Issuer       string `envconfig:"AUTH_ISSUER"`
		Disabled     bool   `envconfig:"AUTH_DISABLED" default:"false"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	Rates struct {
		DailyRentalName      string `envconfig:"RATES_DAILY_RENTAL_NAME" default:"tarifa diaria de arriendo"`
		ReplacementValueName string `envconfig:"RATES_REPLACEMENT_VALUE_NAME" default:"valor de reposición"`
		LateFeeName          string `envconfig:"RATES_LATE_FEE_NAME" default:"tarifa diaria de multa"`
	}

	Loans struct {
		MaxOpenPerCustomer int `envconfig:"LOANS_MAX_OPEN_PER_CUSTOMER" default:"5"`
	}

	Jobs struct {
		Enabled       bool   `envconfig:"JOBS_ENABLED" default:"true"`
		StandingSweep string `envconfig:"JOBS_STANDING_SWEEP" default:"0 0 * * *"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

// Location resolves App.Timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
