// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Config holds all configuration for the chat API.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"campus-chat"`
	Port            int           `env:"PORT" envDefault:"50051"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`
	Reflection  bool   `env:"GRPC_REFLECTION" envDefault:"true"`

	// Store
	StoreBackend  string `env:"STORE_BACKEND" envDefault:"mongo"`
	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"chat_db"`
	WatchChanges  bool   `env:"WATCH_CHANGES" envDefault:"true"`

	// Auth. JWT_KEYS has the form kid:secret,kid2:secret2 and takes
	// precedence over JWT_SECRET.
	JWTSecret    string            `env:"JWT_SECRET"`
	JWTKeys      map[string]string `env:"JWT_KEYS" envKeyValSeparator:":"`
	JWTActiveKid string            `env:"JWT_ACTIVE_KID"`
	TokenTTL     time.Duration     `env:"TOKEN_TTL" envDefault:"24h"`

	// Rate limits
	RateLimitRPM      int `env:"RATE_LIMIT_RPM" envDefault:"10"`
	SendRatePerMinute int `env:"SEND_RATE_PER_MINUTE" envDefault:"120"`

	// TLS
	TLSCert    string `env:"TLS_CERT"`
	TLSKey     string `env:"TLS_KEY"`
	RequireTLS bool   `env:"REQUIRE_TLS" envDefault:"false"`

	// Upper bound on concurrent lookups while enriching conversation lists.
	EnrichConcurrency int `env:"ENRICH_CONCURRENCY" envDefault:"8"`
}

// Load reads an optional .env file and parses environment variables into Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			return errors.New("MONGODB_URI is required when STORE_BACKEND is mongo")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if len(c.JWTKeys) == 0 && strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("either JWT_SECRET or JWT_KEYS must be set")
	}
	if len(c.JWTKeys) > 0 {
		if _, ok := c.JWTKeys[c.JWTActiveKid]; !ok {
			return fmt.Errorf("JWT_ACTIVE_KID %q is not one of JWT_KEYS", c.JWTActiveKid)
		}
	}

	if c.TLSCert == "" || c.TLSKey == "" {
		if c.RequireTLS {
			return errors.New("REQUIRE_TLS is true but TLS_CERT/TLS_KEY are not configured")
		}
	}

	if c.EnrichConcurrency < 1 {
		return fmt.Errorf("ENRICH_CONCURRENCY must be positive, got %d", c.EnrichConcurrency)
	}
	return nil
}

// Addr returns the gRPC listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// TLSEnabled reports whether both certificate and key are configured.
func (c *Config) TLSEnabled() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}
