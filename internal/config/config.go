// Package config loads service configuration from the environment.
//
// A `.env` file in the working directory, when present, is loaded into the
// process environment before anything is read.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Redis    RedisConfig    `koanf:"redis"`
	NewRelic NewRelicConfig `koanf:"newrelic"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required,numeric"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0"`
	CORSOrigin   string        `koanf:"cors_origin" validate:"required"`
}

// DatabaseConfig holds MongoDB configuration.
// URI wins over the User/Password/Host triple when set.
type DatabaseConfig struct {
	URI            string        `koanf:"uri"`
	User           string        `koanf:"user"`
	Password       string        `koanf:"password"`
	Host           string        `koanf:"host" validate:"required_without=URI"`
	AppName        string        `koanf:"app_name"`
	Name           string        `koanf:"name" validate:"required"`
	ConnectTimeout time.Duration `koanf:"connect_timeout" validate:"gt=0"`
	FailFast       bool          `koanf:"fail_fast"`
}

// RedisConfig holds Redis configuration. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0"`
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string `koanf:"app_name"`
	LicenseKey string `koanf:"license_key"`
	Enabled    bool   `koanf:"enabled"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=console json"`
}

// envKeys maps environment variable names onto koanf key paths.
var envKeys = map[string]string{
	"PORT":                  "server.port",
	"SERVER_READ_TIMEOUT":   "server.read_timeout",
	"SERVER_WRITE_TIMEOUT":  "server.write_timeout",
	"CORS_ORIGIN":           "server.cors_origin",
	"MONGODB_URI":           "database.uri",
	"DB_USER":               "database.user",
	"DB_PASS":               "database.password",
	"DB_HOST":               "database.host",
	"DB_APP_NAME":           "database.app_name",
	"DB_NAME":               "database.name",
	"DB_CONNECT_TIMEOUT":    "database.connect_timeout",
	"DB_FAIL_FAST":          "database.fail_fast",
	"REDIS_ADDR":            "redis.addr",
	"REDIS_PASSWORD":        "redis.password",
	"REDIS_DB":              "redis.db",
	"NEW_RELIC_APP_NAME":    "newrelic.app_name",
	"NEW_RELIC_LICENSE_KEY": "newrelic.license_key",
	"NEW_RELIC_ENABLED":     "newrelic.enabled",
	"LOG_LEVEL":             "log.level",
	"LOG_FORMAT":            "log.format",
}

// Default returns the configuration used when no environment is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "5000",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			CORSOrigin:   "http://localhost:5173",
		},
		Database: DatabaseConfig{
			Host:           "cluster2.emeucb3.mongodb.net",
			AppName:        "Cluster2",
			Name:           "parcelDB",
			ConnectTimeout: 10 * time.Second,
		},
		NewRelic: NewRelicConfig{
			AppName: "parcel-delivery-service",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from environment variables on top of Default.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ConnectionURI returns the MongoDB connection string.
func (d DatabaseConfig) ConnectionURI() string {
	if d.URI != "" {
		return d.URI
	}

	u := url.URL{
		Scheme: "mongodb+srv",
		Host:   d.Host,
		Path:   "/",
	}
	if d.User != "" {
		u.User = url.UserPassword(d.User, d.Password)
	}

	q := url.Values{}
	q.Set("retryWrites", "true")
	q.Set("w", "majority")
	if d.AppName != "" {
		q.Set("appName", d.AppName)
	}
	u.RawQuery = q.Encode()

	return u.String()
}
