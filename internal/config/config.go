// Package config assembles the service configuration from defaults, an
// optional YAML file, .env files and BOOKS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix      = "BOOKS"
	ConfigFileEnv  = "BOOKS_CONFIG_FILE"
	DefaultFile    = "config.yml"
	EnvProduction  = "production"
	EnvDevelopment = "development"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Env      string        `yaml:"env" envconfig:"env"`
	LogLevel zapcore.Level `yaml:"log_level" envconfig:"log_level"`
	Server   ServerConfig  `yaml:"server" envconfig:"server"`
	Storage  StorageConfig `yaml:"storage" envconfig:"storage"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" envconfig:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" envconfig:"max_body_bytes"`
	CORSOrigins     []string      `yaml:"cors_origins" envconfig:"cors_origins"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"rate_limit_rps"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"rate_limit_burst"`
}

type StorageConfig struct {
	Driver       string        `yaml:"driver" envconfig:"driver"`
	DSN          string        `yaml:"dsn" envconfig:"dsn"`
	QueryTimeout time.Duration `yaml:"query_timeout" envconfig:"query_timeout"`
	AutoMigrate  bool          `yaml:"auto_migrate" envconfig:"auto_migrate"`
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	return Config{
		Env:      EnvDevelopment,
		LogLevel: zapcore.InfoLevel,
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
			CORSOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
			RateLimitRPS:    10,
			RateLimitBurst:  20,
		},
		Storage: StorageConfig{
			Driver:       DriverMemory,
			QueryTimeout: 5 * time.Second,
		},
	}
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Validate checks the settings the service cannot start without.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server address is empty", ErrInvalidConfig)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: max body bytes must be positive", ErrInvalidConfig)
	}
	switch c.Storage.Driver {
	case DriverPostgres, DriverSQLite:
		if c.Storage.DSN == "" {
			return fmt.Errorf("%w: storage dsn is required for driver %q", ErrInvalidConfig, c.Storage.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	if c.Server.RateLimitRPS < 0 || c.Server.RateLimitBurst < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LoadFile overlays the YAML file at path onto cfg.
func LoadFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// LoadEnv overlays BOOKS_* environment variables onto cfg.
func LoadEnv(cfg *Config) error {
	return envconfig.Process(EnvPrefix, cfg)
}

// LoadEnvFiles loads .env and .env.local without overriding variables
// already present in the environment.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds the configuration. A missing default config file is not an
// error; a missing file named by BOOKS_CONFIG_FILE is.
func Load() (Config, error) {
	cfg := Default()

	LoadEnvFiles()

	path, explicit := os.LookupEnv(ConfigFileEnv)
	if !explicit {
		path = DefaultFile
	}
	if err := LoadFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load configurations from file: %w", err)
		}
	}

	if err := LoadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to load configurations from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
