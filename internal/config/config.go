// Package config loads service configuration from defaults, an optional
// config file, OTTOORDER_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hammamikhairi/ottoorder/internal/logger"
)

// EnvPrefix is prepended to every environment variable name, so
// server.addr is read from OTTOORDER_SERVER_ADDR.
const EnvPrefix = "OTTOORDER"

// Config is the full service configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Log     LogConfig     `mapstructure:"log"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// CatalogConfig locates catalog documents and the zone their opening
// hours are written in.
type CatalogConfig struct {
	Dir      string `mapstructure:"dir"`
	Timezone string `mapstructure:"timezone"`
}

// LogConfig controls the leveled logger. An empty File logs to stderr.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// CORSConfig configures cross-origin access for browser clients.
type CORSConfig struct {
	AllowedOrigins string `mapstructure:"allowed_origins"`
	AllowedMethods string `mapstructure:"allowed_methods"`
	AllowedHeaders string `mapstructure:"allowed_headers"`
	MaxAge         int    `mapstructure:"max_age"`
}

// SetDefaults registers the default of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.max_body_bytes", 64<<10)

	v.SetDefault("catalog.dir", "catalogs")
	v.SetDefault("catalog.timezone", "America/Sao_Paulo")

	v.SetDefault("log.level", "normal")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetDefault("cors.allowed_origins", "*")
	v.SetDefault("cors.allowed_methods", "GET,POST,OPTIONS")
	v.SetDefault("cors.allowed_headers", "Content-Type,X-Request-Id")
	v.SetDefault("cors.max_age", 600)
}

// NewViper prepares a viper instance with defaults and environment
// binding. cfgFile is optional; when set it must exist.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return v, nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server timeouts must be > 0 (read %v, write %v)",
			c.Server.ReadTimeout, c.Server.WriteTimeout))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes))
	}
	if strings.TrimSpace(c.Catalog.Dir) == "" {
		errs = append(errs, errors.New("catalog.dir must not be empty"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.CORS.MaxAge < 0 {
		errs = append(errs, fmt.Errorf("cors.max_age must be >= 0 (got %d)", c.CORS.MaxAge))
	}

	return errors.Join(errs...)
}

// Location resolves the catalog time zone. An empty name means the local
// zone of the host.
func (c *Config) Location() (*time.Location, error) {
	if c.Catalog.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Catalog.Timezone)
	if err != nil {
		return nil, fmt.Errorf("catalog.timezone: %w", err)
	}
	return loc, nil
}

// LogLevel returns the parsed log level. Call after Validate.
func (c *Config) LogLevel() logger.Level {
	level, _ := logger.ParseLevel(c.Log.Level)
	return level
}
