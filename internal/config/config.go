// Package config provides configuration management for the shop API.
//
// Configuration is loaded in the following order (later sources override
// earlier ones):
//  1. Default values (hardcoded)
//  2. Configuration files (./config.yaml, ./configs/config.yaml,
//     ~/.shopapi/config.yaml, /etc/shopapi/config.yaml)
//  3. .env files
//  4. Environment variables (SHOP_ prefix)
//
// Environment variables use underscores for nested keys:
//   - SHOP_SERVER_PORT=8080
//   - SHOP_SITE_PREFIX=ai
//   - SHOP_SECURITY_JWT_SECRET=...
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration structure.
type Config struct {
	// Server contains the HTTP server settings
	Server ServerConfig `mapstructure:"server"`

	// Site contains shop-wide response metadata and page sizes
	Site SiteConfig `mapstructure:"site"`

	// Security contains CSRF, JWT and rate limiting settings
	Security SecurityConfig `mapstructure:"security"`

	// Logging contains logging settings
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address
	Host string `mapstructure:"host"`

	// Port is the server listen port
	Port int `mapstructure:"port"`

	// ReadTimeout is the maximum duration for reading requests
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout is the maximum duration for writing responses
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// ShutdownTimeout is the maximum duration for graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// Debug enables error details in responses and debug logging
	Debug bool `mapstructure:"debug"`
}

// SiteConfig contains the response metadata every document carries and
// the per-resource paging defaults.
type SiteConfig struct {
	// Prefix is the parameter namespace clients wrap their request
	// parameters in. Empty disables wrapping.
	Prefix string `mapstructure:"prefix"`

	// ContentBaseURL is prepended to relative media paths
	ContentBaseURL string `mapstructure:"content_baseurl"`

	// PageSizeProduct is the default page[limit] for product listings
	PageSizeProduct int `mapstructure:"page_size_product"`

	// PageSizeReview is the default page[limit] for review listings
	PageSizeReview int `mapstructure:"page_size_review"`

	// PageSize is the default page[limit] for all other resources
	PageSize int `mapstructure:"page_size"`

	// PageSizeMax caps client supplied page[limit] values
	PageSizeMax int `mapstructure:"page_size_max"`
}

// SecurityConfig contains security and rate limiting settings.
type SecurityConfig struct {
	// CSRFEnabled enforces the csrf token on mutating requests
	CSRFEnabled bool `mapstructure:"csrf_enabled"`

	// RateLimit is the maximum requests per second per client
	RateLimit int `mapstructure:"rate_limit"`

	// AllowedOrigins are the CORS allowed origins
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// JWTSecret is the secret key for signing customer tokens
	JWTSecret string `mapstructure:"jwt_secret"`

	// JWTExpiration is the customer token expiration duration
	JWTExpiration time.Duration `mapstructure:"jwt_expiration"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error)
	Level string `mapstructure:"level"`

	// Format is the log format (json, text)
	Format string `mapstructure:"format"`
}

var cfg *Config

// Load reads configuration from a file and environment variables. If
// cfgFile is empty, config.yaml is searched in standard locations.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.shopapi")
		v.AddConfigPath("/etc/shopapi")
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			if !isFileNotFoundError(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		} else {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.MergeInConfig() // Ignore error if .env file doesn't exist

	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Get returns the last loaded configuration.
func Get() *Config {
	return cfg
}

// PageSizeFor returns the default page size of a resource type.
func (c *SiteConfig) PageSizeFor(resource string) int {
	switch resource {
	case "product":
		return c.PageSizeProduct
	case "review":
		return c.PageSizeReview
	}
	return c.PageSize
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.debug", false)

	v.SetDefault("site.prefix", "")
	v.SetDefault("site.content_baseurl", "/")
	v.SetDefault("site.page_size_product", 48)
	v.SetDefault("site.page_size_review", 25)
	v.SetDefault("site.page_size", 10)
	v.SetDefault("site.page_size_max", 100)

	v.SetDefault("security.csrf_enabled", true)
	v.SetDefault("security.rate_limit", 100)
	v.SetDefault("security.allowed_origins", []string{"*"})
	v.SetDefault("security.jwt_secret", "change-me-in-production")
	v.SetDefault("security.jwt_expiration", "24h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	if cfg.Site.PageSizeMax < 1 {
		return fmt.Errorf("invalid page size cap: %d", cfg.Site.PageSizeMax)
	}

	if cfg.Site.ContentBaseURL == "" {
		return fmt.Errorf("content base url is required")
	}

	return nil
}

// isFileNotFoundError checks if an error is a file not found error.
func isFileNotFoundError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr, os.ErrNotExist)
	}
	return false
}
