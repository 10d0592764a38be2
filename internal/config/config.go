// Package config provides configuration management for fortigate-mcp.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (FORTIGATE_* prefix)
//  2. Config file (~/.fortigate-mcp/config.yaml, or ./config.yaml)
//  3. Default values
//
// Authentication uses either an API token or a username/password pair;
// the two modes are mutually exclusive and the token wins when both are
// set. Sensitive fields are masked in MarshalJSON and must never be
// logged directly.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

var (
	// ErrMissingHost indicates the FortiGate host is not configured.
	ErrMissingHost = errors.New("missing FortiGate host")

	// ErrMissingCredentials indicates neither an API token nor a
	// username/password pair is configured.
	ErrMissingCredentials = errors.New("missing FortiGate credentials")

	// ErrAmbiguousCredentials indicates both auth modes are configured.
	ErrAmbiguousCredentials = errors.New("both API token and username/password configured")

	// ErrInvalidScheme indicates the scheme is neither http nor https.
	ErrInvalidScheme = errors.New("invalid scheme")

	// ErrInvalidPort indicates the port is out of range.
	ErrInvalidPort = errors.New("invalid port")

	// ErrInvalidTimeout indicates the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout")
)

const (
	// DefaultVDOM is the FortiGate configuration scope used when none
	// is configured.
	DefaultVDOM = "root"

	// DefaultTimeout is the per-request timeout handed to the device
	// client.
	DefaultTimeout = 20 * time.Second
)

// Config stores the FortiGate connection configuration.
// SECURITY: APIToken and Password are masked in MarshalJSON. When adding
// new sensitive fields, update MarshalJSON.
type Config struct {
	Host      string        `mapstructure:"host" json:"host"`
	APIToken  string        `mapstructure:"api_token" json:"api_token"` // SENSITIVE: masked in MarshalJSON
	Username  string        `mapstructure:"username" json:"username"`
	Password  string        `mapstructure:"password" json:"password"` // SENSITIVE: masked in MarshalJSON
	VDOM      string        `mapstructure:"vdom" json:"vdom"`
	Scheme    string        `mapstructure:"scheme" json:"scheme"`
	Port      int           `mapstructure:"port" json:"port"`
	SSLVerify bool          `mapstructure:"ssl_verify" json:"ssl_verify"`
	Timeout   time.Duration `mapstructure:"timeout" json:"timeout"`

	// Logging
	LogLevel string `mapstructure:"log_level" json:"log_level"`
	LogJSON  bool   `mapstructure:"log_json" json:"log_json"`
}

// Load loads configuration with priority: env > config file > defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".fortigate-mcp"))
	}
	v.AddConfigPath(".")

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, the env/defaults carry it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using environment and defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// Port default depends on the scheme, so it cannot be a static
	// viper default.
	if cfg.Port == 0 {
		if cfg.Scheme == "https" {
			cfg.Port = 443
		} else {
			cfg.Port = 80
		}
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("vdom", DefaultVDOM)
	v.SetDefault("scheme", "http")
	v.SetDefault("ssl_verify", false)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
}

func bindEnvVariables(v *viper.Viper) {
	v.SetEnvPrefix("FORTIGATE")
	bindings := []string{
		"host", "api_token", "username", "password", "vdom",
		"scheme", "port", "ssl_verify", "timeout",
		"log_level", "log_json",
	}
	for _, key := range bindings {
		// Errors only occur for empty keys; the list is static.
		_ = v.BindEnv(key)
	}
}

// HasToken reports whether token authentication is configured.
func (c *Config) HasToken() bool {
	return c.APIToken != ""
}

// HasUserPass reports whether username/password authentication is configured.
func (c *Config) HasUserPass() bool {
	return c.Username != "" && c.Password != ""
}

// Validate checks the configuration for structural problems. It returns
// the first error found, wrapped around a sentinel for errors.Is checks.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: set FORTIGATE_HOST", ErrMissingHost)
	}
	if !c.HasToken() && !c.HasUserPass() {
		return fmt.Errorf("%w: set FORTIGATE_API_TOKEN or FORTIGATE_USERNAME/FORTIGATE_PASSWORD", ErrMissingCredentials)
	}
	if c.HasToken() && c.HasUserPass() {
		return fmt.Errorf("%w: choose one auth mode", ErrAmbiguousCredentials)
	}
	if c.Scheme != "http" && c.Scheme != "https" {
		return fmt.Errorf("%w: %q (want http or https)", ErrInvalidScheme, c.Scheme)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Timeout)
	}
	return nil
}

// MarshalJSON masks sensitive fields so the config can be logged safely.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	masked := alias(c)
	if masked.APIToken != "" {
		masked.APIToken = "***"
	}
	if masked.Password != "" {
		masked.Password = "***"
	}
	return json.Marshal(masked)
}
