// Package config carries the runtime configuration for the Recruitee MCP
// server. Values are merged in increasing precedence: built-in defaults, an
// optional YAML file, environment variables, then command-line flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names understood by ApplyEnv.
const (
	EnvCompanyID = "RECRUITEE_COMPANY_ID"
	EnvAPIToken  = "RECRUITEE_API_TOKEN"
	EnvBaseURL   = "RECRUITEE_BASE_URL"
	EnvTimeout   = "RECRUITEE_TIMEOUT"
	EnvHTTPHost  = "RECRUITEE_HTTP_HOST"
	EnvHTTPPort  = "RECRUITEE_HTTP_PORT"
)

const (
	DefaultBaseURL = "https://api.recruitee.com"
	DefaultTimeout = 30 * time.Second
	DefaultHost    = "0.0.0.0"
	DefaultPort    = 8080
)

// Config is read-only for the process lifetime once loading completes.
type Config struct {
	CompanyID string        `yaml:"company_id"`
	APIToken  string        `yaml:"api_token"`
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	Host      string        `yaml:"host"`
	Port      int           `yaml:"port"`
	LogLevel  string        `yaml:"log_level"`
	LogFormat string        `yaml:"log_format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		Host:      DefaultHost,
		Port:      DefaultPort,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// LoadFile reads a YAML config file over the defaults. A missing file is not
// an error; the defaults are returned unchanged.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays environment values onto the config. The env map is
// injectable for tests; production callers pass EnvMap().
func (c *Config) ApplyEnv(env map[string]string) error {
	if v, ok := env[EnvCompanyID]; ok && v != "" {
		c.CompanyID = strings.TrimSpace(v)
	}
	if v, ok := env[EnvAPIToken]; ok && v != "" {
		c.APIToken = strings.TrimSpace(v)
	}
	if v, ok := env[EnvBaseURL]; ok && v != "" {
		c.BaseURL = v
	}
	if v, ok := env[EnvTimeout]; ok && v != "" {
		secs, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvTimeout, v, err)
		}
		c.Timeout = time.Duration(secs * float64(time.Second))
	}
	if v, ok := env[EnvHTTPHost]; ok && v != "" {
		c.Host = v
	}
	if v, ok := env[EnvHTTPPort]; ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvHTTPPort, v, err)
		}
		c.Port = port
	}
	return nil
}

// EnvMap snapshots the process environment into a map for ApplyEnv.
func EnvMap() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if i := strings.IndexByte(kv, '='); i > 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	return env
}

// Environ renders the connection settings back into their environment
// variable form, for handing off to a spawned server process.
func (c Config) Environ() map[string]string {
	env := map[string]string{
		EnvCompanyID: c.CompanyID,
		EnvAPIToken:  c.APIToken,
	}
	if c.BaseURL != "" && c.BaseURL != DefaultBaseURL {
		env[EnvBaseURL] = c.BaseURL
	}
	return env
}

// Normalize fixes up recoverable oddities and returns a human-readable
// warning for each one. An out-of-range port falls back to the default
// rather than failing startup.
func (c *Config) Normalize() []string {
	var warnings []string
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Port < 0 || c.Port > 65535 {
		warnings = append(warnings, fmt.Sprintf("port %d out of range, falling back to %d", c.Port, DefaultPort))
		c.Port = DefaultPort
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	return warnings
}

// Validate reports fatal configuration errors. The company identifier is the
// one value the server cannot run without.
func (c *Config) Validate() error {
	if c.CompanyID == "" {
		return fmt.Errorf("%s must be provided", EnvCompanyID)
	}
	return nil
}
