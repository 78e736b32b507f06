// Package config loads client configuration from YAML, .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/viant/tripclient/auth/credential"
	"gopkg.in/yaml.v3"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"

	PlatformAndroid = "android"
	PlatformIOS     = "ios"
	PlatformDevice  = "device"

	// EmulatorBaseURL routes from an android emulator to the host loopback
	EmulatorBaseURL = "http://10.0.2.2:5000/api"
	// LANBaseURL reaches a development API from a simulator or physical device
	LANBaseURL        = "http://192.168.1.16:5000/api"
	ProductionBaseURL = "https://your-api-domain.com/api"

	DefaultTimeout        = 30 * time.Second
	DefaultRefreshTimeout = 30 * time.Second
	DefaultRefreshPath    = "/auth/refresh-token"
)

// Config represents client configuration
type Config struct {
	Env      string `yaml:"env"`
	Platform string `yaml:"platform"`
	API      struct {
		BaseURL           string `yaml:"baseURL"`
		LANBaseURL        string `yaml:"lanBaseURL"`
		ProductionBaseURL string `yaml:"productionBaseURL"`
		Timeout           string `yaml:"timeout"`
		RefreshPath       string `yaml:"refreshPath"`
		RefreshTimeout    string `yaml:"refreshTimeout"`
	} `yaml:"api"`
	Store credential.Config `yaml:"store"`
	Log   struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// BaseURL resolves the API base address for the runtime environment and platform
func (c *Config) BaseURL() string {
	if c.API.BaseURL != "" {
		return c.API.BaseURL
	}
	if c.Env == EnvProd {
		return c.API.ProductionBaseURL
	}
	if c.Platform == PlatformAndroid {
		return EmulatorBaseURL
	}
	return c.API.LANBaseURL
}

// Timeout returns per-call timeout
func (c *Config) Timeout() time.Duration {
	return mustDuration(c.API.Timeout, DefaultTimeout)
}

// RefreshTimeout returns the refresh call timeout
func (c *Config) RefreshTimeout() time.Duration {
	return mustDuration(c.API.RefreshTimeout, DefaultRefreshTimeout)
}

// Load reads path (optional), applies .env and TRIP_* overrides, defaults and validation
func Load(path string) (*Config, error) {
	c := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("failed to parse %v: %w", path, err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	c.applyEnv()
	c.Init()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Init sets defaults
func (c *Config) Init() {
	if c.Env == "" {
		c.Env = EnvDev
	}
	if c.API.LANBaseURL == "" {
		c.API.LANBaseURL = LANBaseURL
	}
	if c.API.ProductionBaseURL == "" {
		c.API.ProductionBaseURL = ProductionBaseURL
	}
	if c.API.Timeout == "" {
		c.API.Timeout = DefaultTimeout.String()
	}
	if c.API.RefreshTimeout == "" {
		c.API.RefreshTimeout = DefaultRefreshTimeout.String()
	}
	if c.API.RefreshPath == "" {
		c.API.RefreshPath = DefaultRefreshPath
	}
	if c.Store.Driver == "" {
		c.Store.Driver = credential.DriverFile
	}
	if c.Store.Driver == credential.DriverFile && c.Store.URL == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.Store.URL = filepath.Join(home, ".tripclient", "credentials.json")
		}
	}
	if c.Store.Key == "" {
		c.Store.Key = credential.DefaultEncryptionKey
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks enumerations and durations
func (c *Config) Validate() error {
	switch c.Env {
	case EnvDev, EnvProd:
	default:
		return fmt.Errorf("invalid env: %q", c.Env)
	}
	switch c.Platform {
	case "", PlatformAndroid, PlatformIOS, PlatformDevice:
	default:
		return fmt.Errorf("invalid platform: %q", c.Platform)
	}
	for name, value := range map[string]string{"api.timeout": c.API.Timeout, "api.refreshTimeout": c.API.RefreshTimeout} {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %v: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid %v: must be positive", name)
		}
	}
	if !strings.HasPrefix(c.API.RefreshPath, "/") {
		return fmt.Errorf("invalid api.refreshPath: %q", c.API.RefreshPath)
	}
	return nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.Env, "TRIP_ENV")
	setFromEnv(&c.Platform, "TRIP_PLATFORM")
	setFromEnv(&c.API.BaseURL, "TRIP_BASE_URL")
	setFromEnv(&c.API.Timeout, "TRIP_TIMEOUT")
	setFromEnv(&c.Log.Level, "TRIP_LOG_LEVEL")
	setFromEnv(&c.Store.Driver, "TRIP_STORE_DRIVER")
	setFromEnv(&c.Store.URL, "TRIP_STORE_URL")
	setFromEnv(&c.Store.Key, "TRIP_STORE_KEY")
	setFromEnv(&c.Store.RedisURL, "TRIP_REDIS_URL")
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.Platform = strings.ToLower(strings.TrimSpace(c.Platform))
}

func setFromEnv(dest *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dest = strings.TrimSpace(v)
	}
}

func mustDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
