package credential

import (
	"context"
	"fmt"
)

const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// Config selects and configures a backend
type Config struct {
	Driver   string `yaml:"driver"`
	URL      string `yaml:"url"`
	Key      string `yaml:"key"`
	RedisURL string `yaml:"redisURL"`
	Prefix   string `yaml:"prefix"`
}

// New creates a store for the configured driver
func New(ctx context.Context, cfg *Config) (*Store, error) {
	switch cfg.Driver {
	case DriverMemory, "":
		return NewMemoryStore(), nil
	case DriverFile:
		if cfg.URL == "" {
			return nil, fmt.Errorf("credential store url is required for %v driver", cfg.Driver)
		}
		return NewFileStore(cfg.URL, cfg.Key), nil
	case DriverRedis:
		client, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return NewStore(NewRedisBackend(client, cfg.Prefix)), nil
	default:
		return nil, fmt.Errorf("unsupported credential store driver: %v", cfg.Driver)
	}
}
