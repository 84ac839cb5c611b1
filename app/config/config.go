package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ErrMissing is returned by Load when a required setting is absent.
var ErrMissing = errors.New("missing required setting")

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Neo4j   Neo4jConfig
}

type AppConfig struct {
	Addr         string
	LogLevel     string
	SyncInterval time.Duration
	// CachePath is the sqlite snapshot file. Empty disables the cache.
	CachePath string
}

// BackendConfig addresses the hosted identity provider.
type BackendConfig struct {
	URL            string
	ServiceRoleKey string
	JWTSecret      string
}

type Neo4jConfig struct {
	URI      string
	User     string
	Password string
}

// Load reads settings from the environment and an optional .env file in
// the working directory.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("APP_ADDR", "0.0.0.0:8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SYNC_INTERVAL", "30s")
	v.SetDefault("CACHE_PATH", "")

	v.SetDefault("BACKEND_URL", "")
	v.SetDefault("BACKEND_SERVICE_ROLE_KEY", "")
	v.SetDefault("BACKEND_JWT_SECRET", "")

	v.SetDefault("NEO4J_URI", "neo4j://neo4j:7687")
	v.SetDefault("NEO4J_USER", "neo4j")
	v.SetDefault("NEO4J_PASSWORD", "password")

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	var c Config
	c.App.Addr = v.GetString("APP_ADDR")
	c.App.LogLevel = v.GetString("LOG_LEVEL")
	c.App.SyncInterval = v.GetDuration("SYNC_INTERVAL")
	c.App.CachePath = v.GetString("CACHE_PATH")

	c.Backend.URL = v.GetString("BACKEND_URL")
	c.Backend.ServiceRoleKey = v.GetString("BACKEND_SERVICE_ROLE_KEY")
	c.Backend.JWTSecret = v.GetString("BACKEND_JWT_SECRET")

	c.Neo4j.URI = v.GetString("NEO4J_URI")
	c.Neo4j.User = v.GetString("NEO4J_USER")
	c.Neo4j.Password = v.GetString("NEO4J_PASSWORD")

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("%w: BACKEND_URL", ErrMissing)
	}
	if c.Backend.ServiceRoleKey == "" {
		return fmt.Errorf("%w: BACKEND_SERVICE_ROLE_KEY", ErrMissing)
	}
	if c.App.SyncInterval <= 0 {
		return fmt.Errorf("SYNC_INTERVAL must be positive, got %s", c.App.SyncInterval)
	}
	return nil
}
