package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is populated from POS_-prefixed environment variables. Every field
// has a default so a bare `go run ./cmd/server` starts a working instance.
type Config struct {
	Host          string `envconfig:"HOST" default:"0.0.0.0"`
	Port          int    `envconfig:"PORT" default:"8080"`
	AllowedOrigin string `envconfig:"ALLOWED_ORIGIN" default:"*"`

	AuthSecret string        `envconfig:"AUTH_SECRET" default:"dev-only-secret-change-me"`
	TokenTTL   time.Duration `envconfig:"TOKEN_TTL" default:"12h"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	AdvisoryBaseURL string        `envconfig:"ADVISORY_BASE_URL" default:""`
	AdvisoryAPIKey  string        `envconfig:"ADVISORY_API_KEY" default:""`
	AdvisoryModel   string        `envconfig:"ADVISORY_MODEL" default:"gpt-4o-mini"`
	AdvisoryTimeout time.Duration `envconfig:"ADVISORY_TIMEOUT" default:"20s"`
	InsightTTL      time.Duration `envconfig:"INSIGHT_TTL" default:"1h"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("POS", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
