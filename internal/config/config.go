package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env                string   `env:"APP_ENV" envDefault:"development"`
	MongoURI           string   `env:"MONGO_URI" envDefault:"mongodb://localhost:27017/salon"`
	MongoDB            string   `env:"MONGO_DB"`
	ServerAddr         string   `env:"SERVER_ADDR" envDefault:":8080"`
	FrontendOrigins    []string `env:"FRONTEND_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	AccessTokenSecret  string   `env:"ACCESS_TOKEN_SECRET,required"`
	AccessTTLMinutes   int      `env:"ACCESS_TTL_MINUTES" envDefault:"60"`
	TokenIssuer        string   `env:"TOKEN_ISSUER" envDefault:"salon-api"`
	LogLevel           string   `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeoutSecs int      `env:"REQUEST_TIMEOUT_SEC" envDefault:"30"`
}

// Load reads configuration from the environment. Values in a local .env
// file fill in variables that are not already set.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	if cfg.MongoDB == "" {
		cfg.MongoDB = mongoDBFromURI(cfg.MongoURI)
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "salon"
	}
	if cfg.AccessTTLMinutes <= 0 {
		return nil, fmt.Errorf("ACCESS_TTL_MINUTES must be positive, got %d", cfg.AccessTTLMinutes)
	}

	return cfg, nil
}

func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLMinutes) * time.Minute
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func mongoDBFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	db := strings.Trim(u.Path, "/")
	if db == "" {
		return ""
	}
	// mongodb URIs sometimes include extra path segments; we only support the first one as db name.
	if idx := strings.Index(db, "/"); idx >= 0 {
		db = db[:idx]
	}
	return db
}
