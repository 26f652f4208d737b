package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	DirectoryBackend = "backend"
	DirectoryMongo   = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Backend BackendConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Signals SignalConfig
}

type SessionConfig struct {
	// CookieName doubles as the storage key the client keeps the token under.
	CookieName   string `env:"SESSION_COOKIE,        default=jwt"`
	CookieSecure bool   `env:"SESSION_COOKIE_SECURE, default=false"`
}

type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://localhost:8080"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=10s"`
	// Directory selects where dashboard role lookups go: "backend" or "mongo".
	Directory string `env:"USER_DIRECTORY, default=backend"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=portal_shell"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SignalConfig struct {
	Workers int `env:"SIGNAL_WORKERS, default=4"`
}

// IsDevelopment reports whether ENV selects development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads a .env file when present, then configuration from environment
// variables using go-envconfig.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := Process(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// Process resolves the configuration from lookuper and validates it.
func Process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Backend.Directory = strings.ToLower(strings.TrimSpace(c.Backend.Directory))
	switch c.Backend.Directory {
	case DirectoryBackend, DirectoryMongo:
	default:
		return fmt.Errorf("USER_DIRECTORY must be %q or %q, got %q", DirectoryBackend, DirectoryMongo, c.Backend.Directory)
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("SESSION_COOKIE must not be empty")
	}
	if c.Signals.Workers <= 0 {
		return fmt.Errorf("SIGNAL_WORKERS must be positive, got %d", c.Signals.Workers)
	}
	return nil
}
