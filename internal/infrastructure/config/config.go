package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config is built once at startup and passed by value to the components that
// need it; nothing mutates it afterwards.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
	CORS  CORSConfig
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET"`
	Expiration time.Duration `env:"JWT_EXPIRATION, default=1h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity"`
}

// RedisConfig configures the identity reservation lock. An empty Addr
// disables it.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=*"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate rejects configurations the service cannot run with.
func (c Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive, got %s", c.JWT.Expiration)
	}
	return nil
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: read .env: %w", err)
	}
	return Process(ctx, envconfig.OsLookuper())
}

// Process resolves the configuration from lookuper and validates it.
func Process(ctx context.Context, lookuper envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
