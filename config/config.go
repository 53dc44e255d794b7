package config

import (
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPAddr        string        `long:"http-addr" env:"HTTP_ADDR" default:":8080" description:"HTTP listen address"`
	PostgresURL     string        `long:"postgres-url" env:"POSTGRES_URL" description:"Postgres connection string"`
	RedisAddr       string        `long:"redis-addr" env:"REDIS_ADDR" description:"Redis address"`
	GatewayAddr     string        `long:"gateway-addr" env:"GATEWAY_ADDR" description:"Gateway address, used to reach Jaeger when no endpoint is set"`
	JaegerEndpoint  string        `long:"jaeger-endpoint" env:"JAEGER_ENDPOINT" description:"Jaeger collector endpoint"`
	CatalogFile     string        `long:"catalog-file" env:"CATALOG_FILE" description:"JSON or YAML catalog used to seed an empty database; the built-in catalog when empty"`
	CatalogCacheTTL time.Duration `long:"catalog-cache-ttl" env:"CATALOG_CACHE_TTL" default:"10m" description:"How long the catalog stays in Redis"`
	LogLevel        string        `long:"log-level" env:"LOG_LEVEL" default:"info" description:"Log level"`
}

// Parse reads the configuration from command line arguments, falling back to
// environment variables and defaults.
func Parse(args []string) (Config, error) {
	var cfg Config

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return Config{}, err
	}

	if cfg.PostgresURL == "" {
		return Config{}, fmt.Errorf("postgres url is required")
	}
	if cfg.RedisAddr == "" {
		return Config{}, fmt.Errorf("redis address is required")
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
