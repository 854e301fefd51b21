package config

import (
	"context"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"log"
	"time"
)

type UpsApiConfig struct {
	LicenseKey         string        `env:"UPS_API_LICENSE_KEY"`
	UserID             string        `env:"UPS_API_USER_ID"`
	Password           string        `env:"UPS_API_PASSWORD"`
	Test               bool          `env:"UPS_API_TEST, default=true"`
	OriginAccount      string        `env:"UPS_API_ORIGIN_ACCOUNT"`
	DestinationAccount string        `env:"UPS_API_DESTINATION_ACCOUNT"`
	Timeout            time.Duration `env:"UPS_API_TIMEOUT, default=20s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type Config struct {
	DSN              string `env:"DATABASE_DSN"`
	LogsDirectory    string `env:"LOGS_DIRECTORY, default=logs"`
	MetricsAddr      string `env:"METRICS_ADDR, default=:9102"`
	TrackingSchedule string `env:"TRACKING_SCHEDULE, default=*/30 * * * *"`

	ExchangeRetention     time.Duration `env:"EXCHANGE_RETENTION, default=720h"`
	ExchangePruneSchedule string        `env:"EXCHANGE_PRUNE_SCHEDULE, default=0 3 * * *"`

	Redis  RedisConfig
	UPSApi UpsApiConfig
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return Process(ctx, envconfig.OsLookuper())
}

// Process fills a Config from the given lookuper.
func Process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
