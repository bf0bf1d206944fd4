package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/shareit-platform/service-booking/internal/platform/config"
)

// RateLimitConfig bounds mutating requests per user.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// ServiceConfig holds all configuration for the booking service.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	MigrationsDir string
	DBConfig      config.DatabaseConfig
	JWTConfig     config.JWTConfig
	KafkaConfig   config.KafkaConfig
	RedisConfig   config.RedisConfig
	RateLimit     RateLimitConfig
}

// Load reads configuration from environment variables.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("BOOKING")
	if err != nil {
		return nil, err
	}
	v.SetDefault("DB_NAME", "shareit_booking")
	v.SetDefault("KAFKA_GROUP_PREFIX", "service-booking")
	v.SetDefault("RATE_LIMIT_REQUESTS", 30)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")

	cfg := &ServiceConfig{
		Port:          config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:        config.GetAppEnv(v),
		MigrationsDir: v.GetString("MIGRATIONS_DIR"),
		DBConfig:      config.LoadDatabaseConfig(v, "DB_NAME"),
		JWTConfig:     config.LoadJWTConfig(v),
		KafkaConfig:   config.LoadKafkaConfig(v),
		RedisConfig:   config.LoadRedisConfig(v),
		RateLimit:     loadRateLimit(v),
	}
	if err := cfg.JWTConfig.Validate(cfg.AppEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadRateLimit(v *viper.Viper) RateLimitConfig {
	return RateLimitConfig{
		Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
		Window:   v.GetDuration("RATE_LIMIT_WINDOW"),
	}
}

// RequestsPerSecond converts the window limit into a token bucket rate.
func (c RateLimitConfig) RequestsPerSecond() float64 {
	if c.Window <= 0 {
		return float64(c.Requests)
	}
	return float64(c.Requests) / c.Window.Seconds()
}
