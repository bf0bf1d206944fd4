package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DefaultJWTSecret is the development-only signing secret used when JWT_SECRET is unset.
const DefaultJWTSecret = "change-me"

// JWTConfig holds token verification parameters.
type JWTConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	TrustUserHeader bool
}

// KafkaConfig holds broker connection parameters.
type KafkaConfig struct {
	Enabled     bool
	Brokers     []string
	GroupPrefix string
}

// RedisConfig holds Redis connection parameters. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load reads an optional .env file and returns a viper instance bound to
// environment variables under the given prefix (PREFIX_KEY).
func Load(prefix string) (*viper.Viper, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVICE_PORT", ":8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_ACCESS_TOKEN_TTL", "15m")
	v.SetDefault("AUTH_TRUST_USER_HEADER", false)
	v.SetDefault("KAFKA_ENABLED", true)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_GROUP_PREFIX", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MIGRATIONS_DIR", "migrations")
}

// GetServicePort returns the listen address, prefixing ":" when only a port number is given.
func GetServicePort(v *viper.Viper, key string) string {
	port := v.GetString(key)
	if port != "" && !strings.Contains(port, ":") {
		port = ":" + port
	}
	return port
}

// GetAppEnv returns the deployment environment name.
func GetAppEnv(v *viper.Viper) string {
	return v.GetString("APP_ENV")
}

// LoadDatabaseConfig reads DB_* keys. dbNameKey names the key holding the database name.
func LoadDatabaseConfig(v *viper.Viper, dbNameKey string) DatabaseConfig {
	return DatabaseConfig{
		Host:     v.GetString("DB_HOST"),
		Port:     v.GetInt("DB_PORT"),
		User:     v.GetString("DB_USER"),
		Password: v.GetString("DB_PASSWORD"),
		DBName:   v.GetString(dbNameKey),
		SSLMode:  v.GetString("DB_SSLMODE"),
	}
}

// LoadJWTConfig reads JWT_* and AUTH_* keys.
func LoadJWTConfig(v *viper.Viper) JWTConfig {
	return JWTConfig{
		Secret:          v.GetString("JWT_SECRET"),
		AccessTokenTTL:  v.GetDuration("JWT_ACCESS_TOKEN_TTL"),
		TrustUserHeader: v.GetBool("AUTH_TRUST_USER_HEADER"),
	}
}

// Validate rejects a missing secret, and the development default in production.
func (c JWTConfig) Validate(appEnv string) error {
	if strings.TrimSpace(c.Secret) == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if appEnv == "production" && c.Secret == DefaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

// LoadKafkaConfig reads KAFKA_* keys. Brokers are comma separated.
func LoadKafkaConfig(v *viper.Viper) KafkaConfig {
	var brokers []string
	for _, b := range strings.Split(v.GetString("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return KafkaConfig{
		Enabled:     v.GetBool("KAFKA_ENABLED"),
		Brokers:     brokers,
		GroupPrefix: v.GetString("KAFKA_GROUP_PREFIX"),
	}
}

// LoadRedisConfig reads REDIS_* keys.
func LoadRedisConfig(v *viper.Viper) RedisConfig {
	return RedisConfig{
		Addr:     v.GetString("REDIS_ADDR"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}
}
