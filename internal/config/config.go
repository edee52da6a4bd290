package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the server reads from the environment. A
// local .env file is honoured when present; real environment variables
// win over it.
type Config struct {
	Env        string `mapstructure:"ENV"`
	ServerPort string `mapstructure:"SERVER_PORT"`

	MongoURI                   string `mapstructure:"MONGO_URI"`
	MongoDBName                string `mapstructure:"MONGO_DB_NAME"`
	MongoConnectTimeoutSeconds int    `mapstructure:"MONGO_CONNECT_TIMEOUT_SECONDS"`
	MongoMaxPoolSize           uint64 `mapstructure:"MONGO_MAX_POOL_SIZE"`
	MongoMinPoolSize           uint64 `mapstructure:"MONGO_MIN_POOL_SIZE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`

	TokenSecret   string `mapstructure:"ACCESS_TOKEN_SECRET"`
	TokenTTLHours int    `mapstructure:"TOKEN_TTL_HOURS"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	RequestTimeoutSeconds  int `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	ShutdownTimeoutSeconds int `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
}

func Load(path string) (*Config, error) {
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVER_PORT", "9000")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB_NAME", "plant-store")
	viper.SetDefault("MONGO_CONNECT_TIMEOUT_SECONDS", 10)
	viper.SetDefault("MONGO_MAX_POOL_SIZE", 50)
	viper.SetDefault("MONGO_MIN_POOL_SIZE", 5)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("ACCESS_TOKEN_SECRET", "")
	viper.SetDefault("TOKEN_TTL_HOURS", 24*365)
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)
	viper.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)

	viper.SetConfigFile(path)
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env is fine; the environment still applies
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}

	return cfg, nil
}

// IsProduction reports whether secure cookie attributes should be set
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Brokers splits the comma-separated broker list; empty means events
// are disabled.
func (c *Config) Brokers() []string {
	if c.KafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.KafkaBrokers, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}
