package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	API       APIConfig       `mapstructure:"api"`
	Session   SessionConfig   `mapstructure:"session"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// APIConfig points at the upstream clinic API.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionConfig selects where the local session lives. Backend is
// "file" (default) or "redis".
type SessionConfig struct {
	Backend  string `mapstructure:"backend"`
	FilePath string `mapstructure:"file_path"`
	RedisURL string `mapstructure:"redis_url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// envOverrides are applied on top of the file config so deployments can
// tweak the essentials without shipping a config file.
type envOverrides struct {
	APIBaseURL      string `envconfig:"API_BASE_URL"`
	Port            int    `envconfig:"PORT"`
	SessionBackend  string `envconfig:"SESSION_BACKEND"`
	SessionRedisURL string `envconfig:"SESSION_REDIS_URL"`
	LogLevel        string `envconfig:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("portal", &env); err != nil {
		return nil, fmt.Errorf("failed to read env overrides: %w", err)
	}
	applyOverrides(&config, env)

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("api.base_url", "http://localhost:8080/api")
	viper.SetDefault("api.timeout", "30s")
	viper.SetDefault("session.backend", "file")
	viper.SetDefault("session.file_path", ".clinic-portal/session.json")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("rate_limit.requests_per_second", 50)
	viper.SetDefault("rate_limit.burst", 100)
}

func applyOverrides(config *Config, env envOverrides) {
	if env.APIBaseURL != "" {
		config.API.BaseURL = env.APIBaseURL
	}
	if env.Port != 0 {
		config.Server.Port = env.Port
	}
	if env.SessionBackend != "" {
		config.Session.Backend = env.SessionBackend
	}
	if env.SessionRedisURL != "" {
		config.Session.RedisURL = env.SessionRedisURL
	}
	if env.LogLevel != "" {
		config.Log.Level = env.LogLevel
	}
}
