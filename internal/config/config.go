package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBDSN         string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	SessionStore  string
	GinMode       string
	ServerPort    string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	LogLevel      string
}

var defaults = map[string]any{
	"DB_DRIVER":          "mysql",
	"DB_HOST":            "localhost",
	"DB_PORT":            "3306",
	"DB_USER":            "bloguser",
	"DB_PASSWORD":        "blogpassword",
	"DB_NAME":            "blog",
	"DB_DSN":             "",
	"REDIS_HOST":         "localhost",
	"REDIS_PORT":         "6379",
	"SESSION_SECRET":     "default-secret-key-change-me",
	"SESSION_STORE":      "redis",
	"GIN_MODE":           "debug",
	"SERVER_PORT":        "8080",
	"HTTP_READ_TIMEOUT":  "15s",
	"HTTP_WRITE_TIMEOUT": "30s",
	"HTTP_IDLE_TIMEOUT":  "120s",
	"LOG_LEVEL":          "info",
}

// Load reads configuration from the environment and, when configFile is not
// empty, from that file. Environment variables take precedence over the file.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		DBDriver:      v.GetString("DB_DRIVER"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    v.GetString("DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBDSN:         v.GetString("DB_DSN"),
		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		SessionSecret: v.GetString("SESSION_SECRET"),
		SessionStore:  v.GetString("SESSION_STORE"),
		GinMode:       v.GetString("GIN_MODE"),
		ServerPort:    v.GetString("SERVER_PORT"),
		ReadTimeout:   v.GetDuration("HTTP_READ_TIMEOUT"),
		WriteTimeout:  v.GetDuration("HTTP_WRITE_TIMEOUT"),
		IdleTimeout:   v.GetDuration("HTTP_IDLE_TIMEOUT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.SessionStore {
	case "redis", "cookie":
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
	}
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.IsProduction() && c.SessionSecret == defaults["SESSION_SECRET"] {
		return fmt.Errorf("SESSION_SECRET must be changed in release mode")
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.IdleTimeout <= 0 {
		return fmt.Errorf("HTTP timeouts must be positive")
	}
	return nil
}
