package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	Log    LogConfig    `mapstructure:"log"`
	Quiz   QuizConfig   `mapstructure:"quiz"`
	CORS   CORSConfig   `mapstructure:"cors"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	TLS             TLSConfig     `mapstructure:"tls"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

// TLSConfig holds TLS-specific configuration.
type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
}

// DBConfig holds database-specific configuration.
type DBConfig struct {
	Driver  string `mapstructure:"driver"` // "sqlite3", "sqlite", "mysql" or "pgx"
	DSN     string `mapstructure:"dsn"`
	Migrate bool   `mapstructure:"migrate"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // e.g., "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // e.g., "json", "console"
}

// QuizConfig holds paging and category-range settings for question queries.
// When both category bounds are zero the range is derived from the seeded
// categories.
type QuizConfig struct {
	PageSize      int   `mapstructure:"pageSize"`
	MinCategoryID int64 `mapstructure:"minCategoryID"`
	MaxCategoryID int64 `mapstructure:"maxCategoryID"`
}

// CORSConfig holds Cross-Origin Resource Sharing configuration.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
	AllowedMethods []string `mapstructure:"allowedMethods"`
	AllowedHeaders []string `mapstructure:"allowedHeaders"`
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.tls.enabled", false)
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "trivia.db")
	v.SetDefault("db.migrate", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("quiz.pageSize", 10)
	v.SetDefault("quiz.minCategoryID", 0)
	v.SetDefault("quiz.maxCategoryID", 0)
	v.SetDefault("cors.allowedOrigins", []string{"*"})
	v.SetDefault("cors.allowedMethods", []string{"GET", "PATCH", "POST", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Content-Type", "Authorization", "true"})

	// Set up viper to read from config file
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/trivia-api/")
	v.AddConfigPath("$HOME/.trivia-api")

	// Attempt to read the config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, err
		}
		// Config file not found; proceed with defaults and env vars
	}

	// Set up viper to read from environment variables
	v.SetEnvPrefix("TRIVIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal the config into the Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
