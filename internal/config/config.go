// Package config loads the application configuration from defaults, a
// config file, and environment variables — in that ascending order of
// priority, following the viper/mapstructure pattern shared across the
// ambient stack this module draws its idioms from.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Schema   SchemaConfig   `mapstructure:"schema"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig controls the optional Postgres introspection source.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConnections  int32         `mapstructure:"max_connections"`
	MinConnections  int32         `mapstructure:"min_connections"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// SchemaConfig selects and tunes the schema source.
type SchemaConfig struct {
	// Source is "json" (read a schema document from a file/stdin) or
	// "postgres" (introspect a live database).
	Source        string `mapstructure:"source"`
	JSONPath      string `mapstructure:"json_path"`
	ExcludeSystem bool   `mapstructure:"exclude_system"`
}

// LoggingConfig holds the configured log level and output format. Load
// validates it; the CLI's logger setup does not read it (only --debug
// changes the level).
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // trace, debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // console-writer output instead of JSON
}

// Load reads configuration from (in priority order) an optional .env file,
// environment variables prefixed DBGRAPH_, a dbgraph.yaml config file, and
// hardcoded defaults, then validates the result.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		log.Debug().Msg("no .env file found - using environment variables and defaults")
	}

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DBGRAPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	configPaths := []string{"./dbgraph.yaml", "./dbgraph.yml", "./config/dbgraph.yaml"}
	for _, path := range configPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			log.Warn().Err(err).Str("file", path).Msg("config file found but could not be parsed, using environment variables and defaults")
		} else {
			log.Info().Str("file", path).Msg("config file loaded")
		}
		break
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() error {
	for _, location := range []string{".env", ".env.local"} {
		if _, err := os.Stat(location); err == nil {
			if err := godotenv.Load(location); err != nil {
				return fmt.Errorf("error loading .env file from %s: %w", location, err)
			}
			return nil
		}
	}
	return fmt.Errorf("no .env file found")
}

func setDefaults() {
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.database", "postgres")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("database.min_connections", 1)
	viper.SetDefault("database.max_conn_lifetime", "1h")

	viper.SetDefault("schema.source", "json")
	viper.SetDefault("schema.json_path", "")
	viper.SetDefault("schema.exclude_system", true)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.pretty", true)
}

// Validate checks each sub-config, per group, returning the first error
// encountered wrapped with its group's name. The database group is only
// checked when the schema source is "postgres".
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server configuration error: %w", err)
	}
	if c.Schema.Source == "postgres" {
		if err := c.Database.Validate(); err != nil {
			return fmt.Errorf("database configuration error: %w", err)
		}
	}
	if err := c.Schema.Validate(); err != nil {
		return fmt.Errorf("schema configuration error: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging configuration error: %w", err)
	}
	return nil
}

func (s ServerConfig) Validate() error {
	if s.Address == "" {
		return fmt.Errorf("address must not be empty")
	}
	return nil
}

// DSN builds a libpq connection string from the config's fields, for
// callers (the `serve` command) that need a DSN rather than the individual
// fields.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode)
}

func (d DatabaseConfig) Validate() error {
	if d.Host == "" {
		return fmt.Errorf("host must not be empty")
	}
	if d.Port <= 0 || d.Port > 65535 {
		return fmt.Errorf("port %d out of range", d.Port)
	}
	if d.Database == "" {
		return fmt.Errorf("database name must not be empty")
	}
	return nil
}

func (s SchemaConfig) Validate() error {
	switch s.Source {
	case "json", "postgres":
	default:
		return fmt.Errorf("source must be \"json\" or \"postgres\", got %q", s.Source)
	}
	if s.Source == "json" && s.JSONPath == "" {
		return fmt.Errorf("json_path is required when source is \"json\"")
	}
	return nil
}

func (l LoggingConfig) Validate() error {
	switch strings.ToLower(l.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of trace|debug|info|warn|error, got %q", l.Level)
	}
	return nil
}
