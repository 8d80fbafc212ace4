// Package config loads and validates the testmetrics configuration.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"

	// DefaultDriver is the default database driver.
	DefaultDriver = "postgres"

	// DefaultPostgresPort is the default PostgreSQL port.
	DefaultPostgresPort = 5432

	// DefaultSSLMode is the default PostgreSQL SSL mode.
	DefaultSSLMode = "disable"

	// DefaultInputDir is the default directory of result files.
	DefaultInputDir = "./results"

	// envPrefix is the prefix for environment overrides.
	envPrefix = "TESTMETRICS_"
)

// Config is the root configuration for testmetrics.
type Config struct {
	Global   GlobalConfig   `yaml:"global"`
	Database DatabaseConfig `yaml:"database"`
	Ingest   IngestConfig   `yaml:"ingest"`
}

// GlobalConfig contains global application settings.
type GlobalConfig struct {
	LogLevel string `yaml:"log_level"`
}

// DatabaseConfig selects and parameterizes the relational store.
type DatabaseConfig struct {
	Driver   string         `yaml:"driver"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig contains SQLite settings.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// PostgresConfig contains PostgreSQL connection settings. Credentials
// belong in the environment or a .env file, not in the config file.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// IngestConfig contains ingestion settings.
type IngestConfig struct {
	InputDir string `yaml:"input_dir"`
}

// Load reads and parses a configuration file from the given path, then
// applies defaults and environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	return &cfg, nil
}

// applyDefaults sets default values for unspecified configuration options.
func (c *Config) applyDefaults() {
	if c.Global.LogLevel == "" {
		c.Global.LogLevel = DefaultLogLevel
	}

	if c.Database.Driver == "" {
		c.Database.Driver = DefaultDriver
	}

	if c.Database.Postgres.Port == 0 {
		c.Database.Postgres.Port = DefaultPostgresPort
	}

	if c.Database.Postgres.SSLMode == "" {
		c.Database.Postgres.SSLMode = DefaultSSLMode
	}

	if c.Ingest.InputDir == "" {
		c.Ingest.InputDir = DefaultInputDir
	}
}

// applyEnvOverrides lets connection parameters and credentials come
// from the environment instead of the config file.
func (c *Config) applyEnvOverrides() {
	overrides := []struct {
		key    string
		target *string
	}{
		{"LOG_LEVEL", &c.Global.LogLevel},
		{"DB_DRIVER", &c.Database.Driver},
		{"DB_HOST", &c.Database.Postgres.Host},
		{"DB_USER", &c.Database.Postgres.User},
		{"DB_PASSWORD", &c.Database.Postgres.Password},
		{"DB_NAME", &c.Database.Postgres.Database},
		{"DB_SSLMODE", &c.Database.Postgres.SSLMode},
		{"SQLITE_PATH", &c.Database.SQLite.Path},
		{"INPUT_DIR", &c.Ingest.InputDir},
	}

	for _, o := range overrides {
		if v := os.Getenv(envPrefix + o.key); v != "" {
			*o.target = v
		}
	}

	if v := os.Getenv(envPrefix + "DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Database.Postgres.Port = port
		}
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.SQLite.Path == "" {
			return fmt.Errorf("database.sqlite.path is required for the sqlite driver")
		}
	case "postgres":
		if c.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required for the postgres driver")
		}

		if c.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required for the postgres driver")
		}

		if c.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.dbname is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Ingest.InputDir == "" {
		return fmt.Errorf("ingest.input_dir is required")
	}

	return nil
}
