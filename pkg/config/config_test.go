package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
database:
  postgres:
    host: db.internal
    user: metrics
    dbname: testresults
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.Global.LogLevel)
	assert.Equal(t, DefaultDriver, cfg.Database.Driver)
	assert.Equal(t, DefaultPostgresPort, cfg.Database.Postgres.Port)
	assert.Equal(t, DefaultSSLMode, cfg.Database.Postgres.SSLMode)
	assert.Equal(t, DefaultInputDir, cfg.Ingest.InputDir)

	assert.Equal(t, "db.internal", cfg.Database.Postgres.Host)
	assert.Equal(t, "metrics", cfg.Database.Postgres.User)
	assert.Equal(t, "testresults", cfg.Database.Postgres.Database)
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
global:
  log_level: debug
database:
  driver: sqlite
  sqlite:
    path: /var/lib/testmetrics/ingest.db
ingest:
  input_dir: /srv/apache_results
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Global.LogLevel)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/var/lib/testmetrics/ingest.db", cfg.Database.SQLite.Path)
	assert.Equal(t, "/srv/apache_results", cfg.Ingest.InputDir)
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  postgres:
    host: db.internal
    user: metrics
    dbname: testresults
ingest:
  input_dir: /srv/apache_results
`)

	t.Setenv("TESTMETRICS_DB_HOST", "db.override")
	t.Setenv("TESTMETRICS_DB_PORT", "5433")
	t.Setenv("TESTMETRICS_DB_PASSWORD", "from-env")
	t.Setenv("TESTMETRICS_INPUT_DIR", "/srv/override")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.override", cfg.Database.Postgres.Host)
	assert.Equal(t, 5433, cfg.Database.Postgres.Port)
	assert.Equal(t, "from-env", cfg.Database.Postgres.Password)
	assert.Equal(t, "/srv/override", cfg.Ingest.InputDir)

	// Unset values keep their file values.
	assert.Equal(t, "metrics", cfg.Database.Postgres.User)
	assert.Equal(t, "testresults", cfg.Database.Postgres.Database)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "{not: [valid")

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "valid postgres config",
			mutate: func(cfg *Config) {},
		},
		{
			name: "valid sqlite config",
			mutate: func(cfg *Config) {
				cfg.Database.Driver = "sqlite"
				cfg.Database.SQLite.Path = ":memory:"
			},
		},
		{
			name: "sqlite without path",
			mutate: func(cfg *Config) {
				cfg.Database.Driver = "sqlite"
			},
			wantErr: "sqlite.path",
		},
		{
			name: "postgres without host",
			mutate: func(cfg *Config) {
				cfg.Database.Postgres.Host = ""
			},
			wantErr: "postgres.host",
		},
		{
			name: "postgres without user",
			mutate: func(cfg *Config) {
				cfg.Database.Postgres.User = ""
			},
			wantErr: "postgres.user",
		},
		{
			name: "postgres without dbname",
			mutate: func(cfg *Config) {
				cfg.Database.Postgres.Database = ""
			},
			wantErr: "postgres.dbname",
		},
		{
			name: "unknown driver",
			mutate: func(cfg *Config) {
				cfg.Database.Driver = "oracle"
			},
			wantErr: "unsupported database driver",
		},
		{
			name: "missing input dir",
			mutate: func(cfg *Config) {
				cfg.Ingest.InputDir = ""
			},
			wantErr: "input_dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Database: DatabaseConfig{
					Driver: "postgres",
					Postgres: PostgresConfig{
						Host:     "db.internal",
						Port:     5432,
						User:     "metrics",
						Database: "testresults",
					},
				},
				Ingest: IngestConfig{InputDir: "/srv/apache_results"},
			}
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
