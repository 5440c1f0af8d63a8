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
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9000

[database]
host = "db.internal"
port = 5433
user = "svc"
password = "secret"
dbname = "scheduling"

[logs]
file = "logs/test.log"
level = "debug"

[metrics]
enabled = true

[mailer]
url = "http://mailer:8090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "http://mailer:8090", cfg.Mailer.URL)

	// Unset fields pick up defaults
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "migrations", cfg.Database.MigrationsDir)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 10, cfg.Mailer.Timeout)
}

func TestLoad_MissingDatabaseSettings(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9000
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "ccd",
		Password: "pw",
		DBName:   "scheduling",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=ccd password=pw dbname=scheduling sslmode=disable",
		cfg.DSN())
}
