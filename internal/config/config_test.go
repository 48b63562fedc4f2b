package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	// A missing file falls back to the built-in defaults.
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "campusvote", cfg.Database.DBName)
	assert.Equal(t, "1h", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "campusvote.app", cfg.JWT.Issuer)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.NotEmpty(t, cfg.Admin.Password)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: "9090"
  mode: "production"
admin:
  username: "electionadmin"
  password: "topsecret"
logging:
  level: "debug"
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "electionadmin", cfg.Admin.Username)
	assert.Equal(t, "topsecret", cfg.Admin.Password)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, "campusvote", cfg.Database.DBName)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("ADMIN_PASSWORD", "from-env")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Admin.Password)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
}

func TestLoadConfigRejectsBadExpiration(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRATION", "soon")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "voter"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "elections"

	assert.Equal(t,
		"postgres://voter:pw@db.internal:5433/elections?sslmode=disable",
		cfg.GetPostgresConnectionString(),
	)
}
