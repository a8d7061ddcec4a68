package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  serviceName: productsmanager
  log:
    level: debug
storage:
  driver: sqlite
  sqlitePath: catalog.db
  autoMigrate: true
auth:
  bcryptCost: 10
  tokenTTL: 30m
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))

	return dir
}

func TestLoadWithEnv_ReadsYAML(t *testing.T) {
	dir := writeConfig(t, testYAML)

	cfg, err := LoadWithEnv[Config]("config", dir)
	require.NoError(t, err)

	assert.Equal(t, "productsmanager", cfg.Env.ServiceName)
	assert.Equal(t, "debug", cfg.Env.Log.Level)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "catalog.db", cfg.Storage.SQLitePath)
	assert.True(t, cfg.Storage.AutoMigrate)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := writeConfig(t, testYAML)
	t.Setenv("STORAGE_SQLITEPATH", "override.db")
	t.Setenv("AUTH_BCRYPTCOST", "4")

	cfg, err := LoadWithEnv[Config]("config", dir)
	require.NoError(t, err)

	assert.Equal(t, "override.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	_, err := LoadWithEnv[Config]("does-not-exist", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestNew_AppliesDefaults(t *testing.T) {
	dir := writeConfig(t, "env:\n  serviceName: productsmanager\n")
	t.Setenv("PRODUCTSMANAGER_CONFIG_DIR", dir)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, defaultHTTPHost, cfg.HTTP.Host)
	assert.Equal(t, defaultHTTPPort, cfg.HTTP.Port)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, defaultSQLitePath, cfg.Storage.SQLitePath)
	assert.Equal(t, defaultTokenTTL, cfg.Auth.TokenTTL)
	assert.Equal(t, defaultExportURL, cfg.Export.BucketURL)
}

func TestNew_RejectsUnknownDriver(t *testing.T) {
	dir := writeConfig(t, "storage:\n  driver: oracle\n")
	t.Setenv("PRODUCTSMANAGER_CONFIG_DIR", dir)

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage driver")
}

func TestNew_PostgresRequiresSection(t *testing.T) {
	dir := writeConfig(t, "storage:\n  driver: postgres\n")
	t.Setenv("PRODUCTSMANAGER_CONFIG_DIR", dir)

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres section is missing")
}
