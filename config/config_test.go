package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "showroom-api", cfg.AppName)
	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, "sqlite3", cfg.DatabaseDriver)
	assert.Equal(t, 10*time.Minute, cfg.DatabaseConnMaxLifetime)
	assert.True(t, cfg.DatabaseMigrationAutoRollback)
	assert.False(t, cfg.TracingEnabled)
	assert.Equal(t, "neuelinie.glb", cfg.DefaultPlacementURL)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "catalog-db")
	t.Setenv("PRETTY_LOGS", "true")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.PrettyLogs)

	conn := cfg.DatabaseConnection()
	assert.Equal(t, "postgres", conn.Driver)
	assert.Equal(t, "catalog-db", conn.Host)
	assert.Equal(t, 30*time.Second, conn.ConnMaxLifetime)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DEFAULT_PLACEMENT_URL=fallback.glb\nDB_MIGRATION_VERSION=1\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DEFAULT_PLACEMENT_URL")
		os.Unsetenv("DB_MIGRATION_VERSION")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fallback.glb", cfg.DefaultPlacementURL)
	assert.Equal(t, uint(1), cfg.Migration().Version)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestTracingConfig(t *testing.T) {
	t.Setenv("TRACING_EXPORTER", "otlp")
	t.Setenv("OTLP_PROTOCOL", "http")

	cfg, err := Load("")
	require.NoError(t, err)

	tc := cfg.Tracing()
	assert.Equal(t, "showroom-api", tc.ServiceName)
	assert.Equal(t, "otlp", tc.Exporter)
	assert.Equal(t, "http", tc.OTLP.Protocol)
	assert.True(t, tc.OTLP.Insecure)
}
