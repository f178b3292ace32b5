package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(configFileEnv, "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "development", cfg.Env)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.True(t, cfg.Database.AutoMigrate)
	require.Equal(t, 500*time.Millisecond, cfg.Database.SlowThreshold)
	require.Equal(t, 3, cfg.Resolver.MaxAttempts)
	require.Equal(t, "development", cfg.Log.Mode, "log mode follows env")
	require.Equal(t, "development", cfg.Otel.Environment)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv(configFileEnv, "")
	t.Setenv("REGISTRAR_ENV", "production")
	t.Setenv("REGISTRAR_HTTP__ADDR", ":9000")
	t.Setenv("REGISTRAR_HTTP__CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("REGISTRAR_DATABASE__DRIVER", "postgres")
	t.Setenv("REGISTRAR_DATABASE__HOST", "db")
	t.Setenv("REGISTRAR_DATABASE__MAX_OPEN_CONNS", "25")
	t.Setenv("REGISTRAR_DATABASE__AUTO_MIGRATE", "false")
	t.Setenv("REGISTRAR_RESOLVER__MAX_ATTEMPTS", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "production", cfg.Env)
	require.Equal(t, ":9000", cfg.HTTP.Addr)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.CORSOrigins)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "db", cfg.Database.Host)
	require.Equal(t, 25, cfg.Database.MaxOpenConns)
	require.False(t, cfg.Database.AutoMigrate)
	require.Equal(t, 5, cfg.Resolver.MaxAttempts)
	require.Equal(t, "production", cfg.Log.Mode)
}

func TestLoadConfigYAMLFileUnderEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registrar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: test
http:
  addr: ":7000"
  read_timeout: 3s
database:
  driver: sqlite
  path: /tmp/registrar-test.db
otel:
  service_name: registrar-yaml
`), 0o600))
	t.Setenv(configFileEnv, path)
	t.Setenv("REGISTRAR_HTTP__ADDR", ":7001")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "test", cfg.Env)
	require.Equal(t, ":7001", cfg.HTTP.Addr, "env wins over file")
	require.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	require.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout, "defaults survive the file layer")
	require.Equal(t, "/tmp/registrar-test.db", cfg.Database.Path)
	require.Equal(t, "registrar-yaml", cfg.Otel.ServiceName)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv(configFileEnv, "")
	t.Setenv("REGISTRAR_DATABASE__DRIVER", "mysql")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("REGISTRAR_DATABASE__DRIVER", "sqlite")
	t.Setenv("REGISTRAR_RESOLVER__MAX_ATTEMPTS", "0")
	_, err = LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv(configFileEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := LoadConfig()
	require.Error(t, err)
}
