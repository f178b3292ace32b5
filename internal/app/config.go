package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/registrar-backend/internal/data/aggregates"
	"github.com/yungbote/registrar-backend/internal/data/db"
	apphttp "github.com/yungbote/registrar-backend/internal/http"
	"github.com/yungbote/registrar-backend/internal/observability"
)

const (
	envPrefix     = "REGISTRAR_"
	configFileEnv = envPrefix + "CONFIG_FILE"
)

type Config struct {
	Env      string                      `koanf:"env" yaml:"env" validate:"required,oneof=development production test"`
	HTTP     apphttp.ServerConfig        `koanf:"http" yaml:"http" validate:"required"`
	Database db.Config                   `koanf:"database" yaml:"database" validate:"required"`
	Log      LogConfig                   `koanf:"log" yaml:"log"`
	Otel     observability.OtelConfig    `koanf:"otel" yaml:"otel"`
	Metrics  observability.MetricsConfig `koanf:"metrics" yaml:"metrics"`
	Resolver ResolverConfig              `koanf:"resolver" yaml:"resolver"`
}

type LogConfig struct {
	Mode string `koanf:"mode" yaml:"mode" validate:"omitempty,oneof=development production test"`
}

type ResolverConfig struct {
	MaxAttempts int `koanf:"max_attempts" yaml:"max_attempts" validate:"min=1,max=10"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"env": "development",
		"http": map[string]interface{}{
			"addr":             ":8080",
			"read_timeout":     "15s",
			"write_timeout":    "30s",
			"shutdown_timeout": "10s",
		},
		"database": map[string]interface{}{
			"driver":            db.DriverSQLite,
			"path":              "registrar.db",
			"max_open_conns":    10,
			"max_idle_conns":    5,
			"conn_max_lifetime": "30m",
			"slow_threshold":    "500ms",
			"log_level":         "warn",
			"auto_migrate":      true,
		},
		"otel": map[string]interface{}{
			"service_name": "registrar-api",
			"sample_ratio": 1.0,
		},
		"resolver": map[string]interface{}{
			"max_attempts": aggregates.DefaultResolveAttempts,
		},
	}
}

// LoadConfig layers defaults, an optional YAML file named by
// REGISTRAR_CONFIG_FILE, then REGISTRAR_* environment variables. A double
// underscore nests: REGISTRAR_DATABASE__MAX_OPEN_CONNS -> database.max_open_conns.
func LoadConfig() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(mapProvider(defaults()), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}
	if path := strings.TrimSpace(os.Getenv(configFileEnv)); path != "" {
		if err := k.Load(yamlFile(path), yamlParser{}); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Log.Mode == "" {
		cfg.Log.Mode = cfg.Env
	}
	if cfg.Otel.Environment == "" {
		cfg.Otel.Environment = cfg.Env
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func envKey(key, value string) (string, interface{}) {
	if key == configFileEnv {
		return "", nil
	}
	k := strings.ToLower(strings.TrimPrefix(key, envPrefix))
	k = strings.ReplaceAll(k, "__", ".")
	if strings.HasSuffix(k, "origins") {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return k, out
	}
	return k, value
}

type mapProvider map[string]interface{}

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("map provider does not support ReadBytes")
}

func (m mapProvider) Read() (map[string]interface{}, error) { return m, nil }

type yamlFile string

func (f yamlFile) ReadBytes() ([]byte, error) { return os.ReadFile(string(f)) }

func (f yamlFile) Read() (map[string]interface{}, error) {
	return nil, fmt.Errorf("yaml file provider requires a parser")
}

type yamlParser struct{}

func (yamlParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (yamlParser) Marshal(m map[string]interface{}) ([]byte, error) {
	return yaml.Marshal(m)
}

func (c Config) summary() []interface{} {
	return []interface{}{
		"env", c.Env,
		"http_addr", c.HTTP.Addr,
		"db_driver", c.Database.Driver,
		"auto_migrate", c.Database.AutoMigrate,
		"otel_enabled", c.Otel.Enabled,
		"metrics_enabled", c.Metrics.Enabled,
		"resolver_attempts", c.Resolver.MaxAttempts,
		"write_timeout", c.HTTP.WriteTimeout.String(),
	}
}
