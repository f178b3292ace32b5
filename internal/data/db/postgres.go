package db

import (
	"fmt"
	"net/url"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yungbote/registrar-backend/internal/platform/logger"
)

func openPostgres(cfg Config, logg *logger.Logger) (*gorm.DB, error) {
	dsn := PostgresDSN(cfg)
	logg.Info("connecting to postgres", "host", cfg.Host, "name", cfg.Name)
	db, err := gorm.Open(postgres.Open(dsn), gormConfig(cfg, logg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// PostgresDSN returns cfg.DSN when set, else a URL built from the discrete fields.
func PostgresDSN(cfg Config) string {
	if dsn := strings.TrimSpace(cfg.DSN); dsn != "" {
		return dsn
	}
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", host, port),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	return u.String()
}
