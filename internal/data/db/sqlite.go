package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/registrar-backend/internal/platform/logger"
)

// Foreign keys on so ON DELETE CASCADE and FK violations behave like postgres;
// immediate transactions so concurrent writers queue on the busy timeout
// instead of failing at commit.
const sqlitePragmas = "_foreign_keys=1&_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate"

func openSQLite(cfg Config, logg *logger.Logger) (*gorm.DB, error) {
	dsn := SQLiteDSN(cfg)
	logg.Info("opening sqlite", "path", cfg.Path)
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(cfg, logg))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	return db, nil
}

// SQLiteDSN returns cfg.DSN when set, else a file DSN for cfg.Path with the required pragmas.
func SQLiteDSN(cfg Config) string {
	if dsn := strings.TrimSpace(cfg.DSN); dsn != "" {
		return dsn
	}
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = "registrar.db"
	}
	return "file:" + path + "?" + sqlitePragmas
}
