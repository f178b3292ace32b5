package db

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/registrar-backend/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver   string `koanf:"driver" yaml:"driver" validate:"required,oneof=postgres sqlite"`
	DSN      string `koanf:"dsn" yaml:"dsn"`
	Host     string `koanf:"host" yaml:"host"`
	Port     int    `koanf:"port" yaml:"port" validate:"omitempty,min=1,max=65535"`
	User     string `koanf:"user" yaml:"user"`
	Password string `koanf:"password" yaml:"password"`
	Name     string `koanf:"name" yaml:"name"`
	SSLMode  string `koanf:"ssl_mode" yaml:"ssl_mode"`
	// Path is the SQLite database file; ignored by postgres.
	Path string `koanf:"path" yaml:"path"`

	MaxOpenConns    int           `koanf:"max_open_conns" yaml:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int           `koanf:"max_idle_conns" yaml:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" yaml:"conn_max_lifetime"`
	SlowThreshold   time.Duration `koanf:"slow_threshold" yaml:"slow_threshold"`
	LogLevel        string        `koanf:"log_level" yaml:"log_level" validate:"omitempty,oneof=silent error warn info"`
	AutoMigrate     bool          `koanf:"auto_migrate" yaml:"auto_migrate"`
}

// Service owns the gorm handle for one configured database.
type Service struct {
	db     *gorm.DB
	log    *logger.Logger
	driver string
}

// Open connects with the configured driver and applies pool settings.
func Open(cfg Config, logg *logger.Logger) (*Service, error) {
	var (
		db  *gorm.DB
		err error
	)
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case DriverPostgres:
		db, err = openPostgres(cfg, logg)
	case DriverSQLite:
		db, err = openSQLite(cfg, logg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return &Service{db: db, log: logg.With("service", "DatabaseService", "driver", driver), driver: driver}, nil
}

func (s *Service) DB() *gorm.DB     { return s.db }
func (s *Service) Driver() string   { return s.driver }
func (s *Service) AutoMigrateAll() error {
	s.log.Info("running auto-migrate")
	return AutoMigrateAll(s.db)
}

func (s *Service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormConfig(cfg Config, logg *logger.Logger) *gorm.Config {
	return &gorm.Config{
		Logger:  NewGormLogger(logg, cfg),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}
}

// NewGormLogger routes gorm's SQL logging through zap.
func NewGormLogger(logg *logger.Logger, cfg Config) gormLogger.Interface {
	if logg == nil {
		return gormLogger.Discard
	}
	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = time.Second
	}
	return gormLogger.New(
		zap.NewStdLog(logg.SugaredLogger.Desugar().With(zap.String("component", "gorm"))),
		gormLogger.Config{
			SlowThreshold:             slow,
			LogLevel:                  gormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func gormLogLevel(level string) gormLogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return gormLogger.Silent
	case "error":
		return gormLogger.Error
	case "info":
		return gormLogger.Info
	default:
		return gormLogger.Warn
	}
}
