package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/registrar-backend/internal/data/db"
	"github.com/yungbote/registrar-backend/internal/data/repos"
	apphttp "github.com/yungbote/registrar-backend/internal/http"
	"github.com/yungbote/registrar-backend/internal/observability"
	"github.com/yungbote/registrar-backend/internal/platform/logger"
)

type App struct {
	Log        *logger.Logger
	DB         *gorm.DB
	Cfg        Config
	Repos      repos.Repos
	Aggregates Aggregates
	Metrics    *observability.Metrics
	Server     *apphttp.Server

	dbService    *db.Service
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig wires every component from cfg without starting any listener.
func NewWithConfig(ctx context.Context, cfg Config) (*App, error) {
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log.Info("Config loaded", cfg.summary()...)

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)

	dbService, err := db.Open(cfg.Database, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := dbService.AutoMigrateAll(); err != nil {
			_ = dbService.Close()
			log.Sync()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
	}
	theDB := dbService.DB()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
		if sqlDB, err := theDB.DB(); err == nil {
			if err := metrics.RegisterDB(sqlDB, cfg.Database.Driver); err != nil {
				log.Warn("db stats collector not registered", "error", err)
			}
		}
	}

	reposet := wireRepos(theDB, log)
	aggs, err := wireAggregates(theDB, log, metrics, reposet, cfg.Resolver)
	if err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, fmt.Errorf("wire aggregates: %w", err)
	}
	handlers := wireHandlers(log, theDB, aggs)
	server := wireServer(cfg, log, metrics, handlers)

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Repos:        reposet,
		Aggregates:   aggs,
		Metrics:      metrics,
		Server:       server,
		dbService:    dbService,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP (and the standalone metrics listener when configured) until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return errors.New("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)
	if a.Metrics != nil && a.Cfg.Metrics.Addr != "" {
		a.Metrics.StartServer(gctx, a.Log, a.Cfg.Metrics.Addr)
	}
	g.Go(func() error {
		return a.Server.Run(gctx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		grace := a.Cfg.HTTP.ShutdownTimeout
		if grace <= 0 {
			grace = 5 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), grace)
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil && a.Log != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
