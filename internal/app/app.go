package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stagehire/catalog-backend/internal/data/db"
	"github.com/stagehire/catalog-backend/internal/http"
	"github.com/stagehire/catalog-backend/internal/observability"
	"github.com/stagehire/catalog-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics

	dbService    *db.Service
	server       *http.Server
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg := LoadConfig()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	cfg.logSummary(log)

	otelShutdown, err := observability.InitOTel(ctx, log, cfg.Otel)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	dbService, err := db.NewService(log, cfg.DB)
	if err != nil {
		_ = otelShutdown(ctx)
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		_ = dbService.Close()
		_ = otelShutdown(ctx)
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := dbService.DB()
	sqlDB, err := theDB.DB()
	if err != nil {
		_ = dbService.Close()
		_ = otelShutdown(ctx)
		log.Sync()
		return nil, fmt.Errorf("database handle: %w", err)
	}

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(theDB, log, cfg, reposet)
	if err != nil {
		_ = dbService.Close()
		_ = otelShutdown(ctx)
		log.Sync()
		return nil, err
	}
	handlerset := wireHandlers(log, sqlDB, serviceset)
	metrics := observability.Init(cfg.MetricsEnabled)
	router := wireRouter(log, cfg, handlerset, metrics)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		dbService:    dbService,
		Metrics:      metrics,
		server:       http.NewServer(router, ":"+cfg.Port),
		otelShutdown: otelShutdown,
	}, nil
}

// Run blocks serving HTTP until ctx is cancelled, then shuts the server down.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Metrics.StartDBCollector(ctx, a.Log, a.DB, a.Cfg.MetricsInterval)

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("HTTP server listening", "addr", a.server.Addr())
		errCh <- a.server.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
	defer cancel()
	a.Log.Info("Shutting down HTTP server")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if err := a.Services.Close(); err != nil {
		a.Log.Warn("display cache close failed", "error", err)
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
