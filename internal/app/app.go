// Package app wires the catalog store, the resolution services and the HTTP
// server into a runnable showroom API.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/config"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/internal/repositories/catalog"
	productsvc "github.com/OkoraHeeke/sikora-digital-showroom-sub001/internal/services/product"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/internal/services/resolver"
	scenesvc "github.com/OkoraHeeke/sikora-digital-showroom-sub001/internal/services/scene"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/database"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/health"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/routes/measurepoint"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/routes/product"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/routes/scene"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/server"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/startup"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/tracing"
)

// Services groups the operations exposed over HTTP and the CLI.
type Services struct {
	Catalog  *catalog.Repository
	Resolver *resolver.Service
	Scenes   *scenesvc.Service
	Products *productsvc.Service
}

func NewServices(cfg *config.Config, db database.DB, logger ectologger.Logger) Services {
	repo := catalog.NewRepository(db, logger)
	return Services{
		Catalog:  repo,
		Resolver: resolver.NewService(repo, logger),
		Scenes:   scenesvc.NewService(repo, logger, cfg.DefaultPlacementURL),
		Products: productsvc.NewService(repo, logger),
	}
}

// OpenDatabase connects to the configured store and, when enabled, brings its
// schema up to date.
func OpenDatabase(ctx context.Context, cfg *config.Config, logger ectologger.Logger) (database.DB, error) {
	db, err := database.Open(ctx, cfg.DatabaseConnection(), logger)
	if err != nil {
		return nil, err
	}
	if !cfg.DatabaseMigrationEnabled {
		return db, nil
	}
	if err := database.NewMigrationService(logger, cfg.Migration()).Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

type App struct {
	cfg     *config.Config
	logger  ectologger.Logger
	startup *startup.Startup

	db     database.DB
	health *health.Checker
	server *server.Server
}

func New(cfg *config.Config, logger ectologger.Logger) *App {
	a := &App{
		cfg:     cfg,
		logger:  logger,
		startup: startup.NewStartup(logger, cfg.StartupMaxAttempts),
	}

	if cfg.TracingEnabled {
		var shutdown func(context.Context) error
		a.startup.AddDependency(&dependency{
			name: "tracing",
			start: func(ctx context.Context) (err error) {
				shutdown, err = tracing.Setup(ctx, cfg.Tracing())
				return err
			},
			stop: func(ctx context.Context) error {
				if shutdown == nil {
					return nil
				}
				return shutdown(ctx)
			},
		})
	}

	a.startup.AddDependency(&dependency{
		name:  "database",
		start: a.startDatabase,
		stop: func(context.Context) error {
			if a.db == nil {
				return nil
			}
			return a.db.Close()
		},
	})

	a.startup.AddDependency(&dependency{
		name:      "http-server",
		dependsOn: []string{"database"},
		start:     a.startServer,
		stop: func(ctx context.Context) error {
			if a.server == nil {
				return nil
			}
			return a.server.Stop(ctx)
		},
	})

	return a
}

func (a *App) startDatabase(ctx context.Context) error {
	db, err := OpenDatabase(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}
	a.db = db
	return nil
}

func (a *App) startServer(ctx context.Context) error {
	services := NewServices(a.cfg, a.db, a.logger)
	a.health = health.NewChecker(a.db, a.cfg.Version).WithCatalog(services.Catalog)

	a.server = server.New(server.Options{
		ServiceName:       a.cfg.AppName,
		Port:              a.cfg.Port,
		ReadTimeout:       seconds(a.cfg.HttpServerReadTimeoutSeconds),
		ReadHeaderTimeout: seconds(a.cfg.ReadHeaderTimeoutSeconds),
		WriteTimeout:      seconds(a.cfg.HttpServerWriteTimeoutSeconds),
		IdleTimeout:       seconds(a.cfg.HttpServerIdleTimeoutSeconds),
		ShutdownTimeout:   seconds(a.cfg.ShutdownTimeoutSeconds),
		MaxHeaderBytes:    a.cfg.MaxHeaderBytes,
		MetricsEnabled:    a.cfg.MetricsEnabled,
	}, a.logger, a.health,
		measurepoint.NewHandler(services.Resolver),
		scene.NewHandler(services.Scenes),
		product.NewHandler(services.Products),
	)
	return a.server.Start(ctx)
}

// Addr is the bound HTTP address once Run has started the server.
func (a *App) Addr() string {
	if a.server == nil {
		return ""
	}
	return a.server.Addr()
}

// Run starts every dependency, serves until ctx is cancelled or the server
// fails, then stops dependencies in reverse order.
func (a *App) Run(ctx context.Context) error {
	if err := a.startup.Start(ctx); err != nil {
		_ = a.startup.Stop(context.Background())
		return fmt.Errorf("failed to start: %w", err)
	}
	a.health.SetReady(true)
	a.logger.WithContext(ctx).Info("Showroom API ready")

	var serveErr error
	select {
	case <-ctx.Done():
	case <-a.server.Done():
		serveErr = a.server.Err()
		a.logger.WithError(serveErr).Error("HTTP server stopped unexpectedly")
	}
	a.health.SetReady(false)

	stopCtx, cancel := context.WithTimeout(context.Background(), seconds(a.cfg.ShutdownTimeoutSeconds)+time.Second)
	defer cancel()
	if err := a.startup.Stop(stopCtx); err != nil {
		return err
	}
	return serveErr
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
