package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/au-connect/internal/api/http"
	"github.com/spec-kit/au-connect/internal/api/http/handlers"
	"github.com/spec-kit/au-connect/internal/config"
	"github.com/spec-kit/au-connect/internal/events"
	"github.com/spec-kit/au-connect/internal/observability"
	"github.com/spec-kit/au-connect/internal/persistence"
	"github.com/spec-kit/au-connect/internal/repository"
	"github.com/spec-kit/au-connect/internal/repository/memory"
	"github.com/spec-kit/au-connect/internal/service"
	"github.com/spec-kit/au-connect/internal/worker"
)

func main() {
	cliApp := &cli.App{
		Name:   "au-connect",
		Usage:  "clubs, events, memberships and registrations API",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			newMigrateCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newMigrateCommand() *cli.Command {
	run := func(direction string) cli.ActionFunc {
		return func(c *cli.Context) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			if cfg.Postgres.DSN == "" {
				return persistence.ErrNoDSN
			}
			return persistence.RunMigrations(cfg.Postgres.DSN, direction, logger)
		}
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{Name: "up", Usage: "apply all pending migrations", Action: run(persistence.DirectionUp)},
			{Name: "down", Usage: "roll back all migrations", Action: run(persistence.DirectionDown)},
		},
	}
}

func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

func serve(c *cli.Context) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics("auconnect")
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartActivityWorker(service.NewActivityService(dispatcher, redis, logger, cfg.Activity))

	services := service.NewServices(cfg.Auth, service.LedgerDependencies{
		Store:      store,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	health := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version,
		handlers.Dependency{Name: "store", Ping: store.Ping},
		handlers.Dependency{Name: "redis", Ping: redis.Ping, Optional: true},
	)
	app := httptransport.NewApp(cfg.App.Name, logger, cfg.App.RequestTimeout(),
		httptransport.NewRouteConfig(services, health, metrics))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		errCh <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("fiber listen: %w", err)
	case <-waitForShutdown(logger):
	}
	return app.Shutdown()
}

// openStore selects the Postgres driver when a DSN is configured and the
// in-memory driver otherwise.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repository.Store, func(), error) {
	if cfg.Postgres.DSN == "" {
		logger.Warn("POSTGRES_DSN not provided; using in-memory store")
		mem := memory.New()
		return mem.Repositories(), func() {}, nil
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, persistence.DirectionUp, logger); err != nil {
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	return repository.NewPostgresStore(pg.PoolHandle(), pg), pg.Close, nil
}

func waitForShutdown(logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("shutting down", zap.String("signal", sig.String()))
		close(done)
	}()
	return done
}
