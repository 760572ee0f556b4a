// Package server initializes and runs the ledger server: it opens the
// database, applies migrations, wires repositories into services, and
// serves the HTTP API until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ospinae/termledger/internal/logging"
	"github.com/ospinae/termledger/internal/server/audit"
	"github.com/ospinae/termledger/internal/server/authz"
	"github.com/ospinae/termledger/internal/server/config"
	"github.com/ospinae/termledger/internal/server/httpapi"
	"github.com/ospinae/termledger/internal/server/repositories/repomanager"
	"github.com/ospinae/termledger/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	checker := authz.NewChecker(rm)
	recorder := audit.NewRecorder(rm)
	secretKey := []byte(cfg.SecretKey)

	users := services.NewUserService(db, rm, checker, recorder, secretKey, cfg.SessionValidityDuration)
	transactions := services.NewTransactionService(db, rm, checker, recorder)
	reversals := services.NewReversalService(db, rm, checker, recorder)
	catalog := services.NewCatalogService(db, rm, checker, recorder)
	globalConfig := services.NewGlobalConfigService(db, rm, checker, recorder, cfg.ConfigCacheTTL)
	archive := services.NewArchiveService(db, rm, checker, cfg)

	http := httpapi.NewServer(logger, secretKey, users, transactions, reversals, catalog, globalConfig, archive)

	return &App{config: cfg, logger: logger, db: db, http: http}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the HTTP API until ctx is cancelled or a termination signal
// arrives, then shuts the listener down and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	fiberApp := app.http.App()

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", app.config.EndpointAddrHTTP)
		errCh <- fiberApp.Listen(app.config.EndpointAddrHTTP)
	}()

	select {
	case err := <-errCh:
		app.db.Close()
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")
	if err := fiberApp.Shutdown(); err != nil {
		app.logger.Error(ctx, "http shutdown error", "error", err)
	}

	return app.db.Close()
}
