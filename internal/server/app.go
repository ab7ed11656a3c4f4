// Package server initializes and runs the credkeeper API server.
// It opens the database, applies migrations, wires the auth services,
// starts the HTTP server and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/credkeeper/internal/logging"
	"github.com/dmitrijs2005/credkeeper/internal/server/auth"
	"github.com/dmitrijs2005/credkeeper/internal/server/config"
	"github.com/dmitrijs2005/credkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/credkeeper/internal/server/rest"
	"github.com/dmitrijs2005/credkeeper/internal/server/services"
)

// Deps are the wired auth components shared by the server and the CLI.
type Deps struct {
	DB          *sql.DB
	UserService *services.UserService
	Tokens      *auth.TokenIssuer
	Cookie      auth.CookieOptions
}

// Wire opens the configured database, runs migrations and builds the auth
// services on top of it. The caller owns DB and must close it.
func Wire(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Deps, error) {
	tokens, err := auth.NewTokenIssuer(cfg.SecretKey, cfg.TokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token issuer init error: %w", err)
	}

	db, dialect, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewRepositoryManager(dialect, repomanager.WithLogger(logger))
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	hasher := auth.NewArgon2idHasher(auth.DefaultHasherParams)

	return &Deps{
		DB:          db,
		UserService: services.NewUserService(db, rm, hasher, tokens, logger),
		Tokens:      tokens,
		Cookie:      auth.NewCookieOptions(cfg.CookieName, cfg.CookieSecure, tokens.ValidityDuration()),
	}, nil
}

type App struct {
	config *config.Config
	logger logging.Logger
	deps   *Deps
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	deps, err := Wire(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	return &App{config: c, logger: logger, deps: deps}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewServer(app.deps.UserService, app.deps.Tokens, app.deps.Cookie, app.logger)

	if err := s.Run(ctx, app.config.EndpointAddrHTTP); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.deps.DB.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
