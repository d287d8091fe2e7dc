// @title                       Launchpad API
// @version                     1.0
// @description                 Countdown and launch subscription service for a coming-soon page.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "launchpad/docs"
	"launchpad/internal/config"
	"launchpad/internal/countdown"
	"launchpad/internal/handlers"
	"launchpad/internal/logger"
	"launchpad/internal/repository"
	"launchpad/internal/repository/db"
	"launchpad/internal/server"
	"launchpad/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(config.DefaultOptions())
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	engine, err := countdown.New(countdown.Options{
		Target:   cfg.Countdown.Target,
		Location: cfg.Countdown.Location,
	})
	if err != nil {
		var cfgErr *countdown.ConfigError
		if errors.As(err, &cfgErr) {
			log.Fatalw("invalid countdown.target", "input", cfgErr.Input, "err", cfgErr.Err)
		}
		log.Fatalw("failed to create countdown", "err", err)
	}

	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Deps{
		Engine: engine,
		Log:    log,
		Sheets: newSheetsClient(cfg, log),
		Auth: service.AuthParams{
			SigningKey:  cfg.Auth.SigningKey,
			TokenTTL:    cfg.Auth.TokenTTL,
			AllowSignUp: cfg.Auth.AllowSignUp,
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := services.Countdown.Restore(ctx); err != nil {
		log.Errorw("failed to restore launch target", "err", err)
	}
	if err := services.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		log.Fatalw("failed to seed admin", "err", err)
	}
	if cfg.Auth.SigningKey == "" {
		log.Warnw("auth.signing_key is empty; admin endpoints will reject every token")
	}

	go services.Countdown.Run(ctx)

	log.Infow("countdown_started",
		"target", services.Countdown.Target().Format(time.RFC3339),
		"state", services.Countdown.Snapshot().State)

	apiHandler := handlers.NewHandler(services, log.Named("http"), cfg.WSBuffer)
	srv := server.NewServer(cfg.Port, apiHandler.InitRoutes())
	runHTTPServer(srv, log)

	waitForShutdown(cancel, srv, log)
}

func openDB(cfg config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening sqlite", "path", cfg.DBPath)
	return db.InitDB(cfg.DBPath)
}

// newSheetsClient returns nil when no webhook is configured.
func newSheetsClient(cfg config.Config, log *logger.Logger) service.SheetsClient {
	if cfg.Subscription.SheetsURL == "" {
		log.Infow("subscription.sheets_url not set; storing subscribers locally only")
		return nil
	}
	return service.NewSheetsWebhook(cfg.Subscription.SheetsURL, cfg.Subscription.Timeout)
}

func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM, stops the countdown and
// drains in-flight requests.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
