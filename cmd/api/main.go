// Command api serves the job tracking HTTP API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/Mitrevichin/Job-Tracking-App/internal/app"
	"github.com/Mitrevichin/Job-Tracking-App/internal/auth"
	"github.com/Mitrevichin/Job-Tracking-App/internal/config"
	"github.com/Mitrevichin/Job-Tracking-App/internal/logger"
	"github.com/Mitrevichin/Job-Tracking-App/internal/server"
	jobservice "github.com/Mitrevichin/Job-Tracking-App/internal/service/job"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	log := logger.New(cfg.Logging)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if config.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := app.OpenStores(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(context.Background()); err != nil {
			log.Warn("failed to close database", slog.Any("error", err))
		}
	}()

	if err := auth.EnsureAdmin(ctx, stores.Users, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, log); err != nil {
		return err
	}

	rdb, err := app.Redis(ctx, cfg)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	blacklist, stopBlacklist, err := app.Blacklist(cfg.Auth, rdb, log)
	if err != nil {
		return err
	}
	defer stopBlacklist()

	publisher, err := app.Publisher(cfg.Events, rdb, log)
	if err != nil {
		return err
	}
	defer publisher.Close()

	avatars, closeAvatars, err := app.Avatars(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeAvatars()

	s := &server.MyServer{
		Config:    cfg,
		Logger:    log,
		Health:    stores.Health,
		Users:     stores.Users,
		Jobs:      stores.Jobs,
		Tokens:    auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL),
		Blacklist: blacklist,
		Avatars:   avatars,
		JobService: jobservice.NewService(stores.Jobs, jobservice.Config{
			PageLimit:      cfg.Jobs.PageLimit,
			MaxClientLimit: cfg.Jobs.MaxClientLimit,
			JobTypes:       cfg.Jobs.Types,
			MonthlyWindow:  cfg.Jobs.MonthlyWindow,
		}, publisher, log),
	}
	httpServer := server.NewHTTPServer(s)

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("addr", httpServer.Addr), slog.String("database", cfg.Database.Driver))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server exiting")
	return nil
}
