// Package server boots the application and runs the HTTP listener until
// its context ends.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/backoffice/app/controllers"
	"github.com/shashiranjanraj/backoffice/config"
	"github.com/shashiranjanraj/backoffice/internal/kernel"
	"github.com/shashiranjanraj/backoffice/pkg/auth"
	"github.com/shashiranjanraj/backoffice/pkg/database"
	"github.com/shashiranjanraj/backoffice/pkg/logger"
	"github.com/shashiranjanraj/backoffice/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

// Start boots config, logging, the database and the storage disks, then
// serves HTTP on APP_PORT until ctx is cancelled. In-flight requests get
// shutdownTimeout to finish.
func Start(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if uri := config.LogMongoURI(); uri != "" {
		h, err := logger.DialMongo(ctx, uri, config.Get("LOG_MONGO_DATABASE", "backoffice"), config.Get("LOG_MONGO_COLLECTION", "logs"))
		if err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		} else {
			logger.Tee(h)
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = h.Close(closeCtx)
			}()
		}
	}

	db, err := database.Connect()
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	disks, err := storage.Connect(ctx)
	if err != nil {
		return err
	}

	deps := kernel.Deps{
		DB:    db,
		Disks: disks,
		Limits: controllers.Limits{
			MaxBodyBytes: config.MaxBodyBytes(),
			ImageMaxKB:   config.UploadMaxKB(),
		},
		RateLimit: config.RateLimitPerMinute(),
	}
	if config.AuthRequired() {
		v, err := auth.NewValidator(config.JWTSecret())
		if err != nil {
			return fmt.Errorf("auth: %w", err)
		}
		deps.Auth = v
		deps.Roles = config.AuthRoles()
	}

	k := kernel.NewHTTPKernel(deps)
	defer k.Close()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return serve(ctx, srv, disks.DefaultName())
}

func serve(ctx context.Context, srv *http.Server, disk string) error {
	serveErr := make(chan error, 1)
	logger.Info("backoffice listening", "addr", srv.Addr, "env", config.AppEnv(), "disk", disk)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
