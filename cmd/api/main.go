package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/toolrent/internal/app"
	"github.com/MrJamesThe3rd/toolrent/internal/auth"
	"github.com/MrJamesThe3rd/toolrent/internal/config"
	toolrentHttp "github.com/MrJamesThe3rd/toolrent/internal/http"
	"github.com/MrJamesThe3rd/toolrent/internal/http/authn"
	"github.com/MrJamesThe3rd/toolrent/internal/jobs"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(app.NewLogger(os.Stdout, cfg.App.LogLevel, cfg.App.LogFormat))

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	repos, closeStore, err := app.Open(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	svcs := app.NewServices(repos, app.OptionsFrom(cfg))

	var verifier authn.Verifier

	if cfg.Auth.Disabled {
		slog.Warn("authentication disabled, every request acts as admin")
	} else {
		v, err := auth.NewVerifier(cfg.Auth.Secret, cfg.Auth.PublicKeyPEM, cfg.Auth.Issuer)
		if err != nil {
			return fmt.Errorf("configuring auth: %w", err)
		}

		verifier = v
	}

	if cfg.Jobs.Enabled {
		scheduler, err := jobs.NewScheduler(jobs.NewRunner(svcs.Tracker), jobs.Schedule{
			StandingSweep: cfg.Jobs.StandingSweep,
		})
		if err != nil {
			return err
		}

		scheduler.Start()
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      toolrentHttp.New(toolrentHttp.NewHandlers(svcs), verifier, cfg.CORS.AllowedOrigins),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", server.Addr, "store", cfg.Store, "timezone", cfg.App.Timezone)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
