package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fertitrack/fertitrack/internal/api"
	"github.com/fertitrack/fertitrack/internal/database"
	"github.com/fertitrack/fertitrack/internal/identity"
	"github.com/fertitrack/fertitrack/internal/store"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	db, err := a.openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if a.cfg.Auth.AllowDevIdentity {
		a.log.Warn("dev identity header enabled", zap.String("header", identity.DevHeader))
	}
	verifier := identity.NewVerifier(a.cfg.Auth.JWTSecret, a.cfg.Auth.CookieName, a.cfg.Auth.AllowDevIdentity)
	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           api.New(store.New(db), verifier, a.log).Routes(a.cfg.HTTP.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.log.Info("api listening",
			zap.String("addr", srv.Addr),
			zap.Strings("cors_origins", a.cfg.HTTP.CORSOrigins),
		)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
