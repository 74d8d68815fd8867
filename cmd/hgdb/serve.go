package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hgdb/internal/handler"
	"hgdb/internal/hub"
)

func newServeCmd(flags *globalFlags, a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address, overrides http_addr")

	cmd.RunE = withApp(flags, a, false, func(cmd *cobra.Command, _ []string) error {
		if addr == "" {
			addr = a.cfg.HTTPAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sseHub := hub.New(a.logger)
		go sseHub.Run(ctx)
		go sseHub.Forward(ctx, a.bus)

		h := handler.NewHypergraphHandler(a.edges, a.duals, a.logger)
		srv := &http.Server{
			Addr:              addr,
			Handler:           handler.Router(h, sseHub),
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			a.logger.Info("hgdb listening",
				zap.String("addr", addr),
				zap.String("db_path", a.cfg.DBPath),
			)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return err
			}
		case <-ctx.Done():
		}

		a.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		a.logger.Info("server exited")
		return nil
	})
	return cmd
}
