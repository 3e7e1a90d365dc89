package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/shelf/internal/autosave"
	"github.com/nikbrunner/shelf/internal/httpserver"
	"github.com/nikbrunner/shelf/internal/httpserver/deps"
	"github.com/nikbrunner/shelf/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the bookmark JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := openEnv(ctx, true)
			if err != nil {
				return err
			}
			defer e.Close()

			if addr == "" {
				addr = e.cfg.Server.Addr
			}

			saver := autosave.New(e.store, e.cfg.Autosave.Interval, e.log)
			saver.Start(ctx)
			defer saver.Stop()

			server := httpserver.New(addr, deps.Deps{
				Logger:    e.log,
				Store:     e.store,
				Settings:  e.backend,
				StartTime: time.Now(),
				TimeNow:   time.Now,
				Version:   version,
			})

			errCh := make(chan error, 1)
			go func() {
				if err := server.Start(); err != nil {
					errCh <- fmt.Errorf("http server error: %w", err)
				}
			}()

			select {
			case <-ctx.Done():
				e.log.Info("shutting down gracefully")
			case err := <-errCh:
				return err
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Stop(shutdownCtx); err != nil {
				e.log.Error("http server shutdown failed", logger.Error(err))
			}
			return e.store.Persist(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
