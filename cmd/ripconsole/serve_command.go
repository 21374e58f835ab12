package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ripconsole/internal/logging"
	"ripconsole/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			store, err := ctx.openStore()
			if err != nil {
				logger.Error("open job store", logging.Error(err))
				return err
			}

			srv, err := server.New(cfg, store, logger)
			if err != nil {
				return err
			}
			if err := srv.Start(signalCtx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ripconsole listening on http://%s\n", srv.Addr())

			<-signalCtx.Done()
			srv.Stop()
			logger.Info("shutdown complete", slog.String("reason", context.Cause(signalCtx).Error()))
			return nil
		},
	}
}
