package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kvgate/kvgate/audit"
	"github.com/kvgate/kvgate/command"
	"github.com/kvgate/kvgate/gateway"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gateway",
	Long: `Run the HTTP gateway in the foreground.

The gateway is started automatically, mirroring module-load behavior: a
start failure is logged but does not abort, and the gateway can still be
started later with the HTTP.SERVER.START command.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := configFromContext(cmd.Context())
	if err != nil {
		return err
	}

	var auditLog *audit.Log
	if cfg.Audit.Enabled {
		auditLog, err = audit.Open(cmd.Context(), cfg.Audit.Path)
		if err != nil {
			return fmt.Errorf("open audit log: %w", err)
		}
		defer func() { _ = auditLog.Close() }()
		slog.Info("audit log enabled", "path", cfg.Audit.Path)
	}

	gw := gateway.New(gateway.Config{
		ListenAddr: cfg.Server.Addr,
		Backend:    cfg.Backend,
		CORS:       cfg.CORS,
		Audit:      auditLog,
	})

	cmds := command.New(gw, nil)
	cmds.AutoStart()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	slog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := gw.Close(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
