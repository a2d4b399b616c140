package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/hh-analyst/internal/app"
	"github.com/honeycarbs/hh-analyst/internal/mcp"
	"github.com/honeycarbs/hh-analyst/pkg/shutdown"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose vacancy search as an MCP tool over streamable HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	defer stop()

	svc, cleanup, err := app.InitializeFetcher(ctx, cfg, io.Discard, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := mcp.NewServer(logger, cfg, svc)
	if err != nil {
		logger.Error("failed to register MCP tools", "err", err)
		return err
	}

	go func() {
		_ = shutdown.Graceful(ctx, srv, 10*time.Second, logger)
	}()

	logger.Info("MCP server initialized and starting", "addr", srv.Addr())

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
		return err
	}

	logger.Info("MCP server stopped")
	return nil
}
