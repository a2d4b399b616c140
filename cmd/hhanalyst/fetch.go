package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/hh-analyst/internal/app"
	"github.com/honeycarbs/hh-analyst/internal/config"
	"github.com/honeycarbs/hh-analyst/pkg/hh"
	"github.com/honeycarbs/hh-analyst/pkg/logging"
)

func runFetch(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return fetchOnce(ctx, cmd, cfg, logger)
}

// fetchOnce runs the example search and then pauses for cfg.Pause.
// A failed request is reported but does not fail the command.
func fetchOnce(ctx context.Context, cmd *cobra.Command, cfg config.Config, logger *logging.Logger) error {
	svc, cleanup, err := app.InitializeFetcher(ctx, cfg, cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := svc.Fetch(ctx, cfg.Search); err != nil && !hh.IsRequestFailure(err) {
		return err
	}

	pause(ctx, cfg.Pause)
	return nil
}

func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
