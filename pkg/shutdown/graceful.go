package shutdown

import (
	"context"
	"time"

	"github.com/honeycarbs/hh-analyst/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// Graceful waits for ctx to be done, then stops s within timeout
func Graceful(ctx context.Context, s Stoppable, timeout time.Duration, log *logging.Logger) error {
	<-ctx.Done()
	log.Info("shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(stopCtx); err != nil {
		log.Warn("graceful shutdown completed with error", "err", err)
		return err
	}

	log.Info("graceful shutdown completed successfully")
	return nil
}
