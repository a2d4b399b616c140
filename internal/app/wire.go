//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"io"

	"github.com/google/wire"

	"github.com/honeycarbs/hh-analyst/internal/config"
	"github.com/honeycarbs/hh-analyst/internal/storage/file"
	"github.com/honeycarbs/hh-analyst/internal/vacancy"
	"github.com/honeycarbs/hh-analyst/pkg/hh"
	"github.com/honeycarbs/hh-analyst/pkg/logging"
)

// InitializeFetcher creates the vacancy fetcher with all resources wired up
func InitializeFetcher(ctx context.Context, cfg config.Config, out io.Writer, logger *logging.Logger) (*vacancy.Service, func(), error) {
	wire.Build(
		// Infrastructure - hh.ru
		provideHHConfig,
		hh.NewClient,
		wire.Bind(new(vacancy.Searcher), new(*hh.Client)),

		// Storage
		provideSnapshotStore,
		wire.Bind(new(vacancy.SnapshotStore), new(*file.Store)),

		// Presentation
		providePrinter,

		// Optional sinks - Neo4j, Google Sheets
		provideSinks,

		// Services
		vacancy.NewServiceWithDeps,
	)

	return nil, nil, nil
}
