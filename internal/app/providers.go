package app

import (
	"context"
	"io"

	"github.com/honeycarbs/hh-analyst/internal/config"
	"github.com/honeycarbs/hh-analyst/internal/export"
	"github.com/honeycarbs/hh-analyst/internal/report"
	"github.com/honeycarbs/hh-analyst/internal/storage/file"
	storage "github.com/honeycarbs/hh-analyst/internal/storage/neo4j"
	"github.com/honeycarbs/hh-analyst/internal/vacancy"
	"github.com/honeycarbs/hh-analyst/pkg/hh"
	"github.com/honeycarbs/hh-analyst/pkg/logging"
	n4j "github.com/honeycarbs/hh-analyst/pkg/neo4j"
	sheetsclient "github.com/honeycarbs/hh-analyst/pkg/sheets"
)

// provideHHConfig extracts the API client config from main config
func provideHHConfig(cfg config.Config) hh.Config {
	return hh.Config{
		BaseURL:   cfg.HH.BaseURL,
		UserAgent: cfg.HH.UserAgent,
	}
}

func provideSnapshotStore(cfg config.Config) *file.Store {
	return file.NewStore(cfg.OutputDir)
}

func providePrinter(out io.Writer) *report.Printer {
	return report.NewPrinter(out)
}

// provideSinks builds the optional sinks that are configured. A sink that
// fails to initialize is logged and skipped so the fetch still runs.
func provideSinks(ctx context.Context, cfg config.Config, logger *logging.Logger) ([]vacancy.Sink, func()) {
	var (
		sinks    []vacancy.Sink
		cleanups []func()
	)

	if cfg.Neo4jEnabled() {
		client, err := n4j.NewClient(ctx, n4j.Config{
			URI:      cfg.Neo4j.URI,
			Username: cfg.Neo4j.Username,
			Password: cfg.Neo4j.Password,
		})
		if err != nil {
			logger.Warn("failed to initialize Neo4j sink", "err", err)
		} else {
			logger.Info("Neo4j client initialized", "uri", cfg.Neo4j.URI)
			sinks = append(sinks, storage.NewVacancyRepository(client))
			cleanups = append(cleanups, func() { _ = client.Close(context.Background()) })
		}
	}

	if cfg.SheetsEnabled() {
		client, err := sheetsclient.NewClient(ctx, sheetsclient.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
		if err == nil {
			var exporter *export.SheetsExporter
			exporter, err = export.NewSheetsExporter(client, cfg.Sheets.SpreadsheetID, cfg.Sheets.Tab)
			if err == nil {
				logger.Info("Google Sheets sink initialized", "spreadsheet_id", cfg.Sheets.SpreadsheetID, "tab", cfg.Sheets.Tab)
				sinks = append(sinks, exporter)
			}
		}
		if err != nil {
			logger.Warn("failed to initialize Google Sheets sink", "err", err)
		}
	}

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	return sinks, cleanup
}
