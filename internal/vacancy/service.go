package vacancy

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/honeycarbs/hh-analyst/internal/report"
	"github.com/honeycarbs/hh-analyst/pkg/hh"
	"github.com/honeycarbs/hh-analyst/pkg/logging"
)

// Searcher runs a single vacancy search against the upstream API
type Searcher interface {
	Search(ctx context.Context, criteria hh.Criteria) (*hh.ListingResponse, error)
}

// SnapshotStore persists the raw listing of the latest fetch
type SnapshotStore interface {
	Path(criteria hh.Criteria) string
	Save(criteria hh.Criteria, listing *hh.ListingResponse) (string, error)
}

// Sink receives every successfully stored listing (graph DB, spreadsheet, ...)
type Sink interface {
	Name() string
	Publish(ctx context.Context, run Run) error
}

// Run describes one completed fetch
type Run struct {
	ID           uuid.UUID
	Criteria     hh.Criteria
	Listing      *hh.ListingResponse
	SnapshotPath string
}

// Option configures Service
type Option func(*config)

type config struct {
	searcher Searcher
	store    SnapshotStore
	printer  *report.Printer
	sinks    []Sink
	logger   *logging.Logger
}

// WithSearcher sets the upstream searcher
func WithSearcher(s Searcher) Option {
	return func(c *config) {
		c.searcher = s
	}
}

// WithSnapshotStore sets the snapshot store
func WithSnapshotStore(s SnapshotStore) Option {
	return func(c *config) {
		c.store = s
	}
}

// WithPrinter sets the console printer
func WithPrinter(p *report.Printer) Option {
	return func(c *config) {
		c.printer = p
	}
}

// WithSinks adds downstream sinks
func WithSinks(sinks ...Sink) Option {
	return func(c *config) {
		c.sinks = append(c.sinks, sinks...)
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Service is the vacancy fetcher
type Service struct {
	searcher Searcher
	store    SnapshotStore
	printer  *report.Printer
	sinks    []Sink
	logger   *logging.Logger
}

// NewService builds Service from options
func NewService(opts ...Option) (*Service, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	return newService(cfg.searcher, cfg.store, cfg.printer, cfg.sinks, cfg.logger)
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(
	searcher Searcher,
	store SnapshotStore,
	printer *report.Printer,
	sinks []Sink,
	logger *logging.Logger,
) (*Service, error) {
	return newService(searcher, store, printer, sinks, logger)
}

func newService(searcher Searcher, store SnapshotStore, printer *report.Printer, sinks []Sink, logger *logging.Logger) (*Service, error) {
	if searcher == nil {
		return nil, fmt.Errorf("vacancy.Service: searcher is required")
	}
	if store == nil {
		return nil, fmt.Errorf("vacancy.Service: snapshot store is required")
	}
	if printer == nil {
		printer = report.NewPrinter(nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Service{
		searcher: searcher,
		store:    store,
		printer:  printer,
		sinks:    sinks,
		logger:   logger,
	}, nil
}

// SnapshotPath returns where Fetch stores the listing for criteria
func (s *Service) SnapshotPath(criteria hh.Criteria) string {
	return s.store.Path(criteria)
}

// Fetch performs one search, prints the report and stores the snapshot.
// On a transport or status failure it prints a diagnostic and returns a
// nil listing; no snapshot is written for any failure.
func (s *Service) Fetch(ctx context.Context, criteria hh.Criteria) (*hh.ListingResponse, error) {
	runID := uuid.New()
	log := s.logger.With("run_id", runID.String(), "text", criteria.Text, "experience", criteria.Experience)

	s.printer.Requesting(criteria)

	listing, err := s.searcher.Search(ctx, criteria)
	if err != nil {
		if hh.IsRequestFailure(err) {
			s.printer.Failure(err)
			log.Warn("vacancy search request failed", "err", err)
		} else {
			log.Error("vacancy search response unusable", "err", err)
		}
		return nil, err
	}

	log.Info("vacancy search completed", "found", listing.Found, "items", len(listing.Items))

	s.printer.Listing(listing)

	path, err := s.store.Save(criteria, listing)
	if err != nil {
		log.Error("failed to store snapshot", "err", err)
		return nil, err
	}
	s.printer.Saved(path)
	log.Debug("snapshot stored", "path", path)

	run := Run{
		ID:           runID,
		Criteria:     criteria,
		Listing:      listing,
		SnapshotPath: path,
	}
	for _, sink := range s.sinks {
		if err := sink.Publish(ctx, run); err != nil {
			log.Warn("sink publish failed", "sink", sink.Name(), "err", err)
			continue
		}
		log.Debug("sink publish completed", "sink", sink.Name())
	}

	return listing, nil
}
