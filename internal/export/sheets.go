package export

import (
	"context"
	"fmt"
	"strconv"

	"github.com/honeycarbs/hh-analyst/internal/report"
	"github.com/honeycarbs/hh-analyst/internal/vacancy"
)

// ValuesWriter is the subset of the Sheets client used by the exporter
type ValuesWriter interface {
	UpdateValues(ctx context.Context, spreadsheetID, range_ string, values [][]any) error
	ClearValues(ctx context.Context, spreadsheetID, range_ string) error
}

var header = []any{"ID", "Title", "Employer", "Area", "Salary", "URL", "Requirement", "Responsibility", "Run"}

// SheetsExporter mirrors the latest listing into one spreadsheet tab
type SheetsExporter struct {
	client        ValuesWriter
	spreadsheetID string
	tab           string
}

var _ vacancy.Sink = (*SheetsExporter)(nil)

func NewSheetsExporter(client ValuesWriter, spreadsheetID, tab string) (*SheetsExporter, error) {
	if client == nil {
		return nil, fmt.Errorf("sheets exporter: client is required")
	}
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheets exporter: spreadsheet id is required")
	}
	if tab == "" {
		tab = "Sheet1"
	}

	return &SheetsExporter{client: client, spreadsheetID: spreadsheetID, tab: tab}, nil
}

func (e *SheetsExporter) Name() string {
	return "sheets"
}

// Publish replaces the tab contents with the run's vacancies
func (e *SheetsExporter) Publish(ctx context.Context, run vacancy.Run) error {
	if err := e.client.ClearValues(ctx, e.spreadsheetID, fmt.Sprintf("%s!A1:Z", e.tab)); err != nil {
		return fmt.Errorf("sheets: failed to clear tab: %w", err)
	}

	values := Rows(run)
	if err := e.client.UpdateValues(ctx, e.spreadsheetID, fmt.Sprintf("%s!A1", e.tab), values); err != nil {
		return fmt.Errorf("sheets: failed to write rows: %w", err)
	}

	return nil
}

// Rows converts a run into a header row followed by one row per vacancy
func Rows(run vacancy.Run) [][]any {
	values := [][]any{header}
	if run.Listing == nil {
		return values
	}

	for _, v := range run.Listing.Items {
		values = append(values, []any{
			v.ID,
			v.Name,
			v.Employer.Name,
			v.Area.Name,
			report.SalaryDisplay(v),
			v.AlternateURL,
			report.SnippetText(v.Snippet.Requirement),
			report.SnippetText(v.Snippet.Responsibility),
			run.ID.String(),
		})
	}

	values = append(values, []any{"Found", strconv.Itoa(run.Listing.Found)})
	return values
}
