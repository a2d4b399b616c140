package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/hh-analyst/internal/config"
	"github.com/honeycarbs/hh-analyst/internal/report"
	"github.com/honeycarbs/hh-analyst/pkg/hh"
	"github.com/honeycarbs/hh-analyst/pkg/logging"
)

// VacancyFetcher is the subset of vacancy.Service used by the tool
type VacancyFetcher interface {
	Fetch(ctx context.Context, criteria hh.Criteria) (*hh.ListingResponse, error)
	SnapshotPath(criteria hh.Criteria) string
}

// VacancySearchParams defines the arguments for the vacancy_search tool
type VacancySearchParams struct {
	Text       string `json:"text,omitempty" jsonschema:"Keywords matched against the vacancy title, default Python"`
	Experience string `json:"experience,omitempty" jsonschema:"One of noExperience, between1And3, between3And6, moreThan6"`
	WorkFormat string `json:"work_format,omitempty" jsonschema:"Work format filter such as REMOTE, ON_SITE, HYBRID"`
	Area       int    `json:"area,omitempty" jsonschema:"hh.ru area code, 113 is the whole of Russia"`
	PerPage    int    `json:"per_page,omitempty" jsonschema:"Page size, the API accepts at most 100"`
}

// VacancySummary is one vacancy in the tool result
type VacancySummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Salary   string `json:"salary"`
	Employer string `json:"employer"`
	URL      string `json:"url"`
}

// VacancySearchResult is the structured tool output
type VacancySearchResult struct {
	Found        int              `json:"found"`
	Pages        int              `json:"pages"`
	Page         int              `json:"page"`
	SnapshotPath string           `json:"snapshot_path"`
	Vacancies    []VacancySummary `json:"vacancies"`
}

// Criteria merges params over the default criteria
func (p VacancySearchParams) Criteria() hh.Criteria {
	c := hh.DefaultCriteria()
	if p.Text != "" {
		c.Text = p.Text
	}
	if p.Experience != "" {
		c.Experience = hh.Experience(p.Experience)
	}
	if p.WorkFormat != "" {
		c.WorkFormat = p.WorkFormat
	}
	if p.Area > 0 {
		c.Area = p.Area
	}
	if p.PerPage > 0 {
		c.PerPage = p.PerPage
	}
	return c
}

// RegisterVacancyTools registers the vacancy_search tool
func RegisterVacancyTools(server *sdkmcp.Server, fetcher VacancyFetcher, logger *logging.Logger) error {
	if fetcher == nil {
		return fmt.Errorf("vacancy tools: fetcher is required")
	}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "vacancy_search",
		Description: "Search hh.ru vacancies by title keywords, experience and work format; stores the raw listing as a JSON snapshot",
	}, vacancySearchHandler(fetcher, logger))

	return nil
}

func vacancySearchHandler(fetcher VacancyFetcher, logger *logging.Logger) sdkmcp.ToolHandlerFor[VacancySearchParams, VacancySearchResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, params VacancySearchParams) (*sdkmcp.CallToolResult, VacancySearchResult, error) {
		criteria := params.Criteria()
		if err := config.ValidateCriteria(criteria); err != nil {
			return errorResult(err.Error()), emptyResult(), nil
		}

		listing, err := fetcher.Fetch(ctx, criteria)
		if err != nil {
			logger.Warn("vacancy_search failed", "text", criteria.Text, "err", err)
			return errorResult(fmt.Sprintf("vacancy search failed: %v", err)), emptyResult(), nil
		}

		result := VacancySearchResult{
			Found:        listing.Found,
			Pages:        listing.Pages,
			Page:         listing.Page,
			SnapshotPath: fetcher.SnapshotPath(criteria),
			Vacancies:    make([]VacancySummary, 0, len(listing.Items)),
		}
		for _, v := range listing.Items {
			result.Vacancies = append(result.Vacancies, VacancySummary{
				ID:       v.ID,
				Name:     v.Name,
				Salary:   report.SalaryDisplay(v),
				Employer: v.Employer.Name,
				URL:      v.AlternateURL,
			})
		}

		msg := fmt.Sprintf("Found %d vacancies for %q (%d returned), snapshot: %s",
			result.Found, criteria.Text, len(result.Vacancies), result.SnapshotPath)
		return textResult(msg), result, nil
	}
}

func emptyResult() VacancySearchResult {
	return VacancySearchResult{Vacancies: []VacancySummary{}}
}
