package neo4j

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/hh-analyst/internal/report"
	"github.com/honeycarbs/hh-analyst/internal/vacancy"
	"github.com/honeycarbs/hh-analyst/pkg/hh"
	pkgneo4j "github.com/honeycarbs/hh-analyst/pkg/neo4j"
)

const source = "hh"

// upsertVacanciesQuery expects $runId, $search and $vacancies as built by publishParams
const upsertVacanciesQuery = `
	MERGE (q:Search {text: $search.text, experience: $search.experience, workFormat: $search.workFormat, area: $search.area})
	SET q.lastRunId = $runId,
	    q.found = $search.found
	WITH q
	UNWIND $vacancies AS vac
	MERGE (v:Vacancy {source: vac.source, externalId: vac.externalId})
	SET v.name = vac.name,
	    v.url = vac.url,
	    v.salaryFrom = vac.salaryFrom,
	    v.salaryTo = vac.salaryTo,
	    v.currency = vac.currency,
	    v.salary = vac.salary,
	    v.runId = $runId
	MERGE (v)-[:FOUND_BY]->(q)
	WITH v, vac
	FOREACH (ignored IN CASE WHEN vac.employer.id <> '' THEN [1] ELSE [] END |
		MERGE (e:Employer {id: vac.employer.id})
		SET e.name = vac.employer.name
		MERGE (v)-[:POSTED_BY]->(e)
	)
	FOREACH (ignored IN CASE WHEN vac.area.id <> '' THEN [1] ELSE [] END |
		MERGE (a:Area {id: vac.area.id})
		SET a.name = vac.area.name
		MERGE (v)-[:LOCATED_IN]->(a)
	)
`

// Ensure VacancyRepository implements vacancy.Sink
var _ vacancy.Sink = (*VacancyRepository)(nil)

// VacancyRepository stores fetched vacancies as a graph:
// (Vacancy)-[:POSTED_BY]->(Employer), (Vacancy)-[:LOCATED_IN]->(Area),
// (Vacancy)-[:FOUND_BY]->(Search)
type VacancyRepository struct {
	client *pkgneo4j.Client
}

// NewVacancyRepository creates a VacancyRepository with a Neo4j client
func NewVacancyRepository(client *pkgneo4j.Client) *VacancyRepository {
	return &VacancyRepository{client: client}
}

func (r *VacancyRepository) Name() string {
	return "neo4j"
}

// Publish merges every vacancy of the run into the graph
func (r *VacancyRepository) Publish(ctx context.Context, run vacancy.Run) error {
	if run.Listing == nil || len(run.Listing.Items) == 0 {
		return nil
	}

	session := r.client.WriteSession(ctx)
	defer session.Close(ctx)

	params := publishParams(run)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, upsertVacanciesQuery, params)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("neo4j: upsert vacancies: %w", err)
	}

	return nil
}

// CountByRun returns how many vacancies were last written by run
func (r *VacancyRepository) CountByRun(ctx context.Context, runID string) (int64, error) {
	session := r.client.ReadSession(ctx)
	defer session.Close(ctx)

	count, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `MATCH (v:Vacancy {runId: $runId}) RETURN count(v) AS n`, map[string]any{"runId": runID})
		if err != nil {
			return nil, err
		}
		record, err := result.Single(ctx)
		if err != nil {
			return nil, err
		}
		n, _ := record.Get("n")
		return n, nil
	})
	if err != nil {
		return 0, fmt.Errorf("neo4j: count vacancies: %w", err)
	}

	n, ok := count.(int64)
	if !ok {
		return 0, fmt.Errorf("neo4j: unexpected count type %T", count)
	}
	return n, nil
}

func publishParams(run vacancy.Run) map[string]any {
	return map[string]any{
		"runId":     run.ID.String(),
		"search":    searchParams(run),
		"vacancies": vacancyParams(run.Listing.Items),
	}
}

func searchParams(run vacancy.Run) map[string]any {
	return map[string]any{
		"text":       run.Criteria.Text,
		"experience": string(run.Criteria.Experience),
		"workFormat": run.Criteria.WorkFormat,
		"area":       int64(run.Criteria.Area),
		"found":      int64(run.Listing.Found),
	}
}

func vacancyParams(items []hh.Vacancy) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, v := range items {
		if strings.TrimSpace(v.ID) == "" {
			continue
		}

		row := map[string]any{
			"source":     source,
			"externalId": v.ID,
			"name":       v.Name,
			"url":        v.AlternateURL,
			"salary":     report.SalaryDisplay(v),
			"salaryFrom": nil,
			"salaryTo":   nil,
			"currency":   "",
			"employer":   map[string]any{"id": v.Employer.ID, "name": v.Employer.Name},
			"area":       map[string]any{"id": v.Area.ID, "name": v.Area.Name},
		}
		if v.Salary != nil {
			if v.Salary.From != nil {
				row["salaryFrom"] = *v.Salary.From
			}
			if v.Salary.To != nil {
				row["salaryTo"] = *v.Salary.To
			}
			row["currency"] = v.Salary.Currency
		}

		out = append(out, row)
	}
	return out
}
