package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"patchsheet/app/patch"
	"patchsheet/app/sccapi"
)

// Fetcher is the slice of the API client the pipeline drives.
type Fetcher interface {
	FetchSeverity(ctx context.Context, severity string, query sccapi.Query) ([]patch.Hit, error)
	FetchDetail(ctx context.Context, id string) (patch.Detail, error)
}

// Pipeline sequences fetch, merge, sort, filter, enrich, and project.
// Each stage completes fully before the next begins; the working set is
// owned exclusively by the run. Retry logic lives in the fetcher, never
// here.
type Pipeline struct {
	fetcher Fetcher
	since   *time.Time
}

func New(fetcher Fetcher, since *time.Time) *Pipeline {
	return &Pipeline{
		fetcher: fetcher,
		since:   since,
	}
}

// Run executes the pipeline over the given query sets and returns the
// projected output rows. A listing fetch failure aborts the run; detail
// failures degrade per-record.
func (p *Pipeline) Run(ctx context.Context, queries []sccapi.Query) ([]patch.Row, error) {
	var combined []patch.Hit

	for _, query := range queries {
		for _, severity := range patch.Severities {
			hits, err := p.fetcher.FetchSeverity(ctx, severity, query)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch %s patches: %w", severity, err)
			}
			slog.Info("Severity fetched",
				"severity", severity,
				"products", query.ProductNames,
				"hits", len(hits))
			combined = append(combined, hits...)
		}
	}

	// Newest first; ties keep their original relative order.
	sort.SliceStable(combined, func(i, j int) bool {
		return patch.ParseIssuedAt(combined[i].IssuedAt).After(patch.ParseIssuedAt(combined[j].IssuedAt))
	})
	slog.Info("Results merged", "total", len(combined))

	if p.since != nil {
		before := len(combined)
		kept := make([]patch.Hit, 0, len(combined))
		for _, hit := range combined {
			if !patch.ParseIssuedAt(hit.IssuedAt).Before(*p.since) {
				kept = append(kept, hit)
			}
		}
		combined = kept
		slog.Info("Threshold applied",
			"since", p.since.Format(time.RFC3339),
			"kept", len(combined),
			"before", before)
	}

	// Enrichment runs strictly after filtering so dropped records never
	// cost a detail call.
	for i := range combined {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.enrich(ctx, &combined[i])
	}

	rows := make([]patch.Row, 0, len(combined))
	for _, hit := range combined {
		rows = append(rows, patch.ToRow(hit))
	}

	return rows, nil
}

// enrich attaches the two detail fields to one hit. This is the one
// place a failure is swallowed: a single bad patch id must not abort
// the export of the rest. The fields stay empty on failure.
func (p *Pipeline) enrich(ctx context.Context, hit *patch.Hit) {
	id := string(hit.ID)
	if id == "" {
		return
	}

	detail, err := p.fetcher.FetchDetail(ctx, id)
	if err != nil {
		slog.Warn("Detail lookup failed", "id", id, "error", err)
		return
	}

	hit.DetailIBSID = string(detail.IBSID)
	hit.DetailDescription = string(detail.Description)
}
