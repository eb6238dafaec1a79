package report

import (
	"strings"
	"testing"
	"time"

	"searchpulse/internal/metrics"
	"searchpulse/internal/types"
)

func sampleReport() metrics.Report {
	ts := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	events := []types.SearchEvent{
		{Query: "red shoes", Timestamp: ts, ResultCount: 10},
		{Query: "red shoes", Timestamp: ts, ResultCount: 10, Clicked: true},
		{Query: "blue hat", Timestamp: ts.Add(24 * time.Hour), ResultCount: 10, Clicked: true, Converted: true},
	}
	return metrics.Compute(events)
}

func defaultParams() Params {
	return Params{
		MinImpressions: 20,
		TargetCTR:      0.30,
		Lift:           0.15,
		ConversionRate: 0.10,
		AvgOrderValue:  50,
		TopQueries:     10,
	}
}

func TestBuild_Sections(t *testing.T) {
	opps := []types.Opportunity{
		{Query: "red shoes", Impressions: 100, CTR: 0.05, Gap: 0.25, Score: 25},
	}
	sim := &types.SimulationResult{
		CurrentCTR:             0.05,
		ProjectedCTR:           0.0575,
		IncrementalClicks:      0.75,
		IncrementalConversions: 0.075,
		IncrementalRevenue:     3.75,
	}

	md := Build(sampleReport(), opps, sim, defaultParams())

	for _, want := range []string{
		"# Search Performance Report",
		"## Summary",
		"| Total searches | 3 |",
		"| Distinct queries | 2 |",
		"## Top queries by volume",
		"| red shoes | 2 |",
		"## Opportunities (floor 20, target CTR 30%)",
		"| 1 | red shoes | 100 | 5.0% | 25.0 pp | 25.0 |",
		"## Projection for \"red shoes\"",
		"Incremental revenue: $3.75",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q\n%s", want, md)
		}
	}
}

func TestBuild_NoOpportunities(t *testing.T) {
	md := Build(sampleReport(), nil, nil, defaultParams())

	if !strings.Contains(md, "No queries below the target CTR at this volume floor.") {
		t.Errorf("missing empty-opportunities line:\n%s", md)
	}
	if strings.Contains(md, "## Projection") {
		t.Error("projection section should be absent without opportunities")
	}
}

func TestBuild_EmptyDataset(t *testing.T) {
	md := Build(metrics.Compute(nil), nil, nil, defaultParams())

	if !strings.Contains(md, "| Total searches | 0 |") {
		t.Errorf("expected zero totals:\n%s", md)
	}
	if strings.Contains(md, "Date range") {
		t.Error("date range row should be omitted for an empty dataset")
	}
	if strings.Contains(md, "## Top queries") {
		t.Error("top-queries section should be omitted for an empty dataset")
	}
}

func TestRender(t *testing.T) {
	out, err := Render("# Hello\n\nworld\n", 80)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "Hello") || !strings.Contains(out, "world") {
		t.Errorf("rendered output lost content:\n%s", out)
	}
}
