// Package report builds a markdown KPI summary of a dataset: overall
// totals, top queries by volume, the current opportunity ranking, and a
// worked lift projection for the top opportunity.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"searchpulse/internal/metrics"
	"searchpulse/internal/types"
)

// Params carries the thresholds the report was computed with, so the output
// is self-describing.
type Params struct {
	MinImpressions int
	TargetCTR      float64
	Lift           float64
	ConversionRate float64
	AvgOrderValue  float64
	TopQueries     int
}

// Build renders the report as markdown.
func Build(rep metrics.Report, opps []types.Opportunity, sim *types.SimulationResult, p Params) string {
	var sb strings.Builder

	sb.WriteString("# Search Performance Report\n\n")

	t := rep.Totals
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n|---|---|\n")
	sb.WriteString(fmt.Sprintf("| Total searches | %d |\n", t.Searches))
	sb.WriteString(fmt.Sprintf("| Distinct queries | %d |\n", t.DistinctQueries))
	sb.WriteString(fmt.Sprintf("| Clicks | %d |\n", t.Clicks))
	sb.WriteString(fmt.Sprintf("| Click-through rate | %.1f%% |\n", t.CTR*100))
	sb.WriteString(fmt.Sprintf("| Conversions | %d |\n", t.Conversions))
	sb.WriteString(fmt.Sprintf("| Conversion rate | %.1f%% |\n", t.ConversionRate*100))
	sb.WriteString(fmt.Sprintf("| Zero-result rate | %.1f%% |\n", t.ZeroResultRate*100))
	if !t.From.IsZero() {
		sb.WriteString(fmt.Sprintf("| Date range | %s to %s |\n",
			t.From.Format("2006-01-02"), t.To.Format("2006-01-02")))
	}
	sb.WriteString("\n")

	top := metrics.TopByVolume(rep.Queries, p.TopQueries)
	if len(top) > 0 {
		sb.WriteString("## Top queries by volume\n\n")
		sb.WriteString("| Query | Impressions | CTR | Conversions |\n|---|---|---|---|\n")
		for _, qm := range top {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.1f%% | %d |\n",
				qm.Query, qm.Impressions, qm.CTR*100, qm.Conversions))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("## Opportunities (floor %d, target CTR %.0f%%)\n\n",
		p.MinImpressions, p.TargetCTR*100))
	if len(opps) == 0 {
		sb.WriteString("No queries below the target CTR at this volume floor.\n\n")
	} else {
		sb.WriteString("| Rank | Query | Impressions | CTR | Gap | Score |\n|---|---|---|---|---|---|\n")
		for i, o := range opps {
			sb.WriteString(fmt.Sprintf("| %d | %s | %d | %.1f%% | %.1f pp | %.1f |\n",
				i+1, o.Query, o.Impressions, o.CTR*100, o.Gap*100, o.Score))
		}
		sb.WriteString("\n")
	}

	if sim != nil && len(opps) > 0 {
		o := opps[0]
		sb.WriteString(fmt.Sprintf("## Projection for %q\n\n", o.Query))
		sb.WriteString(fmt.Sprintf(
			"Assuming a %+.0f%% CTR lift, a %.0f%% conversion rate per incremental click, and a $%.2f average order value:\n\n",
			p.Lift*100, p.ConversionRate*100, p.AvgOrderValue))
		sb.WriteString(fmt.Sprintf("- Projected CTR: %.2f%% (from %.2f%%)\n", sim.ProjectedCTR*100, sim.CurrentCTR*100))
		sb.WriteString(fmt.Sprintf("- Incremental clicks: %.1f\n", sim.IncrementalClicks))
		sb.WriteString(fmt.Sprintf("- Incremental conversions: %.1f\n", sim.IncrementalConversions))
		sb.WriteString(fmt.Sprintf("- Incremental revenue: $%.2f\n", sim.IncrementalRevenue))
		sb.WriteString("\n")
	}

	return sb.String()
}

// Render styles the markdown for terminal output.
func Render(markdown string, wordWrap int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to build renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}
