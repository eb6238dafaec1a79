// Package opportunity ranks queries by volume and CTR shortfall to surface
// tuning candidates.
package opportunity

import (
	"sort"

	"searchpulse/internal/types"
)

// Find returns the queries with impressions >= minImpressions and CTR below
// targetCTR, ranked descending by opportunity score (impressions times CTR
// gap). Ties break by descending impressions, then ascending query string,
// so identical inputs always produce identical order.
//
// No query meeting the volume floor is not an error: the result is simply
// empty.
func Find(queries []types.QueryMetrics, minImpressions int, targetCTR float64) ([]types.Opportunity, error) {
	if targetCTR < 0 || targetCTR > 1 {
		return nil, types.NewInvalidParameter("target_ctr", targetCTR, "target CTR must lie in [0,1]")
	}
	if minImpressions < 0 {
		return nil, types.NewInvalidParameter("min_impressions", minImpressions, "volume floor must not be negative")
	}

	var out []types.Opportunity
	for _, qm := range queries {
		if qm.Impressions < minImpressions {
			continue
		}
		if qm.CTR >= targetCTR {
			continue
		}
		gap := targetCTR - qm.CTR
		out = append(out, types.Opportunity{
			Query:       qm.Query,
			Impressions: qm.Impressions,
			CTR:         qm.CTR,
			Gap:         gap,
			Score:       float64(qm.Impressions) * gap,
		})
	}

	sort.Slice(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		if out[a].Impressions != out[b].Impressions {
			return out[a].Impressions > out[b].Impressions
		}
		return out[a].Query < out[b].Query
	})

	return out, nil
}
