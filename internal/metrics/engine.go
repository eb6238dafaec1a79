// Package metrics aggregates raw search events into per-query and overall
// KPIs. Grouping is by exact raw query string: case-sensitive, no
// normalization. Every group forms from at least one observed row, so CTR is
// always well-defined.
package metrics

import (
	"sort"
	"time"

	"searchpulse/internal/types"
)

// Report is the full output of one aggregation pass.
type Report struct {
	Queries []types.QueryMetrics // sorted by query ascending
	Totals  types.DatasetTotals
	Daily   []types.DailyBucket // sorted by day ascending
}

// Compute aggregates events into a Report. An empty input yields an empty
// report, not an error; the dashboard renders it as "no data".
func Compute(events []types.SearchEvent) Report {
	byQuery := make(map[string]*types.QueryMetrics)
	byDay := make(map[time.Time]*types.DailyBucket)

	var totals types.DatasetTotals
	var zeroResults int

	for _, ev := range events {
		qm, ok := byQuery[ev.Query]
		if !ok {
			qm = &types.QueryMetrics{Query: ev.Query}
			byQuery[ev.Query] = qm
		}
		qm.Impressions++
		if ev.Clicked {
			qm.Clicks++
		}
		if ev.Converted {
			qm.Conversions++
		}

		day := ev.Timestamp.UTC().Truncate(24 * time.Hour)
		db, ok := byDay[day]
		if !ok {
			db = &types.DailyBucket{Day: day}
			byDay[day] = db
		}
		db.Searches++
		if ev.Clicked {
			db.Clicks++
		}
		if ev.Converted {
			db.Conversions++
		}

		totals.Searches++
		if ev.Clicked {
			totals.Clicks++
		}
		if ev.Converted {
			totals.Conversions++
		}
		if ev.ResultCount == 0 {
			zeroResults++
		}
		if totals.From.IsZero() || ev.Timestamp.Before(totals.From) {
			totals.From = ev.Timestamp
		}
		if ev.Timestamp.After(totals.To) {
			totals.To = ev.Timestamp
		}
	}

	queries := make([]types.QueryMetrics, 0, len(byQuery))
	for _, qm := range byQuery {
		qm.CTR = ratio(qm.Clicks, qm.Impressions)
		qm.ConversionRate = ratio(qm.Conversions, qm.Clicks)
		queries = append(queries, *qm)
	}
	sort.Slice(queries, func(a, b int) bool {
		return queries[a].Query < queries[b].Query
	})

	daily := make([]types.DailyBucket, 0, len(byDay))
	for _, db := range byDay {
		daily = append(daily, *db)
	}
	sort.Slice(daily, func(a, b int) bool {
		return daily[a].Day.Before(daily[b].Day)
	})

	totals.DistinctQueries = len(byQuery)
	totals.CTR = ratio(totals.Clicks, totals.Searches)
	totals.ConversionRate = ratio(totals.Conversions, totals.Clicks)
	totals.ZeroResultRate = ratio(zeroResults, totals.Searches)

	return Report{Queries: queries, Totals: totals, Daily: daily}
}

// TopByVolume returns up to n queries ordered by impressions descending,
// ties broken by query ascending.
func TopByVolume(queries []types.QueryMetrics, n int) []types.QueryMetrics {
	out := make([]types.QueryMetrics, len(queries))
	copy(out, queries)
	sort.Slice(out, func(a, b int) bool {
		if out[a].Impressions != out[b].Impressions {
			return out[a].Impressions > out[b].Impressions
		}
		return out[a].Query < out[b].Query
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
