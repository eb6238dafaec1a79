// Package types provides shared type definitions used across searchpulse packages.
// This package exists to break import cycles between dataset, metrics, and the UI.
// Types in this package should be foundational data structures with no complex dependencies.
package types

import "time"

// SearchEvent is one logged on-site search. One row in the flat file,
// immutable once written. Every event counts as exactly one impression.
type SearchEvent struct {
	Query           string
	NormalizedQuery string // canonical form for typo variants; informational only
	Timestamp       time.Time
	ResultCount     int
	Clicked         bool
	Converted       bool
	Category        string
	SessionID       string
}

// QueryMetrics aggregates all events for one distinct raw query string.
// Grouping is case-sensitive with no normalization.
type QueryMetrics struct {
	Query          string
	Impressions    int
	Clicks         int
	CTR            float64
	Conversions    int
	ConversionRate float64 // conversions / clicks; 0 when there are no clicks
}

// DatasetTotals is the single aggregate row for the whole dataset.
type DatasetTotals struct {
	Searches        int
	Clicks          int
	Conversions     int
	CTR             float64
	ConversionRate  float64
	DistinctQueries int
	ZeroResultRate  float64
	From            time.Time
	To              time.Time
}

// DailyBucket holds per-day counts for the overview trend.
type DailyBucket struct {
	Day         time.Time // midnight UTC
	Searches    int
	Clicks      int
	Conversions int
}

// Opportunity is a query flagged as a tuning candidate: enough volume,
// CTR below the target benchmark.
type Opportunity struct {
	Query       string
	Impressions int
	CTR         float64
	Gap         float64 // target CTR minus observed CTR, always > 0
	Score       float64 // impressions * gap
}

// SimulationResult is the deterministic point estimate produced by the
// A/B simulator. It carries no confidence interval.
type SimulationResult struct {
	BaselineClicks         float64
	CurrentCTR             float64
	ProjectedCTR           float64 // capped at 1.0
	IncrementalClicks      float64
	IncrementalConversions float64
	IncrementalRevenue     float64
}
