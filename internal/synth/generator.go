// Package synth produces the fake ecommerce search-log dataset. The
// distributions are randomized but plausible: per-category click
// probabilities, a few intentionally weak queries, occasional typo variants,
// zero-result searches, and purchases that only happen after a click.
package synth

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"searchpulse/internal/types"
)

// Options configures a generation run.
type Options struct {
	Rows     int
	DaysBack int
	Seed     int64
	// Now anchors the date range; zero means time.Now(). Tests pin it.
	Now time.Time
}

// Generate produces opts.Rows search events over the trailing opts.DaysBack
// days. Output is deterministic for a fixed seed and anchor time, and sorted
// by timestamp ascending.
func Generate(opts Options) ([]types.SearchEvent, error) {
	if opts.Rows < 1 {
		return nil, types.NewInvalidParameter("rows", opts.Rows, "row count must be a positive integer")
	}
	if opts.DaysBack < 1 {
		return nil, types.NewInvalidParameter("days_back", opts.DaysBack, "date range must cover at least one day")
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	base := now.AddDate(0, 0, -opts.DaysBack)

	queries := Queries()
	events := make([]types.SearchEvent, 0, opts.Rows)

	for i := 0; i < opts.Rows; i++ {
		canonical := queries[rng.Intn(len(queries))]
		category := queryCategories[canonical]

		query := canonical
		if variant, ok := noisyVariants[canonical]; ok && rng.Float64() < typoRate {
			query = variant
		}

		clickProb := categoryClickProb[category]
		if badQueries[canonical] {
			clickProb -= badQueryPenalty
		}
		clickProb = clamp(clickProb, 0.05, 0.95)

		clicked := rng.Float64() < clickProb

		converted := false
		if clicked {
			p := basePurchaseProb
			if purchaseBonusCategories[category] {
				p += purchaseBonus
			}
			converted = rng.Float64() < p
		}

		resultCount := 1 + rng.Intn(50)
		if rng.Float64() < zeroResultRate {
			// Zero-result searches cannot be clicked or converted.
			resultCount = 0
			clicked = false
			converted = false
		}

		ts := sampleTimestamp(rng, base, opts.DaysBack)

		session, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, err
		}

		events = append(events, types.SearchEvent{
			Query:           query,
			NormalizedQuery: canonical,
			Timestamp:       ts,
			ResultCount:     resultCount,
			Clicked:         clicked,
			Converted:       converted,
			Category:        category,
			SessionID:       session.String(),
		})
	}

	sort.Slice(events, func(a, b int) bool {
		return events[a].Timestamp.Before(events[b].Timestamp)
	})

	return events, nil
}

// sampleTimestamp picks a day uniformly and an hour with a simple daytime
// weighting, so the trend chart shows mild daily seasonality instead of
// pure noise.
func sampleTimestamp(rng *rand.Rand, base time.Time, daysBack int) time.Time {
	day := rng.Intn(daysBack)

	// Two draws biased toward midday: average of two uniform hours.
	h1 := rng.Intn(24)
	h2 := rng.Intn(24)
	hour := (h1 + h2) / 2

	minute := rng.Intn(60)
	second := rng.Intn(60)

	d := base.AddDate(0, 0, day)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, second, 0, time.UTC)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
