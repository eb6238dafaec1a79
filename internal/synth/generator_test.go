package synth

import (
	"testing"
	"time"

	"searchpulse/internal/types"
)

var anchor = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func generateN(t *testing.T, n int) []types.SearchEvent {
	t.Helper()
	events, err := Generate(Options{Rows: n, DaysBack: 30, Seed: 42, Now: anchor})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return events
}

func TestGenerate_RowCount(t *testing.T) {
	events := generateN(t, 500)
	if len(events) != 500 {
		t.Fatalf("expected 500 events, got %d", len(events))
	}
}

func TestGenerate_InvalidRowCount(t *testing.T) {
	for _, rows := range []int{0, -1} {
		if _, err := Generate(Options{Rows: rows, DaysBack: 30, Seed: 1}); !types.IsInvalidParameter(err) {
			t.Errorf("rows=%d: expected InvalidParameter, got %v", rows, err)
		}
	}
}

func TestGenerate_InvalidDaysBack(t *testing.T) {
	if _, err := Generate(Options{Rows: 10, DaysBack: 0, Seed: 1}); !types.IsInvalidParameter(err) {
		t.Error("expected InvalidParameter for days_back=0")
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := generateN(t, 200)
	b := generateN(t, 200)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("event %d differs between identical runs:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestGenerate_ConversionRequiresClick(t *testing.T) {
	for i, ev := range generateN(t, 2000) {
		if ev.Converted && !ev.Clicked {
			t.Fatalf("event %d converted without a click: %+v", i, ev)
		}
	}
}

func TestGenerate_ZeroResultsNeverClicked(t *testing.T) {
	events := generateN(t, 2000)
	seenZero := false
	for i, ev := range events {
		if ev.ResultCount == 0 {
			seenZero = true
			if ev.Clicked || ev.Converted {
				t.Fatalf("event %d has zero results but clicked=%v converted=%v", i, ev.Clicked, ev.Converted)
			}
		}
	}
	if !seenZero {
		t.Error("expected some zero-result searches in 2000 rows")
	}
}

func TestGenerate_TimestampsWithinRangeAndSorted(t *testing.T) {
	events := generateN(t, 1000)
	lo := anchor.AddDate(0, 0, -30)

	var prev time.Time
	for i, ev := range events {
		if ev.Timestamp.Before(lo) || ev.Timestamp.After(anchor.Add(24*time.Hour)) {
			t.Fatalf("event %d timestamp %v outside range", i, ev.Timestamp)
		}
		if ev.Timestamp.Before(prev) {
			t.Fatalf("event %d out of order", i)
		}
		prev = ev.Timestamp
	}
}

func TestGenerate_VocabularyAndCategories(t *testing.T) {
	canonical := make(map[string]bool)
	for _, q := range Queries() {
		canonical[q] = true
	}

	for i, ev := range generateN(t, 1000) {
		if !canonical[ev.NormalizedQuery] {
			t.Fatalf("event %d has unknown normalized query %q", i, ev.NormalizedQuery)
		}
		if queryCategories[ev.NormalizedQuery] != ev.Category {
			t.Fatalf("event %d category %q does not match vocabulary for %q", i, ev.Category, ev.NormalizedQuery)
		}
		if ev.SessionID == "" {
			t.Fatalf("event %d missing session id", i)
		}
	}
}

func TestGenerate_TypoVariantsKeepCanonicalForm(t *testing.T) {
	variants := make(map[string]string, len(noisyVariants))
	for canonical, variant := range noisyVariants {
		variants[variant] = canonical
	}

	sawVariant := false
	for i, ev := range generateN(t, 3000) {
		if ev.Query == ev.NormalizedQuery {
			continue
		}
		sawVariant = true
		if variants[ev.Query] != ev.NormalizedQuery {
			t.Fatalf("event %d: variant %q not mapped to %q", i, ev.Query, ev.NormalizedQuery)
		}
	}
	if !sawVariant {
		t.Error("expected some typo variants in 3000 rows")
	}
}

func TestGenerate_BadQueriesUnderperform(t *testing.T) {
	events := generateN(t, 20000)

	clicks := make(map[string]int)
	impressions := make(map[string]int)
	for _, ev := range events {
		impressions[ev.NormalizedQuery]++
		if ev.Clicked {
			clicks[ev.NormalizedQuery]++
		}
	}

	ctr := func(q string) float64 {
		return float64(clicks[q]) / float64(impressions[q])
	}

	// "t shirt" has the bad-query penalty, "jeans" does not; both are Apparel.
	if ctr("t shirt") >= ctr("jeans") {
		t.Errorf("expected penalized query to underperform: t shirt=%.3f jeans=%.3f",
			ctr("t shirt"), ctr("jeans"))
	}
}
