package ui

import (
	"strings"
	"testing"
)

func TestSimpleTable_View(t *testing.T) {
	table := NewSimpleTable("Top queries", "Query", "Impressions")
	table.AddRow("jeans", "120")
	table.AddRow("blender", "80")

	out := table.View(DefaultStyles())

	for _, want := range []string{"Top queries", "Query", "Impressions", "jeans", "120", "blender"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestSimpleTable_EmptyRendersNothing(t *testing.T) {
	table := NewSimpleTable("Empty", "A", "B")
	if out := table.View(DefaultStyles()); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestSimpleTable_ColumnsPadToWidestCell(t *testing.T) {
	table := NewSimpleTable("", "Q", "N")
	table.AddRow("a very long query string", "1")
	table.AddRow("b", "2")

	lines := strings.Split(strings.TrimRight(table.View(DefaultStyles()), "\n"), "\n")
	if len(lines) < 4 {
		t.Fatalf("expected header, separator and 2 rows, got %d lines", len(lines))
	}
	// Rows in the same column render at the same width.
	if len(lines[2]) != len(lines[3]) {
		t.Errorf("row widths differ: %d vs %d", len(lines[2]), len(lines[3]))
	}
}
