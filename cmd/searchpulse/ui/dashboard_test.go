package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"searchpulse/internal/config"
)

const validCSV = "query,timestamp,result_count,clicked,converted,category\n" +
	"red shoes,2026-08-01T10:00:00Z,10,0,0,Footwear\n" +
	"red shoes,2026-08-01T11:00:00Z,10,0,0,Footwear\n" +
	"blue hat,2026-08-02T09:00:00Z,8,1,1,Accessories\n"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logs.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func newLoadedModel(t *testing.T, csv string) Model {
	t.Helper()
	m := NewModel(writeCSV(t, csv), config.DefaultConfig().Dashboard, DefaultStyles())

	msg := m.Init()()
	loaded, ok := msg.(datasetLoadedMsg)
	if !ok {
		t.Fatalf("Init produced %T, want datasetLoadedMsg", msg)
	}

	next, _ := m.Update(loaded)
	m = next.(Model)
	next, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func TestDashboard_LoadsDataset(t *testing.T) {
	m := newLoadedModel(t, validCSV)

	if !m.loaded || m.loadErr != "" {
		t.Fatalf("expected clean load, loaded=%v err=%q", m.loaded, m.loadErr)
	}

	out := m.View()
	for _, want := range []string{"searchpulse", "1 Overview", "2 Opportunities", "3 Simulator", "loaded 3 events"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestDashboard_MalformedDatasetBlocks(t *testing.T) {
	m := newLoadedModel(t, "query,timestamp\nbroken\n")

	if m.loadErr == "" {
		t.Fatal("expected a blocking load error")
	}

	out := m.View()
	if !strings.Contains(out, "Dataset error") {
		t.Errorf("missing error banner:\n%s", out)
	}
	if !strings.Contains(out, "press r to retry") {
		t.Errorf("missing retry hint:\n%s", out)
	}
	if strings.Contains(out, "Summary") {
		t.Errorf("pages must not render behind a blocking error:\n%s", out)
	}
}

func TestDashboard_ReloadClearsError(t *testing.T) {
	path := writeCSV(t, "query,timestamp\nbroken\n")
	m := NewModel(path, config.DefaultConfig().Dashboard, DefaultStyles())

	next, _ := m.Update(m.Init()().(datasetLoadedMsg))
	m = next.(Model)
	if m.loadErr == "" {
		t.Fatal("expected load error")
	}

	if err := os.WriteFile(path, []byte(validCSV), 0644); err != nil {
		t.Fatalf("rewrite csv: %v", err)
	}

	next, cmd := m.Update(key("r"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("r should trigger a reload command")
	}
	next, _ = m.Update(cmd().(datasetLoadedMsg))
	m = next.(Model)

	if m.loadErr != "" {
		t.Errorf("error not cleared after successful reload: %q", m.loadErr)
	}
}

func TestDashboard_PageSwitching(t *testing.T) {
	m := newLoadedModel(t, validCSV)

	cases := []struct {
		key  string
		want Page
	}{
		{"2", PageOpportunities},
		{"3", PageSimulator},
		{"1", PageOverview},
		{"right", PageOpportunities},
		{"left", PageOverview},
		{"left", PageSimulator}, // wraps
		{"l", PageOverview},
		{"h", PageSimulator},
	}

	for _, tc := range cases {
		next, _ := m.Update(key(tc.key))
		m = next.(Model)
		if m.page != tc.want {
			t.Fatalf("after %q: page=%d, want %d", tc.key, m.page, tc.want)
		}
	}
}

func TestDashboard_SwitchToSimulatorPrefills(t *testing.T) {
	cfg := config.DefaultConfig().Dashboard
	cfg.MinImpressions = 1 // the fixture is tiny

	m := NewModel(writeCSV(t, validCSV), cfg, DefaultStyles())
	next, _ := m.Update(m.Init()().(datasetLoadedMsg))
	m = next.(Model)

	next, _ = m.Update(key("3"))
	m = next.(Model)

	// "red shoes" is the only low-CTR query and should seed the baseline.
	if m.sim.baselineQuery != "red shoes" {
		t.Errorf("baselineQuery=%q, want red shoes", m.sim.baselineQuery)
	}
	if !strings.Contains(m.View(), `Baseline from query "red shoes"`) {
		t.Errorf("simulator page not prefilled:\n%s", m.View())
	}
}

func TestDashboard_QuitKeys(t *testing.T) {
	m := newLoadedModel(t, validCSV)

	for _, msg := range []tea.KeyMsg{key("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s did not produce a command", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s did not quit", msg.String())
		}
	}
}

func TestDashboard_EditingSuppressesGlobalKeys(t *testing.T) {
	m := newLoadedModel(t, validCSV)

	next, _ := m.Update(key("2"))
	m = next.(Model)
	next, _ = m.Update(key("tab")) // focus the floor input
	m = next.(Model)

	if !m.editing() {
		t.Fatal("expected editing state after tab")
	}

	next, cmd := m.Update(key("q"))
	m = next.(Model)
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("q quit the dashboard while editing an input")
		}
	}
	if !strings.Contains(m.opps.floorInput.Value(), "q") {
		t.Errorf("keystroke not routed to the input: %q", m.opps.floorInput.Value())
	}

	// Ctrl+C still quits mid-edit.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c did not produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit while editing")
	}
}

func TestDashboard_DatasetChangedReloads(t *testing.T) {
	m := newLoadedModel(t, validCSV)

	next, cmd := m.Update(DatasetChangedMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected a reload command")
	}
	if !strings.Contains(m.status, "reloading") {
		t.Errorf("status=%q, want reloading notice", m.status)
	}
	if _, ok := cmd().(datasetLoadedMsg); !ok {
		t.Error("reload command did not produce a dataset load")
	}
}
