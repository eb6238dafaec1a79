package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"searchpulse/internal/metrics"
	"searchpulse/internal/types"
)

// sparkRunes map a normalized value to a bar glyph, lowest to highest.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// OverviewPageModel renders the dataset-level KPI summary: totals, the
// daily search trend, and the top queries by volume.
type OverviewPageModel struct {
	viewport   viewport.Model
	styles     Styles
	width      int
	height     int
	topQueries int

	report metrics.Report
	loaded bool
}

// NewOverviewPageModel creates a new overview page component.
func NewOverviewPageModel(styles Styles, topQueries int) OverviewPageModel {
	vp := viewport.New(80, 20)
	return OverviewPageModel{
		viewport:   vp,
		styles:     styles,
		topQueries: topQueries,
	}
}

// SetSize updates the size of the viewport.
func (m *OverviewPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h
	m.refresh()
}

// UpdateContent replaces the report being displayed.
func (m *OverviewPageModel) UpdateContent(report metrics.Report) {
	m.report = report
	m.loaded = true
	m.refresh()
}

func (m *OverviewPageModel) refresh() {
	if !m.loaded {
		m.viewport.SetContent(m.styles.Muted.Render("Loading dataset..."))
		return
	}

	t := m.report.Totals
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Summary"))
	sb.WriteString("\n")
	if t.Searches == 0 {
		sb.WriteString(m.styles.Muted.Render("Dataset is empty. Run `searchpulse generate` first."))
		m.viewport.SetContent(sb.String())
		return
	}

	kpi := func(label, value string) string {
		return fmt.Sprintf("%s %s", m.styles.Label.Render(fmt.Sprintf("%-18s", label)), value)
	}
	sb.WriteString(kpi("Total searches", fmt.Sprintf("%d", t.Searches)) + "\n")
	sb.WriteString(kpi("Distinct queries", fmt.Sprintf("%d", t.DistinctQueries)) + "\n")
	sb.WriteString(kpi("Clicks", fmt.Sprintf("%d", t.Clicks)) + "\n")
	sb.WriteString(kpi("CTR", fmt.Sprintf("%.1f%%", t.CTR*100)) + "\n")
	sb.WriteString(kpi("Conversions", fmt.Sprintf("%d", t.Conversions)) + "\n")
	sb.WriteString(kpi("Conversion rate", fmt.Sprintf("%.1f%%", t.ConversionRate*100)) + "\n")
	sb.WriteString(kpi("Zero-result rate", fmt.Sprintf("%.1f%%", t.ZeroResultRate*100)) + "\n")
	sb.WriteString(kpi("Date range", fmt.Sprintf("%s to %s",
		t.From.Format("2006-01-02"), t.To.Format("2006-01-02"))) + "\n")
	sb.WriteString("\n")

	if len(m.report.Daily) > 1 {
		sb.WriteString(m.styles.Title.Render("Searches per day"))
		sb.WriteString("\n")
		sb.WriteString(sparkline(m.report.Daily, maxSparkWidth(m.width)))
		sb.WriteString("\n\n")
	}

	top := metrics.TopByVolume(m.report.Queries, m.topQueries)
	table := NewSimpleTable(fmt.Sprintf("Top %d queries by volume", len(top)),
		"Query", "Impressions", "CTR", "Conversions", "Conv. rate")
	table.RightAlign = []bool{false, true, true, true, true}
	for _, qm := range top {
		table.AddRow(
			qm.Query,
			fmt.Sprintf("%d", qm.Impressions),
			fmt.Sprintf("%.1f%%", qm.CTR*100),
			fmt.Sprintf("%d", qm.Conversions),
			fmt.Sprintf("%.1f%%", qm.ConversionRate*100),
		)
	}
	sb.WriteString(table.View(m.styles))

	m.viewport.SetContent(sb.String())
}

func maxSparkWidth(w int) int {
	if w <= 0 {
		return 60
	}
	if w > 4 {
		return w - 4
	}
	return w
}

// sparkline renders daily search counts as one bar glyph per day, rescaled
// to the tallest day. Wider histories than the width are right-truncated to
// the most recent days.
func sparkline(daily []types.DailyBucket, width int) string {
	if len(daily) == 0 || width <= 0 {
		return ""
	}
	if len(daily) > width {
		daily = daily[len(daily)-width:]
	}

	max := 0
	for _, d := range daily {
		if d.Searches > max {
			max = d.Searches
		}
	}
	if max == 0 {
		return ""
	}

	var sb strings.Builder
	for _, d := range daily {
		idx := d.Searches * (len(sparkRunes) - 1) / max
		sb.WriteRune(sparkRunes[idx])
	}
	sb.WriteString(fmt.Sprintf("  (peak %d/day)", max))
	return sb.String()
}

// Update handles messages; the page only scrolls.
func (m OverviewPageModel) Update(msg tea.Msg) (OverviewPageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m OverviewPageModel) View() string {
	return m.viewport.View()
}
